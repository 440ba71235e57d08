package ui

import (
	"fmt"
	"image/color"

	"SpiderWeb/internal/export"
	"SpiderWeb/internal/web"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// strandStyle is fixed when a strand is created.
type strandStyle struct {
	color  color.Color
	stroke float32
}

// WebWidget draws a scene's strands and feeds it pointer gestures.
// All methods must run on the fyne goroutine.
type WebWidget struct {
	widget.BaseWidget
	scene  *web.Scene
	styles map[string]strandStyle

	panX, panY float32

	// The mouse or single touch point currently in a gesture.
	pointer       web.TouchID
	pointerActive bool
	lastPos       fyne.Position

	currentColor  color.Color
	currentStroke float32

	shareURL  string
	statusBar *widget.Label
}

var _ fyne.Widget = (*WebWidget)(nil)
var _ fyne.Draggable = (*WebWidget)(nil)
var _ desktop.Mouseable = (*WebWidget)(nil)
var _ mobile.Touchable = (*WebWidget)(nil)

// NewWebWidget takes over the scene's OnStrandCreated and OnChanged hooks.
func NewWebWidget(scene *web.Scene, stroke float32) *WebWidget {
	b := &WebWidget{
		scene:         scene,
		styles:        make(map[string]strandStyle),
		currentColor:  color.Black,
		currentStroke: stroke,
		statusBar:     widget.NewLabel("Ready"),
	}
	scene.OnStrandCreated = func(s *web.Strand) {
		b.styles[s.ID()] = strandStyle{color: b.currentColor, stroke: b.currentStroke}
	}
	scene.OnChanged = func() {
		b.updateStatus()
		b.Refresh()
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *WebWidget) Scene() *web.Scene { return b.scene }

// Dispatch runs f on the fyne goroutine. Remote input sources use it to
// reach the scene.
func (b *WebWidget) Dispatch(f func()) {
	fyne.Do(f)
}

func (b *WebWidget) SetColor(c color.Color) { b.currentColor = c }

func (b *WebWidget) SetStroke(s float32) { b.currentStroke = s }

// SetShareURL shows the touchpad address in the status bar.
func (b *WebWidget) SetShareURL(url string) {
	b.shareURL = url
	b.updateStatus()
}

func (b *WebWidget) SetStatus(text string) {
	b.statusBar.SetText(text)
}

func (b *WebWidget) updateStatus() {
	text := fmt.Sprintf("Strands: %d", len(b.scene.Strands()))
	if b.shareURL != "" {
		text += "  |  Touchpad: " + b.shareURL
	}
	b.SetStatus(text)
}

// Lines returns every finished strand in scene coordinates with its style.
func (b *WebWidget) Lines() []export.Line {
	strands := b.scene.Strands()
	lines := make([]export.Line, 0, len(strands))
	for _, s := range strands {
		end, ok := s.End()
		if !ok {
			continue
		}
		st := b.style(s)
		lines = append(lines, export.Line{From: s.Start(), To: end, Color: st.color, Width: st.stroke})
	}
	return lines
}

func (b *WebWidget) style(s *web.Strand) strandStyle {
	if st, ok := b.styles[s.ID()]; ok {
		return st
	}
	return strandStyle{color: color.Black, stroke: b.currentStroke}
}

func (b *WebWidget) toScene(p fyne.Position) fyne.Position {
	return fyne.NewPos(p.X-b.panX, p.Y-b.panY)
}

func (b *WebWidget) toWidget(p fyne.Position) fyne.Position {
	return fyne.NewPos(p.X+b.panX, p.Y+b.panY)
}

func (b *WebWidget) pointerDown(p fyne.Position) {
	if b.pointerActive {
		b.pointerUp(b.lastPos)
	}
	b.pointer = web.NextTouchID()
	b.pointerActive = true
	b.lastPos = p
	b.scene.TouchBegin(b.pointer, b.toScene(p))
}

func (b *WebWidget) pointerMove(p fyne.Position) {
	if !b.pointerActive {
		return
	}
	b.lastPos = p
	b.scene.TouchMove(b.pointer, b.toScene(p))
}

func (b *WebWidget) pointerUp(p fyne.Position) {
	if !b.pointerActive {
		return
	}
	b.pointerActive = false
	b.scene.TouchEnd(b.pointer, b.toScene(p))
}

func (b *WebWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pointerDown(e.Position)
	}
}

func (b *WebWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pointerUp(e.Position)
	}
}

func (b *WebWidget) Dragged(e *fyne.DragEvent) {
	b.pointerMove(e.Position)
}

// DragEnd can arrive before MouseUp; the gesture finishes at the last drag position.
func (b *WebWidget) DragEnd() {
	b.pointerUp(b.lastPos)
}

func (b *WebWidget) TouchDown(e *mobile.TouchEvent) {
	b.pointerDown(e.Position)
}

func (b *WebWidget) TouchUp(e *mobile.TouchEvent) {
	b.pointerUp(e.Position)
}

func (b *WebWidget) TouchCancel(*mobile.TouchEvent) {
	if !b.pointerActive {
		return
	}
	b.pointerActive = false
	b.scene.TouchCancel(b.pointer)
}

func (b *WebWidget) MouseIn(*desktop.MouseEvent) {}

func (b *WebWidget) MouseOut() {}

func (b *WebWidget) MouseMoved(*desktop.MouseEvent) {}

// Scrolled pans the view.
func (b *WebWidget) Scrolled(e *fyne.ScrollEvent) {
	b.panX += e.Scrolled.DX
	b.panY += e.Scrolled.DY
	b.Refresh()
}

func (b *WebWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &webWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.rebuild()
	return r
}

type webWidgetRenderer struct {
	board      *WebWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *webWidgetRenderer) rebuild() {
	objects := []fyne.CanvasObject{r.background}
	for _, s := range r.board.scene.Strands() {
		end, ok := s.End()
		if !ok {
			continue
		}
		st := r.board.style(s)
		line := canvas.NewLine(st.color)
		line.StrokeWidth = st.stroke
		line.Position1 = r.board.toWidget(s.Start())
		line.Position2 = r.board.toWidget(end)
		objects = append(objects, line)
	}
	r.objects = objects
}

func (r *webWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *webWidgetRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *webWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *webWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *webWidgetRenderer) Destroy() {}
