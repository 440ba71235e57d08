package ui

import (
	"image/color"
	"log"

	"SpiderWeb/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// palette holds the strand colours offered in the toolbar.
var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 200, G: 30, B: 30, A: 255},
	color.NRGBA{G: 140, B: 60, A: 255},
	color.NRGBA{B: 200, A: 255},
	color.NRGBA{R: 120, G: 120, B: 120, A: 255},
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the colour, stroke and export controls for board.
func NewToolbar(board *WebWidget, win fyne.Window) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			exportDialog(board, win)
		}),
	)

	swatches := make([]fyne.CanvasObject, 0, len(palette))
	for _, c := range palette {
		swatches = append(swatches, newColorSwatch(c, board.SetColor))
	}
	colorBox := container.NewHBox(swatches...)

	strokeSlider := widget.NewSlider(1.0, 20.0)
	strokeSlider.SetValue(float64(board.currentStroke))
	strokeSlider.OnChanged = func(val float64) {
		board.SetStroke(float32(val))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		widget.NewLabel("Export:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Width:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}

func exportDialog(board *WebWidget, win fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("[UI] closing export file: %v", err)
			}
		}()

		lines := board.Lines()
		if err := export.PDF(writer, lines); err != nil {
			log.Printf("[UI] export failed: %v", err)
			dialog.ShowError(err, win)
			return
		}
		board.SetStatus("Exported " + writer.URI().Name())
	}, win)
	d.SetFileName("web.pdf")
	d.Show()
}
