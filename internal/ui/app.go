package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// RunApp opens the main window around board and blocks until it closes.
func RunApp(a fyne.App, size fyne.Size, board *WebWidget) {
	win := a.NewWindow("SpiderWeb")
	win.Resize(size)

	toolbar := NewToolbar(board, win)
	content := container.NewBorder(toolbar, board.statusBar, nil, nil, board)

	win.SetContent(content)
	win.ShowAndRun()
}
