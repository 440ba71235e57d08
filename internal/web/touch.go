package web

import (
	"sync/atomic"

	"fyne.io/fyne/v2"
)

// TouchID identifies one active gesture. Ids are never reused within a process.
type TouchID uint64

var lastTouchID uint64

// NextTouchID allocates a fresh gesture id. Safe for concurrent use.
func NextTouchID() TouchID {
	return TouchID(atomic.AddUint64(&lastTouchID, 1))
}

// TouchHandler consumes the gesture stream of a host input layer.
// Implementations are not required to be safe for concurrent use.
type TouchHandler interface {
	TouchBegin(id TouchID, location fyne.Position)
	TouchMove(id TouchID, location fyne.Position)
	TouchEnd(id TouchID, location fyne.Position)
	// TouchCancel drops a gesture the host lost track of.
	TouchCancel(id TouchID)
}
