package web

import (
	"math"

	"fyne.io/fyne/v2"
)

// SnapDistance is the radius under which two endpoints count as the same point.
const SnapDistance = 20

// hitSlopeTolerance bounds the slope difference accepted by IntersectsPoint.
const hitSlopeTolerance = 0.1

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 fyne.Position) float64 {
	dx := float64(p1.X - p2.X)
	dy := float64(p1.Y - p2.Y)
	return math.Hypot(dx, dy)
}

func midpoint(p1, p2 fyne.Position) fyne.Position {
	return fyne.NewPos((p1.X+p2.X)/2, (p1.Y+p2.Y)/2)
}

func withinSnap(p1, p2 fyne.Position) bool {
	return Distance(p1, p2) < SnapDistance
}
