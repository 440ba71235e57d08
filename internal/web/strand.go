package web

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
)

// State decides how a strand reacts to Move.
type State int

const (
	Creating State = iota
	DraggingStart
	DraggingEnd
	DraggingMiddle
)

func (s State) String() string {
	switch s {
	case Creating:
		return "creating"
	case DraggingStart:
		return "dragging-start"
	case DraggingEnd:
		return "dragging-end"
	case DraggingMiddle:
		return "dragging-middle"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Strand is one user-drawn line segment.
//
// A strand starts with a single point and gains its second endpoint on the
// first Move. From then on it always has exactly two endpoints. Move never
// changes the state; only TouchBegin does.
type Strand struct {
	id     string
	start  fyne.Position
	end    fyne.Position
	hasEnd bool
	anchor fyne.Position
	state  State
}

// NewStrand creates a strand in the Creating state rooted at start.
func NewStrand(start fyne.Position) *Strand {
	return &Strand{
		id:    uuid.NewString(),
		start: start,
		state: Creating,
	}
}

func (s *Strand) ID() string { return s.id }

func (s *Strand) State() State { return s.state }

func (s *Strand) Start() fyne.Position { return s.start }

// End returns the second endpoint, or false while the strand has only one point.
func (s *Strand) End() (fyne.Position, bool) {
	return s.end, s.hasEnd
}

// Points returns the strand's path: [start] before the end is set, [start, end] after.
func (s *Strand) Points() []fyne.Position {
	if !s.hasEnd {
		return []fyne.Position{s.start}
	}
	return []fyne.Position{s.start, s.end}
}

// Midpoint returns the centre of the segment. Requires both endpoints.
func (s *Strand) Midpoint() fyne.Position {
	s.mustHaveEnd("Midpoint")
	return midpoint(s.start, s.end)
}

// TouchBegin re-selects the strand for a new gesture at location and picks
// the drag mode from whichever of endpoint1, endpoint2 or the midpoint is
// closest. Ties go to endpoint1, then endpoint2.
//
// It panics if the strand has no second endpoint yet.
func (s *Strand) TouchBegin(location fyne.Position) {
	s.mustHaveEnd("TouchBegin")

	d1 := Distance(location, s.start)
	d2 := Distance(location, s.end)
	dm := Distance(location, midpoint(s.start, s.end))
	m := min(d1, d2, dm)

	switch m {
	case d1:
		s.state = DraggingStart
	case d2:
		s.state = DraggingEnd
	default:
		s.state = DraggingMiddle
		s.anchor = location
	}
}

// Move applies a touch position according to the current state.
func (s *Strand) Move(point fyne.Position) {
	switch s.state {
	case Creating:
		s.end = point
		s.hasEnd = true
	case DraggingMiddle:
		delta := point.Subtract(s.anchor)
		s.start = s.start.Add(delta)
		s.end = s.end.Add(delta)
		s.anchor = point
	case DraggingStart:
		s.start = point
	case DraggingEnd:
		s.end = point
	}
}

// Near returns the endpoint of s lying within SnapDistance of point.
// The start is checked before the end.
func (s *Strand) Near(point fyne.Position) (fyne.Position, bool) {
	if withinSnap(s.start, point) {
		return s.start, true
	}
	if s.hasEnd && withinSnap(s.end, point) {
		return s.end, true
	}
	return fyne.Position{}, false
}

// IntersectsPoint reports whether p lies on the infinite line through the
// strand's endpoints, comparing the slope dx/dy of the strand with the slope
// from endpoint1 to p. The test is not bounded to the segment.
//
// Horizontal strands compare the inverse slope dy/dx instead. A probe level
// with endpoint1 on a non-horizontal strand never hits, and neither does any
// probe against a zero-length strand unless it sits on the point itself.
func (s *Strand) IntersectsPoint(p fyne.Position) bool {
	if !s.hasEnd {
		return false
	}
	dx1 := float64(s.start.X - s.end.X)
	dy1 := float64(s.start.Y - s.end.Y)
	dx2 := float64(s.start.X - p.X)
	dy2 := float64(s.start.Y - p.Y)

	switch {
	case dx2 == 0 && dy2 == 0:
		return true
	case dx1 == 0 && dy1 == 0:
		return false
	case dy1 == 0:
		if dx2 == 0 {
			return false
		}
		return math.Abs(dy2/dx2) < hitSlopeTolerance
	case dy2 == 0:
		return false
	}
	return math.Abs(dx2/dy2-dx1/dy1) < hitSlopeTolerance
}

// SnapsOnRelease reports whether the end of the current gesture should snap
// to a nearby endpoint. Whole-segment drags do not snap.
func (s *Strand) SnapsOnRelease() bool {
	return s.state != DraggingMiddle
}

func (s *Strand) mustHaveEnd(op string) {
	if !s.hasEnd {
		panic(fmt.Sprintf("web: %s on strand %s before its end point is set", op, s.id))
	}
}
