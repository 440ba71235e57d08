package web

import (
	"log"

	"fyne.io/fyne/v2"
)

// Scene owns every strand and routes touches to them.
//
// A Scene is not safe for concurrent use. All calls must come from the
// goroutine that runs the host's input loop.
type Scene struct {
	touches map[TouchID]*Strand
	strands []*Strand

	// OnStrandCreated fires after a new strand joins the scene.
	OnStrandCreated func(*Strand)
	// OnChanged fires after any event that touched a strand.
	OnChanged func()
}

var _ TouchHandler = (*Scene)(nil)

func NewScene() *Scene {
	return &Scene{
		touches: make(map[TouchID]*Strand),
	}
}

// Strands returns the scene's strands in creation order.
func (s *Scene) Strands() []*Strand {
	out := make([]*Strand, len(s.strands))
	copy(out, s.strands)
	return out
}

// StrandFor returns the strand driven by touch id, if any.
func (s *Scene) StrandFor(id TouchID) (*Strand, bool) {
	st, ok := s.touches[id]
	return st, ok
}

// ActiveTouches returns the number of gestures currently routed to a strand.
func (s *Scene) ActiveTouches() int {
	return len(s.touches)
}

// HitTest returns the first strand, in creation order, whose line passes through p.
func (s *Scene) HitTest(p fyne.Position) *Strand {
	for _, st := range s.strands {
		if st.IntersectsPoint(p) {
			return st
		}
	}
	return nil
}

// Snap returns the first endpoint within SnapDistance of p, skipping exclude.
// Strands are searched in creation order.
func (s *Scene) Snap(p fyne.Position, exclude *Strand) (fyne.Position, bool) {
	for _, st := range s.strands {
		if st == exclude {
			continue
		}
		if q, ok := st.Near(p); ok {
			return q, true
		}
	}
	return p, false
}

// TouchBegin either picks up the strand under location or starts a new one,
// snapping its start onto a nearby endpoint.
func (s *Scene) TouchBegin(id TouchID, location fyne.Position) {
	if hit := s.HitTest(location); hit != nil {
		s.touches[id] = hit
		hit.TouchBegin(location)
		log.Printf("[SCENE] touch %d picked strand %s (%s)", id, hit.ID(), hit.State())
		s.changed()
		return
	}

	if p, ok := s.Snap(location, nil); ok {
		log.Printf("[SCENE] touch %d start snapped (%.1f, %.1f) -> (%.1f, %.1f)", id, location.X, location.Y, p.X, p.Y)
		location = p
	}
	st := NewStrand(location)
	s.strands = append(s.strands, st)
	s.touches[id] = st
	log.Printf("[SCENE] touch %d created strand %s at (%.1f, %.1f)", id, st.ID(), location.X, location.Y)
	if s.OnStrandCreated != nil {
		s.OnStrandCreated(st)
	}
	s.changed()
}

// TouchMove forwards location to the strand driven by id. Unknown ids are ignored.
func (s *Scene) TouchMove(id TouchID, location fyne.Position) {
	st, ok := s.touches[id]
	if !ok {
		return
	}
	st.Move(location)
	s.changed()
}

// TouchEnd finishes the gesture, snapping the release point onto an endpoint
// of another strand unless the strand was being dragged whole.
func (s *Scene) TouchEnd(id TouchID, location fyne.Position) {
	st, ok := s.touches[id]
	if !ok {
		return
	}
	delete(s.touches, id)

	if st.SnapsOnRelease() {
		if p, ok := s.Snap(location, st); ok {
			log.Printf("[SCENE] touch %d release snapped (%.1f, %.1f) -> (%.1f, %.1f)", id, location.X, location.Y, p.X, p.Y)
			location = p
		}
	}
	st.Move(location)
	s.changed()
}

// TouchCancel forgets the gesture without moving its strand.
func (s *Scene) TouchCancel(id TouchID) {
	if _, ok := s.touches[id]; !ok {
		return
	}
	delete(s.touches, id)
	log.Printf("[SCENE] touch %d cancelled", id)
	s.changed()
}

func (s *Scene) changed() {
	if s.OnChanged != nil {
		s.OnChanged()
	}
}
