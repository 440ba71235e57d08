package web

import (
	"testing"
)

// drawStrand runs a full create gesture from a to b through the scene.
func drawStrand(t *testing.T, sc *Scene, x1, y1, x2, y2 float32) *Strand {
	t.Helper()
	id := NextTouchID()
	sc.TouchBegin(id, pos(x1, y1))
	st, ok := sc.StrandFor(id)
	if !ok {
		t.Fatalf("touch %d was not routed", id)
	}
	sc.TouchMove(id, pos(x2, y2))
	sc.TouchEnd(id, pos(x2, y2))
	return st
}

func TestCreateMoveEndWithoutSelfSnap(t *testing.T) {
	sc := NewScene()
	id := NextTouchID()

	sc.TouchBegin(id, pos(0, 0))
	strands := sc.Strands()
	if len(strands) != 1 {
		t.Fatalf("strands = %d, want 1", len(strands))
	}
	st := strands[0]

	sc.TouchMove(id, pos(100, 0))
	assertEndpoints(t, st, pos(0, 0), pos(100, 0))
	if st.State() != Creating {
		t.Fatalf("state = %s, want creating", st.State())
	}

	sc.TouchEnd(id, pos(102, 1))
	assertEndpoints(t, st, pos(0, 0), pos(102, 1))
	if sc.ActiveTouches() != 0 {
		t.Fatalf("active touches = %d, want 0", sc.ActiveTouches())
	}
}

func TestNewStrandStartSnapsToExistingEndpoint(t *testing.T) {
	sc := NewScene()
	a := drawStrand(t, sc, 0, 0, 100, 0)

	id := NextTouchID()
	sc.TouchBegin(id, pos(105, 15))
	b, _ := sc.StrandFor(id)
	if b == a {
		t.Fatal("touch should not have picked the existing strand")
	}
	if b.Start() != pos(100, 0) {
		t.Fatalf("start = %v, want (100,0)", b.Start())
	}
	if len(sc.Strands()) != 2 {
		t.Fatalf("strands = %d, want 2", len(sc.Strands()))
	}
}

func TestReleaseSnapsToOtherStrand(t *testing.T) {
	sc := NewScene()
	drawStrand(t, sc, 0, 0, 100, 0)

	id := NextTouchID()
	sc.TouchBegin(id, pos(0, 200))
	b, _ := sc.StrandFor(id)
	sc.TouchMove(id, pos(50, 100))
	sc.TouchEnd(id, pos(95, 8))
	assertEndpoints(t, b, pos(0, 200), pos(100, 0))

	// Pick b up by its start and drop it next to a's start.
	id = NextTouchID()
	sc.TouchBegin(id, pos(0, 200))
	if got, _ := sc.StrandFor(id); got != b {
		t.Fatal("touch on b's start should pick b")
	}
	if b.State() != DraggingStart {
		t.Fatalf("state = %s, want dragging-start", b.State())
	}
	sc.TouchMove(id, pos(10, 10))
	sc.TouchEnd(id, pos(3, -4))
	assertEndpoints(t, b, pos(0, 0), pos(100, 0))
}

func TestMiddleDragDoesNotSnapOnRelease(t *testing.T) {
	sc := NewScene()
	drawStrand(t, sc, 0, 0, 100, 0)
	b := drawStrand(t, sc, 200, 200, 300, 200)

	id := NextTouchID()
	sc.TouchBegin(id, pos(250, 200))
	if got, _ := sc.StrandFor(id); got != b {
		t.Fatal("touch on b's middle should pick b")
	}
	if b.State() != DraggingMiddle {
		t.Fatalf("state = %s, want dragging-middle", b.State())
	}
	sc.TouchMove(id, pos(150, 0))
	sc.TouchEnd(id, pos(150, 5))
	assertEndpoints(t, b, pos(100, 5), pos(200, 5))
}

func TestHitTestIsInfiniteLine(t *testing.T) {
	sc := NewScene()
	a := drawStrand(t, sc, 0, 0, 100, 100)

	id := NextTouchID()
	sc.TouchBegin(id, pos(300, 300))
	if got, _ := sc.StrandFor(id); got != a {
		t.Fatal("a point on the line's extension should pick the strand")
	}
	if a.State() != DraggingEnd {
		t.Fatalf("state = %s, want dragging-end", a.State())
	}
	if len(sc.Strands()) != 1 {
		t.Fatalf("strands = %d, want 1", len(sc.Strands()))
	}
}

func TestHitTestPrefersCreationOrder(t *testing.T) {
	sc := NewScene()
	first := drawStrand(t, sc, 0, 0, 100, 100)
	second := drawStrand(t, sc, 0, 100, 100, 0)
	if first == second {
		t.Fatal("second gesture picked the first strand")
	}

	if got := sc.HitTest(pos(50, 50)); got != first {
		t.Fatal("crossing strands should resolve to the first created")
	}
	if got := sc.HitTest(pos(25, 75)); got != second {
		t.Fatal("a point only on the second line should pick it")
	}
}

func TestUnroutedTouchesAreIgnored(t *testing.T) {
	sc := NewScene()
	changes := 0
	sc.OnChanged = func() { changes++ }

	sc.TouchMove(42, pos(1, 1))
	sc.TouchEnd(42, pos(1, 1))
	sc.TouchCancel(42)

	if len(sc.Strands()) != 0 || changes != 0 {
		t.Fatalf("strands = %d, changes = %d; want none", len(sc.Strands()), changes)
	}
}

func TestTouchCancelDropsRouting(t *testing.T) {
	sc := NewScene()
	a := drawStrand(t, sc, 0, 0, 100, 0)

	id := NextTouchID()
	sc.TouchBegin(id, pos(100, 0))
	sc.TouchMove(id, pos(150, 50))
	sc.TouchCancel(id)
	sc.TouchMove(id, pos(500, 500))

	if _, ok := sc.StrandFor(id); ok {
		t.Fatal("cancelled touch is still routed")
	}
	assertEndpoints(t, a, pos(0, 0), pos(150, 50))
}

func TestConcurrentGesturesDriveSeparateStrands(t *testing.T) {
	sc := NewScene()
	one, two := NextTouchID(), NextTouchID()

	sc.TouchBegin(one, pos(0, 0))
	sc.TouchBegin(two, pos(0, 500))
	sc.TouchMove(one, pos(100, 0))
	sc.TouchMove(two, pos(100, 400))
	sc.TouchEnd(two, pos(100, 400))
	sc.TouchEnd(one, pos(100, 0))

	strands := sc.Strands()
	if len(strands) != 2 {
		t.Fatalf("strands = %d, want 2", len(strands))
	}
	assertEndpoints(t, strands[0], pos(0, 0), pos(100, 0))
	assertEndpoints(t, strands[1], pos(0, 500), pos(100, 400))
}

func TestCallbacks(t *testing.T) {
	sc := NewScene()
	var created []*Strand
	changes := 0
	sc.OnStrandCreated = func(s *Strand) { created = append(created, s) }
	sc.OnChanged = func() { changes++ }

	st := drawStrand(t, sc, 0, 0, 100, 0)
	if len(created) != 1 || created[0] != st {
		t.Fatalf("created = %v", created)
	}
	if changes != 3 {
		t.Fatalf("changes = %d, want 3", changes)
	}
}

func TestSnapExcludesStrand(t *testing.T) {
	sc := NewScene()
	a := drawStrand(t, sc, 0, 0, 100, 0)

	if _, ok := sc.Snap(pos(2, 2), a); ok {
		t.Fatal("excluded strand should not be a snap target")
	}
	if p, ok := sc.Snap(pos(2, 2), nil); !ok || p != pos(0, 0) {
		t.Fatalf("Snap = %v, %v", p, ok)
	}
}

func TestNextTouchIDIsUnique(t *testing.T) {
	seen := make(map[TouchID]bool)
	for i := 0; i < 100; i++ {
		id := NextTouchID()
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}
