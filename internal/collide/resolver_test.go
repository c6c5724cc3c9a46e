package collide

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
)

const eps = 0.001

func TestMergeWithinThreshold(t *testing.T) {
	b := body.New(2)
	b.Append(1, body.Vec2{X: 0, Y: 0}, body.Vec2{X: 1, Y: 0})
	b.Append(3, body.Vec2{X: eps / 2, Y: 0}, body.Vec2{X: 0, Y: 2})

	out, merges := Resolve(b, eps)

	if out.N() != 1 {
		t.Fatalf("expected 1 body, got %d", out.N())
	}
	if len(merges) != 1 || merges[0].I != 0 || merges[0].J != 1 {
		t.Fatalf("expected merge of (0,1), got %+v", merges)
	}
	if out.Mass[0] != 4 {
		t.Errorf("expected summed mass 4, got %f", out.Mass[0])
	}

	// center of mass: (1*0 + 3*eps/2) / 4
	wantX := 3 * eps / 2 / 4
	if math.Abs(out.Pos[0].X-wantX) > eps {
		t.Errorf("expected COM x %f, got %f", wantX, out.Pos[0].X)
	}

	// momentum summed exactly
	if out.Mom[0].X != 1 || out.Mom[0].Y != 2 {
		t.Errorf("expected momentum (1, 2), got %+v", out.Mom[0])
	}
}

func TestNoMergeOutsideThreshold(t *testing.T) {
	b := body.New(2)
	b.Append(1, body.Vec2{X: 0, Y: 0}, body.Vec2{})
	b.Append(1, body.Vec2{X: eps * 1.5, Y: 0}, body.Vec2{})

	out, merges := Resolve(b, eps)
	if out.N() != 2 || len(merges) != 0 {
		t.Errorf("bodies beyond threshold must not merge: n=%d merges=%d", out.N(), len(merges))
	}
}

func TestExactThresholdDoesNotMerge(t *testing.T) {
	b := body.New(2)
	b.Append(1, body.Vec2{X: 0, Y: 0}, body.Vec2{})
	b.Append(1, body.Vec2{X: eps, Y: 0}, body.Vec2{})

	out, _ := Resolve(b, eps)
	if out.N() != 2 {
		t.Error("trigger is strict less-than; distance == threshold must not merge")
	}
}

func TestMergeConservesTotals(t *testing.T) {
	b := body.New(4)
	b.Append(100, body.Vec2{X: 0, Y: 0}, body.Vec2{X: 5, Y: -1})
	b.Append(50, body.Vec2{X: eps / 4, Y: 0}, body.Vec2{X: -2, Y: 3})
	b.Append(200, body.Vec2{X: 1, Y: 1}, body.Vec2{X: 0, Y: 7})
	b.Append(25, body.Vec2{X: 1, Y: 1 + eps/3}, body.Vec2{X: 4, Y: 4})

	massBefore := b.TotalMass()
	momBefore := b.TotalMomentum()

	out, merges := Resolve(b, eps)

	if len(merges) != 2 {
		t.Fatalf("expected 2 merges, got %d", len(merges))
	}
	if out.N() != 2 {
		t.Fatalf("expected 2 bodies, got %d", out.N())
	}
	if math.Abs(out.TotalMass()-massBefore) > 1e-12 {
		t.Errorf("mass not conserved: %f -> %f", massBefore, out.TotalMass())
	}
	if out.TotalMomentum().Sub(momBefore).Norm() > 1e-12 {
		t.Error("momentum must be conserved exactly across merges")
	}
}

// Three coincident bodies: only one pair merges per call, the lowest-index
// pair first. The third body waits for the next tick.
func TestTripleMergesPairwise(t *testing.T) {
	b := body.New(3)
	b.Append(1, body.Vec2{X: 0, Y: 0}, body.Vec2{})
	b.Append(2, body.Vec2{X: eps / 10, Y: 0}, body.Vec2{})
	b.Append(4, body.Vec2{X: eps / 5, Y: 0}, body.Vec2{})

	out, merges := Resolve(b, eps)

	if out.N() != 2 {
		t.Fatalf("expected 2 bodies after one tick, got %d", out.N())
	}
	if len(merges) != 1 || merges[0].I != 0 || merges[0].J != 1 {
		t.Fatalf("expected first-match pair (0,1), got %+v", merges)
	}
	// survivor of the merge is 1+2, the deferred body keeps mass 4
	if out.Mass[0] != 3 || out.Mass[1] != 4 {
		t.Errorf("expected masses [3 4], got %v", out.Mass)
	}

	// next tick picks up the deferred body
	out2, merges2 := Resolve(out, eps)
	if out2.N() != 1 || len(merges2) != 1 {
		t.Errorf("expected final merge on second tick, got n=%d", out2.N())
	}
}

// A body within threshold of two partners takes the first in ascending index
// order, not the nearest.
func TestFirstMatchBeatsNearest(t *testing.T) {
	b := body.New(3)
	b.Append(1, body.Vec2{X: 0, Y: 0}, body.Vec2{})
	b.Append(1, body.Vec2{X: eps * 0.9, Y: 0}, body.Vec2{})  // farther
	b.Append(1, body.Vec2{X: -eps * 0.1, Y: 0}, body.Vec2{}) // nearer

	_, merges := Resolve(b, eps)
	if len(merges) != 1 || merges[0].J != 1 {
		t.Errorf("expected body 0 to take index 1 (first match), got %+v", merges)
	}
}

func TestResolveSmallSets(t *testing.T) {
	out, merges := Resolve(body.New(0), eps)
	if out.N() != 0 || merges != nil {
		t.Error("empty set must pass through")
	}

	one := body.New(1)
	one.Append(1, body.Vec2{}, body.Vec2{})
	out, merges = Resolve(one, eps)
	if out.N() != 1 || merges != nil {
		t.Error("single body must pass through")
	}
}

func TestOutputOrderFollowsLowerIndex(t *testing.T) {
	b := body.New(4)
	b.Append(1, body.Vec2{X: 0, Y: 0}, body.Vec2{})       // merges with 2
	b.Append(10, body.Vec2{X: 5, Y: 5}, body.Vec2{})      // untouched
	b.Append(1, body.Vec2{X: eps / 2, Y: 0}, body.Vec2{}) // merges with 0
	b.Append(20, body.Vec2{X: -5, Y: -5}, body.Vec2{})    // untouched

	out, _ := Resolve(b, eps)
	if out.N() != 3 {
		t.Fatalf("expected 3 bodies, got %d", out.N())
	}
	// order: merged(0,2) at slot 0, then 1, then 3
	if out.Mass[0] != 2 || out.Mass[1] != 10 || out.Mass[2] != 20 {
		t.Errorf("unexpected output order: %v", out.Mass)
	}
}
