package gfx

// PolygonMode controls how triangles are rasterized.
type PolygonMode int

const (
	Fill PolygonMode = iota
	Line
)

func (m PolygonMode) String() string {
	if m == Line {
		return "line"
	}
	return "fill"
}

// State is the subset of global GPU pipeline state materials touch.
type State struct {
	DepthTest bool
	CullFace  bool
	Blend     bool
	Polygon   PolygonMode
}

// DefaultState is the state the frame driver establishes before drawing.
var DefaultState = State{DepthTest: true, CullFace: true, Polygon: Fill}

// Pipeline exposes the current global pipeline state. Apply must leave the
// pipeline exactly in the given state.
type Pipeline interface {
	State() State
	Apply(s State)
}

// Guard is a scoped acquisition of pipeline state. The state seen at Acquire
// is put back by Release.
//
//	g := gfx.Acquire(p, func(s *gfx.State) { s.DepthTest = false })
//	defer g.Release()
type Guard struct {
	p        Pipeline
	saved    State
	released bool
}

// Acquire snapshots p, applies mutate to a copy and makes that copy current.
// A nil mutate only snapshots.
func Acquire(p Pipeline, mutate func(*State)) *Guard {
	g := &Guard{p: p, saved: p.State()}
	want := g.saved
	if mutate != nil {
		mutate(&want)
	}
	if want != g.saved {
		p.Apply(want)
	}
	return g
}

// Saved returns the state captured at Acquire.
func (g *Guard) Saved() State {
	return g.saved
}

// Release restores the captured state. Calling it more than once is a no-op.
func (g *Guard) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	if g.p.State() != g.saved {
		g.p.Apply(g.saved)
	}
}
