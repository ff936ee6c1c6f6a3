package multigrid

import (
	"fmt"
	"math"

	"penrose-multigrid/cplx"
)

// Pairs of grids closer than this to parallel (|sin| of the angle between
// them) never intersect and are skipped.
const PARALLEL_THRESH = 1e-9

// Tuple holds one ribbon id per grid and addresses a vertex of the tiling.
type Tuple []int

// Pair names two grids by index, lower first.
type Pair [2]int

////////////////////////////////////////////////////////////////////////////
// Multigrid

// Multigrid is a set of grids sharing an origin. It is read-only once built
// and safe to share between goroutines.
type Multigrid struct {
	grids        []Grid
	skipOverflow bool
	parallel     [][]bool
}

// Option tweaks New.
type Option func(*options)

type options struct {
	startPoint   *cplx.Complex
	skipOverflow bool
}

// WithStartPoint shifts every grid's window by the tuple of point, so the
// enumerated patch is centred there instead of at the origin.
func WithStartPoint(point cplx.Complex) Option {
	return func(o *options) { o.startPoint = &point }
}

// WithSkipOverflow drops every intersection whose tuple falls outside some
// grid's window.
func WithSkipOverflow(skip bool) Option {
	return func(o *options) { o.skipOverflow = skip }
}

// New builds a multigrid from grids. Grids must not repeat a direction;
// lines of parallel families are simply never intersected.
func New(grids []Grid, opts ...Option) (*Multigrid, error) {
	if len(grids) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewGrids, len(grids))
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	me := &Multigrid{
		grids:        append([]Grid(nil), grids...),
		skipOverflow: o.skipOverflow,
		parallel:     make([][]bool, len(grids)),
	}
	for i := range me.grids {
		me.parallel[i] = make([]bool, len(grids))
		for j := range me.grids {
			me.parallel[i][j] = i == j || math.Abs(math.Sin(me.PairAngle(i, j))) < PARALLEL_THRESH
		}
	}

	if o.startPoint != nil {
		tuple := me.Tuple(*o.startPoint)
		for i, g := range me.grids {
			me.grids[i] = g.WithFrom(g.From() + tuple[i])
		}
	}

	Logger().Debug("multigrid built",
		"grids", len(me.grids),
		"intersections", me.IntersectionCount(),
		"skipOverflow", me.skipOverflow)
	return me, nil
}

// +++ Params

// Params is the compact way the commands describe a multigrid: N grids
// spaced AngleStep apart, all with the same shift and window.
type Params struct {
	GridCount int
	AngleStep float64
	// Angles, when set, replaces AngleStep with one angle per grid.
	Angles       []float64
	UnitInterval float64
	// UnitIntervals, when set, replaces UnitInterval with one value per grid.
	UnitIntervals []float64
	Shift         float64
	LineCount     int
}

// AutoAngleStep spreads n grids evenly: 2π/n for odd n, π/n for even n, so
// no two grids are ever parallel.
func AutoAngleStep(n int) float64 {
	return float64(1+n%2) * math.Pi / float64(n)
}

// DefaultParams are the settings the original demo starts with: evenly
// spread grids, shift 1/n, unit spacing and ten lines per grid.
func DefaultParams(n int) Params {
	return Params{
		GridCount:    n,
		AngleStep:    AutoAngleStep(n),
		UnitInterval: 1,
		Shift:        1 / float64(n),
		LineCount:    10,
	}
}

// Build constructs the grids described by p and the multigrid over them.
func Build(p Params, opts ...Option) (*Multigrid, error) {
	if p.GridCount < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewGrids, p.GridCount)
	}
	if p.Angles != nil && len(p.Angles) != p.GridCount {
		return nil, fmt.Errorf("%w: %d angles for %d grids", ErrGridCount, len(p.Angles), p.GridCount)
	}
	if p.UnitIntervals != nil && len(p.UnitIntervals) != p.GridCount {
		return nil, fmt.Errorf("%w: %d unit intervals for %d grids", ErrGridCount, len(p.UnitIntervals), p.GridCount)
	}

	grids := make([]Grid, p.GridCount)
	for i := range grids {
		angle := p.AngleStep * float64(i)
		if p.Angles != nil {
			angle = p.Angles[i]
		}
		unit := p.UnitInterval
		if p.UnitIntervals != nil {
			unit = p.UnitIntervals[i]
		}

		g, err := NewGrid(angle, unit, p.Shift, p.LineCount)
		if err != nil {
			return nil, fmt.Errorf("grid %d: %w", i, err)
		}
		grids[i] = g
	}
	return New(grids, opts...)
}

// +++ Accessors

func (me *Multigrid) Len() int { return len(me.grids) }

func (me *Multigrid) Grid(i int) Grid { return me.grids[i] }

func (me *Multigrid) SkipOverflow() bool { return me.skipOverflow }

// PairAngle is the unsigned angle between grids i and j, folded to [0, π].
func (me *Multigrid) PairAngle(i, j int) float64 {
	const fullCircle = 2 * math.Pi
	angle := math.Mod(me.grids[i].angle-me.grids[j].angle+fullCircle, fullCircle)
	if angle < 0 {
		angle += fullCircle
	}
	return math.Min(angle, fullCircle-angle)
}

// Parallel reports whether grids i and j never cross. A grid is parallel
// to itself.
func (me *Multigrid) Parallel(i, j int) bool { return me.parallel[i][j] }

// Pairs lists every crossing pair (i<j) in enumeration order.
func (me *Multigrid) Pairs() []Pair {
	var pairs []Pair
	for i := 0; i < len(me.grids)-1; i++ {
		for j := i + 1; j < len(me.grids); j++ {
			if !me.parallel[i][j] {
				pairs = append(pairs, Pair{i, j})
			}
		}
	}
	return pairs
}

// IntersectionCount is the number of intersections Intersections visits
// before any overflow filtering.
func (me *Multigrid) IntersectionCount() int {
	count := 0
	for _, p := range me.Pairs() {
		count += me.grids[p[0]].length * me.grids[p[1]].length
	}
	return count
}

// Lines returns a point on every line in grid i's window.
func (me *Multigrid) Lines(i int) []cplx.Complex {
	g := me.grids[i]
	lines := make([]cplx.Complex, 0, g.length)
	for id := g.from; id < g.To(); id++ {
		lines = append(lines, g.Line(id))
	}
	return lines
}

////////////////////////////////////////////////////////////////////////////
// Projection between plane, grid space and tiling space

// Intersection is where line a crosses line b. The two lines must belong to
// non-parallel grids.
func (me *Multigrid) Intersection(a, b LineCoord) cplx.Complex {
	gridA := me.grids[a.Grid]
	gridB := me.grids[b.Grid]

	pointA := normalIntersection(gridA.Line(a.Line), gridB.normal)
	pointB := normalIntersection(gridB.Line(b.Line), gridA.normal)
	return pointA.Add(pointB)
}

// Tuple maps a point to its ribbon id in every grid.
func (me *Multigrid) Tuple(point cplx.Complex) Tuple {
	tuple := make(Tuple, len(me.grids))
	for i, g := range me.grids {
		tuple[i] = g.RibbonId(point)
	}
	return tuple
}

// Coordinates maps a point to its continuous coordinate in every grid.
func (me *Multigrid) Coordinates(point cplx.Complex) []float64 {
	coords := make([]float64, len(me.grids))
	for i, g := range me.grids {
		coords[i] = g.Coordinate(point)
	}
	return coords
}

// Vertex maps a tuple to its tiling vertex: Σ direction_i·tuple[i]. This
// is the de Bruijn projection and ignores spacing and shift.
func (me *Multigrid) Vertex(tuple Tuple) cplx.Complex {
	vertex := cplx.Zero
	for i, g := range me.grids {
		vertex = vertex.Add(g.direction.Scale(float64(tuple[i])))
	}
	return vertex
}

// Polygon is the rhombus of pair with its first vertex at Vertex(tuple).
func (me *Multigrid) Polygon(tuple Tuple, pair Pair) [4]cplx.Complex {
	a := me.grids[pair[0]].direction
	b := me.grids[pair[1]].direction

	var vertices [4]cplx.Complex
	vertices[0] = me.Vertex(tuple)
	vertices[1] = vertices[0].Add(a)
	vertices[2] = vertices[1].Add(b)
	vertices[3] = vertices[0].Add(b)
	return vertices
}

// IsOverflow reports whether point lies outside some grid's window.
func (me *Multigrid) IsOverflow(point cplx.Complex) bool {
	for i, id := range me.Tuple(point) {
		if !me.grids[i].InWindow(id) {
			return true
		}
	}
	return false
}
