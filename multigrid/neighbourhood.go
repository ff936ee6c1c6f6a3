package multigrid

import (
	"math"
	"slices"

	"penrose-multigrid/cplx"
)

// Corner is a crossing of two lines together with the lines themselves, in
// the order they were paired.
type Corner struct {
	Point cplx.Complex
	Lines [2]LineCoord
}

func (me Corner) Cell() Cell {
	return NewCell(me.Lines[0], me.Lines[1])
}

func (me *Multigrid) corner(a, b LineCoord) Corner {
	return Corner{Point: me.Intersection(a, b), Lines: [2]LineCoord{a, b}}
}

// Borders gives, per grid, the lines bounding point: the ribbon around it
// [id-1, id], or two ribbons [id-1, id+1] for the defining grids whose lines
// pass through point.
func (me *Multigrid) Borders(point cplx.Complex, defining ...int) [][2]int {
	borders := make([][2]int, len(me.grids))
	for i, id := range me.Tuple(point) {
		if slices.Contains(defining, i) {
			borders[i] = [2]int{id - 1, id + 1}
		} else {
			borders[i] = [2]int{id - 1, id}
		}
	}
	return borders
}

////////////////////////////////////////////////////////////////////////////
// Vertex neighbourhood
//
// The corners of the region cut out by every grid's borders around a point.
// Start from the parallelogram spanned by the borders of grids 0 and 1, then
// clip it against each further grid in turn. A corner outside a grid's band
// is dropped; its two lines are toggled into a set for the side it left by.
// Lines of the dropped chain's interior edges show up twice and cancel, so
// what survives are the two edges crossing the band's border, and they are
// re-cornered on that border line.

// lineSet is an ordered set with toggle (symmetric difference) insertion.
type lineSet []LineCoord

func (me *lineSet) toggle(lc LineCoord) {
	if i := slices.Index(*me, lc); i >= 0 {
		*me = slices.Delete(*me, i, i+1)
		return
	}
	*me = append(*me, lc)
}

// VertexNeighbourhood returns every tile corner around point. defining are
// the grids with a line through point; with none, the result is the corners
// of the region containing an arbitrary point.
//
// Seeding always uses grids 0 and 1, whichever grids define the point.
// Three or more lines through one point is a precondition violation and the
// result is then unspecified.
func (me *Multigrid) VertexNeighbourhood(point cplx.Complex, defining ...int) []Corner {
	borders := me.Borders(point, defining...)

	corners := make([]Corner, 0, 2*len(me.grids))
	for _, lineA := range borders[0] {
		for _, lineB := range borders[1] {
			corners = append(corners, me.corner(LineCoord{0, lineA}, LineCoord{1, lineB}))
		}
	}

	for g := 2; g < len(me.grids); g++ {
		axis := me.grids[g]
		border := borders[g]
		kept := make([]Corner, 0, len(corners)+2)
		var outside [2]lineSet

		for _, c := range corners {
			pos := axis.Coordinate(c.Point)
			if pos >= float64(border[0]) && pos <= float64(border[1]) {
				kept = append(kept, c)
				continue
			}
			side := 1
			if pos < float64(border[0]) {
				side = 0
			}
			outside[side].toggle(c.Lines[0])
			outside[side].toggle(c.Lines[1])
		}

		for side, lines := range outside {
			edge := LineCoord{Grid: g, Line: border[side]}
			for _, lc := range lines {
				if me.parallel[g][lc.Grid] {
					continue
				}
				kept = append(kept, me.corner(edge, lc))
			}
		}
		corners = kept
	}
	return corners
}

////////////////////////////////////////////////////////////////////////////
// von Neumann reduction

// halfPlanes keeps the extremal corner on each side of an axis. Buckets are
// ceil(sin): 0 below-or-on the axis, 1 above, and -1 only for sin == -1
// exactly, which never takes part in the result.
type halfPlanes struct {
	best  [3]float64
	picks [3]*Corner
}

func (me *halfPlanes) offer(bucket int, cos float64, c *Corner, better func(a, b float64) bool) {
	i := bucket + 1
	if me.picks[i] == nil || better(cos, me.best[i]) {
		me.best[i] = cos
		me.picks[i] = c
	}
}

// shared returns the line the two picks have in common: the edge between
// them on the neighbourhood's outline.
func (me *halfPlanes) shared() (LineCoord, bool) {
	a, b := me.picks[1], me.picks[2]
	if a == nil || b == nil {
		return LineCoord{}, false
	}
	if a.Lines[0] == b.Lines[0] || a.Lines[0] == b.Lines[1] {
		return a.Lines[0], true
	}
	return a.Lines[1], true
}

func greater(a, b float64) bool { return a > b }
func less(a, b float64) bool    { return a < b }

// vonNeumann picks, for each center line and each direction along that
// line's grid normal, the outline edge facing that way, and crosses it with
// the center line. That is the neighbour across the tile edge in that
// direction.
func (me *Multigrid) vonNeumann(center cplx.Complex, lines [2]LineCoord, corners []Corner) []Corner {
	result := make([]Corner, 0, 4)

	for _, lc := range lines {
		normalAngle := me.grids[lc.Grid].normal.Arg()
		var forward, backward halfPlanes

		for i := range corners {
			angle := corners[i].Point.Sub(center).Arg() - normalAngle
			bucket := int(math.Ceil(math.Sin(angle)))
			cos := math.Cos(angle)

			forward.offer(bucket, cos, &corners[i], greater)
			backward.offer(bucket, cos, &corners[i], less)
		}

		for _, hp := range []*halfPlanes{&forward, &backward} {
			edge, ok := hp.shared()
			if !ok || me.parallel[lc.Grid][edge.Grid] {
				continue
			}
			result = append(result, me.corner(lc, edge))
		}
	}
	return result
}

////////////////////////////////////////////////////////////////////////////
// Cell neighbourhoods

// Neighbourhood returns the cells adjacent to c. With vonNeumannOnly it is
// the 4 cells across c's edges; otherwise every corner cell around c's
// vertex comes first, followed by those 4.
func (me *Multigrid) Neighbourhood(c Cell, vonNeumannOnly bool) ([]Cell, error) {
	if err := me.CheckCell(c); err != nil {
		return nil, err
	}
	return me.neighbourhood(c, vonNeumannOnly), nil
}

func (me *Multigrid) neighbourhood(c Cell, vonNeumannOnly bool) []Cell {
	center := me.Intersection(c.A, c.B)
	corners := me.VertexNeighbourhood(center, c.A.Grid, c.B.Grid)
	edges := me.vonNeumann(center, [2]LineCoord{c.A, c.B}, corners)

	var cells []Cell
	if !vonNeumannOnly {
		cells = make([]Cell, 0, len(corners)+len(edges))
		for _, corner := range corners {
			cells = append(cells, corner.Cell())
		}
	}
	for _, corner := range edges {
		cells = append(cells, corner.Cell())
	}
	return cells
}

// NeighbourhoodOf is Neighbourhood on interchange keys.
func (me *Multigrid) NeighbourhoodOf(key string, vonNeumannOnly bool) ([]string, error) {
	c, err := ParseCell(key)
	if err != nil {
		return nil, err
	}
	cells, err := me.Neighbourhood(c, vonNeumannOnly)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(cells))
	for i, n := range cells {
		keys[i] = n.String()
	}
	return keys, nil
}

// CellAt returns the cell whose intersection is nearest to point among the
// corners of the region holding point. This is what a pointer over the
// tiling is taken to mean.
func (me *Multigrid) CellAt(point cplx.Complex) (Cell, bool) {
	var best *Corner
	bestDist := math.Inf(1)

	corners := me.VertexNeighbourhood(point)
	for i := range corners {
		if d := corners[i].Point.Sub(point).Abs(); d < bestDist {
			bestDist = d
			best = &corners[i]
		}
	}
	if best == nil {
		return Cell{}, false
	}
	return best.Cell(), true
}
