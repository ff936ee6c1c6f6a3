package multigrid

import (
	"iter"

	"penrose-multigrid/cplx"
)

// Tile is the rhombus dual to one intersection.
type Tile struct {
	Tuple   Tuple
	Pair    Pair
	Polygon [4]cplx.Complex
}

// Cell is the key of the intersection the tile is dual to.
func (me Tile) Cell() Cell {
	return NewCell(
		LineCoord{Grid: me.Pair[0], Line: me.Tuple[me.Pair[0]]},
		LineCoord{Grid: me.Pair[1], Line: me.Tuple[me.Pair[1]]},
	)
}

// PairIntersections yields every crossing of a line of grid pair[0] with a
// line of grid pair[1] inside both windows, outer loop over pair[0]. A
// parallel pair yields nothing.
func (me *Multigrid) PairIntersections(pair Pair) iter.Seq[cplx.Complex] {
	return func(yield func(cplx.Complex) bool) {
		gridA := me.grids[pair[0]]
		gridB := me.grids[pair[1]]
		if me.parallel[pair[0]][pair[1]] {
			return
		}

		for i := gridA.from; i < gridA.To(); i++ {
			pointA := normalIntersection(gridA.Line(i), gridB.normal)
			for j := gridB.from; j < gridB.To(); j++ {
				pointB := normalIntersection(gridB.Line(j), gridA.normal)

				point := pointB.Add(pointA)
				if me.skipOverflow && me.IsOverflow(point) {
					continue
				}
				if !yield(point) {
					return
				}
			}
		}
	}
}

// Intersections yields every intersection, pair by pair in Pairs order.
func (me *Multigrid) Intersections() iter.Seq2[cplx.Complex, Pair] {
	return func(yield func(cplx.Complex, Pair) bool) {
		for _, pair := range me.Pairs() {
			for point := range me.PairIntersections(pair) {
				if !yield(point, pair) {
					return
				}
			}
		}
	}
}

// Tuples yields the tuple of every intersection.
func (me *Multigrid) Tuples() iter.Seq2[Tuple, Pair] {
	return func(yield func(Tuple, Pair) bool) {
		for point, pair := range me.Intersections() {
			if !yield(me.Tuple(point), pair) {
				return
			}
		}
	}
}

// PairTiles yields the tiles of one grid pair in enumeration order.
func (me *Multigrid) PairTiles(pair Pair) iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for point := range me.PairIntersections(pair) {
			if !yield(me.tile(point, pair)) {
				return
			}
		}
	}
}

// Tiles yields the tile of every intersection.
func (me *Multigrid) Tiles() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for point, pair := range me.Intersections() {
			if !yield(me.tile(point, pair)) {
				return
			}
		}
	}
}

func (me *Multigrid) tile(point cplx.Complex, pair Pair) Tile {
	tuple := me.Tuple(point)
	return Tile{Tuple: tuple, Pair: pair, Polygon: me.Polygon(tuple, pair)}
}
