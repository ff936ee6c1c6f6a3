package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/jbeda/geom"
	"github.com/jbeda/geom/qtree"

	"penrose-multigrid/multigrid"
)

////////////////////////////////////////////////////////////////////////////
// Math/Geometry Helpers

// Two tiles sharing an edge compute its endpoints along different paths,
// so they only agree up to rounding.
const FLOAT_EQUAL_THRESH = 0.000000001

func FloatAlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < FLOAT_EQUAL_THRESH
}

func AlmostEqualsCoord(a, b geom.Coord) bool {
	return FloatAlmostEqual(a.X, b.X) && FloatAlmostEqual(a.Y, b.Y)
}

// +++ Edge

// Edge is one side of a tile, in either direction.
type Edge struct {
	A, B geom.Coord
}

func AlmostEqualsEdges(a, b Edge) bool {
	return (AlmostEqualsCoord(a.A, b.A) && AlmostEqualsCoord(a.B, b.B)) ||
		(AlmostEqualsCoord(a.A, b.B) && AlmostEqualsCoord(a.B, b.A))
}

func (e Edge) Equals(oi interface{}) bool {
	oe, ok := oi.(Edge)
	return ok && AlmostEqualsEdges(e, oe)
}

// Bounds is padded by the equality tolerance so near-equal edges along an
// axis still overlap.
func (e Edge) Bounds() geom.Rect {
	r := geom.Rect{Min: e.A, Max: e.A}
	r.ExpandToContainCoord(e.B)
	r.Min = r.Min.Minus(geom.Coord{X: FLOAT_EQUAL_THRESH, Y: FLOAT_EQUAL_THRESH})
	r.Max = r.Max.Plus(geom.Coord{X: FLOAT_EQUAL_THRESH, Y: FLOAT_EQUAL_THRESH})
	return r
}

func (e Edge) Length() float64 {
	return e.A.DistanceFrom(e.B)
}

// canonical orders the endpoints so the output does not depend on which
// tile contributed the edge first.
func (e Edge) canonical() Edge {
	if compareCoords(e.B, e.A) < 0 {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

func compareCoords(a, b geom.Coord) int {
	return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
}

// TileEdges lists the four sides of every tile.
func TileEdges(tiles []multigrid.Tile) []Edge {
	edges := make([]Edge, 0, 4*len(tiles))
	for _, t := range tiles {
		poly := polygonCoords(t.Polygon)
		for i := range poly {
			edges = append(edges, Edge{A: poly[i], B: poly[(i+1)%len(poly)]})
		}
	}
	return edges
}

// UniqueEdges drops edges that repeat an earlier one up to
// FLOAT_EQUAL_THRESH. The result is sorted by endpoints.
func UniqueEdges(edges []Edge) []Edge {
	if len(edges) == 0 {
		return nil
	}

	// First calculate the bounds of all the edges
	allBounds := geom.NilRect()
	for _, e := range edges {
		allBounds.ExpandToContainRect(e.Bounds())
	}

	qt := qtree.New(qtree.ConfigDefault(), allBounds)
	for _, e := range edges {
		qt.FindOrInsert(e.canonical())
	}

	col := make(map[qtree.Item]bool)
	qt.Enumerate(col)
	unique := make([]Edge, 0, len(col))
	for item := range col {
		unique = append(unique, item.(Edge))
	}
	slices.SortFunc(unique, func(a, b Edge) int {
		return cmp.Or(compareCoords(a.A, b.A), compareCoords(a.B, b.B))
	})

	multigrid.Logger().Debug("unique edges", "before", len(edges), "after", len(unique))
	return unique
}
