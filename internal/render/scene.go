package render

import (
	"cmp"
	"fmt"
	"image/color"
	"maps"
	"math"
	"slices"

	"github.com/gogpu/gg"
	"github.com/jbeda/geom"

	"penrose-multigrid/cplx"
	"penrose-multigrid/internal/stream"
	"penrose-multigrid/multigrid"
)

// Colours of the population overlay.
var (
	POPULATION_FILL   = gg.Hex("#ffd700")
	POPULATION_STROKE = gg.Hex("#ffa500")
	BACKGROUND        = gg.Hex("#000000")
	POINT_COLOR       = gg.White
)

// TileHue is the hue, in degrees, of the tiles of a grid pair: four times
// the angle between the two grids, so tiles of the same shape share a
// colour.
func TileHue(mg *multigrid.Multigrid, pair multigrid.Pair) float64 {
	return mg.PairAngle(pair[0], pair[1]) / math.Pi * 180 * 4
}

// TileColor is TileHue at 55% saturation and lightness.
func TileColor(mg *multigrid.Multigrid, pair multigrid.Pair) gg.RGBA {
	return gg.HSL(TileHue(mg, pair), 0.55, 0.55)
}

// GridColor spreads the grids evenly around the colour wheel.
func GridColor(i, n int) gg.RGBA {
	return gg.HSL(float64(i)*360/float64(n), 0.8, 0.3)
}

// cssColor formats c as an SVG colour.
func cssColor(c gg.RGBA) string {
	nrgba := color.NRGBAModel.Convert(c.Color()).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", nrgba.R, nrgba.G, nrgba.B)
}

////////////////////////////////////////////////////////////////////////////
// Scene

// Scene collects what one multigrid renders to: tiles grouped by grid pair,
// intersection points and the live cells of an automaton.
type Scene struct {
	mg         *multigrid.Multigrid
	tiles      map[multigrid.Pair][]multigrid.Tile
	points     []cplx.Complex
	population [][4]cplx.Complex
}

func NewScene(mg *multigrid.Multigrid) *Scene {
	return &Scene{
		mg:    mg,
		tiles: make(map[multigrid.Pair][]multigrid.Tile),
	}
}

// AddChunk joins a streamed chunk onto the tiles of its pair.
func (me *Scene) AddChunk(c stream.Chunk) {
	me.tiles[c.Pair] = append(me.tiles[c.Pair], c.Tiles...)
}

// AddTiles adds tiles in any mix of pairs.
func (me *Scene) AddTiles(tiles ...multigrid.Tile) {
	for _, t := range tiles {
		me.tiles[t.Pair] = append(me.tiles[t.Pair], t)
	}
}

func (me *Scene) AddPoints(points ...cplx.Complex) {
	me.points = append(me.points, points...)
}

// SetPopulation replaces the overlay of live cells.
func (me *Scene) SetPopulation(polygons [][4]cplx.Complex) {
	me.population = polygons
}

// Pairs lists the pairs with tiles, sorted.
func (me *Scene) Pairs() []multigrid.Pair {
	return slices.SortedFunc(maps.Keys(me.tiles), func(a, b multigrid.Pair) int {
		return cmp.Or(cmp.Compare(a[0], b[0]), cmp.Compare(a[1], b[1]))
	})
}

func (me *Scene) Tiles(pair multigrid.Pair) []multigrid.Tile { return me.tiles[pair] }

// Empty reports whether the scene has nothing to draw.
func (me *Scene) Empty() bool {
	return len(me.tiles) == 0 && len(me.points) == 0 && len(me.population) == 0
}

// TileCount is the number of tiles over all pairs.
func (me *Scene) TileCount() int {
	n := 0
	for _, tiles := range me.tiles {
		n += len(tiles)
	}
	return n
}

// Bounds contains every tile, point and population polygon. It is
// geom.NilRect() for an empty scene.
func (me *Scene) Bounds() geom.Rect {
	bounds := geom.NilRect()
	for _, tiles := range me.tiles {
		for _, t := range tiles {
			for _, p := range t.Polygon {
				bounds.ExpandToContainCoord(p.Coord())
			}
		}
	}
	for _, p := range me.points {
		bounds.ExpandToContainCoord(p.Coord())
	}
	for _, poly := range me.population {
		for _, p := range poly {
			bounds.ExpandToContainCoord(p.Coord())
		}
	}
	return bounds
}

// Edges is every distinct tile edge.
func (me *Scene) Edges() []Edge {
	var all []Edge
	for _, pair := range me.Pairs() {
		all = append(all, TileEdges(me.tiles[pair])...)
	}
	return UniqueEdges(all)
}

// GridLines returns a segment along every windowed line of grid i, long
// enough to cross bounds.
func (me *Scene) GridLines(i int, bounds geom.Rect) []Edge {
	g := me.mg.Grid(i)
	half := g.Normal().Scale(bounds.Min.DistanceFrom(bounds.Max))

	var lines []Edge
	for _, p := range me.mg.Lines(i) {
		lines = append(lines, Edge{A: p.Sub(half).Coord(), B: p.Add(half).Coord()})
	}
	return lines
}

func polygonCoords(poly [4]cplx.Complex) []geom.Coord {
	coords := make([]geom.Coord, len(poly))
	for i, p := range poly {
		coords[i] = p.Coord()
	}
	return coords
}

func polygonsCoords(polys [][4]cplx.Complex) [][]geom.Coord {
	coords := make([][]geom.Coord, len(polys))
	for i, poly := range polys {
		coords[i] = polygonCoords(poly)
	}
	return coords
}

func tilesCoords(tiles []multigrid.Tile) [][]geom.Coord {
	coords := make([][]geom.Coord, len(tiles))
	for i, t := range tiles {
		coords[i] = polygonCoords(t.Polygon)
	}
	return coords
}
