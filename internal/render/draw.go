package render

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/jbeda/geom"

	"penrose-multigrid/multigrid"
)

// Tunable constants for output
const (
	DEFAULT_ZOOM   = 10
	DEFAULT_MARGIN = 1.0
	EDGE_WIDTH     = 0.04
	GRID_WIDTH     = 0.03
	POINT_RADIUS   = 0.08
	MAX_PNG_SIDE   = 8192
)

// Options chooses the layers drawn over the tiles.
type Options struct {
	// Zoom is pixels per unit in PNG output and scales SVG width/height.
	Zoom float64
	// Margin pads the scene bounds, in tiling units.
	Margin  float64
	Outline bool
	Grids   bool
	Points  bool
}

func DefaultOptions() Options {
	return Options{Zoom: DEFAULT_ZOOM, Margin: DEFAULT_MARGIN, Outline: true}
}

// viewBox is the padded scene bounds; an empty scene gets a unit square.
func viewBox(scene *Scene, margin float64) geom.Rect {
	if scene.Empty() {
		return geom.Rect{Min: geom.Coord{X: -1, Y: -1}, Max: geom.Coord{X: 1, Y: 1}}
	}
	b := scene.Bounds()
	b.Min = b.Min.Minus(geom.Coord{X: margin, Y: margin})
	b.Max = b.Max.Plus(geom.Coord{X: margin, Y: margin})
	return b
}

////////////////////////////////////////////////////////////////////////////
// SVG

// WriteSVG renders scene as an SVG document: one path per grid pair, then
// the optional outline, grid and point layers, and the population on top.
func WriteSVG(w io.Writer, scene *Scene, opts Options) error {
	box := viewBox(scene, opts.Margin)
	svg := NewSVG(w)

	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = DEFAULT_ZOOM
	}
	svg.Start(box,
		fmt.Sprintf("width='%.0f'", box.Width()*zoom),
		fmt.Sprintf("height='%.0f'", box.Height()*zoom))
	svg.StartGroup("id='tiles'", "stroke: none")
	for _, pair := range scene.Pairs() {
		svg.Polygons(tilesCoords(scene.Tiles(pair)),
			fmt.Sprintf("data-pair='%d,%d'", pair[0], pair[1]),
			"fill: "+cssColor(TileColor(scene.mg, pair)))
	}
	svg.EndGroup()

	if opts.Outline {
		svg.StartGroup("id='edges'", fmt.Sprintf("stroke: #222222; stroke-width: %g; stroke-linecap: round", EDGE_WIDTH))
		for _, e := range scene.Edges() {
			svg.Line(e.A, e.B)
		}
		svg.EndGroup()
	}

	if opts.Grids {
		n := scene.mg.Len()
		for i := range n {
			svg.StartGroup(fmt.Sprintf("id='grid-%d'", i),
				fmt.Sprintf("stroke: %s; stroke-width: %g", cssColor(GridColor(i, n)), GRID_WIDTH))
			for _, e := range scene.GridLines(i, box) {
				svg.Line(e.A, e.B)
			}
			svg.EndGroup()
		}
	}

	if opts.Points {
		svg.StartGroup("id='points'", "fill: "+cssColor(POINT_COLOR))
		for _, p := range scene.points {
			svg.Circle(p.Coord(), POINT_RADIUS)
		}
		svg.EndGroup()
	}

	if len(scene.population) > 0 {
		svg.Polygons(polygonsCoords(scene.population),
			"id='population'",
			fmt.Sprintf("fill: %s; stroke: %s; stroke-width: %g",
				cssColor(POPULATION_FILL), cssColor(POPULATION_STROKE), EDGE_WIDTH))
	}
	svg.End()

	if err := svg.Err(); err != nil {
		return fmt.Errorf("render: write svg: %w", err)
	}
	multigrid.Logger().Debug("svg written", "tiles", scene.TileCount(), "population", len(scene.population))
	return nil
}

////////////////////////////////////////////////////////////////////////////
// PNG

// painter maps scene coordinates to pixels and remembers the first drawing
// error.
type painter struct {
	dc   *gg.Context
	box  geom.Rect
	zoom float64
	err  error
}

func (me *painter) pixel(c geom.Coord) (float64, float64) {
	return (c.X - me.box.Min.X) * me.zoom, (c.Y - me.box.Min.Y) * me.zoom
}

func (me *painter) polygon(poly []geom.Coord) {
	for i, c := range poly {
		x, y := me.pixel(c)
		if i == 0 {
			me.dc.MoveTo(x, y)
		} else {
			me.dc.LineTo(x, y)
		}
	}
	me.dc.ClosePath()
}

func (me *painter) line(e Edge) {
	x1, y1 := me.pixel(e.A)
	x2, y2 := me.pixel(e.B)
	me.dc.MoveTo(x1, y1)
	me.dc.LineTo(x2, y2)
}

func (me *painter) check(err error) {
	if me.err == nil {
		me.err = err
	}
}

// WritePNG rasterises scene with gg and encodes it to w. The image is
// Zoom pixels per unit, clamped so neither side exceeds MAX_PNG_SIDE.
func WritePNG(w io.Writer, scene *Scene, opts Options) error {
	box := viewBox(scene, opts.Margin)
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = DEFAULT_ZOOM
	}
	zoom = math.Min(zoom, MAX_PNG_SIDE/math.Max(box.Width(), box.Height()))

	width := max(int(math.Ceil(box.Width()*zoom)), 1)
	height := max(int(math.Ceil(box.Height()*zoom)), 1)
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(BACKGROUND)
	p := &painter{dc: dc, box: box, zoom: zoom}

	for _, pair := range scene.Pairs() {
		for _, poly := range tilesCoords(scene.Tiles(pair)) {
			p.polygon(poly)
		}
		dc.SetColor(TileColor(scene.mg, pair).Color())
		p.check(dc.Fill())
	}

	if opts.Outline {
		for _, e := range scene.Edges() {
			p.line(e)
		}
		dc.SetHexColor("#222222")
		dc.SetLineWidth(math.Max(EDGE_WIDTH*zoom, 1))
		p.check(dc.Stroke())
	}

	if opts.Grids {
		n := scene.mg.Len()
		for i := range n {
			for _, e := range scene.GridLines(i, box) {
				p.line(e)
			}
			dc.SetColor(GridColor(i, n).Color())
			dc.SetLineWidth(math.Max(GRID_WIDTH*zoom, 1))
			p.check(dc.Stroke())
		}
	}

	if opts.Points {
		for _, pt := range scene.points {
			x, y := p.pixel(pt.Coord())
			dc.DrawCircle(x, y, math.Max(POINT_RADIUS*zoom, 1))
		}
		dc.SetColor(POINT_COLOR.Color())
		p.check(dc.Fill())
	}

	if len(scene.population) > 0 {
		for _, poly := range polygonsCoords(scene.population) {
			p.polygon(poly)
		}
		dc.SetColor(POPULATION_FILL.Color())
		p.check(dc.FillPreserve())
		dc.SetColor(POPULATION_STROKE.Color())
		dc.SetLineWidth(math.Max(EDGE_WIDTH*zoom, 1))
		p.check(dc.Stroke())
	}

	if p.err != nil {
		return fmt.Errorf("render: draw png: %w", p.err)
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	multigrid.Logger().Debug("png written", "width", width, "height", height, "tiles", scene.TileCount())
	return nil
}
