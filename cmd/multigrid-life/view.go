package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"

	"penrose-multigrid/cplx"
	"penrose-multigrid/internal/render"
	"penrose-multigrid/multigrid"
)

const (
	MIN_ZOOM  = 1.0
	MAX_ZOOM  = 80.0
	ZOOM_STEP = 1.25
	PAN_CHARS = 4 // columns moved per arrow key
)

// tcellColor converts a gg colour to a terminal true colour.
func tcellColor(c gg.RGBA) tcell.Color {
	r, g, b, _ := c.Color().RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

var (
	LIVE_COLOR       = tcellColor(render.POPULATION_FILL)
	BACKGROUND_COLOR = tcellColor(render.BACKGROUND)
	STATUS_STYLE     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
)

////////////////////////////////////////////////////////////////////////////
// View

// view maps terminal character cells onto tiling space and remembers which
// tile covers each one. The bottom row is the status line.
//
// A character is about twice as tall as it is wide, so a unit of tiling
// space spans zoom columns but only zoom/2 rows.
type view struct {
	mg     *multigrid.Multigrid
	tiles  []multigrid.Tile
	colors map[multigrid.Pair]tcell.Color

	zoom   float64
	centre cplx.Complex

	width, height int
	owners        []int // tile index per character, -1 for none
	dirty         bool
}

func newView(mg *multigrid.Multigrid, tiles []multigrid.Tile, zoom float64) *view {
	me := &view{
		mg:     mg,
		tiles:  tiles,
		colors: make(map[multigrid.Pair]tcell.Color),
		zoom:   math.Min(math.Max(zoom, MIN_ZOOM), MAX_ZOOM),
		dirty:  true,
	}
	for _, tile := range tiles {
		if _, ok := me.colors[tile.Pair]; !ok {
			me.colors[tile.Pair] = tcellColor(render.TileColor(mg, tile.Pair))
		}
	}
	return me
}

func (me *view) resize(width, height int) {
	me.width, me.height = width, height
	me.dirty = true
}

func (me *view) rows() int { return max(me.height-1, 0) }

func (me *view) pan(dx, dy int) {
	me.centre = me.centre.Add(cplx.New(float64(dx)/me.zoom, -float64(dy)*2/me.zoom))
	me.dirty = true
}

func (me *view) zoomBy(f float64) {
	me.zoom = math.Min(math.Max(me.zoom*f, MIN_ZOOM), MAX_ZOOM)
	me.dirty = true
}

// world is the tiling point at the middle of character (x, y).
func (me *view) world(x, y int) cplx.Complex {
	re := (float64(x) + 0.5 - float64(me.width)/2) / me.zoom
	im := -(float64(y) + 0.5 - float64(me.rows())/2) * 2 / me.zoom
	return me.centre.Add(cplx.New(re, im))
}

// screen is the inverse of world, in fractional character units.
func (me *view) screen(p cplx.Complex) (float64, float64) {
	d := p.Sub(me.centre)
	return d.Re*me.zoom + float64(me.width)/2 - 0.5,
		-d.Im*me.zoom/2 + float64(me.rows())/2 - 0.5
}

// inside reports whether p lies in the convex polygon poly, edges included.
func inside(poly [4]cplx.Complex, p cplx.Complex) bool {
	var pos, neg bool
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		cross := (b.Re-a.Re)*(p.Im-a.Im) - (b.Im-a.Im)*(p.Re-a.Re)
		pos = pos || cross > 0
		neg = neg || cross < 0
	}
	return !(pos && neg)
}

// rasterize fills owners by testing the characters in each tile's
// bounding box. Where tiles share an edge the first one wins.
func (me *view) rasterize() {
	if !me.dirty {
		return
	}
	me.dirty = false

	rows := me.rows()
	me.owners = make([]int, me.width*rows)
	for i := range me.owners {
		me.owners[i] = -1
	}

	for i, tile := range me.tiles {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, c := range tile.Polygon {
			x, y := me.screen(c)
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
		x0, x1 := max(int(math.Ceil(minX)), 0), min(int(math.Floor(maxX)), me.width-1)
		y0, y1 := max(int(math.Ceil(minY)), 0), min(int(math.Floor(maxY)), rows-1)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				k := y*me.width + x
				if me.owners[k] < 0 && inside(tile.Polygon, me.world(x, y)) {
					me.owners[k] = i
				}
			}
		}
	}
}

// tileAt is the tile drawn at character (x, y), if any.
func (me *view) tileAt(x, y int) (multigrid.Tile, bool) {
	me.rasterize()
	if x < 0 || y < 0 || x >= me.width || y >= me.rows() {
		return multigrid.Tile{}, false
	}
	i := me.owners[y*me.width+x]
	if i < 0 {
		return multigrid.Tile{}, false
	}
	return me.tiles[i], true
}

// draw paints the tiles, the cells alive reports in gold, and the status
// line.
func (me *view) draw(s tcell.Screen, alive func(multigrid.Cell) bool, status string) {
	me.rasterize()
	s.Clear()

	rows := me.rows()
	for y := 0; y < rows; y++ {
		for x := 0; x < me.width; x++ {
			bg := BACKGROUND_COLOR
			if i := me.owners[y*me.width+x]; i >= 0 {
				tile := me.tiles[i]
				bg = me.colors[tile.Pair]
				if alive(tile.Cell()) {
					bg = LIVE_COLOR
				}
			}
			s.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}

	if me.height > 0 {
		for x, r := range []rune(fmt.Sprintf("%-*s", me.width, status)) {
			if x >= me.width {
				break
			}
			s.SetContent(x, me.height-1, r, nil, STATUS_STYLE)
		}
	}
	s.Show()
}
