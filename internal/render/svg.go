package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jbeda/geom"
)

////////////////////////////////////////////////////////////////////////////
// SVG serialization helper

// SVG writes elements straight to w. The first write error sticks and is
// reported by Err; later writes are dropped.
type SVG struct {
	writer io.Writer
	err    error
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{writer: w}
}

func (svg *SVG) printf(format string, a ...any) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.writer, format, a...)
}

// Err is the first error hit while writing.
func (svg *SVG) Err() error { return svg.err }

// extraparams turns each s into an attribute: "name=value" strings pass
// through, anything else becomes a style.
// BUGBUG: not quoting aware
func extraparams(s []string) string {
	var ep strings.Builder
	for _, p := range s {
		if strings.Index(p, "=") > 0 {
			ep.WriteString(p + " ")
		} else if len(p) > 0 {
			fmt.Fprintf(&ep, "style='%s' ", p)
		}
	}
	return ep.String()
}

func (svg *SVG) Start(viewBox geom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg" %s>
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), extraparams(s))
}

func (svg *SVG) End() {
	svg.printf("</svg>\n")
}

func (svg *SVG) StartGroup(s ...string) {
	svg.printf("<g %s>\n", extraparams(s))
}

func (svg *SVG) EndGroup() {
	svg.printf("</g>\n")
}

func (svg *SVG) Line(p1 geom.Coord, p2 geom.Coord, s ...string) {
	svg.printf("<line x1='%f' y1='%f' x2='%f' y2='%f' %s/>\n", p1.X, p1.Y, p2.X, p2.Y, extraparams(s))
}

func (svg *SVG) Circle(c geom.Coord, r float64, s ...string) {
	svg.printf("<circle cx='%f' cy='%f' r='%f' %s/>\n", c.X, c.Y, r, extraparams(s))
}

func (svg *SVG) StartPath(p1 geom.Coord, s ...string) {
	svg.printf("<path %sd='M%f,%f", extraparams(s), p1.X, p1.Y)
}

func (svg *SVG) EndPath() {
	svg.printf("'/>\n")
}

func (svg *SVG) PathMoveTo(p geom.Coord) {
	svg.printf("\n  M%f,%f", p.X, p.Y)
}

func (svg *SVG) PathLineTo(p geom.Coord) {
	svg.printf("\n  L%f,%f", p.X, p.Y)
}

func (svg *SVG) PathClose() {
	svg.printf(" Z")
}

// Polygons draws every polygon as one closed subpath of a single path
// element, so they share one style.
func (svg *SVG) Polygons(polygons [][]geom.Coord, s ...string) {
	if len(polygons) == 0 {
		return
	}
	first := true
	for _, poly := range polygons {
		if len(poly) == 0 {
			continue
		}
		if first {
			svg.StartPath(poly[0], s...)
			first = false
		} else {
			svg.PathMoveTo(poly[0])
		}
		for _, p := range poly[1:] {
			svg.PathLineTo(p)
		}
		svg.PathClose()
	}
	if !first {
		svg.EndPath()
	}
}
