package multigrid

import (
	"fmt"
	"strconv"
	"strings"

	"penrose-multigrid/cplx"
)

// LineCoord names line Line of grid Grid.
type LineCoord struct {
	Grid, Line int
}

// Cell is a tile of the tiling, named by the two lines whose crossing it is
// dual to. The lower grid always comes first, so Cell is usable as a map key.
type Cell struct {
	A, B LineCoord
}

// NewCell orders a and b into the canonical form.
func NewCell(a, b LineCoord) Cell {
	if a.Grid < b.Grid {
		return Cell{A: a, B: b}
	}
	return Cell{A: b, B: a}
}

func (me Cell) Pair() Pair {
	return Pair{me.A.Grid, me.B.Grid}
}

// String is the interchange form "gridA,lineA,gridB,lineB".
func (me Cell) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", me.A.Grid, me.A.Line, me.B.Grid, me.B.Line)
}

// MarshalText lets cells sit in JSON maps and flag values under their
// interchange form.
func (me Cell) MarshalText() ([]byte, error) {
	return []byte(me.String()), nil
}

func (me *Cell) UnmarshalText(text []byte) error {
	c, err := ParseCell(string(text))
	if err != nil {
		return err
	}
	*me = c
	return nil
}

// ParseCell reads the interchange form. Whitespace around each number is
// tolerated; anything else that is not exactly four integers is rejected.
// The result is canonical whatever order the two lines were given in.
func ParseCell(s string) (Cell, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return Cell{}, fmt.Errorf("%w: %q has %d fields, want 4", ErrMalformedCell, s, len(fields))
	}

	var n [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Cell{}, fmt.Errorf("%w: %q: %v", ErrMalformedCell, s, err)
		}
		n[i] = v
	}
	return NewCell(LineCoord{Grid: n[0], Line: n[1]}, LineCoord{Grid: n[2], Line: n[3]}), nil
}

// CheckCell reports why c cannot be a cell of this multigrid, if it can't.
func (me *Multigrid) CheckCell(c Cell) error {
	for _, lc := range []LineCoord{c.A, c.B} {
		if lc.Grid < 0 || lc.Grid >= len(me.grids) {
			return fmt.Errorf("%w: cell %s, grid %d of %d", ErrGridOutOfRange, c, lc.Grid, len(me.grids))
		}
	}
	if me.parallel[c.A.Grid][c.B.Grid] {
		return fmt.Errorf("%w: cell %s", ErrParallelCell, c)
	}
	return nil
}

// CellPoint is the intersection a cell is dual to.
func (me *Multigrid) CellPoint(c Cell) cplx.Complex {
	return me.Intersection(c.A, c.B)
}

// CellPolygon is the rhombus of a cell in tiling space.
func (me *Multigrid) CellPolygon(c Cell) [4]cplx.Complex {
	return me.Polygon(me.Tuple(me.CellPoint(c)), c.Pair())
}
