package multigrid

import (
	"fmt"
	"math"

	"penrose-multigrid/cplx"
)

// Points closer than this to a line, in line-index units, are on the line.
// Changing it changes which tile owns a boundary, so it stays fixed.
const OBSERVATION_ERROR = 1e-7

////////////////////////////////////////////////////////////////////////////
// Grid

// Grid is one family of parallel, evenly spaced lines. The family is
// infinite; only the window [From, From+Length) is ever enumerated.
type Grid struct {
	angle        float64
	unitInterval float64
	shift        float64 // absolute, already scaled by unitInterval
	from, length int

	direction  cplx.Complex
	unitVector cplx.Complex
	normal     cplx.Complex
}

// NewGrid builds a grid at angle (radians) with lines unitInterval apart,
// offset by shift (a fraction of unitInterval). The window of length lines
// is centred on zero: From is -floor(length/2).
func NewGrid(angle, unitInterval, shift float64, length int) (Grid, error) {
	if !(unitInterval > 0) || math.IsInf(unitInterval, 0) {
		return Grid{}, fmt.Errorf("%w: %v", ErrNonPositiveInterval, unitInterval)
	}
	if length < 0 {
		return Grid{}, fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}

	direction := cplx.Polar(1, angle)
	return Grid{
		angle:        angle,
		unitInterval: unitInterval,
		shift:        shift * unitInterval,
		from:         -int(math.Floor(float64(length) / 2)),
		length:       length,
		direction:    direction,
		unitVector:   direction.Scale(unitInterval),
		normal:       cplx.New(0, 1).Mul(direction),
	}, nil
}

// WithFrom returns a copy of the grid whose window starts at from.
func (me Grid) WithFrom(from int) Grid {
	me.from = from
	return me
}

func (me Grid) Angle() float64        { return me.angle }
func (me Grid) UnitInterval() float64 { return me.unitInterval }
func (me Grid) Shift() float64        { return me.shift }
func (me Grid) From() int             { return me.from }
func (me Grid) Length() int           { return me.length }

// To is one past the last line of the window.
func (me Grid) To() int { return me.from + me.length }

// Direction is the unit vector at the grid's angle.
func (me Grid) Direction() cplx.Complex { return me.direction }

// Normal is Direction rotated by a quarter turn.
func (me Grid) Normal() cplx.Complex { return me.normal }

// Line returns a point on line id: direction·(id·δ + shift).
func (me Grid) Line(id int) cplx.Complex {
	return me.direction.Scale(float64(id)*me.unitInterval + me.shift)
}

// Coordinate projects point onto the grid axis, in line-index units.
func (me Grid) Coordinate(point cplx.Complex) float64 {
	return (me.unitVector.Dot(point)/me.unitInterval - me.shift) / me.unitInterval
}

// RibbonId returns the line bounding the ribbon that holds point. A point
// within OBSERVATION_ERROR of a line belongs to that line.
func (me Grid) RibbonId(point cplx.Complex) int {
	line := me.Coordinate(point)
	e := math.Abs(math.Mod(line, 1))
	e = math.Min(e, 1-e)

	if e < OBSERVATION_ERROR {
		return int(math.Floor(line + 0.5))
	}
	return int(math.Ceil(line))
}

// InWindow reports whether ribbon id lies in [From, From+Length]. The upper
// bound is inclusive: the ribbon past the last line still touches the window.
func (me Grid) InWindow(id int) bool {
	x := id - me.from
	return x >= 0 && x <= me.length
}

// normalIntersection is where the line through point (perpendicular to
// point, as produced by Line) crosses the axis spanned by normal.
func normalIntersection(point, normal cplx.Complex) cplx.Complex {
	if point.IsZero() {
		return cplx.Zero
	}
	abs := point.Abs()
	return normal.Scale(abs * abs / normal.Dot(point))
}
