// Package cplx is the 2D value arithmetic every multigrid computation is
// built on. Values are immutable: each operation returns a new Complex.
package cplx

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Complex is a point or vector in the plane, read as re + im·i.
type Complex struct {
	Re, Im float64
}

// Zero is the origin. It is a value, so sharing it is harmless.
var Zero = Complex{}

func New(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Polar builds r·(cos angle, sin angle).
func Polar(r, angle float64) Complex {
	return Complex{Re: r * math.Cos(angle), Im: r * math.Sin(angle)}
}

func FromCoord(c geom.Coord) Complex {
	return Complex{Re: c.X, Im: c.Y}
}

func (me Complex) Coord() geom.Coord {
	return geom.Coord{X: me.Re, Y: me.Im}
}

func (me Complex) Add(o Complex) Complex {
	return Complex{Re: me.Re + o.Re, Im: me.Im + o.Im}
}

func (me Complex) Sub(o Complex) Complex {
	return Complex{Re: me.Re - o.Re, Im: me.Im - o.Im}
}

// AddScalar adds s to the real part only.
func (me Complex) AddScalar(s float64) Complex {
	return Complex{Re: me.Re + s, Im: me.Im}
}

func (me Complex) SubScalar(s float64) Complex {
	return Complex{Re: me.Re - s, Im: me.Im}
}

func (me Complex) Scale(s float64) Complex {
	return Complex{Re: me.Re * s, Im: me.Im * s}
}

// Mul is complex multiplication.
func (me Complex) Mul(o Complex) Complex {
	return Complex{
		Re: me.Re*o.Re - me.Im*o.Im,
		Im: me.Re*o.Im + me.Im*o.Re,
	}
}

// Div is complex division. Dividing by zero yields Inf/NaN components;
// callers guarantee a non-zero divisor.
func (me Complex) Div(o Complex) Complex {
	d := o.Re*o.Re + o.Im*o.Im
	return Complex{
		Re: (me.Re*o.Re + me.Im*o.Im) / d,
		Im: (me.Im*o.Re - me.Re*o.Im) / d,
	}
}

// Dot is the real dot product re1·re2 + im1·im2.
func (me Complex) Dot(o Complex) float64 {
	return me.Re*o.Re + me.Im*o.Im
}

func (me Complex) Abs() float64 {
	return math.Sqrt(me.Re*me.Re + me.Im*me.Im)
}

// Abs2 is the squared magnitude.
func (me Complex) Abs2() float64 {
	return me.Re*me.Re + me.Im*me.Im
}

// Arg is atan2(im, re).
func (me Complex) Arg() float64 {
	return math.Atan2(me.Im, me.Re)
}

func (me Complex) Rotate(angle float64) Complex {
	return me.Mul(Polar(1, angle))
}

// IsZero compares exactly. It is only meant for short-circuits on values
// that are constructed as zero, never as a tolerance test.
func (me Complex) IsZero() bool {
	return me.Re == 0 && me.Im == 0
}

func (me Complex) String() string {
	return fmt.Sprintf("(%g, %g)", me.Re, me.Im)
}
