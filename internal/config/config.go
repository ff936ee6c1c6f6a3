// Package config holds the settings shared by the commands and binds them
// to command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"penrose-multigrid/automaton"
	"penrose-multigrid/cplx"
	"penrose-multigrid/multigrid"
)

var (
	// ErrBadValue indicates a flag value that could not be parsed.
	ErrBadValue = errors.New("config: bad value")
)

// AngleMode says where the angle between consecutive grids comes from.
type AngleMode int

const (
	ANGLE_AUTO AngleMode = iota
	ANGLE_RANDOM
	ANGLE_FIXED
)

// Config is every tunable of a multigrid and the automaton running on it.
type Config struct {
	Grids     int
	AngleMode AngleMode
	AngleStep float64 // used with ANGLE_FIXED
	// Shift is a fraction of the unit interval. AutoShift uses 1/Grids.
	Shift         float64
	AutoShift     bool
	UnitInterval  float64
	UnitIntervals []float64 // per grid; overrides UnitInterval when set
	Lines         int
	SkipOverflow  bool
	Start         *cplx.Complex

	Birth          string
	Survive        string
	VonNeumannOnly bool
	Coverage       float64

	Zoom    float64
	Seed    uint64 // 0 picks one from the clock
	Verbose bool
}

// Default is the starting point of the interactive demo: a Penrose
// pentagrid with Conway's rule counting edge neighbours.
func Default() Config {
	return Config{
		Grids:          5,
		AngleMode:      ANGLE_AUTO,
		AutoShift:      true,
		UnitInterval:   1,
		Lines:          10,
		Birth:          "3",
		Survive:        "2,3",
		VonNeumannOnly: true,
		Coverage:       0.2,
		Zoom:           10,
	}
}

// RegisterFlags binds the config to fs, with the current values as
// defaults.
func (me *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&me.Grids, "grids", me.Grids, "number of grids")
	fs.Func("angle-step", `angle between consecutive grids in radians, "auto" or "random" (default "auto")`, me.setAngleStep)
	fs.Func("shift", `grid shift as a fraction of the unit interval, or "auto" for 1/grids (default "auto")`, me.setShift)
	fs.Float64Var(&me.UnitInterval, "unit", me.UnitInterval, "spacing between lines of a grid")
	fs.Func("units", "comma separated spacing per grid, overrides -unit", me.setUnits)
	fs.IntVar(&me.Lines, "lines", me.Lines, "lines per grid")
	fs.BoolVar(&me.SkipOverflow, "skip-overflow", me.SkipOverflow, "drop intersections outside some grid's window")
	fs.Func("start", `centre the windows on point "x,y"`, me.setStart)

	fs.StringVar(&me.Birth, "birth", me.Birth, "neighbour counts giving birth, comma separated")
	fs.StringVar(&me.Survive, "survive", me.Survive, "neighbour counts for survival, comma separated")
	fs.BoolVar(&me.VonNeumannOnly, "von-neumann", me.VonNeumannOnly, "count only the 4 edge neighbours; false counts every tile around the vertex too")
	fs.Float64Var(&me.Coverage, "coverage", me.Coverage, "chance of each tile being alive in a random population")

	fs.Float64Var(&me.Zoom, "zoom", me.Zoom, "pixels per unit")
	fs.Uint64Var(&me.Seed, "seed", me.Seed, "random seed, 0 for a clock based one")
	fs.BoolVar(&me.Verbose, "v", me.Verbose, "debug logging")
}

func (me *Config) setAngleStep(s string) error {
	switch s {
	case "auto":
		me.AngleMode = ANGLE_AUTO
	case "random":
		me.AngleMode = ANGLE_RANDOM
	default:
		v, err := parseFloat(s)
		if err != nil {
			return err
		}
		me.AngleMode, me.AngleStep = ANGLE_FIXED, v
	}
	return nil
}

func (me *Config) setShift(s string) error {
	if s == "auto" {
		me.AutoShift = true
		return nil
	}
	v, err := parseFloat(s)
	if err != nil {
		return err
	}
	me.AutoShift, me.Shift = false, v
	return nil
}

func (me *Config) setUnits(s string) error {
	var units []float64
	for _, f := range strings.Split(s, ",") {
		v, err := parseFloat(f)
		if err != nil {
			return err
		}
		units = append(units, v)
	}
	me.UnitIntervals = units
	return nil
}

func (me *Config) setStart(s string) error {
	p, err := ParsePoint(s)
	if err != nil {
		return err
	}
	me.Start = &p
	return nil
}

// ParsePoint reads a point written "x,y".
func ParsePoint(s string) (cplx.Complex, error) {
	x, y, ok := strings.Cut(s, ",")
	if !ok {
		return cplx.Complex{}, fmt.Errorf("%w: point %q is not x,y", ErrBadValue, s)
	}
	re, err := parseFloat(x)
	if err != nil {
		return cplx.Complex{}, err
	}
	im, err := parseFloat(y)
	if err != nil {
		return cplx.Complex{}, err
	}
	return cplx.New(re, im), nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrBadValue, s)
	}
	return v, nil
}

// +++ Derived values

// Rand returns the random source for this run.
func (me Config) Rand() *rand.Rand {
	seed := me.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
}

// Params describes the multigrid. A random angle step is drawn from rng.
func (me Config) Params(rng *rand.Rand) multigrid.Params {
	p := multigrid.Params{
		GridCount:     me.Grids,
		UnitInterval:  me.UnitInterval,
		UnitIntervals: me.UnitIntervals,
		Shift:         me.Shift,
		LineCount:     me.Lines,
	}
	switch me.AngleMode {
	case ANGLE_AUTO:
		if me.Grids > 0 {
			p.AngleStep = multigrid.AutoAngleStep(me.Grids)
		}
	case ANGLE_RANDOM:
		p.AngleStep = rng.Float64() * 2 * math.Pi
	case ANGLE_FIXED:
		p.AngleStep = me.AngleStep
	}
	if me.AutoShift && me.Grids > 0 {
		p.Shift = 1 / float64(me.Grids)
	}
	return p
}

// Options are the multigrid build options.
func (me Config) Options() []multigrid.Option {
	opts := []multigrid.Option{multigrid.WithSkipOverflow(me.SkipOverflow)}
	if me.Start != nil {
		opts = append(opts, multigrid.WithStartPoint(*me.Start))
	}
	return opts
}

// Build constructs the configured multigrid.
func (me Config) Build(rng *rand.Rand) (*multigrid.Multigrid, error) {
	return multigrid.Build(me.Params(rng), me.Options()...)
}

func (me Config) Rule() (automaton.Rule, error) {
	return automaton.ParseRule(me.Birth, me.Survive)
}

// Automaton builds the configured automaton on mg with an empty population.
func (me Config) Automaton(mg *multigrid.Multigrid) (*automaton.Automaton, error) {
	rule, err := me.Rule()
	if err != nil {
		return nil, err
	}
	return automaton.New(mg, rule, automaton.WithVonNeumannOnly(me.VonNeumannOnly)), nil
}

// Logger is a text logger at Info, or Debug with Verbose.
func (me Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if me.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
