// Command multigrid draws the dual tiling of a multigrid, optionally with an
// automaton population run for a number of generations, to an SVG or PNG
// file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"penrose-multigrid/automaton"
	"penrose-multigrid/cplx"
	"penrose-multigrid/internal/config"
	"penrose-multigrid/internal/render"
	"penrose-multigrid/internal/stream"
	"penrose-multigrid/multigrid"
)

// flags beyond the shared config
type options struct {
	out        string
	steps      int
	random     bool
	alive      int
	toggles    []string
	neighbours string
	cellAt     *cplx.Complex
	workers    int
	chunk      int
	grids      bool
	points     bool
	noOutline  bool
}

var errNoCell = errors.New("no cell near point")

func main() {
	cfg := config.Default()
	opts := options{alive: -1}

	cfg.RegisterFlags(flag.CommandLine)
	flag.StringVar(&opts.out, "o", "multigrid.svg", `output file, .svg or .png, "-" for SVG on stdout`)
	flag.IntVar(&opts.steps, "steps", 0, "generations to run before drawing")
	flag.BoolVar(&opts.random, "random", false, "seed a random population using -coverage")
	flag.IntVar(&opts.alive, "alive", opts.alive, "seed this many random live cells")
	flag.Func("toggle", `toggle cell "g,l,g,l" before running, repeatable`, func(s string) error {
		opts.toggles = append(opts.toggles, s)
		return nil
	})
	flag.StringVar(&opts.neighbours, "neighbours", "", "print the neighbourhood of a cell key and exit")
	flag.Func("cell-at", `print the key of the cell whose intersection is nearest grid point "x,y" and exit`, func(s string) error {
		p, err := config.ParsePoint(s)
		if err != nil {
			return err
		}
		opts.cellAt = &p
		return nil
	})
	flag.IntVar(&opts.workers, "workers", 0, "tile workers, 0 for one per CPU")
	flag.IntVar(&opts.chunk, "chunk", 0, "tiles per streamed chunk, 0 for a whole grid pair")
	flag.BoolVar(&opts.grids, "grid-lines", false, "draw the grid lines")
	flag.BoolVar(&opts.points, "points", false, "draw the intersection points")
	flag.BoolVar(&opts.noOutline, "no-outline", false, "skip tile outlines")
	flag.Parse()

	log := cfg.Logger(os.Stderr)
	multigrid.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdout, log); err != nil {
		log.Error("failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, stdout io.Writer, log *slog.Logger) error {
	rng := cfg.Rand()
	mg, err := cfg.Build(rng)
	if err != nil {
		return err
	}
	log.Info("built multigrid",
		"grids", mg.Len(),
		"pairs", len(mg.Pairs()),
		"intersections", mg.IntersectionCount())

	if opts.neighbours != "" {
		keys, err := mg.NeighbourhoodOf(opts.neighbours, cfg.VonNeumannOnly)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, strings.Join(keys, "\n"))
		return err
	}
	if opts.cellAt != nil {
		c, ok := mg.CellAt(*opts.cellAt)
		if !ok {
			return fmt.Errorf("%w: %v", errNoCell, *opts.cellAt)
		}
		_, err = fmt.Fprintln(stdout, c)
		return err
	}

	a, err := cfg.Automaton(mg)
	if err != nil {
		return err
	}
	if err := seed(a, cfg, opts, rng); err != nil {
		return err
	}
	for range opts.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.Step(); err != nil {
			return err
		}
	}
	if a.Generation() > 0 || a.Len() > 0 {
		log.Info("population", "generation", a.Generation(), "alive", a.Len(), "rule", a.Rule())
	}

	scene, err := buildScene(ctx, mg, opts)
	if err != nil {
		return err
	}
	scene.SetPopulation(a.Polygons())

	return write(scene, cfg, opts, stdout, log)
}

func seed(a *automaton.Automaton, cfg config.Config, opts options, rng *rand.Rand) error {
	mg := a.Multigrid()
	switch {
	case opts.alive >= 0:
		pop, err := automaton.CountPopulation(mg, opts.alive, rng)
		if err != nil {
			return err
		}
		if err := a.Seed(pop); err != nil {
			return err
		}
	case opts.random:
		if err := a.Seed(automaton.RandomPopulation(mg, cfg.Coverage, rng)); err != nil {
			return err
		}
	}
	for _, key := range opts.toggles {
		if err := a.ToggleKey(key); err != nil {
			return fmt.Errorf("toggle %q: %w", key, err)
		}
	}
	return nil
}

func buildScene(ctx context.Context, mg *multigrid.Multigrid, opts options) (*render.Scene, error) {
	var sopts []stream.Option
	if opts.workers > 0 {
		sopts = append(sopts, stream.WithWorkers(opts.workers))
	}
	sopts = append(sopts, stream.WithChunkSize(opts.chunk))

	scene := render.NewScene(mg)
	for c := range stream.Tiles(ctx, mg, sopts...) {
		scene.AddChunk(c)
	}
	if opts.points {
		for batch := range stream.Points(ctx, mg) {
			scene.AddPoints(batch...)
		}
	}
	// Both streams close early on cancel; don't draw half a tiling.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scene, nil
}

func write(scene *render.Scene, cfg config.Config, opts options, stdout io.Writer, log *slog.Logger) (err error) {
	ropts := render.DefaultOptions()
	ropts.Zoom = cfg.Zoom
	ropts.Outline = !opts.noOutline
	ropts.Grids = opts.grids
	ropts.Points = opts.points

	if opts.out == "-" {
		return render.WriteSVG(stdout, scene, ropts)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	switch strings.ToLower(filepath.Ext(opts.out)) {
	case ".png":
		err = render.WritePNG(f, scene, ropts)
	default:
		err = render.WriteSVG(f, scene, ropts)
	}
	if err != nil {
		return err
	}
	log.Info("wrote", "file", opts.out, "tiles", scene.TileCount())
	return nil
}
