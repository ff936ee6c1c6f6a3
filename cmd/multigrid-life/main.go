// Command multigrid-life runs a cellular automaton on a multigrid tiling in
// the terminal. Click a tile to toggle it; the status line lists the keys.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"penrose-multigrid/automaton"
	"penrose-multigrid/internal/config"
	"penrose-multigrid/internal/stream"
	"penrose-multigrid/multigrid"
)

const FRAME = 16 * time.Millisecond

type life struct {
	screen tcell.Screen
	cfg    config.Config
	log    *slog.Logger
	rng    *rand.Rand

	mg      *multigrid.Multigrid
	a       *automaton.Automaton
	view    *view
	sound   *sound
	running bool
	tick    time.Duration
	last    time.Time
	pressed bool
	changed bool // something on screen is stale
}

func newLife(cfg config.Config, log *slog.Logger, tick time.Duration) (*life, error) {
	rng := cfg.Rand()
	mg, err := cfg.Build(rng)
	if err != nil {
		return nil, err
	}
	a, err := cfg.Automaton(mg)
	if err != nil {
		return nil, err
	}

	byPair, err := stream.Collect(context.Background(), stream.Tiles(context.Background(), mg))
	if err != nil {
		return nil, err
	}
	var tiles []multigrid.Tile
	for _, pair := range mg.Pairs() {
		tiles = append(tiles, byPair[pair]...)
	}
	log.Info("tiling ready", "grids", mg.Len(), "tiles", len(tiles))

	me := &life{
		cfg:   cfg,
		log:   log,
		rng:   rng,
		mg:    mg,
		a:     a,
		view:  newView(mg, tiles, cfg.Zoom),
		sound:   &sound{log: log},
		tick:    tick,
		changed: true,
	}
	me.randomize()
	return me, nil
}

// +++ Automaton controls

func (me *life) randomize() {
	if err := me.a.Seed(automaton.RandomPopulation(me.mg, me.cfg.Coverage, me.rng)); err != nil {
		me.log.Warn("seed failed", "err", err)
	}
}

func (me *life) step() {
	if err := me.a.Step(); err != nil {
		me.log.Error("step failed", "err", err)
		me.running = false
		return
	}
	me.last = time.Now()
	me.changed = true
	me.sound.generation(me.a.Len())
}

// switchNeighbourhood rebuilds the automaton with the other neighbourhood,
// keeping the population.
func (me *life) switchNeighbourhood() {
	pop := me.a.Population()
	a := automaton.New(me.mg, me.a.Rule(), automaton.WithVonNeumannOnly(!me.a.VonNeumannOnly()))
	if err := a.Seed(pop); err != nil {
		me.log.Warn("seed failed", "err", err)
		return
	}
	me.a = a
}

func (me *life) toggleAt(x, y int) {
	tile, ok := me.view.tileAt(x, y)
	if !ok {
		return
	}
	if err := me.a.Toggle(tile.Cell()); err != nil {
		me.log.Warn("toggle failed", "cell", tile.Cell(), "err", err)
		return
	}
	me.log.Debug("toggled", "cell", tile.Cell())
}

func (me *life) status() string {
	state := "paused"
	if me.running {
		state = "running"
	}
	nb := "full"
	if me.a.VonNeumannOnly() {
		nb = "von Neumann"
	}
	return fmt.Sprintf(" gen %d  alive %d  %s  %s  %s  zoom %.1f | space run  s step  r random  c clear  n neighbourhood  arrows pan  +/- zoom  q quit",
		me.a.Generation(), me.a.Len(), me.a.Rule(), nb, state, me.view.zoom)
}

////////////////////////////////////////////////////////////////////////////
// Event loop

// handleInput applies one event and reports whether to keep going.
func (me *life) handleInput(ev tcell.Event) bool {
	me.changed = true
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			me.view.pan(-PAN_CHARS, 0)
		case tcell.KeyRight:
			me.view.pan(PAN_CHARS, 0)
		case tcell.KeyUp:
			me.view.pan(0, -PAN_CHARS/2)
		case tcell.KeyDown:
			me.view.pan(0, PAN_CHARS/2)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				me.running = !me.running
			case 's':
				if !me.running {
					me.step()
				}
			case 'r':
				me.randomize()
			case 'c':
				me.a.Clear()
			case 'n':
				me.switchNeighbourhood()
			case '+', '=':
				me.view.zoomBy(ZOOM_STEP)
			case '-':
				me.view.zoomBy(1 / ZOOM_STEP)
			}
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !me.pressed {
			me.toggleAt(ev.Position())
		}
		me.pressed = down

	case *tcell.EventResize:
		me.view.resize(me.screen.Size())
	}
	return true
}

// frame steps the automaton when a generation is due and repaints the
// screen if anything changed since the last frame. It reports whether it
// drew.
func (me *life) frame() bool {
	if me.running && time.Since(me.last) >= me.tick {
		me.step()
	}
	if !me.changed {
		return false
	}
	me.changed = false
	me.view.draw(me.screen, me.a.Alive, me.status())
	return true
}

// pollEvents forwards screen events to out until the screen is finalized,
// when PollEvent returns nil.
func pollEvents(s tcell.Screen, out chan<- tcell.Event) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		out <- ev
	}
}

func (me *life) run() {
	ticker := time.NewTicker(FRAME)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go pollEvents(me.screen, eventChan)

	for {
		select {
		case ev := <-eventChan:
			if !me.handleInput(ev) {
				return
			}

		case <-ticker.C:
			me.frame()
		}
	}
}

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	tick := flag.Duration("tick", 150*time.Millisecond, "time between generations while running")
	withSound := flag.Bool("sound", false, "play a tone per generation")
	logPath := flag.String("log", "", "log file; the terminal is busy drawing")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log := cfg.Logger(logOut)
	multigrid.SetLogger(log)

	game, err := newLife(cfg, log, *tick)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "multigrid-life crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault.Background(BACKGROUND_COLOR))
	game.screen = screen
	game.view.resize(screen.Size())
	game.sound = newSound(*withSound, log)

	game.run()

	game.sound.close()
	screen.Fini()
	log.Info("bye", "generation", game.a.Generation(), "alive", game.a.Len())
}
