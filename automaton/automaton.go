package automaton

import (
	"fmt"

	"penrose-multigrid/cplx"
	"penrose-multigrid/multigrid"
)

////////////////////////////////////////////////////////////////////////////
// Automaton

// Automaton owns a population on one multigrid and advances it under a
// rule. It is not safe for concurrent use; rebuild it when the multigrid
// changes.
type Automaton struct {
	mg             *multigrid.Multigrid
	rule           Rule
	vonNeumannOnly bool

	population Population
	generation int

	// neighbours caches multigrid.Neighbourhood per cell. The multigrid is
	// immutable, so entries never go stale.
	neighbours map[multigrid.Cell][]multigrid.Cell
}

// Option tweaks New.
type Option func(*Automaton)

// WithVonNeumannOnly chooses between the 4 edge neighbours of each cell,
// the default, and every tile around its vertex followed by those 4.
func WithVonNeumannOnly(vn bool) Option {
	return func(a *Automaton) { a.vonNeumannOnly = vn }
}

// WithFullNeighbourhood counts every tile around a cell's vertex as well as
// its 4 edge neighbours.
func WithFullNeighbourhood() Option {
	return WithVonNeumannOnly(false)
}

// New returns an automaton with an empty population. It counts the 4 edge
// neighbours of each cell unless told otherwise.
func New(mg *multigrid.Multigrid, rule Rule, opts ...Option) *Automaton {
	me := &Automaton{
		mg:             mg,
		rule:           rule,
		vonNeumannOnly: true,
		population:     Population{},
		neighbours:     make(map[multigrid.Cell][]multigrid.Cell),
	}
	for _, opt := range opts {
		opt(me)
	}
	return me
}

func (me *Automaton) Multigrid() *multigrid.Multigrid { return me.mg }
func (me *Automaton) Rule() Rule                      { return me.rule }
func (me *Automaton) VonNeumannOnly() bool            { return me.vonNeumannOnly }
func (me *Automaton) Generation() int                 { return me.generation }

// Population returns a copy of the current population.
func (me *Automaton) Population() Population { return me.population.Clone() }

// Alive reports whether c is in the current population, without copying it.
func (me *Automaton) Alive(c multigrid.Cell) bool { return me.population.Has(c) }

// Len is the number of live cells.
func (me *Automaton) Len() int { return len(me.population) }

// +++ Neighbours

// NeighboursOf returns the neighbours of c counted by the automaton.
func (me *Automaton) NeighboursOf(c multigrid.Cell) ([]multigrid.Cell, error) {
	if n, ok := me.neighbours[c]; ok {
		return n, nil
	}
	n, err := me.mg.Neighbourhood(c, me.vonNeumannOnly)
	if err != nil {
		return nil, err
	}
	me.neighbours[c] = n
	return n, nil
}

// +++ Step

// Next computes the generation after pop without touching the automaton's
// own population. A cell is alive next iff it is alive and its tally is in
// Survive, or dead and its tally is in Birth. A neighbour listed twice
// around a cell counts twice. Dead cells with no live neighbour are never
// considered.
func (me *Automaton) Next(pop Population) (Population, error) {
	tally := make(map[multigrid.Cell]int, 4*len(pop))
	for c := range pop {
		neighbours, err := me.NeighboursOf(c)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", c, err)
		}
		for _, n := range neighbours {
			tally[n]++
		}
	}

	next := make(Population, len(pop))
	for c, n := range tally {
		if me.rule.Alive(pop.Has(c), n) {
			next[c] = struct{}{}
		}
	}
	for c := range pop {
		if _, counted := tally[c]; !counted && me.rule.Alive(true, 0) {
			next[c] = struct{}{}
		}
	}
	return next, nil
}

// Step replaces the population with the next generation.
func (me *Automaton) Step() error {
	next, err := me.Next(me.population)
	if err != nil {
		return err
	}

	born, died := 0, 0
	for c := range next {
		if !me.population.Has(c) {
			born++
		}
	}
	for c := range me.population {
		if !next.Has(c) {
			died++
		}
	}

	me.population = next
	me.generation++
	multigrid.Logger().Debug("automaton step",
		"generation", me.generation,
		"alive", len(next),
		"born", born,
		"died", died)
	return nil
}

// +++ Editing

// Toggle flips c between alive and dead. A cell that cannot exist on the
// multigrid is rejected and the population left unchanged.
func (me *Automaton) Toggle(c multigrid.Cell) error {
	if err := me.mg.CheckCell(c); err != nil {
		return err
	}
	me.population.Toggle(c)
	return nil
}

// ToggleKey is Toggle on an interchange key.
func (me *Automaton) ToggleKey(key string) error {
	c, err := multigrid.ParseCell(key)
	if err != nil {
		return err
	}
	return me.Toggle(c)
}

// Seed replaces the population with a copy of pop and restarts the
// generation count. Every cell is checked first; on error nothing changes.
func (me *Automaton) Seed(pop Population) error {
	for c := range pop {
		if err := me.mg.CheckCell(c); err != nil {
			return err
		}
	}
	me.population = pop.Clone()
	me.generation = 0
	multigrid.Logger().Debug("automaton seeded", "alive", len(pop))
	return nil
}

// Clear kills every cell.
func (me *Automaton) Clear() {
	me.population = Population{}
	me.generation = 0
}

// Polygons returns the rhombus of every live cell, in Population.Cells order.
func (me *Automaton) Polygons() [][4]cplx.Complex {
	cells := me.population.Cells()
	polygons := make([][4]cplx.Complex, len(cells))
	for i, c := range cells {
		polygons[i] = me.mg.CellPolygon(c)
	}
	return polygons
}
