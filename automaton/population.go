package automaton

import (
	"cmp"
	"maps"
	"slices"

	"penrose-multigrid/multigrid"
)

// Population is a set of live cells.
type Population map[multigrid.Cell]struct{}

// NewPopulation returns a population holding cells.
func NewPopulation(cells ...multigrid.Cell) Population {
	pop := make(Population, len(cells))
	for _, c := range cells {
		pop[c] = struct{}{}
	}
	return pop
}

func (me Population) Has(c multigrid.Cell) bool {
	_, ok := me[c]
	return ok
}

func (me Population) Len() int { return len(me) }

// Toggle kills c if it is alive, otherwise brings it to life.
func (me Population) Toggle(c multigrid.Cell) {
	if _, ok := me[c]; ok {
		delete(me, c)
		return
	}
	me[c] = struct{}{}
}

func (me Population) Clone() Population {
	if me == nil {
		return Population{}
	}
	return maps.Clone(me)
}

// Cells lists the population in a stable order: by first line, then second.
func (me Population) Cells() []multigrid.Cell {
	return slices.SortedFunc(maps.Keys(me), compareCells)
}

// Keys lists the population's interchange keys in Cells order.
func (me Population) Keys() []string {
	cells := me.Cells()
	keys := make([]string, len(cells))
	for i, c := range cells {
		keys[i] = c.String()
	}
	return keys
}

func compareCells(a, b multigrid.Cell) int {
	return cmp.Or(
		cmp.Compare(a.A.Grid, b.A.Grid),
		cmp.Compare(a.A.Line, b.A.Line),
		cmp.Compare(a.B.Grid, b.B.Grid),
		cmp.Compare(a.B.Line, b.B.Line),
	)
}
