package automaton

import (
	"fmt"
	"math/rand/v2"

	"penrose-multigrid/multigrid"
)

// RandomPopulation brings each enumerated tile to life with probability
// chance. Only tiles the multigrid enumerates are candidates, so the
// result follows the window and the overflow setting.
func RandomPopulation(mg *multigrid.Multigrid, chance float64, rng *rand.Rand) Population {
	pop := Population{}
	for tile := range mg.Tiles() {
		if rng.Float64() > chance {
			continue
		}
		pop[tile.Cell()] = struct{}{}
	}
	return pop
}

// CountPopulation picks n distinct enumerated tiles at random. Asking for
// more than there are yields all of them.
func CountPopulation(mg *multigrid.Multigrid, n int, rng *rand.Rand) (Population, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	cells := make([]multigrid.Cell, 0, mg.IntersectionCount())
	for tile := range mg.Tiles() {
		cells = append(cells, tile.Cell())
	}
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	return NewPopulation(cells[:min(n, len(cells))]...), nil
}
