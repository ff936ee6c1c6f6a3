// Package automaton runs a life-like cellular automaton on the tiles of a
// multigrid. Cells are tiles, keyed by the two lines whose crossing they are
// dual to; neighbours come from multigrid.Neighbourhood, so the neighbour
// count is whatever the tiling gives rather than a fixed eight.
//
// What:
//
//   - Rule: the neighbour counts for which a dead cell is born and a live
//     cell survives.
//   - Population: a set of live cells.
//   - Automaton: owns a population and a rule and advances them one
//     generation at a time.
//
// Errors:
//
//   - ErrMalformedRule: a rule list that is not comma separated counts.
//   - ErrNegativeCount: CountPopulation asked for fewer than zero cells.
//   - Cell errors from package multigrid for toggles of bad keys.
package automaton
