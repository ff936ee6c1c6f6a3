// Package multigrid builds the dual tiling of a planar multigrid: N families
// of evenly spaced parallel lines, each family at its own angle. With five
// families at multiples of 2π/5 and a generic shift the result is a Penrose
// rhombus tiling (de Bruijn's pentagrid construction).
//
// What:
//
//   - Grid: one family of lines; projects points to line-index coordinates
//     and classifies them into ribbons.
//   - Multigrid: enumerates every crossing of two lines inside the grids'
//     windows and maps it to a tuple (one ribbon id per grid), a tiling
//     vertex and a rhombus.
//   - VertexNeighbourhood / Neighbourhood: every tile corner around a
//     vertex, and the 4 tiles across a tile's edges (von Neumann).
//
// Complexity:
//
//   - Intersections: O(Σ_i w_i × Σ_{j≠i} w_j / 2) for window lengths w.
//   - VertexNeighbourhood: O(N × k) where k is the corner count, a small
//     constant for generic configurations.
//
// Preconditions:
//
//   - No three lines may cross in one point. This is chosen through the
//     shift and is not detected at runtime.
//
// Errors:
//
//   - ErrTooFewGrids, ErrNonPositiveInterval, ErrNegativeLength, ErrGridCount:
//     rejected configurations.
//   - ErrMalformedCell, ErrGridOutOfRange, ErrParallelCell: bad cell keys.
package multigrid
