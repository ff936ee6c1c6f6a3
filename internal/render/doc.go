// Package render draws a multigrid's tiles, grid lines, intersections and
// automaton population as SVG, or as PNG through gg.
package render
