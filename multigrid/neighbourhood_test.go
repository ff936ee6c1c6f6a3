package multigrid_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penrose-multigrid/cplx"
	"penrose-multigrid/multigrid"
)

func squareCell(a, b int) multigrid.Cell {
	return multigrid.NewCell(multigrid.LineCoord{Grid: 0, Line: a}, multigrid.LineCoord{Grid: 1, Line: b})
}

func TestBorders(t *testing.T) {
	mg := square(t, 0, 3)
	origin := cplx.New(0, 0)

	assert.Equal(t, [][2]int{{-1, 1}, {-1, 1}}, mg.Borders(origin, 0, 1))
	assert.Equal(t, [][2]int{{-1, 0}, {-1, 0}}, mg.Borders(origin))
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, mg.Borders(cplx.New(0.5, 1.5)))
}

// TestSquareNeighbourhood is the square lattice case, where von Neumann
// neighbours are the four edge-adjacent squares.
func TestSquareNeighbourhood(t *testing.T) {
	mg := square(t, 0, 3)

	for a := -1; a <= 1; a++ {
		for b := -1; b <= 1; b++ {
			t.Run(fmt.Sprintf("%d,%d", a, b), func(t *testing.T) {
				got, err := mg.Neighbourhood(squareCell(a, b), true)
				require.NoError(t, err)
				assert.ElementsMatch(t, []multigrid.Cell{
					squareCell(a, b+1),
					squareCell(a, b-1),
					squareCell(a-1, b),
					squareCell(a+1, b),
				}, got)
			})
		}
	}
}

func TestSquareFullNeighbourhood(t *testing.T) {
	mg := square(t, 0, 3)

	got, err := mg.NeighbourhoodOf("1,0,0,0", false)
	require.NoError(t, err)
	require.Len(t, got, 8)

	// Corners of the vertex neighbourhood first, then the edge neighbours.
	assert.ElementsMatch(t, []string{"0,-1,1,-1", "0,-1,1,1", "0,1,1,-1", "0,1,1,1"}, got[:4])
	assert.ElementsMatch(t, []string{"0,0,1,1", "0,0,1,-1", "0,-1,1,0", "0,1,1,0"}, got[4:])
}

func TestVertexNeighbourhood(t *testing.T) {
	mg := square(t, 0, 3)

	// Corner points carry rounding from the projection; compare on the lattice.
	lattice := func(corners []multigrid.Corner) []string {
		var points []string
		for _, c := range corners {
			points = append(points, fmt.Sprintf("%g,%g", math.Round(c.Point.Re)+0, math.Round(c.Point.Im)+0))
		}
		return points
	}

	corners := mg.VertexNeighbourhood(cplx.New(0, 0), 0, 1)
	require.Len(t, corners, 4)
	assert.ElementsMatch(t, []string{"-1,-1", "-1,1", "1,-1", "1,1"}, lattice(corners))
	for _, c := range corners {
		assert.InDelta(t, float64(c.Lines[0].Line), c.Point.Re, eps)
		assert.InDelta(t, float64(c.Lines[1].Line), c.Point.Im, eps)
	}

	// Around an arbitrary point: the four corners of its square.
	corners = mg.VertexNeighbourhood(cplx.New(0.25, 0.5))
	require.Len(t, corners, 4)
	assert.ElementsMatch(t, []string{"0,0", "0,1", "1,0", "1,1"}, lattice(corners))
}

// TestPentagridNeighbourhood runs the von Neumann reduction on every cell of
// the Penrose multigrid. Each neighbour is across an edge of the center
// vertex, so it keeps one of the cell's two lines.
func TestPentagridNeighbourhood(t *testing.T) {
	mg := pentagrid(t)

	for tile := range mg.Tiles() {
		c := tile.Cell()
		got, err := mg.Neighbourhood(c, true)
		require.NoError(t, err)
		require.Len(t, got, 4, "cell %s", c)

		for _, n := range got {
			assert.NotEqual(t, c, n)
			shared := n.A == c.A || n.A == c.B || n.B == c.A || n.B == c.B
			assert.True(t, shared, "neighbour %s of %s shares no line", n, c)
		}

		full, err := mg.Neighbourhood(c, false)
		require.NoError(t, err)
		require.Greater(t, len(full), 4)
		assert.Equal(t, got, full[len(full)-4:])
	}
}

func TestNeighbourhoodOf_Errors(t *testing.T) {
	mg := square(t, 0, 3)

	_, err := mg.NeighbourhoodOf("0,0,1", true)
	require.ErrorIs(t, err, multigrid.ErrMalformedCell)

	_, err = mg.NeighbourhoodOf("0,0,2,0", true)
	require.ErrorIs(t, err, multigrid.ErrGridOutOfRange)

	_, err = mg.NeighbourhoodOf("1,0,1,3", true)
	require.ErrorIs(t, err, multigrid.ErrParallelCell)
}

func TestCellAt(t *testing.T) {
	mg := square(t, 0, 3)

	c, ok := mg.CellAt(cplx.New(0.1, 0.2))
	require.True(t, ok)
	assert.Equal(t, "0,0,1,0", c.String())

	c, ok = mg.CellAt(cplx.New(0.9, 0.8))
	require.True(t, ok)
	assert.Equal(t, "0,1,1,1", c.String())

	pg := pentagrid(t)
	for tile := range pg.Tiles() {
		p := pg.CellPoint(tile.Cell())
		got, ok := pg.CellAt(p.Add(cplx.New(1e-3, 2e-3)))
		require.True(t, ok)
		assert.Equal(t, tile.Cell(), got)
		break
	}
}
