package multigrid_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penrose-multigrid/multigrid"
)

func TestParseCell(t *testing.T) {
	cases := []struct {
		in   string
		want multigrid.Cell
	}{
		{"0,1,2,3", multigrid.Cell{A: multigrid.LineCoord{Grid: 0, Line: 1}, B: multigrid.LineCoord{Grid: 2, Line: 3}}},
		{"2,3,0,1", multigrid.Cell{A: multigrid.LineCoord{Grid: 0, Line: 1}, B: multigrid.LineCoord{Grid: 2, Line: 3}}},
		{" 1 , -4 ,3,  -5 ", multigrid.Cell{A: multigrid.LineCoord{Grid: 1, Line: -4}, B: multigrid.LineCoord{Grid: 3, Line: -5}}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := multigrid.ParseCell(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCell_Malformed(t *testing.T) {
	for _, in := range []string{"", "1,2,3", "1,2,3,4,5", "a,1,2,3", "1,,2,3", "1.5,0,2,0", "1;2;3;4"} {
		t.Run(in, func(t *testing.T) {
			_, err := multigrid.ParseCell(in)
			require.ErrorIs(t, err, multigrid.ErrMalformedCell)
		})
	}
}

func TestCellString(t *testing.T) {
	c := multigrid.NewCell(multigrid.LineCoord{Grid: 4, Line: -2}, multigrid.LineCoord{Grid: 1, Line: 7})
	assert.Equal(t, "1,7,4,-2", c.String())
	assert.Equal(t, multigrid.Pair{1, 4}, c.Pair())

	back, err := multigrid.ParseCell(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestCellText(t *testing.T) {
	cells := map[multigrid.Cell]int{
		multigrid.NewCell(multigrid.LineCoord{Grid: 0, Line: 0}, multigrid.LineCoord{Grid: 1, Line: -1}): 3,
	}
	data, err := json.Marshal(cells)
	require.NoError(t, err)
	assert.JSONEq(t, `{"0,0,1,-1": 3}`, string(data))

	var back map[multigrid.Cell]int
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, cells, back)

	var c multigrid.Cell
	require.ErrorIs(t, c.UnmarshalText([]byte("0,0,1")), multigrid.ErrMalformedCell)
	assert.Equal(t, multigrid.Cell{}, c, "left untouched on error")
}

func TestCheckCell(t *testing.T) {
	mg, err := multigrid.Build(multigrid.Params{
		GridCount:    3,
		Angles:       []float64{0, math.Pi / 2, math.Pi},
		UnitInterval: 1,
		LineCount:    3,
	})
	require.NoError(t, err)

	cell := func(a, b int) multigrid.Cell {
		return multigrid.NewCell(multigrid.LineCoord{Grid: a}, multigrid.LineCoord{Grid: b})
	}
	assert.NoError(t, mg.CheckCell(cell(0, 1)))
	assert.NoError(t, mg.CheckCell(cell(1, 2)))
	assert.ErrorIs(t, mg.CheckCell(cell(0, 2)), multigrid.ErrParallelCell)
	assert.ErrorIs(t, mg.CheckCell(cell(1, 1)), multigrid.ErrParallelCell)
	assert.ErrorIs(t, mg.CheckCell(cell(0, 3)), multigrid.ErrGridOutOfRange)
	assert.ErrorIs(t, mg.CheckCell(cell(-1, 1)), multigrid.ErrGridOutOfRange)
}

func TestCellPolygon(t *testing.T) {
	mg := pentagrid(t)
	for tile := range mg.Tiles() {
		c := tile.Cell()
		p := mg.CellPoint(c)
		assert.InDelta(t, float64(c.A.Line), mg.Grid(c.A.Grid).Coordinate(p), eps)
		assert.InDelta(t, float64(c.B.Line), mg.Grid(c.B.Grid).Coordinate(p), eps)
		require.Equal(t, tile.Polygon, mg.CellPolygon(c), "cell %s", c)
	}
}
