package render_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/jbeda/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penrose-multigrid/automaton"
	"penrose-multigrid/internal/render"
	"penrose-multigrid/internal/stream"
	"penrose-multigrid/multigrid"
)

func square(t *testing.T) *multigrid.Multigrid {
	t.Helper()
	mg, err := multigrid.Build(multigrid.Params{
		GridCount:    2,
		Angles:       []float64{0, math.Pi / 2},
		UnitInterval: 1,
		LineCount:    3,
	})
	require.NoError(t, err)
	return mg
}

func pentagridScene(t *testing.T) (*multigrid.Multigrid, *render.Scene) {
	t.Helper()
	mg, err := multigrid.Build(multigrid.DefaultParams(5))
	require.NoError(t, err)

	scene := render.NewScene(mg)
	for c := range stream.Tiles(context.Background(), mg, stream.WithChunkSize(40)) {
		scene.AddChunk(c)
	}
	return mg, scene
}

func TestUniqueEdges_Square(t *testing.T) {
	mg := square(t)
	scene := render.NewScene(mg)
	for tile := range mg.Tiles() {
		scene.AddTiles(tile)
	}
	require.Equal(t, 9, scene.TileCount())

	// A 3x3 block of unit squares has 4 rows and 4 columns of 3 edges.
	edges := scene.Edges()
	require.Len(t, edges, 24)
	for _, e := range edges {
		assert.InDelta(t, 1, e.Length(), 1e-9)
	}
}

func TestUniqueEdges_Pentagrid(t *testing.T) {
	_, scene := pentagridScene(t)
	require.Equal(t, 1000, scene.TileCount())

	edges := scene.Edges()
	assert.Less(t, len(edges), 4000)
	assert.Greater(t, len(edges), 2000)
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if render.AlmostEqualsEdges(edges[i], edges[j]) {
				t.Fatalf("edges %d and %d repeat: %v", i, j, edges[i])
			}
		}
	}
}

func TestEdgeEquals(t *testing.T) {
	a := render.Edge{A: geom.Coord{X: 0, Y: 0}, B: geom.Coord{X: 1, Y: 0}}
	assert.True(t, a.Equals(render.Edge{A: geom.Coord{X: 1, Y: 1e-12}, B: geom.Coord{X: 0, Y: 0}}))
	assert.False(t, a.Equals(render.Edge{A: geom.Coord{X: 0, Y: 0}, B: geom.Coord{X: 1, Y: 1e-3}}))
	assert.False(t, a.Equals(a.A))
	assert.Empty(t, render.UniqueEdges(nil))
}

func TestHues(t *testing.T) {
	mg, _ := pentagridScene(t)
	assert.InDelta(t, 288, render.TileHue(mg, multigrid.Pair{0, 1}), 1e-9)
	assert.InDelta(t, 576, render.TileHue(mg, multigrid.Pair{0, 2}), 1e-9)
	assert.InDelta(t, 288, render.TileHue(mg, multigrid.Pair{3, 4}), 1e-9)
	assert.Equal(t, render.TileColor(mg, multigrid.Pair{0, 1}).Color(), render.TileColor(mg, multigrid.Pair{2, 3}).Color())
	assert.NotEqual(t, render.GridColor(0, 5), render.GridColor(1, 5))
}

func TestWriteSVG(t *testing.T) {
	mg, scene := pentagridScene(t)

	a := automaton.New(mg, automaton.DefaultRule)
	require.NoError(t, a.ToggleKey("0,0,1,0"))
	scene.SetPopulation(a.Polygons())
	for p := range mg.Intersections() {
		scene.AddPoints(p)
	}

	opts := render.DefaultOptions()
	opts.Grids = true
	opts.Points = true

	var buf bytes.Buffer
	require.NoError(t, render.WriteSVG(&buf, scene, opts))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0"?>`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Equal(t, 10, strings.Count(out, "data-pair="))
	assert.Contains(t, out, "data-pair='0,1'")
	assert.Contains(t, out, "id='population'")
	assert.Contains(t, out, "id='grid-4'")
	assert.Equal(t, 1000, strings.Count(out, "<circle"))
	assert.Equal(t, 1001, strings.Count(out, " Z"), "every tile and the live cell")
}

type failingWriter struct{}

var errBroken = errors.New("broken pipe")

func (failingWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWriteSVG_Error(t *testing.T) {
	_, scene := pentagridScene(t)
	require.ErrorIs(t, render.WriteSVG(failingWriter{}, scene, render.DefaultOptions()), errBroken)
}

func TestWritePNG(t *testing.T) {
	mg := square(t)
	scene := render.NewScene(mg)
	for tile := range mg.Tiles() {
		scene.AddTiles(tile)
	}

	opts := render.DefaultOptions()
	opts.Grids = true

	var buf bytes.Buffer
	require.NoError(t, render.WritePNG(&buf, scene, opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	// Tiles span [-1, 2] on both axes, plus a margin of 1 on each side.
	b := img.Bounds()
	assert.InDelta(t, 50, b.Dx(), 1)
	assert.InDelta(t, 50, b.Dy(), 1)

	// The centre of the middle square is tile colour, not background.
	r, g, bl, alpha := img.At(25, 25).RGBA()
	assert.NotZero(t, alpha)
	assert.NotZero(t, r+g+bl)
}

func TestWriteEmptyScene(t *testing.T) {
	scene := render.NewScene(square(t))
	require.True(t, scene.Empty())

	var buf bytes.Buffer
	require.NoError(t, render.WriteSVG(&buf, scene, render.DefaultOptions()))
	assert.Contains(t, buf.String(), "</svg>")

	buf.Reset()
	require.NoError(t, render.WritePNG(&buf, scene, render.DefaultOptions()))
	_, err := png.Decode(&buf)
	require.NoError(t, err)
}
