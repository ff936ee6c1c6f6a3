package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penrose-multigrid/cplx"
	"penrose-multigrid/internal/config"
	"penrose-multigrid/multigrid"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func firstKey(t *testing.T, cfg config.Config) string {
	t.Helper()
	mg, err := cfg.Build(nil)
	require.NoError(t, err)
	for tile := range mg.Tiles() {
		return tile.Cell().String()
	}
	t.Fatal("no tiles")
	return ""
}

func TestRunSVG(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 3
	out := filepath.Join(t.TempDir(), "tiling.svg")
	opts := options{out: out, alive: 50, steps: 2, points: true, workers: 2, chunk: 64}

	require.NoError(t, run(context.Background(), cfg, opts, io.Discard, quiet()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(data)
	assert.Equal(t, 10, strings.Count(svg, "data-pair="))
	assert.Equal(t, 1000, strings.Count(svg, "<circle"))
}

func TestRunPNG(t *testing.T) {
	cfg := config.Default()
	cfg.Lines = 4
	cfg.Zoom = 5
	out := filepath.Join(t.TempDir(), "tiling.PNG")
	opts := options{out: out, alive: -1, random: true, grids: true}

	require.NoError(t, run(context.Background(), cfg, opts, io.Discard, quiet()))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}

func TestRunStdout(t *testing.T) {
	cfg := config.Default()
	cfg.Lines = 2
	var buf bytes.Buffer
	opts := options{out: "-", alive: -1, toggles: []string{firstKey(t, cfg)}}

	require.NoError(t, run(context.Background(), cfg, opts, &buf, quiet()))
	assert.True(t, strings.HasSuffix(buf.String(), "</svg>\n"))
	assert.Contains(t, buf.String(), "id='population'")
}

func TestRunNeighbours(t *testing.T) {
	cfg := config.Default()
	key := firstKey(t, cfg)

	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, options{neighbours: key}, &buf, quiet()))
	vn := strings.Fields(buf.String())
	assert.Len(t, vn, 4, "edge neighbours by default")
	assert.NotContains(t, vn, key)

	cfg.VonNeumannOnly = false
	buf.Reset()
	require.NoError(t, run(context.Background(), cfg, options{neighbours: key}, &buf, quiet()))
	assert.GreaterOrEqual(t, len(strings.Fields(buf.String())), 7)
}

func TestRunCellAt(t *testing.T) {
	cfg := config.Default()
	mg, err := cfg.Build(nil)
	require.NoError(t, err)

	var c multigrid.Cell
	for tile := range mg.Tiles() {
		c = tile.Cell()
		break
	}
	p := mg.CellPoint(c).Add(cplx.New(1e-3, 2e-3))

	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, options{cellAt: &p}, &buf, quiet()))
	assert.Equal(t, c.String()+"\n", buf.String())
}

func TestRunErrors(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()

	err := run(context.Background(), cfg, options{out: filepath.Join(dir, "a.svg"), alive: -1, toggles: []string{"0,0,0,1"}}, io.Discard, quiet())
	require.ErrorIs(t, err, multigrid.ErrParallelCell)

	err = run(context.Background(), cfg, options{neighbours: "nope"}, io.Discard, quiet())
	require.ErrorIs(t, err, multigrid.ErrMalformedCell)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = run(ctx, cfg, options{out: filepath.Join(dir, "b.svg"), alive: -1, steps: 1}, io.Discard, quiet())
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "b.svg"))
}
