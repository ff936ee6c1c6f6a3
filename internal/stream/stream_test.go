package stream_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penrose-multigrid/cplx"
	"penrose-multigrid/internal/stream"
	"penrose-multigrid/multigrid"
)

func pentagrid(t *testing.T, opts ...multigrid.Option) *multigrid.Multigrid {
	t.Helper()
	mg, err := multigrid.Build(multigrid.DefaultParams(5), opts...)
	require.NoError(t, err)
	return mg
}

func TestTilesMatchSequentialEnumeration(t *testing.T) {
	mg := pentagrid(t)

	cases := []struct {
		name string
		opts []stream.Option
	}{
		{"Defaults", nil},
		{"OneWorker", []stream.Option{stream.WithWorkers(1)}},
		{"SmallChunks", []stream.Option{stream.WithWorkers(4), stream.WithChunkSize(7), stream.WithBuffer(0)}},
		{"ExactChunks", []stream.Option{stream.WithWorkers(3), stream.WithChunkSize(25)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tiles, err := stream.Collect(context.Background(), stream.Tiles(context.Background(), mg, tc.opts...))
			require.NoError(t, err)
			require.Len(t, tiles, 10)

			for _, pair := range mg.Pairs() {
				want := slices.Collect(mg.PairTiles(pair))
				require.Equal(t, want, tiles[pair], "pair %v", pair)
			}
		})
	}
}

func TestChunkSizes(t *testing.T) {
	mg := pentagrid(t)

	sizes := map[multigrid.Pair][]int{}
	for c := range stream.Tiles(context.Background(), mg, stream.WithChunkSize(30)) {
		sizes[c.Pair] = append(sizes[c.Pair], len(c.Tiles))
	}
	for _, pair := range mg.Pairs() {
		assert.Equal(t, []int{30, 30, 30, 10}, sizes[pair])
	}

	whole := 0
	for c := range stream.Tiles(context.Background(), mg) {
		assert.Len(t, c.Tiles, 100)
		whole++
	}
	assert.Equal(t, 10, whole)
}

func TestPoints(t *testing.T) {
	mg := pentagrid(t)

	var sizes []int
	var points []cplx.Complex
	for batch := range stream.Points(context.Background(), mg) {
		sizes = append(sizes, len(batch))
		points = append(points, batch...)
	}
	assert.Equal(t, []int{500, 500}, sizes)

	var want []cplx.Complex
	for p := range mg.Intersections() {
		want = append(want, p)
	}
	assert.Equal(t, want, points)
}

func TestPointsShortLastBatch(t *testing.T) {
	mg := pentagrid(t, multigrid.WithSkipOverflow(true))

	total := 0
	var sizes []int
	for batch := range stream.Points(context.Background(), mg, stream.WithBatchSize(128)) {
		sizes = append(sizes, len(batch))
		total += len(batch)
	}
	require.NotEmpty(t, sizes)
	for _, n := range sizes[:len(sizes)-1] {
		assert.Equal(t, 128, n)
	}
	assert.LessOrEqual(t, sizes[len(sizes)-1], 128)
	assert.Less(t, total, 1000)
}

// drain reads ch until it closes, failing the test if that takes too long.
func drain[T any](t *testing.T, ch <-chan T) int {
	t.Helper()
	n := 0
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return n
			}
			n++
		case <-timeout:
			t.Fatal("stream did not close after cancel")
		}
	}
}

func TestCancel(t *testing.T) {
	mg := pentagrid(t)

	ctx, cancel := context.WithCancel(context.Background())
	tiles := stream.Tiles(ctx, mg, stream.WithChunkSize(1), stream.WithBuffer(0), stream.WithWorkers(2))
	points := stream.Points(ctx, mg, stream.WithBatchSize(1), stream.WithBuffer(0))

	<-tiles
	<-points
	cancel()

	assert.Less(t, drain(t, tiles), 999)
	assert.Less(t, drain(t, points), 999)
}

func TestCollectCancelled(t *testing.T) {
	mg := pentagrid(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := stream.Collect(ctx, stream.Tiles(ctx, mg))
	require.ErrorIs(t, err, context.Canceled)
}
