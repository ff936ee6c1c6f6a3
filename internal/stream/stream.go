// Package stream fans the enumeration of a multigrid out over worker
// goroutines and hands the results back as immutable batches on bounded
// channels. Stop early by cancelling the context; every channel is closed
// once its producers have returned.
package stream

import (
	"context"
	"runtime"
	"sync"

	"penrose-multigrid/cplx"
	"penrose-multigrid/multigrid"
)

const (
	// POINT_BATCH_SIZE is how many intersections go into one Points batch.
	POINT_BATCH_SIZE = 500
	// DEFAULT_BUFFER is the capacity of every output channel.
	DEFAULT_BUFFER = 16
)

// Chunk is a run of consecutive tiles from one grid pair, in enumeration
// order. Chunks of different pairs may arrive interleaved.
type Chunk struct {
	Pair  multigrid.Pair
	Tiles []multigrid.Tile
}

type Option func(*options)

type options struct {
	workers   int
	chunkSize int
	batchSize int
	buffer    int
}

// WithWorkers sets how many pairs are enumerated at once. Default GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithChunkSize caps the tiles per Chunk. Zero, the default, sends each
// pair as a single chunk.
func WithChunkSize(n int) Option {
	return func(o *options) { o.chunkSize = n }
}

// WithBatchSize sets the points per Points batch.
func WithBatchSize(n int) Option {
	return func(o *options) { o.batchSize = n }
}

// WithBuffer sets the output channel capacity.
func WithBuffer(n int) Option {
	return func(o *options) { o.buffer = n }
}

func newOptions(opts []Option) options {
	o := options{
		workers:   runtime.GOMAXPROCS(0),
		batchSize: POINT_BATCH_SIZE,
		buffer:    DEFAULT_BUFFER,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.workers = max(o.workers, 1)
	o.batchSize = max(o.batchSize, 1)
	o.chunkSize = max(o.chunkSize, 0)
	o.buffer = max(o.buffer, 0)
	return o
}

func send[T any](ctx context.Context, ch chan<- T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

////////////////////////////////////////////////////////////////////////////
// Tiles

// Tiles enumerates every tile of mg, one grid pair per worker at a time.
func Tiles(ctx context.Context, mg *multigrid.Multigrid, opts ...Option) <-chan Chunk {
	o := newOptions(opts)
	out := make(chan Chunk, o.buffer)

	pairs := make(chan multigrid.Pair)
	go func() {
		defer close(pairs)
		for _, pair := range mg.Pairs() {
			if !send(ctx, pairs, pair) {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	var mutex sync.Mutex
	chunks := 0
	for range o.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pair := range pairs {
				n, ok := tilePair(ctx, mg, pair, o.chunkSize, out)
				mutex.Lock()
				chunks += n
				mutex.Unlock()
				if !ok {
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
		multigrid.Logger().Debug("tile stream closed",
			"pairs", len(mg.Pairs()),
			"chunks", chunks,
			"err", ctx.Err())
	}()
	return out
}

// tilePair sends the tiles of one pair and reports how many chunks went
// out and whether the consumer is still listening.
func tilePair(ctx context.Context, mg *multigrid.Multigrid, pair multigrid.Pair, size int, out chan<- Chunk) (int, bool) {
	sent := 0
	var tiles []multigrid.Tile
	for tile := range mg.PairTiles(pair) {
		tiles = append(tiles, tile)
		if size > 0 && len(tiles) == size {
			if !send(ctx, out, Chunk{Pair: pair, Tiles: tiles}) {
				return sent, false
			}
			sent++
			tiles = nil
		}
	}
	if len(tiles) == 0 {
		return sent, ctx.Err() == nil
	}
	if !send(ctx, out, Chunk{Pair: pair, Tiles: tiles}) {
		return sent, false
	}
	return sent + 1, true
}

// Collect drains chunks and joins them by pair. It returns the context's
// error if ctx ended before the stream did, along with what had arrived.
func Collect(ctx context.Context, chunks <-chan Chunk) (map[multigrid.Pair][]multigrid.Tile, error) {
	tiles := make(map[multigrid.Pair][]multigrid.Tile)
	for {
		select {
		case <-ctx.Done():
			return tiles, ctx.Err()
		case c, ok := <-chunks:
			if !ok {
				return tiles, ctx.Err()
			}
			tiles[c.Pair] = append(tiles[c.Pair], c.Tiles...)
		}
	}
}

////////////////////////////////////////////////////////////////////////////
// Points

// Points enumerates every intersection of mg in order, in batches of the
// configured size. Only the last batch may be short.
func Points(ctx context.Context, mg *multigrid.Multigrid, opts ...Option) <-chan []cplx.Complex {
	o := newOptions(opts)
	out := make(chan []cplx.Complex, o.buffer)

	go func() {
		defer close(out)
		batch := make([]cplx.Complex, 0, o.batchSize)
		for point := range mg.Intersections() {
			batch = append(batch, point)
			if len(batch) < o.batchSize {
				continue
			}
			if !send(ctx, out, batch) {
				return
			}
			batch = make([]cplx.Complex, 0, o.batchSize)
		}
		if len(batch) > 0 {
			send(ctx, out, batch)
		}
	}()
	return out
}
