package multigrid

import "errors"

var (
	// ErrTooFewGrids indicates fewer than two grids were supplied.
	ErrTooFewGrids = errors.New("multigrid: at least two grids are required")
	// ErrNonPositiveInterval indicates a unit interval that is zero, negative or not finite.
	ErrNonPositiveInterval = errors.New("multigrid: unit interval must be positive and finite")
	// ErrNegativeLength indicates a grid window with negative length.
	ErrNegativeLength = errors.New("multigrid: window length must not be negative")
	// ErrGridCount indicates a per-grid parameter slice whose length differs from the grid count.
	ErrGridCount = errors.New("multigrid: per-grid parameters do not match grid count")
	// ErrMalformedCell indicates a cell key that is not four comma separated integers.
	ErrMalformedCell = errors.New("multigrid: malformed cell key")
	// ErrGridOutOfRange indicates a cell naming a grid the multigrid does not have.
	ErrGridOutOfRange = errors.New("multigrid: grid index out of range")
	// ErrParallelCell indicates a cell whose two lines never cross.
	ErrParallelCell = errors.New("multigrid: cell lines are parallel")
)
