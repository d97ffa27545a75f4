package hexgrid

import "errors"

var (
	// ErrEmptyMap indicates a map with no rows or no tiles.
	ErrEmptyMap = errors.New("hexgrid: map has no tiles")
	// ErrDuplicateCell indicates two cells share a coordinate.
	ErrDuplicateCell = errors.New("hexgrid: duplicate cell coordinate")
	// ErrAsymmetric indicates a neighbor link without its reverse link.
	ErrAsymmetric = errors.New("hexgrid: neighbor links are not symmetric")
	// ErrBadCoord indicates an unparsable coordinate string.
	ErrBadCoord = errors.New("hexgrid: invalid coordinate")
	// ErrBadLayout indicates a non-positive tile size.
	ErrBadLayout = errors.New("hexgrid: tile size must be positive")
)
