package dwt

import "errors"

// Sentinel errors, mirroring the teacher's codec/errors.go convention of
// package-level errors.New vars rather than a custom error-code type.
var (
	// ErrOutOfMemory names a failed scratch or sparse-block allocation. No
	// function in this module returns it.
	ErrOutOfMemory = errors.New("dwt: out of memory")

	// ErrSizeOverflow names a max_resolution * lanes * elemSize scratch size
	// that overflows platform int arithmetic. No function in this module
	// returns it; sparsearray.New reports block-size overflow with its own
	// sparsearray.ErrSizeOverflow.
	ErrSizeOverflow = errors.New("dwt: scratch size overflow")

	// ErrInvalidRegion names a sparse-array rectangle that exceeds the
	// array's storage. No function in this module returns it: sparse-array
	// reads and writes report an out-of-bounds rectangle through their bool
	// result (false unless forgiving is set).
	ErrInvalidRegion = errors.New("dwt: region outside sparse array bounds")

	// ErrInvalidParams is returned when a TileComponentParams value fails
	// validation (non-positive dimensions, zero resolutions, ...).
	ErrInvalidParams = errors.New("dwt: invalid tile-component parameters")
)
