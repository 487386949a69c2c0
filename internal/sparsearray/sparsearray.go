// Package sparsearray implements the block-indexed sparse 2-D storage used
// as scratch/coefficient storage for partial tile-component decoding.
package sparsearray

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

// ErrZeroDimension is returned by New when width, height or a block
// dimension is zero or negative.
var ErrZeroDimension = errors.New("sparsearray: width, height and block size must be positive")

// ErrSizeOverflow is returned by New when a block's storage would overflow
// platform int arithmetic.
var ErrSizeOverflow = errors.New("sparsearray: block size overflows")

// Value is the element type a sparse array can hold. int32 backs the
// reversible (5/3) path; float32 backs the irreversible (9/7) path. Both
// share this one generic implementation rather than a hand-duplicated type
// per element kind (see SPEC_FULL.md §2a).
type Value interface {
	constraints.Integer | constraints.Float
}

// Array is a 2-D grid of W x H values of type T, tiled into fixed-size
// blocks. A block is either absent (logically all-zero) or materialized as
// a flat row-major array of bw*bh values, allocated lazily on first write.
type Array[T Value] struct {
	w, h   int
	bw, bh int
	nbx    int
	nby    int
	blocks []block[T]
}

type block[T Value] struct {
	data []T // nil until first write touches this block
}

// DefaultBlockSize returns the default block edge length for a dimension,
// min(64, dim).
func DefaultBlockSize(dim int) int {
	if dim < 64 {
		return dim
	}
	return 64
}

// New creates a sparse array of the given dimensions and block size. It
// returns ErrZeroDimension if any dimension is non-positive, and
// ErrSizeOverflow if bw*bh*sizeof(T) would overflow platform int
// arithmetic.
func New[T Value](w, h, bw, bh int) (*Array[T], error) {
	if w <= 0 || h <= 0 || bw <= 0 || bh <= 0 {
		return nil, ErrZeroDimension
	}

	var zero T
	elemSize := int(unsafeSizeof(zero))
	if bw > 0 && bh > 0 && elemSize > 0 {
		if bw > math.MaxInt/bh || bw*bh > math.MaxInt/elemSize {
			return nil, ErrSizeOverflow
		}
	}

	nbx := ceilDiv(w, bw)
	nby := ceilDiv(h, bh)

	return &Array[T]{
		w:      w,
		h:      h,
		bw:     bw,
		bh:     bh,
		nbx:    nbx,
		nby:    nby,
		blocks: make([]block[T], nbx*nby),
	}, nil
}

func unsafeSizeof[T Value](v T) uintptr {
	switch any(v).(type) {
	case int32, float32:
		return 4
	case int64, float64:
		return 8
	case int16:
		return 2
	case int8:
		return 1
	default:
		return 8
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Width reports the array's logical width.
func (a *Array[T]) Width() int { return a.w }

// Height reports the array's logical height.
func (a *Array[T]) Height() int { return a.h }

func (a *Array[T]) blockAt(bx, by int) *block[T] {
	return &a.blocks[by*a.nbx+bx]
}

func (a *Array[T]) inBounds(x0, y0, x1, y1 int) bool {
	return x0 >= 0 && y0 >= 0 && x1 <= a.w && y1 <= a.h && x0 <= x1 && y0 <= y1
}

// Read copies the rectangle [x0,y0)-(x1,y1) into dst. Cells not backed by a
// materialized block are zero-filled. dstOff is the starting offset into
// dst; colStride and lineStride describe dst's layout (colStride==1 is the
// common contiguous-row case and takes a fast copy path). Read returns
// forgiving if the requested rectangle falls outside the array bounds,
// true otherwise.
func (a *Array[T]) Read(x0, y0, x1, y1 int, dst []T, dstOff, colStride, lineStride int, forgiving bool) bool {
	if !a.inBounds(x0, y0, x1, y1) {
		return forgiving
	}

	for by := y0 / a.bh; by*a.bh < y1; by++ {
		blkY0 := by * a.bh
		rowLo := max(y0, blkY0)
		rowHi := min(y1, blkY0+a.bh)

		for bx := x0 / a.bw; bx*a.bw < x1; bx++ {
			blkX0 := bx * a.bw
			colLo := max(x0, blkX0)
			colHi := min(x1, blkX0+a.bw)

			blk := a.blockAt(bx, by)
			for y := rowLo; y < rowHi; y++ {
				lineOff := dstOff + (y-y0)*lineStride
				if blk.data == nil {
					for x := colLo; x < colHi; x++ {
						dst[lineOff+(x-x0)*colStride] = 0
					}
					continue
				}

				localY := y - blkY0
				if colStride == 1 {
					srcRow := blk.data[localY*a.bw+(colLo-blkX0) : localY*a.bw+(colHi-blkX0)]
					copy(dst[lineOff+(colLo-x0):lineOff+(colHi-x0)], srcRow)
					continue
				}

				for x := colLo; x < colHi; x++ {
					dst[lineOff+(x-x0)*colStride] = blk.data[localY*a.bw+(x-blkX0)]
				}
			}
		}
	}
	return true
}

// Write copies src into the rectangle [x0,y0)-(x1,y1), materializing any
// block touched for the first time. Returns forgiving if the rectangle
// falls outside the array bounds.
func (a *Array[T]) Write(x0, y0, x1, y1 int, src []T, srcOff, colStride, lineStride int, forgiving bool) bool {
	if !a.inBounds(x0, y0, x1, y1) {
		return forgiving
	}

	for by := y0 / a.bh; by*a.bh < y1; by++ {
		blkY0 := by * a.bh
		rowLo := max(y0, blkY0)
		rowHi := min(y1, blkY0+a.bh)

		for bx := x0 / a.bw; bx*a.bw < x1; bx++ {
			blkX0 := bx * a.bw
			colLo := max(x0, blkX0)
			colHi := min(x1, blkX0+a.bw)

			blk := a.blockAt(bx, by)
			if blk.data == nil {
				blk.data = make([]T, a.bw*a.bh)
			}

			for y := rowLo; y < rowHi; y++ {
				lineOff := srcOff + (y-y0)*lineStride
				localY := y - blkY0

				if colStride == 1 {
					dstRow := blk.data[localY*a.bw+(colLo-blkX0) : localY*a.bw+(colHi-blkX0)]
					copy(dstRow, src[lineOff+(colLo-x0):lineOff+(colHi-x0)])
					continue
				}

				for x := colLo; x < colHi; x++ {
					blk.data[localY*a.bw+(x-blkX0)] = src[lineOff+(x-x0)*colStride]
				}
			}
		}
	}
	return true
}
