package dwt

// Transform2D drives the vertical and horizontal 1-D lifting passes across
// a tile-component's resolution pyramid (spec.md §4.4). Forward and
// inverse share one generic driver parameterized by a small capability set
// per filter family (spec.md §9, "Polymorphism over filter family") rather
// than dynamic dispatch on the hot path.

// Kernels is the capability set a filter family plugs into Transform2D:
// its row-wise forward/inverse lifting kernels and filter half-width. Two
// concrete instantiations exist, Kernels53 (reversible) and Kernels97
// (irreversible) — see lift53.go / lift97.go.
type Kernels[T any] struct {
	FilterWidth int
	Forward     func(row []T, cas int)
	Inverse     func(row []T, cas int)
}

// Kernels53 is the 5/3 reversible filter family.
var Kernels53 = Kernels[int32]{
	FilterWidth: filterWidth53,
	Forward:     Forward53Row,
	Inverse:     Inverse53Row,
}

// Kernels97 is the 9/7 irreversible filter family.
var Kernels97 = Kernels[float32]{
	FilterWidth: filterWidth97,
	Forward:     Forward97Row,
	Inverse:     Inverse97Row,
}

// TileBuffer is a row-major sample buffer with a fixed stride, shared
// across every resolution level of a multilevel transform (spec.md §3:
// "a contiguous sample buffer (stride = tile width)").
type TileBuffer[T any] struct {
	Data   []T
	Stride int
}

// window returns a view over rectangle r of the tile buffer, addressed by
// coordinates relative to r's own origin.
func (b *TileBuffer[T]) window(r Rect) tileWindow[T] {
	return tileWindow[T]{buf: b, r: r}
}

type tileWindow[T any] struct {
	buf *TileBuffer[T]
	r   Rect
}

func (w tileWindow[T]) at(x, y int) T {
	return w.buf.Data[(w.r.Y0+y)*w.buf.Stride+w.r.X0+x]
}

func (w tileWindow[T]) set(x, y int, v T) {
	w.buf.Data[(w.r.Y0+y)*w.buf.Stride+w.r.X0+x] = v
}

// verticalPass iterates columns j in strides of 8, handing each batch to
// verticalBatch; a trailing call handles cols<8 when rw%8 != 0
// (spec.md §4.4 point 2). verticalBatch lifts the columns of a batch one at
// a time with the filter's 1-D kernel; it does not use the 8-lane
// Scratch97 kernels.
func verticalPass[T any](k Kernels[T], w tileWindow[T], rw, rh, cas int, forward bool) {
	verticalRange(k, w, 0, rw, rh, cas, forward)
}

// verticalRange is verticalPass restricted to column range [lo,hi) — the
// unit WorkerPool stripes across (spec.md §4.8).
func verticalRange[T any](k Kernels[T], w tileWindow[T], lo, hi, rh, cas int, forward bool) {
	j := lo
	for ; j+8 <= hi; j += 8 {
		verticalBatch(k, w, j, 8, rh, cas, forward)
	}
	if j < hi {
		verticalBatch(k, w, j, hi-j, rh, cas, forward)
	}
}

func verticalBatch[T any](k Kernels[T], w tileWindow[T], j0, cols, rh, cas int, forward bool) {
	col := make([]T, rh)
	for c := 0; c < cols; c++ {
		for y := 0; y < rh; y++ {
			col[y] = w.at(j0+c, y)
		}
		if forward {
			k.Forward(col, cas)
		} else {
			k.Inverse(col, cas)
		}
		for y := 0; y < rh; y++ {
			w.set(j0+c, y, col[y])
		}
	}
}

// horizontalPass iterates rows one at a time (spec.md §4.4 point 3).
func horizontalPass[T any](k Kernels[T], w tileWindow[T], rw, rh, cas int, forward bool) {
	horizontalRange(k, w, rw, 0, rh, cas, forward)
}

// horizontalRange is horizontalPass restricted to row range [lo,hi) — the
// unit WorkerPool stripes across (spec.md §4.8).
func horizontalRange[T any](k Kernels[T], w tileWindow[T], rw, lo, hi, cas int, forward bool) {
	row := make([]T, rw)
	for y := lo; y < hi; y++ {
		for x := 0; x < rw; x++ {
			row[x] = w.at(x, y)
		}
		if forward {
			k.Forward(row, cas)
		} else {
			k.Inverse(row, cas)
		}
		for x := 0; x < rw; x++ {
			w.set(x, y, row[x])
		}
	}
}

// Decode runs the full inverse transform over every resolution level,
// resolution 0 (LL-only, coarsest) through numResolutions-1 (finest),
// reconstructing progressively higher resolutions in place (spec.md §2,
// §4.4). Vertical then horizontal at each level, per spec.md §2's inverse
// path order. Encode runs the opposite order (horizontal then vertical) so
// that Decode actually reverses Encode — the two integer 5/3 lifting passes
// don't commute, so they must undo each other in reverse order.
func Decode[T any](k Kernels[T], buf *TileBuffer[T], tile Rect, numResolutions int) {
	for r := 1; r < numResolutions; r++ {
		res := ResolutionRect(tile, numResolutions, r)
		if res.Empty() {
			continue
		}
		rw, rh := res.Width(), res.Height()
		casCol := Parity(res.Y0)
		casRow := Parity(res.X0)
		w := buf.window(res)
		if rh > 1 {
			verticalPass(k, w, rw, rh, casCol, false)
		}
		if rw > 1 {
			horizontalPass(k, w, rw, rh, casRow, false)
		}
	}
}

// Encode runs the full forward transform, resolution numResolutions-1
// (finest, the raw tile) down through 1, each step decomposing the
// current LL into the next-coarser resolution's LL plus HL/LH/HH bands
// (spec.md §2: "highest→lowest"). Horizontal then vertical at each level,
// per spec.md §2's forward path order — the mirror image of Decode's
// vertical-then-horizontal, required for the two to be exact inverses.
func Encode[T any](k Kernels[T], buf *TileBuffer[T], tile Rect, numResolutions int) {
	for r := numResolutions - 1; r >= 1; r-- {
		res := ResolutionRect(tile, numResolutions, r)
		if res.Empty() {
			continue
		}
		rw, rh := res.Width(), res.Height()
		casCol := Parity(res.Y0)
		casRow := Parity(res.X0)
		w := buf.window(res)
		if rw > 1 {
			horizontalPass(k, w, rw, rh, casRow, true)
		}
		if rh > 1 {
			verticalPass(k, w, rw, rh, casCol, true)
		}
	}
}
