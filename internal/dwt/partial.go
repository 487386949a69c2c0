package dwt

import "github.com/cocosip/go-jpeg2000-dwt/internal/sparsearray"

// PartialTransform reconstructs only the samples a caller-specified
// window of interest needs, walking the resolution pyramid low to high
// and reading/writing coefficients through a PartialArray rather than a
// dense tile buffer (spec.md §4.5).

// PartialArray is the sparse coefficient store PartialTransform operates
// on: a sparsearray.Array[T] sized to the finest resolution's rectangle.
// Every coarser resolution's rectangle is the top-left sub-rectangle of
// the same array, which holds for the tile-origin-(0,0) case this package
// targets (multi-tile offset addressing is tile-lifecycle territory, out
// of scope per spec.md §1).
type PartialArray[T sparsearray.Value] struct {
	arr  *sparsearray.Array[T]
	w, h int
}

// NewPartialArray allocates a PartialArray sized to hold every resolution
// level of tile under numResolutions.
func NewPartialArray[T sparsearray.Value](tile Rect, numResolutions int) (*PartialArray[T], error) {
	finest := ResolutionRect(tile, numResolutions, numResolutions-1)
	w, h := finest.Width(), finest.Height()
	arr, err := sparsearray.New[T](w, h, sparsearray.DefaultBlockSize(w), sparsearray.DefaultBlockSize(h))
	if err != nil {
		return nil, err
	}
	return &PartialArray[T]{arr: arr, w: w, h: h}, nil
}

// Underlying exposes the backing sparse array, e.g. so an (out-of-scope)
// entropy decoder can seed code-block samples before PartialTransform
// runs.
func (p *PartialArray[T]) Underlying() *sparsearray.Array[T] { return p.arr }

// ReadWindow reads the finest resolution's window-of-interest out of the
// array into dst (spec.md §4.5, "final step": "read the deepest-resolution
// window into the tile's output buffer").
func (p *PartialArray[T]) ReadWindow(win Rect, dst []T) bool {
	return p.arr.Read(win.X0, win.Y0, win.X1, win.Y1, dst, 0, 1, win.Width(), false)
}

// laneCounts returns the low-pass (sn) and high-pass (dn) sample counts a
// 1-D pass of the given width and parity produces, matching
// Forward53Row/Forward97Row's own sn/dn convention.
func laneCounts(width, cas int) (sn, dn int) {
	if cas == 0 {
		sn = (width + 1) >> 1
	} else {
		sn = width >> 1
	}
	dn = width - sn
	return sn, dn
}

// windowBounds maps a window's endpoints [lo,hi) on one axis, expressed in
// tile-resolution coordinates, into the minimal resolution-relative
// (interleaved low+high) range [trLo,trHi) that must be reconstructed
// to cover it — spec.md §4.5 steps 1-3: per-band coordinate mapping,
// segment_grow by the filter's half-width, then combining the grown
// low-pass and high-pass windows back into interleaved coordinates.
func windowBounds(lo, hi, nb, cas, filterWidth, width int) (trLo, trHi int) {
	sn, dn := laneCounts(width, cas)

	winL0, winL1 := segmentGrow(bandCoord(lo, 0, nb), bandCoord(hi, 0, nb), filterWidth, sn)
	winH0, winH1 := segmentGrow(bandCoord(lo, 1, nb), bandCoord(hi, 1, nb), filterWidth, dn)

	loCasBit, hiCasBit := 0, 0
	if cas != 0 {
		loCasBit = 1
	} else {
		hiCasBit = 1
	}

	trLo = min(2*winL0+loCasBit, 2*winH0+hiCasBit)
	trHi = max(2*winL1, 2*winH1+1)
	if trHi > width {
		trHi = width
	}
	return trLo, trHi
}

// DecodeWindow runs the inverse transform over every resolution level
// needed to reconstruct win (in tile coordinates), reading and writing
// coefficients through arr (spec.md §4.5). Each level's windowBounds call
// determines the narrower interleaved range [trX0,trX1)x[trY0,trY1) the
// window actually needs, grown outward from win's band-mapped coordinates
// by the filter's half-width (spec.md §4.5 steps 1-3) so that the lifting
// kernels' neighbor dependencies are fully covered; when that range doesn't
// cover the whole subband, a warning is logged (spec.md §7, "window grown
// beyond subband").
//
// The vertical pass runs first, while the columns are still in
// [low-pass | high-pass] layout, so it runs only over the grown low-pass
// columns [winL0,winL1) and the grown high-pass columns sn+[winH0,winH1) —
// the columns the horizontal pass reads for the window. The horizontal
// pass runs only for rows in [trY0,trY1); it still reads across the row's
// full width, since a single row's lift is not itself windowed, but
// segment_grow's margin keeps the error from the untransformed columns
// outside win. Only the resulting [trX0,trX1)x[trY0,trY1) rectangle is
// written back.
func DecodeWindow[T sparsearray.Value](k Kernels[T], arr *PartialArray[T], tile, win Rect, numResolutions int, log Logger) {
	for r := 1; r < numResolutions; r++ {
		res := ResolutionRect(tile, numResolutions, r)
		if res.Empty() {
			continue
		}
		rw, rh := res.Width(), res.Height()
		casRow := Parity(res.X0)
		casCol := Parity(res.Y0)
		nb := bandExponent(numResolutions, r)

		trX0, trX1 := windowBounds(win.X0, win.X1, nb, casRow, k.FilterWidth, rw)
		trY0, trY1 := windowBounds(win.Y0, win.Y1, nb, casCol, k.FilterWidth, rh)
		if trX0 >= trX1 || trY0 >= trY1 {
			continue
		}
		if trX1-trX0 < rw || trY1-trY0 < rh {
			logWarn(log, "partial decode window grown beyond subband", "resolution", r, "band_exponent", nb)
		}

		buf := make([]T, rw*rh)
		arr.arr.Read(0, 0, rw, rh, buf, 0, 1, rw, true)
		tb := &TileBuffer[T]{Data: buf, Stride: rw}
		w := tb.window(Rect{X0: 0, Y0: 0, X1: rw, Y1: rh})

		if rh > 1 {
			snX, dnX := laneCounts(rw, casRow)
			wl0, wl1 := segmentGrow(bandCoord(win.X0, 0, nb), bandCoord(win.X1, 0, nb), k.FilterWidth, snX)
			wh0, wh1 := segmentGrow(bandCoord(win.X0, 1, nb), bandCoord(win.X1, 1, nb), k.FilterWidth, dnX)
			verticalRange(k, w, wl0, wl1, rh, casCol, false)
			verticalRange(k, w, snX+wh0, snX+wh1, rh, casCol, false)
		}
		if rw > 1 {
			horizontalRange(k, w, rw, trY0, trY1, casRow, false)
		}

		srcOff := trY0*rw + trX0
		arr.arr.Write(trX0, trY0, trX1, trY1, buf, srcOff, 1, rw, true)
	}
}
