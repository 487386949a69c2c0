package dwt

import (
	"math/rand/v2"
	"testing"
)

// TestDecodeWindowMatchesFullDecodeCrop covers spec.md §8 scenario 4: a
// partial decode of a window equals the corresponding crop of a full
// decode, for both the 5/3 and 9/7 filter families.
func TestDecodeWindowMatchesFullDecodeCrop(t *testing.T) {
	const w, h, numResolutions = 64, 64, 3
	win := Rect{X0: 8, Y0: 8, X1: 24, Y1: 24}
	tile := Rect{X0: 0, Y0: 0, X1: w, Y1: h}

	t.Run("53", func(t *testing.T) {
		coeffs := make([]int32, w*h)
		rng := rand.New(rand.NewPCG(11, 0))
		for i := range coeffs {
			coeffs[i] = int32(rng.IntN(512) - 256)
		}

		full := append([]int32(nil), coeffs...)
		Decode(Kernels53, &TileBuffer[int32]{Data: full, Stride: w}, tile, numResolutions)

		pa, err := NewPartialArray[int32](tile, numResolutions)
		if err != nil {
			t.Fatalf("NewPartialArray: %v", err)
		}
		pa.Underlying().Write(0, 0, w, h, coeffs, 0, 1, w, false)

		DecodeWindow(Kernels53, pa, tile, win, numResolutions, nil)

		dst := make([]int32, win.Width()*win.Height())
		if !pa.ReadWindow(win, dst) {
			t.Fatal("ReadWindow reported out-of-bounds")
		}

		for y := 0; y < win.Height(); y++ {
			for x := 0; x < win.Width(); x++ {
				got := dst[y*win.Width()+x]
				want := full[(win.Y0+y)*w+(win.X0+x)]
				if got != want {
					t.Fatalf("(%d,%d): got %d, want %d", x, y, got, want)
				}
			}
		}
	})

	t.Run("97", func(t *testing.T) {
		coeffs := make([]float32, w*h)
		rng := rand.New(rand.NewPCG(13, 0))
		for i := range coeffs {
			coeffs[i] = float32(rng.Float64()*512 - 256)
		}

		full := append([]float32(nil), coeffs...)
		Decode(Kernels97, &TileBuffer[float32]{Data: full, Stride: w}, tile, numResolutions)

		pa, err := NewPartialArray[float32](tile, numResolutions)
		if err != nil {
			t.Fatalf("NewPartialArray: %v", err)
		}
		pa.Underlying().Write(0, 0, w, h, coeffs, 0, 1, w, false)

		DecodeWindow(Kernels97, pa, tile, win, numResolutions, nil)

		dst := make([]float32, win.Width()*win.Height())
		if !pa.ReadWindow(win, dst) {
			t.Fatal("ReadWindow reported out-of-bounds")
		}

		for y := 0; y < win.Height(); y++ {
			for x := 0; x < win.Width(); x++ {
				got := dst[y*win.Width()+x]
				want := full[(win.Y0+y)*w+(win.X0+x)]
				if got != want {
					t.Fatalf("(%d,%d): got %v, want %v", x, y, got, want)
				}
			}
		}
	})
}

// TestNewPartialArrayRejectsZeroDimension checks the sparse-array
// allocation failure path propagates through NewPartialArray.
func TestNewPartialArrayRejectsZeroDimension(t *testing.T) {
	tile := Rect{X0: 0, Y0: 0, X1: 0, Y1: 0}
	if _, err := NewPartialArray[int32](tile, 1); err == nil {
		t.Fatal("expected an error for a zero-area tile")
	}
}
