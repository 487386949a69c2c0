package dwt

import (
	"math/rand/v2"
	"testing"
)

// TestDecodeEncodeSingleResolutionIsNoop checks the numResolutions=1
// degenerate case (spec.md §4.4: a single-resolution tile has no HL/LH/HH
// bands to reconstruct or decompose): both Decode and Encode loop zero
// times and must leave the buffer untouched.
func TestDecodeEncodeSingleResolutionIsNoop(t *testing.T) {
	const w, h = 9, 9
	data := make([]int32, w*h)
	for i := range data {
		data[i] = int32(i)
	}
	original := append([]int32(nil), data...)

	tile := Rect{X0: 0, Y0: 0, X1: w, Y1: h}
	buf := &TileBuffer[int32]{Data: data, Stride: w}

	Encode(Kernels53, buf, tile, 1)
	Decode(Kernels53, buf, tile, 1)

	for i := range data {
		if data[i] != original[i] {
			t.Fatalf("index %d: got %d, want %d (numResolutions=1 should be a no-op)", i, data[i], original[i])
		}
	}
}

// TestDecodeEncodeNonZeroOriginTile checks tileWindow's offset addressing:
// a tile that doesn't start at the buffer's (0,0) origin, embedded in a
// larger backing buffer, round-trips exactly like a zero-origin tile would,
// without touching samples outside the tile.
func TestDecodeEncodeNonZeroOriginTile(t *testing.T) {
	const bufW, bufH = 40, 40
	const tx0, ty0, tw, th = 8, 12, 16, 16

	data := make([]int32, bufW*bufH)
	rng := rand.New(rand.NewPCG(7, 0))
	for i := range data {
		data[i] = int32(rng.IntN(256))
	}
	original := append([]int32(nil), data...)

	tile := Rect{X0: tx0, Y0: ty0, X1: tx0 + tw, Y1: ty0 + th}
	buf := &TileBuffer[int32]{Data: data, Stride: bufW}

	Encode(Kernels53, buf, tile, 3)
	Decode(Kernels53, buf, tile, 3)

	for y := 0; y < bufH; y++ {
		for x := 0; x < bufW; x++ {
			idx := y*bufW + x
			inTile := x >= tx0 && x < tx0+tw && y >= ty0 && y < ty0+th
			if !inTile && data[idx] != original[idx] {
				t.Fatalf("sample (%d,%d) outside tile was modified: got %d, want %d", x, y, data[idx], original[idx])
			}
		}
	}
	for y := ty0; y < ty0+th; y++ {
		for x := tx0; x < tx0+tw; x++ {
			idx := y*bufW + x
			if data[idx] != original[idx] {
				t.Fatalf("sample (%d,%d) failed round trip: got %d, want %d", x, y, data[idx], original[idx])
			}
		}
	}
}
