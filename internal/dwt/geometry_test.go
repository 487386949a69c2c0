package dwt

import "testing"

func TestCeilDivPow2(t *testing.T) {
	tests := []struct {
		n, pow, want int
	}{
		{10, 0, 10},
		{10, 1, 5},
		{11, 1, 6},
		{0, 3, 0},
		{17, 2, 5},
	}
	for _, tt := range tests {
		if got := ceilDivPow2(tt.n, tt.pow); got != tt.want {
			t.Errorf("ceilDivPow2(%d,%d) = %d, want %d", tt.n, tt.pow, got, tt.want)
		}
	}
}

func TestResolutionRect(t *testing.T) {
	tile := Rect{X0: 0, Y0: 0, X1: 64, Y1: 64}

	tests := []struct {
		r    int
		want Rect
	}{
		{0, Rect{0, 0, 1, 1}},
		{1, Rect{0, 0, 2, 2}},
		{2, Rect{0, 0, 4, 4}},
		{6, Rect{0, 0, 64, 64}},
	}
	for _, tt := range tests {
		if got := ResolutionRect(tile, 7, tt.r); got != tt.want {
			t.Errorf("ResolutionRect(r=%d) = %+v, want %+v", tt.r, got, tt.want)
		}
	}
}

// TestBandRectMatchesLaneCounts checks BandRect's coordinate mapping (used
// to address a subband's own local storage, spec.md §6.1) agrees with the
// sn/dn split the lifting kernels themselves use, including for a
// non-power-of-two, odd-dimensioned tile where sn != dn.
func TestBandRectMatchesLaneCounts(t *testing.T) {
	tile := Rect{X0: 0, Y0: 0, X1: 101, Y1: 77}
	const numResolutions = 3

	for r := 1; r < numResolutions; r++ {
		res := ResolutionRect(tile, numResolutions, r)
		casRow := Parity(res.X0)
		casCol := Parity(res.Y0)
		snX, dnX := laneCounts(res.Width(), casRow)
		snY, dnY := laneCounts(res.Height(), casCol)

		if hl := BandRect(tile, BandHL, numResolutions, r); hl.Width() != dnX || hl.Height() != snY {
			t.Errorf("r=%d HL band = %dx%d, want %dx%d", r, hl.Width(), hl.Height(), dnX, snY)
		}
		if lh := BandRect(tile, BandLH, numResolutions, r); lh.Width() != snX || lh.Height() != dnY {
			t.Errorf("r=%d LH band = %dx%d, want %dx%d", r, lh.Width(), lh.Height(), snX, dnY)
		}
		if hh := BandRect(tile, BandHH, numResolutions, r); hh.Width() != dnX || hh.Height() != dnY {
			t.Errorf("r=%d HH band = %dx%d, want %dx%d", r, hh.Width(), hh.Height(), dnX, dnY)
		}
	}
}

func TestParity(t *testing.T) {
	tests := []struct {
		origin, want int
	}{
		{0, 0}, {1, 1}, {2, 0}, {3, 1}, {-1, 1}, {-2, 0},
	}
	for _, tt := range tests {
		if got := Parity(tt.origin); got != tt.want {
			t.Errorf("Parity(%d) = %d, want %d", tt.origin, got, tt.want)
		}
	}
}

func TestSegmentGrow(t *testing.T) {
	tests := []struct {
		lo, hi, width, extent, wantLo, wantHi int
	}{
		{5, 10, 2, 20, 3, 12},
		{0, 10, 2, 20, 0, 12},  // clamped at 0
		{15, 20, 2, 18, 13, 18}, // clamped at extent
	}
	for _, tt := range tests {
		lo, hi := segmentGrow(tt.lo, tt.hi, tt.width, tt.extent)
		if lo != tt.wantLo || hi != tt.wantHi {
			t.Errorf("segmentGrow(%d,%d,%d,%d) = (%d,%d), want (%d,%d)",
				tt.lo, tt.hi, tt.width, tt.extent, lo, hi, tt.wantLo, tt.wantHi)
		}
	}
}

func TestRectWidthHeightEmpty(t *testing.T) {
	r := Rect{X0: 2, Y0: 3, X1: 10, Y1: 5}
	if r.Width() != 8 {
		t.Errorf("Width() = %d, want 8", r.Width())
	}
	if r.Height() != 2 {
		t.Errorf("Height() = %d, want 2", r.Height())
	}
	if r.Empty() {
		t.Error("Empty() = true, want false")
	}

	degenerate := Rect{X0: 5, Y0: 5, X1: 5, Y1: 9}
	if !degenerate.Empty() {
		t.Error("Empty() = false, want true for zero-width rect")
	}
}

func TestBandString(t *testing.T) {
	tests := map[Band]string{BandLL: "LL", BandHL: "HL", BandLH: "LH", BandHH: "HH"}
	for b, want := range tests {
		if got := b.String(); got != want {
			t.Errorf("Band(%d).String() = %q, want %q", b, got, want)
		}
	}
}
