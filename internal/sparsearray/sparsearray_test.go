package sparsearray

import "testing"

func TestNewRejectsZeroDimension(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		bw, bh     int
		wantErr    error
	}{
		{name: "zero width", w: 0, h: 10, bw: 4, bh: 4, wantErr: ErrZeroDimension},
		{name: "zero block", w: 10, h: 10, bw: 0, bh: 4, wantErr: ErrZeroDimension},
		{name: "ok", w: 10, h: 10, bw: 4, bh: 4, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[int32](tt.w, tt.h, tt.bw, tt.bh)
			if err != tt.wantErr {
				t.Fatalf("New(%d,%d,%d,%d) err = %v, want %v", tt.w, tt.h, tt.bw, tt.bh, err, tt.wantErr)
			}
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	// 100x100 array, block=64: write a 70x70 region at (20,20) with all 1s;
	// reading (0,0,100,100) must yield zeros outside the region and ones
	// inside (spec.md §8 scenario 6).
	a, err := New[int32](100, 100, 64, 64)
	if err != nil {
		t.Fatal(err)
	}

	ones := make([]int32, 70*70)
	for i := range ones {
		ones[i] = 1
	}
	if ok := a.Write(20, 20, 90, 90, ones, 0, 1, 70, false); !ok {
		t.Fatal("write returned false")
	}

	dst := make([]int32, 100*100)
	if ok := a.Read(0, 0, 100, 100, dst, 0, 1, 100, false); !ok {
		t.Fatal("read returned false")
	}

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			v := dst[y*100+x]
			want := int32(0)
			if x >= 20 && x < 90 && y >= 20 && y < 90 {
				want = 1
			}
			if v != want {
				t.Fatalf("dst[%d,%d] = %d, want %d", x, y, v, want)
			}
		}
	}
}

func TestReadNeverWrittenIsZero(t *testing.T) {
	a, err := New[int32](16, 16, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]int32, 16*16)
	for i := range dst {
		dst[i] = -1
	}
	a.Read(0, 0, 16, 16, dst, 0, 1, 16, false)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("dst[%d] = %d, want 0", i, v)
		}
	}
}

func TestOutOfBoundsHonorsForgiving(t *testing.T) {
	a, err := New[int32](16, 16, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]int32, 4)
	if ok := a.Read(10, 10, 20, 20, dst, 0, 1, 4, true); !ok {
		t.Fatal("forgiving read should return true for out-of-bounds rectangle")
	}
	if ok := a.Read(10, 10, 20, 20, dst, 0, 1, 4, false); ok {
		t.Fatal("non-forgiving read should return false for out-of-bounds rectangle")
	}
}

func TestNonOverlappingWritesPreserveLastValue(t *testing.T) {
	a, err := New[int32](32, 32, 16, 16)
	if err != nil {
		t.Fatal(err)
	}

	block1 := make([]int32, 8*8)
	for i := range block1 {
		block1[i] = 7
	}
	block2 := make([]int32, 8*8)
	for i := range block2 {
		block2[i] = 9
	}

	a.Write(0, 0, 8, 8, block1, 0, 1, 8, false)
	a.Write(20, 20, 28, 28, block2, 0, 1, 8, false)

	dst := make([]int32, 32*32)
	a.Read(0, 0, 32, 32, dst, 0, 1, 32, false)

	if dst[0*32+0] != 7 {
		t.Fatalf("region 1 corrupted: %d", dst[0])
	}
	if dst[20*32+20] != 9 {
		t.Fatalf("region 2 corrupted: %d", dst[20*32+20])
	}
	if dst[15*32+15] != 0 {
		t.Fatalf("untouched cell not zero: %d", dst[15*32+15])
	}
}

func TestFloat32Backing(t *testing.T) {
	a, err := New[float32](8, 8, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	src := []float32{1.5, -2.25, 3.0, 0.125}
	a.Write(0, 0, 2, 2, src, 0, 1, 2, false)

	dst := make([]float32, 4)
	a.Read(0, 0, 2, 2, dst, 0, 1, 2, false)
	for i, v := range src {
		if dst[i] != v {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], v)
		}
	}
}
