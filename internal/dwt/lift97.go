package dwt

// LiftingKernels97 implements the irreversible 9/7 floating-point wavelet
// filter (spec.md §4.3). Adapted from the teacher's
// jpeg2000/wavelet/dwt97.go float64 implementation, narrowed to single
// precision per spec.md's numerical contract (every intermediate here is
// float32; nothing is silently promoted to float64) and extended with the
// 8-lane vertical-pass variant Transform2D needs.
//
// Constants are OpenJPEG's table F.4 values (ISO/IEC 15444-1 Annex F).
const (
	alpha97 float32 = -1.586134342
	beta97  float32 = -0.052980118
	gamma97 float32 = 0.882911075
	delta97 float32 = 0.443506852
	k97     float32 = 1.230174105
	invK97  float32 = 0.812893066

	// twoInvK97 is 2/K used in place of 1/K on the inverse high-pass scale
	// step — a historical OpenJPEG conformance compensation preserved
	// deliberately (spec.md §9, BUG_WEIRD_TWO_INVK). Not derived from
	// invK97 at runtime: the literal is the contract.
	twoInvK97 float32 = 1.625732422
)

const filterWidth97 = 4

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Forward97Row applies the forward 9/7 lifting schedule in place to one
// row or column of len(data) float32 samples, producing a
// [low-pass | high-pass] layout. cas mirrors Forward53Row's parity
// convention.
func Forward97Row(data []float32, cas int) {
	width := len(data)
	if width <= 1 {
		return
	}

	var sn, dn int32
	if cas == 0 {
		sn = int32((width + 1) >> 1)
	} else {
		sn = int32(width >> 1)
	}
	dn = int32(width) - sn

	var a, b int32
	if cas == 0 {
		a, b = 0, 1
	} else {
		a, b = 1, 0
	}

	encodeStep97(data, a, b+1, dn, min32(dn, sn-b), alpha97)
	encodeStep97(data, b, a+1, sn, min32(sn, dn-a), beta97)
	encodeStep97(data, a, b+1, dn, min32(dn, sn-b), gamma97)
	encodeStep97(data, b, a+1, sn, min32(sn, dn-a), delta97)

	if a == 0 {
		scaleStep97(data, sn, dn, invK97, k97)
	} else {
		scaleStep97(data, dn, sn, k97, invK97)
	}

	deinterleave97(data, dn, sn, cas == 0)
}

// encodeStep97 is a direct float32 port of the teacher's encodeStep2_97
// (one predict or update lifting step, applied in place on interleaved
// data).
func encodeStep97(data []float32, flStart, fwStart, end, m int32, c float32) {
	imax := min32(end, m)

	if imax > 0 {
		fw := fwStart
		fl := flStart
		data[fw-1] += (data[fl] + data[fw]) * c
		fw += 2

		for i := int32(1); i < imax; i++ {
			data[fw-1] += (data[fw-2] + data[fw]) * c
			fw += 2
		}
	}

	if m < end {
		fw := fwStart + 2*m
		data[fw-1] += 2 * data[fw-2] * c
	}
}

// scaleStep97 is a float32 port of the teacher's encodeStep1Combined97
// (applies the K/InvK normalization across interleaved lanes).
func scaleStep97(data []float32, itersC1, itersC2 int32, c1, c2 float32) {
	itersCommon := min32(itersC1, itersC2)

	var i int32
	fw := int32(0)
	for i = 0; i < itersCommon; i++ {
		data[fw] *= c1
		data[fw+1] *= c2
		fw += 2
	}
	if i < itersC1 {
		data[fw] *= c1
	} else if i < itersC2 {
		data[fw+1] *= c2
	}
}

func deinterleave97(data []float32, dn, sn int32, evenLow bool) {
	width := int(dn + sn)
	tmp := make([]float32, width)

	if evenLow {
		for i := int32(0); i < sn; i++ {
			tmp[i] = data[2*i]
		}
		for i := int32(0); i < dn; i++ {
			tmp[sn+i] = data[2*i+1]
		}
	} else {
		for i := int32(0); i < sn; i++ {
			tmp[i] = data[2*i+1]
		}
		for i := int32(0); i < dn; i++ {
			tmp[sn+i] = data[2*i]
		}
	}

	copy(data, tmp)
}

func interleave97(data []float32, dn, sn int32, evenLow bool) {
	width := int(dn + sn)
	tmp := make([]float32, width)

	if evenLow {
		for i := int32(0); i < sn; i++ {
			tmp[2*i] = data[i]
		}
		for i := int32(0); i < dn; i++ {
			tmp[2*i+1] = data[sn+i]
		}
	} else {
		for i := int32(0); i < sn; i++ {
			tmp[2*i+1] = data[i]
		}
		for i := int32(0); i < dn; i++ {
			tmp[2*i] = data[sn+i]
		}
	}

	copy(data, tmp)
}

// Inverse97Row applies the inverse 9/7 lifting schedule in place to one
// row or column laid out as [low-pass | high-pass]. cas mirrors
// Forward97Row. The scale step preserves BUG_WEIRD_TWO_INVK (spec.md §9):
// the high-pass lane is scaled by twoInvK97, not invK97.
func Inverse97Row(data []float32, cas int) {
	width := len(data)
	if width <= 1 {
		return
	}

	var sn, dn int32
	if cas == 0 {
		sn = int32((width + 1) >> 1)
	} else {
		sn = int32(width >> 1)
	}
	dn = int32(width) - sn

	var a, b int32
	if cas == 0 {
		a, b = 0, 1
	} else {
		a, b = 1, 0
	}

	interleave97(data, dn, sn, cas == 0)

	if a == 0 {
		scaleStep97(data, sn, dn, k97, twoInvK97)
	} else {
		scaleStep97(data, dn, sn, twoInvK97, k97)
	}

	decodeStep97(data, b, a+1, sn, min32(sn, dn-a), delta97)
	decodeStep97(data, a, b+1, dn, min32(dn, sn-b), gamma97)
	decodeStep97(data, b, a+1, sn, min32(sn, dn-a), beta97)
	decodeStep97(data, a, b+1, dn, min32(dn, sn-b), alpha97)
}

func decodeStep97(data []float32, flStart, fwStart, end, m int32, c float32) {
	encodeStep97(data, flStart, fwStart, end, m, -c)
}

// lanes97 is the SIMD-width this engine batches 9/7 vertical passes at
// (spec.md §3, "Scratch wavelet buffer").
const lanes97 = 8

// Scratch97 is the interleaved 8-lane scratch buffer for the 9/7 vertical
// pass: slot i, lane c lives at flat index i*8+c, i.e. 8 consecutive
// floats from 8 adjacent columns (or rows) share one slot. WinL0/WinL1/
// WinH0/WinH1 record the low-/high-pass subband window a PartialTransform
// pass populated, in subband-relative coordinates (spec.md §3, §4.5).
type Scratch97 struct {
	Data                       []float32
	WinL0, WinL1, WinH0, WinH1 int
}

// NewScratch97 allocates a scratch buffer with room for slots slots (8
// lanes each).
func NewScratch97(slots int) *Scratch97 {
	return &Scratch97{Data: make([]float32, slots*lanes97)}
}

// Lane returns lane c of the scratch as a strided view: element i of the
// returned slice is scratch slot i, lane c.
func (s *Scratch97) Lane(c, slots int) laneView97 {
	return laneView97{data: s.Data, lane: c, slots: slots}
}

// laneView97 is a []float32-like strided accessor over one lane of a
// Scratch97, used so the scalar Forward97Row/Inverse97Row kernels can run
// unmodified against interleaved storage.
type laneView97 struct {
	data  []float32
	lane  int
	slots int
}

func (v laneView97) extract() []float32 {
	row := make([]float32, v.slots)
	for i := 0; i < v.slots; i++ {
		row[i] = v.data[i*lanes97+v.lane]
	}
	return row
}

func (v laneView97) store(row []float32) {
	for i := 0; i < v.slots; i++ {
		v.data[i*lanes97+v.lane] = row[i]
	}
}

// ForwardVertical97 runs the forward 9/7 lifting schedule independently
// across `lanes` (<=8) columns held in scratch, covering `slots` samples
// per lane. Lanes beyond `lanes` are left untouched (the caller
// zero-padded them on fetch, per spec.md §4.4's fetch-cols helper).
func ForwardVertical97(scratch *Scratch97, slots, lanes, cas int) {
	for c := 0; c < lanes; c++ {
		lv := scratch.Lane(c, slots)
		row := lv.extract()
		Forward97Row(row, cas)
		lv.store(row)
	}
}

// InverseVertical97 runs the inverse 9/7 lifting schedule independently
// across `lanes` (<=8) columns held in scratch.
func InverseVertical97(scratch *Scratch97, slots, lanes, cas int) {
	for c := 0; c < lanes; c++ {
		lv := scratch.Lane(c, slots)
		row := lv.extract()
		Inverse97Row(row, cas)
		lv.store(row)
	}
}
