package dwt

// LiftingKernels53 implements the reversible 5/3 integer wavelet filter
// (spec.md §4.1, §4.2). Direct descendant of the teacher's
// jpeg2000/wavelet/dwt53.go, generalized to operate on a tile row/column in
// place with the wrapping-arithmetic discipline spec.md §4.1 requires
// (JPEG 2000 Part 1 Annex F treats overflow on adversarial input as
// defined modular behavior, not UB).

const filterWidth53 = 2

// wrapAdd32 and wrapSub32 perform 32-bit modular add/sub, matching Annex
// F's opj_int_add/opj_int_sub: coefficient arithmetic on untrusted input
// must not rely on Go's (currently well-defined but filter-logic-opaque)
// two's-complement wraparound without naming the behavior at the call
// site.
func wrapAdd32(a, b int32) int32 {
	return int32(uint32(a) + uint32(b))
}

func wrapSub32(a, b int32) int32 {
	return int32(uint32(a) - uint32(b))
}

// Forward53Row applies the forward 5/3 lifting schedule in place to one
// row or column of len(data) samples, producing a [low-pass | high-pass]
// layout. cas selects the parity of the first interleaved sample: 0 =
// even/low-pass first, 1 = odd/high-pass first.
func Forward53Row(data []int32, cas int) {
	width := len(data)

	if cas == 0 {
		if width <= 1 {
			return
		}
		sn := int32((width + 1) >> 1)
		dn := int32(width) - sn
		tmp := make([]int32, width)

		var i int32
		for i = 0; i < sn-1; i++ {
			tmp[sn+i] = wrapSub32(data[2*i+1], (data[i*2]+data[(i+1)*2])>>1)
		}
		if width%2 == 0 {
			tmp[sn+i] = wrapSub32(data[2*i+1], data[i*2])
		}

		data[0] = wrapAdd32(data[0], (tmp[sn]+tmp[sn]+2)>>2)
		for i = 1; i < dn; i++ {
			data[i] = wrapAdd32(data[2*i], (tmp[sn+(i-1)]+tmp[sn+i]+2)>>2)
		}
		if width%2 == 1 {
			data[i] = wrapAdd32(data[2*i], (tmp[sn+(i-1)]+tmp[sn+(i-1)]+2)>>2)
		}

		copy(data[sn:], tmp[sn:sn+dn])
		return
	}

	// cas == 1
	if width == 1 {
		data[0] = wrapAdd32(data[0], data[0])
		return
	}
	sn := int32(width >> 1)
	dn := int32(width) - sn
	tmp := make([]int32, width)

	tmp[sn+0] = wrapSub32(data[0], data[1])
	var i int32
	for i = 1; i < sn; i++ {
		tmp[sn+i] = wrapSub32(data[2*i], (data[2*i+1]+data[2*(i-1)+1])>>1)
	}
	if width%2 == 1 {
		tmp[sn+i] = wrapSub32(data[2*i], data[2*(i-1)+1])
	}

	for i = 0; i < dn-1; i++ {
		data[i] = wrapAdd32(data[2*i+1], (tmp[sn+i]+tmp[sn+i+1]+2)>>2)
	}
	if width%2 == 0 {
		data[i] = wrapAdd32(data[2*i+1], (tmp[sn+i]+tmp[sn+i]+2)>>2)
	}

	copy(data[sn:], tmp[sn:sn+dn])
}

// Inverse53Row applies the inverse 5/3 lifting schedule in place to one
// row or column laid out as [low-pass | high-pass]. cas mirrors
// Forward53Row.
func Inverse53Row(data []int32, cas int) {
	width := len(data)

	if cas == 0 {
		if width <= 1 {
			return
		}
		sn := int32((width + 1) >> 1)
		tmp := make([]int32, width)

		var d1c, d1n, s1n, s0c, s0n int32
		s1n = data[0]
		d1n = data[sn]
		s0n = wrapSub32(s1n, (d1n+1)>>1)

		var i, j int32
		for i, j = 0, 1; i < int32(width)-3; i, j = i+2, j+1 {
			d1c = d1n
			s0c = s0n

			s1n = data[j]
			d1n = data[sn+j]

			s0n = wrapSub32(s1n, (d1c+d1n+2)>>2)

			tmp[i] = s0c
			tmp[i+1] = wrapAdd32(d1c, (s0c+s0n)>>1)
		}

		tmp[i] = s0n

		if width&1 != 0 {
			tmp[width-1] = wrapSub32(data[(width-1)/2], (d1n+1)>>1)
			tmp[width-2] = wrapAdd32(d1n, (s0n+tmp[width-1])>>1)
		} else {
			tmp[width-1] = wrapAdd32(d1n, s0n)
		}

		copy(data, tmp)
		return
	}

	// cas == 1
	if width == 1 {
		data[0] >>= 1
		return
	}
	if width == 2 {
		o1 := wrapSub32(data[0], (data[1]+1)>>1)
		o0 := wrapAdd32(data[1], o1)
		data[0] = o0
		data[1] = o1
		return
	}

	sn := int32(width >> 1)
	tmp := make([]int32, width)

	var s1, s2, dc, dn int32
	s1 = data[sn+1]
	dc = wrapSub32(data[0], (data[sn]+s1+2)>>2)
	tmp[0] = wrapAdd32(data[sn], dc)

	notOdd := int32(0)
	if width&1 == 0 {
		notOdd = 1
	}
	limit := int32(width) - 2 - notOdd

	var i, j int32
	for i, j = 1, 1; i < limit; i, j = i+2, j+1 {
		s2 = data[sn+j+1]

		dn = wrapSub32(data[j], (s1+s2+2)>>2)
		tmp[i] = dc
		tmp[i+1] = wrapAdd32(s1, (dn+dc)>>1)

		dc = dn
		s1 = s2
	}

	tmp[i] = dc

	if width&1 == 0 {
		dn = wrapSub32(data[width/2-1], (s1+1)>>1)
		tmp[width-2] = wrapAdd32(s1, (dn+dc)>>1)
		tmp[width-1] = dn
	} else {
		tmp[width-1] = wrapAdd32(s1, dc)
	}

	copy(data, tmp)
}
