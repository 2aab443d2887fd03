package genetic

import "math/bits"

// MaxBits128 is the largest problem size the packed encoding supports
const MaxBits128 = 128

// Bits128 is a packed selection vector for up to 128 positions
// Positions 0-63 live in lo, 64-127 in hi
type Bits128 struct {
	lo, hi uint64
	n      int
}

// NewBits128 creates an all-unset packed vector of n positions, n must be in [0, 128]
func NewBits128(n int) *Bits128 {
	if n < 0 || n > MaxBits128 {
		panic("genetic: Bits128 length out of range")
	}
	return &Bits128{n: n}
}

func (v *Bits128) Len() int {
	return v.n
}

func (v *Bits128) Get(i int) bool {
	if i < 64 {
		return v.lo&(1<<uint(i)) != 0
	}
	return v.hi&(1<<uint(i-64)) != 0
}

func (v *Bits128) Set(i int, value bool) {
	if i < 64 {
		if value {
			v.lo |= 1 << uint(i)
		} else {
			v.lo &^= 1 << uint(i)
		}
		return
	}
	if value {
		v.hi |= 1 << uint(i-64)
	} else {
		v.hi &^= 1 << uint(i-64)
	}
}

func (v *Bits128) Flip(i int) {
	if i < 64 {
		v.lo ^= 1 << uint(i)
		return
	}
	v.hi ^= 1 << uint(i-64)
}

// SetAll only touches the first n positions so Count stays bounded by Len
func (v *Bits128) SetAll(value bool) {
	if !value {
		v.lo, v.hi = 0, 0
		return
	}
	v.lo, v.hi = mask128(v.n)
}

func (v *Bits128) Count() int {
	return bits.OnesCount64(v.lo) + bits.OnesCount64(v.hi)
}

// Splice writes a[:cut] then b[cut:] into v using word masks
func (v *Bits128) Splice(a, b *Bits128, cut int) {
	loMask, hiMask := mask128(cut)
	v.lo = (a.lo & loMask) | (b.lo &^ loMask)
	v.hi = (a.hi & hiMask) | (b.hi &^ hiMask)
}

func (v *Bits128) CopyFrom(src *Bits128) {
	v.lo, v.hi = src.lo, src.hi
}

// mask128 returns the word masks covering positions [0, n)
func mask128(n int) (lo, hi uint64) {
	switch {
	case n <= 0:
		return 0, 0
	case n < 64:
		return 1<<uint(n) - 1, 0
	case n == 64:
		return ^uint64(0), 0
	case n < 128:
		return ^uint64(0), 1<<uint(n-64) - 1
	default:
		return ^uint64(0), ^uint64(0)
	}
}
