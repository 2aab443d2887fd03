package genetic

// BitVector is a selection vector of arbitrary length backed by a bool slice
type BitVector struct {
	bits []bool
}

// NewBitVector creates an all-unset vector of n positions
func NewBitVector(n int) *BitVector {
	return &BitVector{bits: make([]bool, n)}
}

func (v *BitVector) Len() int {
	return len(v.bits)
}

func (v *BitVector) Get(i int) bool {
	return v.bits[i]
}

func (v *BitVector) Set(i int, value bool) {
	v.bits[i] = value
}

func (v *BitVector) Flip(i int) {
	v.bits[i] = !v.bits[i]
}

func (v *BitVector) SetAll(value bool) {
	for i := range v.bits {
		v.bits[i] = value
	}
}

func (v *BitVector) Count() int {
	count := 0
	for _, b := range v.bits {
		if b {
			count++
		}
	}
	return count
}

// Splice writes a[:cut] then b[cut:] into v
// All three vectors must have the same length
func (v *BitVector) Splice(a, b *BitVector, cut int) {
	copy(v.bits[:cut], a.bits[:cut])
	copy(v.bits[cut:], b.bits[cut:])
}

func (v *BitVector) CopyFrom(src *BitVector) {
	copy(v.bits, src.bits)
}
