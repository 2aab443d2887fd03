package genetic

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBits128_MatchesBitVector(t *testing.T) {
	for _, n := range []int{1, 7, 63, 64, 65, 100, 127, 128} {
		rng := rand.New(rand.NewPCG(uint64(n), 99))
		dyn := NewBitVector(n)
		packed := NewBits128(n)

		for range 500 {
			i := rng.IntN(n)
			switch rng.IntN(4) {
			case 0:
				dyn.Set(i, true)
				packed.Set(i, true)
			case 1:
				dyn.Set(i, false)
				packed.Set(i, false)
			case 2:
				dyn.Flip(i)
				packed.Flip(i)
			case 3:
				v := rng.IntN(2) == 0
				dyn.SetAll(v)
				packed.SetAll(v)
			}

			require.Equal(t, dyn.Count(), packed.Count(), "n=%d", n)
			for j := range n {
				require.Equal(t, dyn.Get(j), packed.Get(j), "n=%d pos=%d", n, j)
			}
		}
	}
}

func TestBits128_SetAllStaysWithinLength(t *testing.T) {
	for _, n := range []int{1, 64, 65, 128} {
		v := NewBits128(n)
		v.SetAll(true)
		assert.Equal(t, n, v.Count(), "n=%d", n)
		assert.Equal(t, n, v.Len())
	}
}

func TestSplice_BothEncodings(t *testing.T) {
	const n = 100
	a, b, dst := NewBitVector(n), NewBitVector(n), NewBitVector(n)
	pa, pb, pdst := NewBits128(n), NewBits128(n), NewBits128(n)
	a.SetAll(true)
	pa.SetAll(true)

	for _, cut := range []int{1, 30, 64, 65, 99} {
		dst.Splice(a, b, cut)
		pdst.Splice(pa, pb, cut)

		for i := range n {
			want := i < cut
			assert.Equal(t, want, dst.Get(i), "dynamic cut=%d pos=%d", cut, i)
			assert.Equal(t, want, pdst.Get(i), "packed cut=%d pos=%d", cut, i)
		}
		assert.Equal(t, cut, dst.Count())
		assert.Equal(t, cut, pdst.Count())
	}
}

func TestCopyFrom_IsDeep(t *testing.T) {
	src := NewIndividual(NewBitVector(4))
	src.Genes.Set(2, true)
	src.BitsSet = 1

	dst := NewIndividual(NewBitVector(4))
	dst.CopyFrom(src)
	src.Genes.Set(2, false)

	assert.True(t, dst.Genes.Get(2))
	assert.Equal(t, 1, dst.BitsSet)
}

func TestNewBits128_PanicsAboveLimit(t *testing.T) {
	assert.Panics(t, func() { NewBits128(MaxBits128 + 1) })
}

func TestPairedIndividual_SpliceAcrossSides(t *testing.T) {
	a := NewPairedIndividual(3, 2)
	b := NewPairedIndividual(3, 2)
	a.SetAll(true)

	child := NewPairedIndividual(3, 2)

	// Cut inside the first side: first[0:2] from a, rest from b
	child.Splice(a, b, 2)
	assert.Equal(t, []bool{true, true, false}, bitsOf(child.First.Genes))
	assert.Equal(t, []bool{false, false}, bitsOf(child.Second.Genes))

	// Cut inside the second side: all of first and second[0:1] from a
	child.Splice(a, b, 4)
	assert.Equal(t, []bool{true, true, true}, bitsOf(child.First.Genes))
	assert.Equal(t, []bool{true, false}, bitsOf(child.Second.Genes))

	// Cut on the boundary
	child.Splice(a, b, 3)
	assert.Equal(t, []bool{true, true, true}, bitsOf(child.First.Genes))
	assert.Equal(t, []bool{false, false}, bitsOf(child.Second.Genes))
}

func bitsOf(s Selector) []bool {
	out := make([]bool, s.Len())
	for i := range out {
		out[i] = s.Get(i)
	}
	return out
}
