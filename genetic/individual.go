package genetic

import (
	"github.com/shopspring/decimal"
)

// --- Core Data Structures ---

// Individual is one single-set candidate: a selection vector with its cached evaluation
// Fitness and BitsSet always describe the current bit pattern; every mutation is followed by re-evaluation
type Individual[G Genes[G]] struct {
	// Genes holds the selection vector, one position per set element
	Genes G
	// Fitness is the distance from the target condition (lower = better)
	Fitness decimal.Decimal
	// BitsSet is the number of selected positions
	BitsSet int
}

// NewIndividual wraps genes in an unevaluated individual
func NewIndividual[G Genes[G]](genes G) *Individual[G] {
	return &Individual[G]{
		Genes:   genes,
		Fitness: MaxFitness,
	}
}

// Compare orders individuals by fitness only
func (ind *Individual[G]) Compare(other *Individual[G]) int {
	return ind.Fitness.Cmp(other.Fitness)
}

// Splice overwrites the genes with a[:cut] followed by b[cut:]; the caller re-evaluates
func (ind *Individual[G]) Splice(a, b *Individual[G], cut int) {
	ind.Genes.Splice(a.Genes, b.Genes, cut)
}

// CopyFrom overwrites bits and cached evaluation with those of src
func (ind *Individual[G]) CopyFrom(src *Individual[G]) {
	ind.Genes.CopyFrom(src.Genes)
	ind.Fitness = src.Fitness
	ind.BitsSet = src.BitsSet
}

// PairedIndividual is one two-set candidate
// It exclusively owns both halves; halves are never shared between pairs
// A half's Fitness mirrors the pair Fitness, its BitsSet counts that side only
type PairedIndividual struct {
	First        *Individual[*BitVector]
	Second       *Individual[*BitVector]
	Fitness      decimal.Decimal
	TotalBitsSet int
}

// NewPairedIndividual creates an unevaluated pair over sets of size n1 and n2
func NewPairedIndividual(n1, n2 int) *PairedIndividual {
	return &PairedIndividual{
		First:   NewIndividual(NewBitVector(n1)),
		Second:  NewIndividual(NewBitVector(n2)),
		Fitness: MaxFitness,
	}
}

// Compare orders pairs by fitness only
func (p *PairedIndividual) Compare(other *PairedIndividual) int {
	return p.Fitness.Cmp(other.Fitness)
}

func (p *PairedIndividual) SetAll(value bool) {
	p.First.Genes.SetAll(value)
	p.Second.Genes.SetAll(value)
}

// Len is the combined gene length of both halves
func (p *PairedIndividual) Len() int {
	return p.First.Genes.Len() + p.Second.Genes.Len()
}

// Splice overwrites p with the first cut genes of a followed by the rest of b
// The cut position spans the concatenation First||Second
func (p *PairedIndividual) Splice(a, b *PairedIndividual, cut int) {
	n1 := p.First.Genes.Len()
	if cut >= n1 {
		p.First.Genes.CopyFrom(a.First.Genes)
		p.Second.Genes.Splice(a.Second.Genes, b.Second.Genes, cut-n1)
		return
	}
	p.First.Genes.Splice(a.First.Genes, b.First.Genes, cut)
	p.Second.Genes.CopyFrom(b.Second.Genes)
}

// CopyFrom overwrites both halves and the cached evaluation with those of src
func (p *PairedIndividual) CopyFrom(src *PairedIndividual) {
	p.First.CopyFrom(src.First)
	p.Second.CopyFrom(src.Second)
	p.Fitness = src.Fitness
	p.TotalBitsSet = src.TotalBitsSet
}
