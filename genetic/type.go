package genetic

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// --- Core Type Constraints ---

// Genes is the capability shared by every selection vector encoding
// G is the concrete encoding itself, so splicing and copying stay allocation-free
type Genes[G any] interface {
	// Len returns the number of positions in the vector
	Len() int
	// Get reports whether position i is selected
	Get(i int) bool
	// Set selects or deselects position i
	Set(i int, value bool)
	// Flip inverts position i
	Flip(i int)
	// SetAll sets every position to value
	SetAll(value bool)
	// Count returns the number of selected positions
	Count() int
	// Splice overwrites the receiver with a[:cut] followed by b[cut:]
	Splice(a, b G, cut int)
	// CopyFrom overwrites the receiver with the bits of src
	CopyFrom(src G)
}

// Selector is the non-generic view of a selection vector used by seeding
type Selector interface {
	Len() int
	Get(i int) bool
	Set(i int, value bool)
	SetAll(value bool)
}

// MaxFitness is the sentinel assigned to unevaluated and infeasible candidates
// It is the largest value representable by a 96-bit decimal mantissa and is worse than any real distance
var MaxFitness = decimal.RequireFromString("79228162514264337593543950335")

// State is the lifecycle position of a solver
type State uint8

const (
	StateUninitialized State = iota
	StateReady
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "uninitialized"
	}
}

// chance returns true with the given probability
func chance(rng *rand.Rand, probability float64) bool {
	return rng.Float64() < probability
}
