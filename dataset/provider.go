// Package dataset supplies value sets for solver runs: an explicitly owned,
// lazily loaded initial set and random draws from it.
package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

//go:embed initial_set.json
var initialSetJSON []byte

// ErrEmptySet is returned when a source decodes to no values
var ErrEmptySet = errors.New("dataset: empty value set")

// MeanPlaces is the rounding applied to the set mean
const MeanPlaces = 2

// LoadFunc produces the raw value set on first use
type LoadFunc func() ([]decimal.Decimal, error)

// Provider owns one value set, loaded at most once
// Safe for concurrent use; callers receive copies
type Provider struct {
	load LoadFunc

	once   sync.Once
	values []decimal.Decimal
	mean   decimal.Decimal
	err    error
}

// NewProvider wraps an arbitrary loader
func NewProvider(load LoadFunc) *Provider {
	return &Provider{load: load}
}

// Embedded returns a provider over the built-in initial set
func Embedded() *Provider {
	return NewProvider(func() ([]decimal.Decimal, error) {
		return Decode(bytes.NewReader(initialSetJSON))
	})
}

// FromFile returns a provider reading a JSON array of numbers from path
func FromFile(path string) *Provider {
	return NewProvider(func() ([]decimal.Decimal, error) {
		return LoadFile(path)
	})
}

func (p *Provider) ensure() {
	p.once.Do(func() {
		values, err := p.load()
		if err != nil {
			p.err = err
			return
		}
		if len(values) == 0 {
			p.err = ErrEmptySet
			return
		}
		p.values = values
		p.mean = decimal.Sum(values[0], values[1:]...).
			Div(decimal.NewFromInt(int64(len(values)))).
			Round(MeanPlaces)
	})
}

// Values returns a copy of the loaded set
func (p *Provider) Values() ([]decimal.Decimal, error) {
	p.ensure()
	if p.err != nil {
		return nil, p.err
	}
	return slices.Clone(p.values), nil
}

// Mean returns the set mean rounded to MeanPlaces
func (p *Provider) Mean() (decimal.Decimal, error) {
	p.ensure()
	return p.mean, p.err
}

// Len returns the set size, zero if loading failed
func (p *Provider) Len() int {
	p.ensure()
	return len(p.values)
}

// Decode reads a JSON array of numbers (or numeric strings)
func Decode(r io.Reader) ([]decimal.Decimal, error) {
	var values []decimal.Decimal
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("dataset: decode: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrEmptySet
	}
	return values, nil
}

// LoadFile decodes the JSON array stored at path
func LoadFile(path string) ([]decimal.Decimal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	values, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}
