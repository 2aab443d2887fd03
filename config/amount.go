package config

import (
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Amount is an exact decimal read from a YAML scalar, quoted or not
type Amount struct {
	decimal.Decimal
}

// NewAmount parses s, panicking on malformed input; intended for defaults
func NewAmount(s string) Amount {
	return Amount{decimal.RequireFromString(s)}
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", node.Line, node.Value, err)
	}
	a.Decimal = d
	return nil
}

// UnmarshalText parses command-line style input
func (a *Amount) UnmarshalText(text []byte) error {
	d, err := decimal.NewFromString(string(text))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", text, err)
	}
	a.Decimal = d
	return nil
}

func (a Amount) MarshalYAML() (any, error) {
	return a.String(), nil
}

// amountValue exposes Amount to numeric validator tags
func amountValue(v reflect.Value) any {
	if a, ok := v.Interface().(Amount); ok {
		return a.InexactFloat64()
	}
	return nil
}
