package segtree

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects the aggregate semantics of a tree.
type Kind uint8

// Supported aggregate kinds.
const (
	Sum Kind = iota
	Min
	Max
)

// PosInf and NegInf stand in for +∞ and −∞, the identities of Min and Max.
const (
	PosInf int64 = math.MaxInt64
	NegInf int64 = math.MinInt64
)

func (k Kind) String() string {
	switch k {
	case Sum:
		return "sum"
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// KindFromString finds an aggregate kind from its name (case-insensitive).
func KindFromString(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum":
		return Sum, nil
	case "min", "minimum":
		return Min, nil
	case "max", "maximum":
		return Max, nil
	}
	return Sum, fmt.Errorf("%w: unknown aggregate kind %q", ErrIllegalArguments, s)
}

// Aggregator defines how node values are aggregated up the tree and how a
// uniform additive delta affects the aggregate of a range.
//
// For values a, b, c, Combine should be associative:
//
//	Combine(Combine(a, b), c) == Combine(a, Combine(b, c))
//
// and Identity should be the neutral element:
//
//	Combine(Identity(), a) == a == Combine(a, Identity())
//
// Scale(delta, length) is the change of the aggregate of a range of length
// elements when every element is shifted by delta.
type Aggregator interface {
	Identity() int64
	Combine(a, b int64) int64
	Scale(delta int64, length int) int64
}

// Aggregator returns the aggregator for k, or nil for an unknown kind.
func (k Kind) Aggregator() Aggregator {
	switch k {
	case Sum:
		return SumAggregator{}
	case Min:
		return MinAggregator{}
	case Max:
		return MaxAggregator{}
	}
	return nil
}

// SumAggregator aggregates by addition.
type SumAggregator struct{}

// Identity returns 0.
func (SumAggregator) Identity() int64 { return 0 }

// Combine adds two values.
func (SumAggregator) Combine(a, b int64) int64 { return a + b }

// Scale multiplies delta by the range length.
func (SumAggregator) Scale(delta int64, length int) int64 {
	return delta * int64(length)
}

// MinAggregator aggregates by minimum.
type MinAggregator struct{}

// Identity returns PosInf.
func (MinAggregator) Identity() int64 { return PosInf }

// Combine returns the smaller value.
func (MinAggregator) Combine(a, b int64) int64 { return min(a, b) }

// Scale returns delta: shifting every element shifts the minimum by the same amount.
func (MinAggregator) Scale(delta int64, _ int) int64 { return delta }

// MaxAggregator aggregates by maximum.
type MaxAggregator struct{}

// Identity returns NegInf.
func (MaxAggregator) Identity() int64 { return NegInf }

// Combine returns the larger value.
func (MaxAggregator) Combine(a, b int64) int64 { return max(a, b) }

// Scale returns delta.
func (MaxAggregator) Scale(delta int64, _ int) int64 { return delta }
