// Package resolver maps heterogeneous raw financial records onto canonical
// quantities using ordered candidate chains. The first candidate that
// yields a non-zero value wins; a quantity with no match resolves to 0, so
// a legitimately zero value cannot be told apart from a missing one.
package resolver

import (
	"math"

	"ValueSentinel/internal/model"
)

// Fields holds every canonical quantity resolved from one record.
type Fields struct {
	values [quantityCount]float64
}

// Get returns the resolved value of q, or 0 for an unknown quantity.
func (f Fields) Get(q Quantity) float64 {
	if q < 0 || q >= quantityCount {
		return 0
	}
	return f.values[q]
}

// Match describes which candidate resolved a quantity.
type Match struct {
	Quantity Quantity
	Value    float64
	Source   string // empty when nothing matched
}

// Resolve resolves all canonical quantities of values.
func Resolve(values model.RawValues) Fields {
	var f Fields
	for q := Quantity(0); q < quantityCount; q++ {
		f.values[q], _ = Lookup(values, q)
	}
	return f
}

// Lookup resolves a single quantity and reports the candidate that matched.
func Lookup(values model.RawValues, q Quantity) (float64, string) {
	if q < 0 || q >= quantityCount {
		return 0, ""
	}
	for _, c := range candidates[q] {
		v := c.Resolve(values)
		if v != 0 && !math.IsNaN(v) {
			return v, c.Name
		}
	}
	return 0, ""
}

// Explain resolves every quantity and returns the match for each, in
// declaration order.
func Explain(values model.RawValues) []Match {
	matches := make([]Match, 0, quantityCount)
	for q := Quantity(0); q < quantityCount; q++ {
		v, src := Lookup(values, q)
		matches = append(matches, Match{Quantity: q, Value: v, Source: src})
	}
	return matches
}
