package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a solved quantity: either a single number, or the ordered pair
// of roots produced by the quadratic time formula.
//
// The zero Value is the scalar 0.
type Value struct {
	first  float64
	second float64
	pair   bool
}

// Scalar creates a single-number Value.
func Scalar(f float64) Value {
	return Value{first: f}
}

// Pair creates a two-root Value. Order is preserved.
func Pair(first, second float64) Value {
	return Value{first: first, second: second, pair: true}
}

// IsPair reports whether v holds two roots.
func (v Value) IsPair() bool {
	return v.pair
}

// Float returns the scalar, or the first root of a pair.
func (v Value) Float() float64 {
	return v.first
}

// Roots returns both roots. For a scalar both are the scalar.
func (v Value) Roots() (float64, float64) {
	if !v.pair {
		return v.first, v.first
	}
	return v.first, v.second
}

// Floats returns the value as a slice of one or two numbers.
func (v Value) Floats() []float64 {
	if v.pair {
		return []float64{v.first, v.second}
	}
	return []float64{v.first}
}

// Equal reports whether two values hold the same numbers in the same shape.
func (v Value) Equal(o Value) bool {
	return v.pair == o.pair && v.first == o.first && (!v.pair || v.second == o.second)
}

// String renders the value for text output, e.g. "11" or "(3, -8)".
func (v Value) String() string {
	if v.pair {
		return fmt.Sprintf("(%s, %s)", FormatNumber(v.first), FormatNumber(v.second))
	}
	return FormatNumber(v.first)
}

// MarshalJSON encodes a scalar as a number and a pair as a 2-element array.
func (v Value) MarshalJSON() ([]byte, error) {
	for _, f := range v.Floats() {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("non-finite result %v", f)
		}
	}
	if v.pair {
		return json.Marshal([2]float64{v.first, v.second})
	}
	return json.Marshal(v.first)
}

// UnmarshalJSON accepts a number or a 2-element array of numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Scalar(f)
		return nil
	}
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("result must be a number or an array of two numbers: %w", err)
	}
	if len(arr) != 2 {
		return fmt.Errorf("result array must have exactly 2 elements, got %d", len(arr))
	}
	*v = Pair(arr[0], arr[1])
	return nil
}

// FormatNumber renders f as the shortest decimal that round-trips.
// Exponent notation is used only for very large or very small magnitudes.
// Negative zero renders as "0".
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs < 1e-6 || abs >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
