package prop

import (
	"fmt"
	"math"
)

// IntConstraint constrains a size.
type IntConstraint interface {
	Compare(int) (float64, bool)
	Value() (int, bool)
}

// Int asks for a size close to the value. Every size matches.
type Int int

// Compare implements IntConstraint.
func (i Int) Compare(a int) (float64, bool) {
	return relativeDistance(float64(a), float64(i)), true
}

// Value implements IntConstraint.
func (i Int) Value() (int, bool) { return int(i), true }

func (i Int) String() string {
	return fmt.Sprintf("%d (ideal)", i)
}

// IntExact only matches the value itself.
type IntExact int

// Compare implements IntConstraint.
func (i IntExact) Compare(a int) (float64, bool) {
	if int(i) != a {
		return 1, false
	}
	return 0, true
}

// Value implements IntConstraint.
func (i IntExact) Value() (int, bool) { return int(i), true }

func (i IntExact) String() string {
	return fmt.Sprintf("%d (exact)", i)
}

// relativeDistance is |a-b| scaled by the larger magnitude, in [0,1]. Two
// zeroes are at distance 0.
func relativeDistance(a, b float64) float64 {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return 0
	}
	return math.Abs(a-b) / scale
}
