package prop

import "fmt"

// FloatConstraint constrains a frame rate.
type FloatConstraint interface {
	Compare(float32) (float64, bool)
	Value() (float32, bool)
}

// Float asks for a frame rate close to the value. Every rate matches, and
// drivers that don't report one are merged with the asked value.
type Float float32

// Compare implements FloatConstraint.
func (f Float) Compare(a float32) (float64, bool) {
	return relativeDistance(float64(a), float64(f)), true
}

// Value implements FloatConstraint.
func (f Float) Value() (float32, bool) { return float32(f), true }

func (f Float) String() string {
	return fmt.Sprintf("%.2f fps (ideal)", f)
}
