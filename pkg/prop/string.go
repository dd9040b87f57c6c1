package prop

import "fmt"

// StringConstraint constrains a device ID.
type StringConstraint interface {
	Compare(string) (float64, bool)
	Value() (string, bool)
}

// StringExact pins a driver by its ID.
type StringExact string

// Compare implements StringConstraint.
func (s StringExact) Compare(a string) (float64, bool) {
	if string(s) != a {
		return 1, false
	}
	return 0, true
}

// Value implements StringConstraint.
func (s StringExact) Value() (string, bool) { return string(s), true }

func (s StringExact) String() string {
	return fmt.Sprintf("%q (exact)", string(s))
}
