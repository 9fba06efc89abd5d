package enums

import "fmt"

// View is the screen the terminal is showing.
type View string

const (
	ViewPOS     View = "pos"
	ViewHistory View = "history"
)

var validViews = []View{
	ViewPOS,
	ViewHistory,
}

// String implements fmt.Stringer.
func (v View) String() string {
	return string(v)
}

// IsValid reports whether the value is a known View.
func (v View) IsValid() bool {
	for _, candidate := range validViews {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseView converts raw input into a View.
func ParseView(value string) (View, error) {
	for _, candidate := range validViews {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid view %q", value)
}
