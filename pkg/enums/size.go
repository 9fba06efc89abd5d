package enums

import "fmt"

// SizeOption is the portion size a sized menu item is ordered in.
type SizeOption string

const (
	SizeSmall  SizeOption = "small"
	SizeMedium SizeOption = "medium"
	SizeLarge  SizeOption = "large"
)

var validSizeOptions = []SizeOption{
	SizeSmall,
	SizeMedium,
	SizeLarge,
}

// String implements fmt.Stringer.
func (s SizeOption) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SizeOption.
func (s SizeOption) IsValid() bool {
	for _, candidate := range validSizeOptions {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSizeOption converts raw input into a SizeOption.
func ParseSizeOption(value string) (SizeOption, error) {
	for _, candidate := range validSizeOptions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid size %q", value)
}
