package enums

import "fmt"

// ModifierCategory groups modifiers into additions, removals and extras.
type ModifierCategory string

const (
	ModifierCategoryAdd    ModifierCategory = "add"
	ModifierCategoryRemove ModifierCategory = "remove"
	ModifierCategoryExtra  ModifierCategory = "extra"
)

var validModifierCategories = []ModifierCategory{
	ModifierCategoryAdd,
	ModifierCategoryRemove,
	ModifierCategoryExtra,
}

// String implements fmt.Stringer.
func (m ModifierCategory) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ModifierCategory.
func (m ModifierCategory) IsValid() bool {
	for _, candidate := range validModifierCategories {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseModifierCategory converts raw input into a ModifierCategory.
func ParseModifierCategory(value string) (ModifierCategory, error) {
	for _, candidate := range validModifierCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid modifier category %q", value)
}
