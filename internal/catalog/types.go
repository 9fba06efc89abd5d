package catalog

import "github.com/FuadAliah/celtis-pos/pkg/enums"

// SizePrice overrides the base price for one size of a sized item.
type SizePrice struct {
	Size  enums.SizeOption `json:"size" validate:"required,enum"`
	Price float64          `json:"price" validate:"gte=0"`
}

// Modifier is an add-on, removal or extra a menu item can be customized with.
type Modifier struct {
	ID       string                 `json:"id" validate:"required"`
	Name     string                 `json:"name" validate:"required"`
	Price    float64                `json:"price" validate:"gte=0"`
	Category enums.ModifierCategory `json:"category" validate:"required,enum"`
}

// SelectedModifier is the copy of a modifier taken when it is chosen, so
// later menu edits never change a placed order.
type SelectedModifier struct {
	ID    string  `json:"id" validate:"required"`
	Name  string  `json:"name"`
	Price float64 `json:"price" validate:"gte=0"`
}

// Item is one menu entry.
type Item struct {
	ID          string      `json:"id" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	BasePrice   float64     `json:"basePrice" validate:"gte=0"`
	SizePricing []SizePrice `json:"sizePricing,omitempty" validate:"omitempty,dive"`
	HasSizes    bool        `json:"hasSizes"`
	SKU         string      `json:"sku" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Description string      `json:"description,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Available   bool        `json:"available"`
	Modifiers   []Modifier  `json:"modifiers,omitempty" validate:"omitempty,dive"`
}

// Select snapshots the modifier.
func (m Modifier) Select() SelectedModifier {
	return SelectedModifier{ID: m.ID, Name: m.Name, Price: m.Price}
}

// Modifier finds one of the item's modifiers by id.
func (i Item) Modifier(id string) (Modifier, bool) {
	for _, mod := range i.Modifiers {
		if mod.ID == id {
			return mod, true
		}
	}
	return Modifier{}, false
}

// PriceForSize returns the size override for size, if the item has one.
func (i Item) PriceForSize(size enums.SizeOption) (float64, bool) {
	for _, sp := range i.SizePricing {
		if sp.Size == size {
			return sp.Price, true
		}
	}
	return 0, false
}

// Clone returns a deep copy so callers can't mutate shared slices.
func (i Item) Clone() Item {
	out := i
	if i.SizePricing != nil {
		out.SizePricing = append([]SizePrice(nil), i.SizePricing...)
	}
	if i.Modifiers != nil {
		out.Modifiers = append([]Modifier(nil), i.Modifiers...)
	}
	return out
}
