package order

import (
	"github.com/FuadAliah/celtis-pos/internal/catalog"
	"github.com/FuadAliah/celtis-pos/internal/pricing"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
)

// UnknownCategory marks line items rebuilt from a draft snapshot.
const UnknownCategory = "Unknown"

// LineItem is one entry in the active order. UnitPrice and Subtotal are
// derived and only ever set by the engine.
type LineItem struct {
	MenuItem            catalog.Item               `json:"menuItem"`
	Quantity            int                        `json:"quantity"`
	Size                enums.SizeOption           `json:"size,omitempty"`
	Customizations      []catalog.SelectedModifier `json:"customizations"`
	SpecialInstructions string                     `json:"specialInstructions,omitempty"`
	UnitPrice           float64                    `json:"itemPrice"`
	Subtotal            float64                    `json:"subtotal"`
}

func (l LineItem) clone() LineItem {
	out := l
	out.MenuItem = l.MenuItem.Clone()
	out.Customizations = append([]catalog.SelectedModifier{}, l.Customizations...)
	return out
}

// Order is the active order with its derived totals.
type Order struct {
	Items []LineItem `json:"items"`
	pricing.Totals
}

func (o Order) clone() Order {
	out := Order{Totals: o.Totals, Items: make([]LineItem, len(o.Items))}
	for i, item := range o.Items {
		out.Items[i] = item.clone()
	}
	return out
}

// IsEmpty reports whether the order has no line items.
func (o Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// AddItemInput describes one selection from the menu.
type AddItemInput struct {
	Item      catalog.Item
	Size      enums.SizeOption
	Modifiers []catalog.SelectedModifier
	Note      string
}
