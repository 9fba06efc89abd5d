package sales

import (
	"time"

	"github.com/FuadAliah/celtis-pos/internal/catalog"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
)

// Item is the denormalized snapshot of one order line inside a sale.
type Item struct {
	MenuItemID          string                     `json:"menuItemId"`
	MenuItemName        string                     `json:"menuItemName"`
	MenuItemSKU         string                     `json:"menuItemSku"`
	Quantity            int                        `json:"quantity"`
	Size                enums.SizeOption           `json:"size,omitempty"`
	Customizations      []catalog.SelectedModifier `json:"customizations"`
	SpecialInstructions string                     `json:"specialInstructions,omitempty"`
	UnitPrice           float64                    `json:"unitPrice"`
	Subtotal            float64                    `json:"subtotal"`
}

// Sale is a completed or draft transaction. Completed sales are never
// modified after they are recorded.
type Sale struct {
	ID            string              `json:"id"`
	SaleNumber    string              `json:"saleNumber"`
	Items         []Item              `json:"items"`
	Subtotal      float64             `json:"subtotal"`
	Tax           float64             `json:"tax"`
	Discount      float64             `json:"discount"`
	Total         float64             `json:"total"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	Status        enums.SaleStatus    `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	CompletedAt   *time.Time          `json:"completedAt,omitempty"`
	StaffID       string              `json:"staffId"`
	StaffName     string              `json:"staffName"`
	StaffRole     string              `json:"staffRole"`
	Notes         string              `json:"notes,omitempty"`
}

// Clone deep-copies the sale so callers never share item slices.
func (s Sale) Clone() Sale {
	out := s
	if s.Items != nil {
		out.Items = make([]Item, len(s.Items))
		for i, item := range s.Items {
			out.Items[i] = item.Clone()
		}
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

func (i Item) Clone() Item {
	out := i
	out.Customizations = append([]catalog.SelectedModifier{}, i.Customizations...)
	return out
}

func cloneAll(in []Sale) []Sale {
	out := make([]Sale, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
