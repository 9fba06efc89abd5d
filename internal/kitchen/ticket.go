package kitchen

import (
	"time"

	"github.com/FuadAliah/celtis-pos/internal/sales"
)

// Ticket is what the kitchen needs to prepare a sale. Prices are left out.
type Ticket struct {
	SaleID        string       `json:"saleId"`
	SaleNumber    string       `json:"saleNumber"`
	StaffName     string       `json:"staffName"`
	PaymentMethod string       `json:"paymentMethod"`
	CreatedAt     time.Time    `json:"createdAt"`
	Notes         string       `json:"notes,omitempty"`
	Items         []TicketItem `json:"items"`
}

type TicketItem struct {
	Name      string   `json:"name"`
	SKU       string   `json:"sku"`
	Quantity  int      `json:"quantity"`
	Size      string   `json:"size,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	Note      string   `json:"note,omitempty"`
}

func TicketFromSale(sale sales.Sale) Ticket {
	ticket := Ticket{
		SaleID:        sale.ID,
		SaleNumber:    sale.SaleNumber,
		StaffName:     sale.StaffName,
		PaymentMethod: sale.PaymentMethod.String(),
		CreatedAt:     sale.CreatedAt,
		Notes:         sale.Notes,
		Items:         make([]TicketItem, 0, len(sale.Items)),
	}
	for _, item := range sale.Items {
		ti := TicketItem{
			Name:     item.MenuItemName,
			SKU:      item.MenuItemSKU,
			Quantity: item.Quantity,
			Size:     item.Size.String(),
			Note:     item.SpecialInstructions,
		}
		for _, mod := range item.Customizations {
			ti.Modifiers = append(ti.Modifiers, mod.Name)
		}
		ticket.Items = append(ticket.Items, ti)
	}
	return ticket
}
