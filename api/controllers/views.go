package controllers

import (
	"time"

	"github.com/FuadAliah/celtis-pos/internal/order"
	"github.com/FuadAliah/celtis-pos/internal/pricing"
	"github.com/FuadAliah/celtis-pos/internal/sales"
	"github.com/FuadAliah/celtis-pos/pkg/money"
)

type formattedTotals struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

func formatTotals(t pricing.Totals) formattedTotals {
	return formattedTotals{
		Subtotal: money.FormatCurrency(t.Subtotal),
		Tax:      money.FormatCurrency(t.Tax),
		Discount: money.FormatCurrency(t.Discount),
		Total:    money.FormatCurrency(t.Total),
	}
}

type orderView struct {
	order.Order
	ItemCount int             `json:"itemCount"`
	Formatted formattedTotals `json:"formatted"`
}

func newOrderView(o order.Order) orderView {
	count := 0
	for _, line := range o.Items {
		count += line.Quantity
	}
	if o.Items == nil {
		o.Items = []order.LineItem{}
	}
	return orderView{Order: o, ItemCount: count, Formatted: formatTotals(o.Totals)}
}

type saleDisplay struct {
	formattedTotals
	CreatedAt   string `json:"createdAt"`
	CreatedTime string `json:"createdTime"`
}

type saleView struct {
	sales.Sale
	Display saleDisplay `json:"display"`
}

func newSaleView(s sales.Sale, loc *time.Location) saleView {
	return saleView{
		Sale: s,
		Display: saleDisplay{
			formattedTotals: formatTotals(pricing.Totals{Subtotal: s.Subtotal, Tax: s.Tax, Discount: s.Discount, Total: s.Total}),
			CreatedAt:       money.FormatDate(s.CreatedAt, loc),
			CreatedTime:     money.FormatTime(s.CreatedAt, loc),
		},
	}
}

func newSaleViews(list []sales.Sale, loc *time.Location) []saleView {
	out := make([]saleView, 0, len(list))
	for _, s := range list {
		out = append(out, newSaleView(s, loc))
	}
	return out
}
