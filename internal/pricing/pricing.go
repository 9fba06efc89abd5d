// Package pricing turns menu selections into prices and order totals. Every
// function here is pure.
package pricing

import (
	"github.com/FuadAliah/celtis-pos/internal/catalog"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
)

// DefaultTaxRate is the flat rate applied to every order subtotal.
const DefaultTaxRate = 0.10

// Totals is the derived money summary of an order or sale.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// DiscountFunc returns the discount for an order subtotal.
type DiscountFunc func(subtotal float64) float64

// NoDiscount is the default discount hook.
func NoDiscount(float64) float64 { return 0 }

// Calculator aggregates line subtotals with a fixed tax rate and a discount hook.
type Calculator struct {
	taxRate  float64
	discount DiscountFunc
}

type Option func(*Calculator)

// WithDiscount replaces the discount hook.
func WithDiscount(fn DiscountFunc) Option {
	return func(c *Calculator) {
		if fn != nil {
			c.discount = fn
		}
	}
}

func NewCalculator(taxRate float64, opts ...Option) Calculator {
	c := Calculator{taxRate: taxRate, discount: NoDiscount}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Calculator) TaxRate() float64 {
	return c.taxRate
}

// UnitPrice is the price of one unit of item in size with mods applied. The
// size price replaces the base price when the item lists one for that size.
// Modifier prices are summed left to right without deduplication.
func UnitPrice(item catalog.Item, size enums.SizeOption, mods []catalog.SelectedModifier) float64 {
	price := item.BasePrice
	if size != "" && len(item.SizePricing) > 0 {
		if sp, ok := item.PriceForSize(size); ok {
			price = sp
		}
	}
	for _, mod := range mods {
		price += mod.Price
	}
	return price
}

// LineSubtotal is unitPrice times quantity.
func LineSubtotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// Aggregate sums line subtotals and applies tax and discount.
func (c Calculator) Aggregate(subtotals ...float64) Totals {
	var subtotal float64
	for _, s := range subtotals {
		subtotal += s
	}
	var discount float64
	if c.discount != nil {
		discount = c.discount(subtotal)
	}
	tax := subtotal * c.taxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal + tax - discount,
	}
}
