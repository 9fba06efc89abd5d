// Package money holds the display helpers for amounts and timestamps. Prices
// are carried as float64 through the engine; rounding only happens here.
package money

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// CurrencyCode is the ISO code rendered in front of every amount.
	CurrencyCode = "JOD"
	// MinorUnits is the number of decimals the dinar is quoted with.
	MinorUnits = 3

	dateLayout = "Jan 2, 2006, 03:04 PM"
	timeLayout = "03:04 PM"
)

// FormatCurrency renders an amount like "JOD 18.700".
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(MinorUnits)
	if d.IsNegative() {
		return "-" + CurrencyCode + " " + d.Abs().StringFixed(MinorUnits)
	}
	return CurrencyCode + " " + d.StringFixed(MinorUnits)
}

// Round rounds half away from zero to the currency's minor units.
func Round(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(MinorUnits).Float64()
	return f
}

// Equal compares two amounts at currency precision.
func Equal(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(MinorUnits).Equal(decimal.NewFromFloat(b).Round(MinorUnits))
}

// FormatDate renders a timestamp like "Jan 2, 2006, 03:04 PM" in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return inLocation(t, loc).Format(dateLayout)
}

// FormatTime renders the clock part only.
func FormatTime(t time.Time, loc *time.Location) string {
	return inLocation(t, loc).Format(timeLayout)
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t.Local()
	}
	return t.In(loc)
}
