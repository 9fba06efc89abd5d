package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod describes how a sale was settled at the counter.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodCard:
		return true
	}
	return false
}

// NormalizePaymentMethod folds till input ("Cash ", "CARD") to the stored
// form. The result may still be invalid.
func NormalizePaymentMethod(value string) PaymentMethod {
	return PaymentMethod(strings.ToLower(strings.TrimSpace(value)))
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	method := NormalizePaymentMethod(value)
	if !method.IsValid() {
		return "", fmt.Errorf("invalid payment method %q", value)
	}
	return method, nil
}
