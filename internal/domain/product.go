package domain

import "time"

// PaymentOption is a way a buyer can pay for a product.
type PaymentOption string

const (
	PaymentOptionCard           PaymentOption = "card"
	PaymentOptionCashOnDelivery PaymentOption = "cash_on_delivery"
)

// Product is a catalog entry with a mutable stock quantity.
// Quantity must never go negative; the store enforces this with a
// conditional decrement rather than trusting callers.
type Product struct {
	ID             string
	Name           string
	Quantity       int
	Price          float64
	Image          string
	PaymentOptions []string
	ShowOnHomePage bool
	CreatedBy      string
	CreatedAt      time.Time
}
