package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	// Terminal states are reached by fulfillment workflows outside this
	// service; they exist so stored rows round-trip cleanly.
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPaid           PaymentStatus = "paid"
	PaymentStatusCashOnDelivery PaymentStatus = "cash_on_delivery"
)

// Order is a fulfilled purchase of a single product.
//
// TransactionID is the gateway's settlement reference and doubles as the
// idempotency key for reconciled orders; it is empty for cash-on-delivery
// orders, which have no external settlement event to deduplicate against.
// TrackingID is unique across all orders.
type Order struct {
	ID            string
	ProductID     string
	ProductName   string
	Manager       string
	Status        OrderStatus
	OrderedAt     time.Time
	Quantity      int
	Buyer         string
	PaymentOption PaymentOption
	PaymentStatus PaymentStatus
	TransactionID string
	TrackingID    string
}
