package payment

import (
	"context"
	"fmt"

	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
)

// SettlementStatus is the gateway's verdict on whether funds were
// captured for a checkout session.
type SettlementStatus string

const (
	SettlementPaid   SettlementStatus = "paid"
	SettlementUnpaid SettlementStatus = "unpaid"
)

// CheckoutInput describes the hosted checkout session to create. UnitPrice
// is in major currency units; adapters convert to the gateway's minor-unit
// representation. Intent rides along as session metadata so the settlement
// callback can rebuild the order without a separate lookup.
type CheckoutInput struct {
	ProductName string
	Image       string
	UnitPrice   float64
	BuyerEmail  string
	Intent      domain.OrderIntent
}

// Session is the gateway's view of a checkout, as needed by
// reconciliation. TransactionID is empty until the session settles.
type Session struct {
	ID               string
	URL              string
	SettlementStatus SettlementStatus
	BuyerEmail       string
	TransactionID    string
	Metadata         map[string]string
}

// Gateway is the external payment service boundary. RetrieveSession is
// read-only and safe to call repeatedly; reconciliation calls it on every
// client-triggered confirmation, including retries.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (Session, error)
}

// GatewayError wraps any failure talking to the gateway. Gateway state is
// externally authoritative, so callers surface it instead of retrying.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
