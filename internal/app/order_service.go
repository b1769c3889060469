package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nasim-ferdous/garment-pilot-server/internal/clock"
	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
	"github.com/nasim-ferdous/garment-pilot-server/internal/payment"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetProductForUpdate(ctx context.Context, productID string) (domain.Product, error)
	// DecrementProductQuantity subtracts by only when the current quantity
	// covers it, returning the number of rows modified. A failed condition
	// surfaces domain.ErrInsufficientInventory.
	DecrementProductQuantity(ctx context.Context, productID string, by int) (int64, error)
	IncrementProductQuantity(ctx context.Context, productID string, by int) error
	GetOrderByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error)
	CreateOrder(ctx context.Context, order domain.Order) error
	// DeleteOrder removes an order and returns the deleted row, or nil when
	// no such order exists.
	DeleteOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByBuyer(ctx context.Context, buyer string) ([]domain.Order, error)
}

// TrackingIDGenerator mints unique buyer-facing tracking tokens.
type TrackingIDGenerator interface {
	NewID() (string, error)
}

// OrderService owns the fulfillment workflow: converting settled checkout
// sessions and direct pay-later requests into inventory-consistent orders.
type OrderService struct {
	repo            OrderRepository
	gateway         payment.Gateway
	tracking        TrackingIDGenerator
	clock           clock.Clock
	restockOnCancel bool
}

func NewOrderService(repo OrderRepository, gateway payment.Gateway, tracking TrackingIDGenerator, clk clock.Clock, opts ...OrderServiceOption) *OrderService {
	svc := &OrderService{
		repo:     repo,
		gateway:  gateway,
		tracking: tracking,
		clock:    clk,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type OrderServiceOption func(*OrderService)

// WithRestockOnCancel makes cancellation return the ordered quantity to the
// product. Off by default: cancellation historically left inventory alone.
func WithRestockOnCancel(enabled bool) OrderServiceOption {
	return func(s *OrderService) {
		s.restockOnCancel = enabled
	}
}

type CheckoutSessionInput struct {
	ProductName string
	Image       string
	UnitPrice   float64
	BuyerEmail  string
	Intent      domain.OrderIntent
}

// CreateCheckoutSession opens a hosted checkout at the gateway and returns
// the URL the buyer should be redirected to.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (string, error) {
	if err := in.Intent.Validate(); err != nil {
		return "", err
	}
	sess, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutInput{
		ProductName: in.ProductName,
		Image:       in.Image,
		UnitPrice:   in.UnitPrice,
		BuyerEmail:  in.BuyerEmail,
		Intent:      in.Intent,
	})
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// OrderResult reports a persisted (or previously persisted) order.
type OrderResult struct {
	OrderID       string
	TrackingID    string
	TransactionID string
	// ModifiedCount is the number of inventory records changed; zero on an
	// idempotent replay.
	ModifiedCount int64
	// AlreadyProcessed is set when the transaction had been reconciled
	// before and the prior order's identifiers are being returned.
	AlreadyProcessed bool
}

// Reconcile converts a settled checkout session into exactly one order and
// exactly one inventory decrement, no matter how many times it is invoked
// for the same session.
func (s *OrderService) Reconcile(ctx context.Context, sessionID string) (OrderResult, error) {
	sess, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return OrderResult{}, err
	}
	if sess.SettlementStatus != payment.SettlementPaid {
		return OrderResult{}, domain.ErrPaymentIncomplete
	}

	intent, err := domain.OrderIntentFromMetadata(sess.Metadata)
	if err != nil {
		return OrderResult{}, err
	}

	trackingID, err := s.tracking.NewID()
	if err != nil {
		return OrderResult{}, err
	}

	var result OrderResult
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.repo.GetProductForUpdate(txCtx, intent.ProductID)
		if err != nil {
			return err
		}

		existing, err := s.repo.GetOrderByTransactionID(txCtx, sess.TransactionID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = replayResult(existing)
			return nil
		}

		modified, err := s.repo.DecrementProductQuantity(txCtx, product.ID, intent.Quantity)
		if err != nil {
			return err
		}

		order := domain.Order{
			ID:            uuid.NewString(),
			ProductID:     product.ID,
			ProductName:   product.Name,
			Manager:       intent.Manager,
			Status:        domain.OrderStatusPending,
			OrderedAt:     s.clock.Now(),
			Quantity:      intent.Quantity,
			Buyer:         sess.BuyerEmail,
			PaymentOption: domain.PaymentOptionCard,
			PaymentStatus: domain.PaymentStatusPaid,
			TransactionID: sess.TransactionID,
			TrackingID:    trackingID,
		}
		if err := s.repo.CreateOrder(txCtx, order); err != nil {
			// A concurrent reconcile for the same transaction won the
			// insert; re-read and return the winner as a replay.
			if errors.Is(err, domain.ErrDuplicateTransaction) {
				winner, readErr := s.repo.GetOrderByTransactionID(txCtx, sess.TransactionID)
				if readErr != nil {
					return readErr
				}
				if winner != nil {
					result = replayResult(winner)
					return nil
				}
			}
			return err
		}

		result = OrderResult{
			OrderID:       order.ID,
			TrackingID:    order.TrackingID,
			TransactionID: order.TransactionID,
			ModifiedCount: modified,
		}
		return nil
	})
	if err != nil {
		return OrderResult{}, err
	}
	return result, nil
}

func replayResult(order *domain.Order) OrderResult {
	return OrderResult{
		OrderID:          order.ID,
		TrackingID:       order.TrackingID,
		TransactionID:    order.TransactionID,
		AlreadyProcessed: true,
	}
}

type PlaceOrderInput struct {
	ProductID string
	Quantity  int
	Buyer     string
	Manager   string
}

// PlaceOrder records a cash-on-delivery order. There is no idempotency key
// on this path: each call is authoritative.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderResult, error) {
	if in.Quantity <= 0 {
		return OrderResult{}, domain.ErrInvalidQuantity
	}

	trackingID, err := s.tracking.NewID()
	if err != nil {
		return OrderResult{}, err
	}

	var result OrderResult
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.repo.GetProductForUpdate(txCtx, in.ProductID)
		if err != nil {
			return err
		}

		modified, err := s.repo.DecrementProductQuantity(txCtx, product.ID, in.Quantity)
		if err != nil {
			return err
		}

		order := domain.Order{
			ID:            uuid.NewString(),
			ProductID:     product.ID,
			ProductName:   product.Name,
			Manager:       in.Manager,
			Status:        domain.OrderStatusPending,
			OrderedAt:     s.clock.Now(),
			Quantity:      in.Quantity,
			Buyer:         in.Buyer,
			PaymentOption: domain.PaymentOptionCashOnDelivery,
			PaymentStatus: domain.PaymentStatusCashOnDelivery,
			TrackingID:    trackingID,
		}
		if err := s.repo.CreateOrder(txCtx, order); err != nil {
			return err
		}

		result = OrderResult{
			OrderID:       order.ID,
			TrackingID:    order.TrackingID,
			ModifiedCount: modified,
		}
		return nil
	})
	if err != nil {
		return OrderResult{}, err
	}
	return result, nil
}

type CancelResult struct {
	DeletedCount int64
}

// Cancel deletes an order. Restocking the product is governed by the
// service's restock policy and happens in the same transaction.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (CancelResult, error) {
	var result CancelResult
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.DeleteOrder(txCtx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return nil
		}
		result.DeletedCount = 1
		if s.restockOnCancel {
			if err := s.repo.IncrementProductQuantity(txCtx, order.ProductID, order.Quantity); err != nil {
				return fmt.Errorf("restock on cancel: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return CancelResult{}, err
	}
	return result, nil
}

// OrdersByBuyer lists a buyer's orders, newest first.
func (s *OrderService) OrdersByBuyer(ctx context.Context, buyer string) ([]domain.Order, error) {
	return s.repo.ListOrdersByBuyer(ctx, buyer)
}
