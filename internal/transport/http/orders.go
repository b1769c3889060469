package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nasim-ferdous/garment-pilot-server/internal/app"
	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
)

// OrderPlacer records cash-on-delivery orders.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in app.PlaceOrderInput) (app.OrderResult, error)
}

type createOrderRequest struct {
	ProductID     string `json:"productId"`
	OrderQuantity int    `json:"orderQuantity"`
	Email         string `json:"email"`
	Manager       string `json:"manager"`
}

type orderCreatedResponse struct {
	Success       bool   `json:"success"`
	OrderID       string `json:"orderId"`
	Result        int64  `json:"result"`
	TransactionID string `json:"transactionId,omitempty"`
	TrackingID    string `json:"trackingId"`
}

// HandleCreateOrder serves POST /orders for deferred-payment orders.
func HandleCreateOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := svc.PlaceOrder(r.Context(), app.PlaceOrderInput{
			ProductID: req.ProductID,
			Quantity:  req.OrderQuantity,
			Buyer:     req.Email,
			Manager:   req.Manager,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, orderCreatedResponse{
			Success:    true,
			OrderID:    res.OrderID,
			Result:     res.ModifiedCount,
			TrackingID: res.TrackingID,
		})
	}
}

// OrderCanceller deletes orders.
type OrderCanceller interface {
	Cancel(ctx context.Context, orderID string) (app.CancelResult, error)
}

type cancelOrderResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// HandleCancelOrder serves DELETE /cancel-order/{id}.
func HandleCancelOrder(svc OrderCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Cancel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cancelOrderResponse{DeletedCount: res.DeletedCount})
	}
}

// BuyerOrderLister lists a buyer's orders.
type BuyerOrderLister interface {
	OrdersByBuyer(ctx context.Context, buyer string) ([]domain.Order, error)
}

type orderResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	Manager       string    `json:"manager"`
	Status        string    `json:"status"`
	OrderedAt     time.Time `json:"orderedAt"`
	OrderQuantity int       `json:"orderQuantity"`
	Buyer         string    `json:"buyer"`
	PaymentOption string    `json:"paymentOption"`
	PaymentStatus string    `json:"paymentStatus"`
	TransactionID string    `json:"transactionId,omitempty"`
	TrackingID    string    `json:"trackingId"`
}

// HandleMyOrders serves GET /my-orders. The verified identity must match
// the requested buyer email.
func HandleMyOrders(svc BuyerOrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		identity, ok := identityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorizedAccess)
			return
		}
		if email != "" && email != identity.Email {
			writeMessage(w, http.StatusForbidden, msgForbiddenAccess)
			return
		}
		if email == "" {
			email = identity.Email
		}

		orders, err := svc.OrdersByBuyer(r.Context(), email)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			out = append(out, orderResponse{
				ID:            o.ID,
				ProductID:     o.ProductID,
				ProductName:   o.ProductName,
				Manager:       o.Manager,
				Status:        string(o.Status),
				OrderedAt:     o.OrderedAt,
				OrderQuantity: o.Quantity,
				Buyer:         o.Buyer,
				PaymentOption: string(o.PaymentOption),
				PaymentStatus: string(o.PaymentStatus),
				TransactionID: o.TransactionID,
				TrackingID:    o.TrackingID,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
