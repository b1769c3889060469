package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nasim-ferdous/garment-pilot-server/internal/app"
	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
)

// CheckoutStarter opens a hosted checkout session at the payment gateway.
type CheckoutStarter interface {
	CreateCheckoutSession(ctx context.Context, in app.CheckoutSessionInput) (string, error)
}

type createCheckoutRequest struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	Image         string  `json:"image"`
	TotalPrice    float64 `json:"totalPrice"`
	OrderQuantity int     `json:"orderQuantity"`
	Email         string  `json:"email"`
	Manager       string  `json:"manager"`
}

type createCheckoutResponse struct {
	URL string `json:"url"`
}

// HandleCreateCheckoutSession serves POST /create-checkout-session.
func HandleCreateCheckoutSession(svc CheckoutStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		url, err := svc.CreateCheckoutSession(r.Context(), app.CheckoutSessionInput{
			ProductName: req.ProductName,
			Image:       req.Image,
			UnitPrice:   req.TotalPrice,
			BuyerEmail:  req.Email,
			Intent: domain.OrderIntent{
				ProductID: req.ProductID,
				Quantity:  req.OrderQuantity,
				Manager:   req.Manager,
			},
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, createCheckoutResponse{URL: url})
	}
}
