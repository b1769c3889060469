package http

import (
	"context"
	"net/http"

	"github.com/nasim-ferdous/garment-pilot-server/internal/app"
)

// PaymentReconciler turns a settled checkout session into an order.
type PaymentReconciler interface {
	Reconcile(ctx context.Context, sessionID string) (app.OrderResult, error)
}

type replayResponse struct {
	Message       string `json:"message"`
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId"`
	TrackingID    string `json:"trackingId"`
}

// HandleSuccessPayment serves PATCH /success-payment?session_id=...
// It is safe to call any number of times for the same session: replays
// answer with the previously created order's identifiers.
func HandleSuccessPayment(svc PaymentReconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			writeMessage(w, http.StatusBadRequest, "missing session_id")
			return
		}

		res, err := svc.Reconcile(r.Context(), sessionID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if res.AlreadyProcessed {
			writeJSON(w, http.StatusOK, replayResponse{
				Message:       msgOrderAlreadyProcessed,
				OrderID:       res.OrderID,
				TransactionID: res.TransactionID,
				TrackingID:    res.TrackingID,
			})
			return
		}

		writeJSON(w, http.StatusOK, orderCreatedResponse{
			Success:       true,
			OrderID:       res.OrderID,
			Result:        res.ModifiedCount,
			TransactionID: res.TransactionID,
			TrackingID:    res.TrackingID,
		})
	}
}
