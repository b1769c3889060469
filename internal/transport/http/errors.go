package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nasim-ferdous/garment-pilot-server/internal/domain"
	"github.com/nasim-ferdous/garment-pilot-server/internal/payment"
)

const (
	msgPaymentNotCompleted   = "Payment not completed"
	msgProductNotFound       = "Product not found"
	msgOrderAlreadyProcessed = "Order already processed"
	msgInsufficientInventory = "Insufficient inventory"
	msgForbiddenAccess       = "forbidden access"
	msgUnauthorizedAccess    = "unauthorized access"
	msgNotFound              = "not found"
	msgInternalError         = "Internal server error"
	msgGatewayError          = "Payment gateway error"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeDomainError maps service failures onto the HTTP contract. Nothing
// here is retried internally: 4xx means the client must change something,
// 5xx means the client may retry an idempotent call.
func writeDomainError(w http.ResponseWriter, err error) {
	var gwErr *payment.GatewayError
	switch {
	case errors.Is(err, domain.ErrPaymentIncomplete):
		writeMessage(w, http.StatusBadRequest, msgPaymentNotCompleted)
	case errors.Is(err, domain.ErrProductNotFound):
		writeMessage(w, http.StatusNotFound, msgProductNotFound)
	case errors.Is(err, domain.ErrInsufficientInventory):
		writeMessage(w, http.StatusConflict, msgInsufficientInventory)
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidIntent),
		errors.Is(err, domain.ErrProductNameRequired),
		errors.Is(err, domain.ErrInvalidID):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &gwErr):
		writeMessage(w, http.StatusBadGateway, msgGatewayError)
	default:
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
	}
}
