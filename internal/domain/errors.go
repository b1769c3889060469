package domain

import "errors"

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrPaymentIncomplete     = errors.New("payment not completed")
	ErrDuplicateTransaction  = errors.New("transaction already processed")
	ErrTrackingIDConflict    = errors.New("tracking id already exists")
	ErrInvalidQuantity       = errors.New("quantity must be greater than zero")
	ErrInvalidIntent         = errors.New("invalid order intent")
	ErrProductNameRequired   = errors.New("product name required")
	ErrInvalidID             = errors.New("invalid id")
)
