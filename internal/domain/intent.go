package domain

import (
	"fmt"
	"strconv"
)

const (
	intentKeyProductID = "productId"
	intentKeyQuantity  = "orderQuantity"
	intentKeyManager   = "manager"
)

// OrderIntent is what the buyer committed to before being sent to the
// payment gateway. It rides through the gateway as session metadata so
// reconciliation can rebuild the order without a separate lookup, and is
// validated on the way back rather than trusted as an untyped map.
type OrderIntent struct {
	ProductID string
	Quantity  int
	Manager   string
}

func (in OrderIntent) Validate() error {
	if in.ProductID == "" {
		return fmt.Errorf("%w: missing product id", ErrInvalidIntent)
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidIntent)
	}
	if in.Manager == "" {
		return fmt.Errorf("%w: missing manager", ErrInvalidIntent)
	}
	return nil
}

// Metadata flattens the intent into the gateway's string-to-string
// metadata bag.
func (in OrderIntent) Metadata() map[string]string {
	return map[string]string{
		intentKeyProductID: in.ProductID,
		intentKeyQuantity:  strconv.Itoa(in.Quantity),
		intentKeyManager:   in.Manager,
	}
}

// OrderIntentFromMetadata parses and validates an intent read back from
// the gateway.
func OrderIntentFromMetadata(md map[string]string) (OrderIntent, error) {
	qty, err := strconv.Atoi(md[intentKeyQuantity])
	if err != nil {
		return OrderIntent{}, fmt.Errorf("%w: bad quantity %q", ErrInvalidIntent, md[intentKeyQuantity])
	}
	in := OrderIntent{
		ProductID: md[intentKeyProductID],
		Quantity:  qty,
		Manager:   md[intentKeyManager],
	}
	if err := in.Validate(); err != nil {
		return OrderIntent{}, err
	}
	return in, nil
}
