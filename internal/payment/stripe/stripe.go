package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"

	"github.com/nasim-ferdous/garment-pilot-server/internal/payment"
)

// Adapter implements payment.Gateway on Stripe hosted checkout sessions.
// The post-checkout redirect URLs are built from the public site domain.
type Adapter struct {
	siteDomain string
}

func New(apiKey, siteDomain string) *Adapter {
	stripe.Key = apiKey
	return &Adapter{siteDomain: siteDomain}
}

func (a *Adapter) CreateCheckoutSession(ctx context.Context, in payment.CheckoutInput) (payment.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(in.BuyerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:   stripe.String("Please pay for " + in.ProductName),
						Images: stripe.StringSlice([]string{in.Image}),
					},
					UnitAmount: stripe.Int64(MinorUnits(in.UnitPrice)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(a.siteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(a.siteDomain + "/product/" + in.Intent.ProductID),
	}
	params.Context = ctx
	for k, v := range in.Intent.Metadata() {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return payment.Session{}, &payment.GatewayError{Op: "create checkout session", Err: err}
	}
	return fromStripe(s), nil
}

func (a *Adapter) RetrieveSession(ctx context.Context, sessionID string) (payment.Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(sessionID, params)
	if err != nil {
		return payment.Session{}, &payment.GatewayError{Op: "retrieve session", Err: err}
	}
	return fromStripe(s), nil
}

func fromStripe(s *stripe.CheckoutSession) payment.Session {
	out := payment.Session{
		ID:               s.ID,
		URL:              s.URL,
		SettlementStatus: payment.SettlementStatus(s.PaymentStatus),
		BuyerEmail:       s.CustomerEmail,
		Metadata:         s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.TransactionID = s.PaymentIntent.ID
	}
	return out
}

// MinorUnits converts a major-unit decimal price to the gateway's integer
// minor-unit representation: multiply by 100, truncate.
func MinorUnits(major float64) int64 {
	return int64(major * 100)
}
