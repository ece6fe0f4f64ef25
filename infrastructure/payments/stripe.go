package payments

import (
	"context"
	"math"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"novamarket/application/ports"
	"novamarket/pkg/errors"
)

// Priority shipping is charged as a fixed extra line item.
const priorityShippingCents = 1500

// StripeCheckout implements ports.CheckoutProvider against the Stripe
// hosted checkout API.
type StripeCheckout struct {
	api         *client.API
	frontendURL string
	logger      *zap.Logger
}

// NewStripeCheckout creates a checkout provider. When secretKey is empty it
// returns the disabled provider; the checkout endpoint then answers 503
// without any call-site branching.
func NewStripeCheckout(secretKey, frontendURL string, logger *zap.Logger) ports.CheckoutProvider {
	if secretKey == "" {
		logger.Info("Stripe not configured - payment features disabled")
		return Disabled{}
	}

	api := &client.API{}
	api.Init(secretKey, nil)

	logger.Info("Stripe initialized")
	return &StripeCheckout{
		api:         api,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Enabled reports true: a key was configured
func (s *StripeCheckout) Enabled() bool {
	return true
}

// CreateSession creates a hosted checkout session and returns its URL
func (s *StripeCheckout) CreateSession(ctx context.Context, req ports.CheckoutSessionRequest) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items)+1)
	for _, item := range req.Items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Description: stripe.String(item.Description),
					Images:      stripe.StringSlice([]string{item.Image}),
				},
				// Stripe charges in cents
				UnitAmount: stripe.Int64(int64(math.Round(item.Price * 100))),
			},
			Quantity: stripe.Int64(quantity),
		})
	}

	if req.Shipping.ShippingMethod == "priority" {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String("Priority Shipping"),
					Description: stripe.String("Delivered within 24-48 hours"),
				},
				UnitAmount: stripe.Int64(priorityShippingCents),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(s.frontendURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(s.frontendURL + "/checkout/cancel"),
		CustomerEmail:      stripe.String(req.Shipping.Email),
	}
	params.Context = ctx
	params.AddMetadata("shippingName", req.Shipping.FullName)
	params.AddMetadata("shippingAddress", req.Shipping.Address)
	params.AddMetadata("shippingCity", req.Shipping.City)
	params.AddMetadata("shippingPostalCode", req.Shipping.PostalCode)

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		s.logger.Error("Stripe session creation failed", zap.Error(err))
		return "", errors.NewExternalError("stripe", err)
	}

	return sess.URL, nil
}

// Disabled is the checkout provider used when no payment key is configured.
type Disabled struct{}

// Enabled reports false
func (Disabled) Enabled() bool {
	return false
}

// CreateSession always fails with an unavailable error
func (Disabled) CreateSession(ctx context.Context, req ports.CheckoutSessionRequest) (string, error) {
	return "", errors.NewUnavailableError("payments")
}
