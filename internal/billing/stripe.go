package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

const (
	productName        = "Premium URL Shortener Subscription"
	productDescription = "Custom domain prefix for your shortened URLs"
	priceUSDCents      = 2000

	metadataUserID = "userId"
	metadataPrefix = "customDomainPrefix"
)

// StripeProvider implements Provider on the Stripe checkout API.
type StripeProvider struct {
	client        *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

// NewStripeProvider creates a Stripe-backed billing provider.
func NewStripeProvider(apiKey, webhookSecret, successURL, cancelURL string) *StripeProvider {
	return &StripeProvider{
		client:        client.New(apiKey, nil),
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

// CreateCheckoutSession starts a hosted checkout session and returns its
// URL. The user ID and requested prefix travel in the session metadata and
// come back with the completion webhook.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, customDomainPrefix string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(productName),
					Description: stripe.String(productDescription),
				},
				UnitAmount: stripe.Int64(priceUSDCents),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
	}
	params.Context = ctx
	params.AddMetadata(metadataUserID, userID.String())
	params.AddMetadata(metadataPrefix, customDomainPrefix)

	sess, err := p.client.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	return sess.URL, nil
}

// ParseWebhook verifies the Stripe signature and extracts the activation
// from a completed checkout session.
func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*Activation, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	userID, err := uuid.Parse(sess.Metadata[metadataUserID])
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id in session metadata", ErrInvalidWebhook)
	}

	prefix := sess.Metadata[metadataPrefix]
	if prefix == "" {
		return nil, fmt.Errorf("%w: missing custom domain prefix in session metadata", ErrInvalidWebhook)
	}

	return &Activation{UserID: userID, CustomDomainPrefix: prefix}, nil
}

var _ Provider = (*StripeProvider)(nil)
