// Package billing integrates the external payment provider. The service
// never handles card data; it creates hosted checkout sessions and reacts
// to signed webhooks.
package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidWebhook is returned for webhooks that fail signature
// verification or carry an unusable payload.
var ErrInvalidWebhook = errors.New("invalid webhook")

// Activation describes a paid premium upgrade reported by the provider.
type Activation struct {
	UserID             uuid.UUID
	CustomDomainPrefix string
}

// Provider abstracts the external payment service.
type Provider interface {
	// CreateCheckoutSession starts a hosted checkout for the premium
	// subscription and returns the hosted payment page URL.
	CreateCheckoutSession(ctx context.Context, userID uuid.UUID, customDomainPrefix string) (string, error)

	// ParseWebhook verifies the webhook signature and extracts the
	// activation, if the event is one we act on. A nil Activation with a
	// nil error means the event type is not relevant.
	ParseWebhook(payload []byte, signature string) (*Activation, error)
}
