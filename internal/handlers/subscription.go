package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/shortlyhq/shortly/internal/auth"
	"github.com/shortlyhq/shortly/internal/billing"
	"github.com/shortlyhq/shortly/internal/messaging"
	"github.com/shortlyhq/shortly/internal/user"
)

// SubscriptionHandler handles premium checkout and payment webhooks.
type SubscriptionHandler struct {
	users            user.Repository
	provider         billing.Provider
	publishActivated messaging.Publish[billing.SubscriptionActivatedEvent]
	logger           *zap.Logger
}

// NewSubscriptionHandler creates a subscription handler.
func NewSubscriptionHandler(
	users user.Repository,
	provider billing.Provider,
	publishActivated messaging.Publish[billing.SubscriptionActivatedEvent],
	logger *zap.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		users:            users,
		provider:         provider,
		publishActivated: publishActivated,
		logger:           logger,
	}
}

func (h *SubscriptionHandler) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	u := auth.UserFromContext(ctx)
	if u == nil {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	prefix := req.Body.CustomDomainPrefix
	if prefix == "" {
		return nil, huma.Error400BadRequest("customDomainPrefix is required")
	}

	taken, err := h.users.DomainPrefixExists(ctx, prefix)
	if err != nil {
		h.logger.Error("failed to check domain prefix", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create checkout session")
	}

	if taken && u.CustomDomainPrefix != prefix {
		return nil, huma.Error400BadRequest("customDomainPrefix is already in use")
	}

	sessionURL, err := h.provider.CreateCheckoutSession(ctx, u.ID, prefix)
	if err != nil {
		h.logger.Error("failed to create checkout session", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create checkout session")
	}

	resp := &CreateSessionResponse{}
	resp.Body.URL = sessionURL

	return resp, nil
}

// Webhook verifies the provider signature and hands completed checkouts to
// the activation consumer. The response returns quickly; activation itself
// happens asynchronously.
func (h *SubscriptionHandler) Webhook(ctx context.Context, req *WebhookRequest) (*WebhookResponse, error) {
	activation, err := h.provider.ParseWebhook(req.RawBody, req.Signature)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidWebhook) {
			return nil, huma.Error400BadRequest("invalid webhook payload")
		}

		h.logger.Error("failed to parse webhook", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to process webhook")
	}

	resp := &WebhookResponse{}
	resp.Body.Received = true

	if activation == nil {
		return resp, nil
	}

	event := &billing.SubscriptionActivatedEvent{
		UserID:             activation.UserID.String(),
		CustomDomainPrefix: activation.CustomDomainPrefix,
		CompletedAt:        time.Now(),
	}

	if err := h.publishActivated(event); err != nil {
		h.logger.Error("failed to publish activation event",
			zap.String("userId", event.UserID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to process webhook")
	}

	return resp, nil
}

func (h *SubscriptionHandler) Status(ctx context.Context, _ *struct{}) (*SubscriptionStatusResponse, error) {
	u := auth.UserFromContext(ctx)
	if u == nil {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	resp := &SubscriptionStatusResponse{}
	resp.Body.IsPremium = u.IsPremium
	resp.Body.CustomDomainPrefix = u.CustomDomainPrefix
	resp.Body.PremiumExpiresAt = u.PremiumExpiresAt

	return resp, nil
}
