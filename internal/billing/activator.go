package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shortlyhq/shortly/internal/user"
)

// premiumTerm is the subscription length granted per completed checkout.
const premiumTerm = 365 * 24 * time.Hour

// Activator applies confirmed subscription upgrades to the user store. It
// is the only code path that mutates a user's premium fields.
type Activator struct {
	users  user.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewActivator creates an activator over the given user store.
func NewActivator(users user.Repository, logger *zap.Logger) *Activator {
	return &Activator{users: users, logger: logger, now: time.Now}
}

// HandleSubscriptionActivated is a messaging handler for
// subscription.activated events. Permanently unprocessable events are
// logged and dropped so they are not redelivered forever; the underlying
// update is an absolute write, so at-least-once delivery is safe.
func (a *Activator) HandleSubscriptionActivated(ctx context.Context, event *SubscriptionActivatedEvent) error {
	id, err := uuid.Parse(event.UserID)
	if err != nil {
		a.logger.Error("dropping activation with malformed user id",
			zap.String("userId", event.UserID),
			zap.Error(err),
		)

		return nil
	}

	expiresAt := a.now().Add(premiumTerm)

	err = a.users.ActivatePremium(ctx, id, event.CustomDomainPrefix, expiresAt)

	switch {
	case errors.Is(err, user.ErrNotFound):
		a.logger.Error("dropping activation for unknown user",
			zap.String("userId", event.UserID),
		)

		return nil
	case errors.Is(err, user.ErrPrefixTaken):
		// Someone else claimed the prefix between checkout and webhook.
		// Retrying cannot succeed.
		a.logger.Error("dropping activation for taken prefix",
			zap.String("userId", event.UserID),
			zap.String("customDomainPrefix", event.CustomDomainPrefix),
		)

		return nil
	case err != nil:
		return err
	}

	a.logger.Info("premium subscription activated",
		zap.String("userId", event.UserID),
		zap.String("customDomainPrefix", event.CustomDomainPrefix),
	)

	return nil
}
