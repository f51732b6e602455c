package billing

import "time"

// TopicSubscriptionActivated carries confirmed premium upgrades from the
// webhook handler to the activation consumer.
const TopicSubscriptionActivated = "subscription.activated"

// SubscriptionActivatedEvent is emitted once the payment provider confirms
// a completed checkout.
type SubscriptionActivatedEvent struct {
	UserID             string    `json:"userId"`
	CustomDomainPrefix string    `json:"customDomainPrefix"`
	CompletedAt        time.Time `json:"completedAt"`
}
