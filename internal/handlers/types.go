package handlers

import (
	"net/http"
	"time"
)

// LinkPayload is the JSON representation of a link returned by the API.
type LinkPayload struct {
	ID             string     `doc:"Link identifier"                    json:"id"`
	ShortURL       string     `doc:"Full short URL"                     json:"shortUrl"                 example:"https://shortly.example/abc123"`
	ShortID        string     `doc:"Generated short identifier"         json:"shortId"                  example:"abc123"`
	CustomAlias    string     `doc:"Optional custom alias"              json:"customAlias,omitempty"    example:"promo"`
	OriginalURL    string     `doc:"Destination URL"                    json:"originalUrl"              example:"https://example.com/landing"`
	ExpiresAt      *time.Time `doc:"Expiry timestamp"                   json:"expiresAt,omitempty"`
	Active         bool       `doc:"Whether the link serves redirects"  json:"active"`
	IsExpired      bool       `doc:"Whether the link has expired"       json:"isExpired"`
	IsPremiumURL   bool       `doc:"Whether the link is branded"        json:"isPremiumUrl"`
	QRCodeImageURL string     `doc:"QR code as a PNG data URL"          json:"qrCodeImageUrl,omitempty"`
	CreatedAt      time.Time  `doc:"Creation timestamp"                 json:"createdAt"`
}

// CreateLinkRequest is the request for creating a short link.
type CreateLinkRequest struct {
	Body struct {
		OriginalURL string     `doc:"The URL to shorten"         json:"originalUrl" example:"https://example.com/very/long/path"`
		CustomAlias string     `doc:"Optional custom alias"      json:"customAlias,omitempty" example:"promo"`
		ExpiresAt   *time.Time `doc:"Optional expiry timestamp"  json:"expiresAt,omitempty"`
		IsQRCode    bool       `doc:"Generate a QR code"         json:"isQrCode,omitempty"`
	}
}

// CreateLinkResponse is the response for a successfully created link.
type CreateLinkResponse struct {
	Body LinkPayload
}

// ListLinksResponse is the response listing the caller's links.
type ListLinksResponse struct {
	Body struct {
		Count int           `doc:"Number of links" json:"count"`
		Links []LinkPayload `doc:"The links"       json:"links"`
	}
}

// GetLinkRequest identifies a link by its ID.
type GetLinkRequest struct {
	ID string `doc:"Link identifier" path:"id"`
}

// GetLinkResponse returns a single link.
type GetLinkResponse struct {
	Body LinkPayload
}

// UpdateLinkRequest carries a partial update for a link. Absent fields are
// left unchanged; clearExpiresAt removes an existing expiry.
type UpdateLinkRequest struct {
	ID   string `doc:"Link identifier" path:"id"`
	Body struct {
		OriginalURL    *string    `doc:"New destination URL"        json:"originalUrl,omitempty"`
		ExpiresAt      *time.Time `doc:"New expiry timestamp"       json:"expiresAt,omitempty"`
		ClearExpiresAt bool       `doc:"Remove the expiry"          json:"clearExpiresAt,omitempty"`
		Active         *bool      `doc:"Enable or disable the link" json:"active,omitempty"`
	}
}

// UpdateLinkResponse returns the updated link.
type UpdateLinkResponse struct {
	Body LinkPayload
}

// DeleteLinkRequest identifies the link to delete.
type DeleteLinkRequest struct {
	ID string `doc:"Link identifier" path:"id"`
}

// DeleteLinkResponse is the empty response for a deleted link.
type DeleteLinkResponse struct {
	Status int
}

// RedirectRequest is the request for resolving a short identifier.
type RedirectRequest struct {
	ShortID string `doc:"The short identifier" example:"abc123" path:"shortId"`
}

// AliasRedirectRequest is the request for an alias-decorated short URL. The
// alias is cosmetic; resolution uses the short identifier only.
type AliasRedirectRequest struct {
	Alias   string `doc:"The custom alias"     example:"promo"  path:"alias"`
	ShortID string `doc:"The short identifier" example:"abc123" path:"shortId"`
}

// RedirectResponse redirects the client to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}

// UserPayload is the JSON representation of an account.
type UserPayload struct {
	ID        string `doc:"User identifier" json:"id"`
	FirstName string `doc:"First name"      json:"firstName"`
	LastName  string `doc:"Last name"       json:"lastName"`
	Email     string `doc:"Email address"   json:"email"`
	IsPremium bool   `doc:"Premium status"  json:"isPremium"`
}

// RegisterRequest is the request for creating an account.
type RegisterRequest struct {
	Body struct {
		FirstName string `doc:"First name"    json:"firstName" example:"Ada"`
		LastName  string `doc:"Last name"     json:"lastName"  example:"Lovelace"`
		Email     string `doc:"Email address" json:"email"     example:"ada@example.com"`
		Password  string `doc:"Password"      json:"password"  minLength:"6"`
	}
}

// LoginRequest is the request for authenticating an account.
type LoginRequest struct {
	Body struct {
		Email    string `doc:"Email address" json:"email"`
		Password string `doc:"Password"      json:"password"`
	}
}

// AuthResponse returns the session token and sets the session cookie.
type AuthResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Token string      `doc:"JWT session token" json:"token"`
		User  UserPayload `doc:"The account"       json:"user"`
	}
}

// ProfileResponse returns the authenticated account.
type ProfileResponse struct {
	Body UserPayload
}

// CreateSessionRequest is the request for starting a premium checkout.
type CreateSessionRequest struct {
	Body struct {
		CustomDomainPrefix string `doc:"Desired branded subdomain" json:"customDomainPrefix" example:"acme"`
	}
}

// CreateSessionResponse returns the hosted checkout URL.
type CreateSessionResponse struct {
	Body struct {
		URL string `doc:"Checkout session URL" json:"url"`
	}
}

// WebhookRequest carries the raw payment provider webhook payload so the
// signature can be verified against the exact bytes.
type WebhookRequest struct {
	Signature string `header:"Stripe-Signature"`
	RawBody   []byte
}

// WebhookResponse acknowledges a webhook delivery.
type WebhookResponse struct {
	Body struct {
		Received bool `doc:"Whether the event was accepted" json:"received"`
	}
}

// SubscriptionStatusResponse reports the caller's premium subscription.
type SubscriptionStatusResponse struct {
	Body struct {
		IsPremium          bool       `doc:"Premium status"            json:"isPremium"`
		CustomDomainPrefix string     `doc:"Branded subdomain, if any" json:"customDomainPrefix,omitempty"`
		PremiumExpiresAt   *time.Time `doc:"Premium expiry, if any"    json:"premiumExpiresAt,omitempty"`
	}
}
