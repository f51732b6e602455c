package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the API and redirect routes.
func RegisterRoutes(api huma.API, links *LinkHandler, redirects *RedirectHandler, accounts *AuthHandler, subscriptions *SubscriptionHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/auth/register",
		Summary:       "Register an account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, accounts.Register)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Log in",
		Tags:        []string{"Auth"},
	}, accounts.Login)

	huma.Register(api, huma.Operation{
		OperationID: "profile",
		Method:      http.MethodGet,
		Path:        "/api/auth/profile",
		Summary:     "Get the authenticated account",
		Tags:        []string{"Auth"},
	}, accounts.Profile)

	huma.Register(api, huma.Operation{
		OperationID:   "create-link",
		Method:        http.MethodPost,
		Path:          "/api/links",
		Summary:       "Create a short link",
		Description:   "Creates a short link with a generated identifier, optionally decorated with a custom alias.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, links.CreateLink)

	huma.Register(api, huma.Operation{
		OperationID: "list-links",
		Method:      http.MethodGet,
		Path:        "/api/links",
		Summary:     "List the caller's links",
		Tags:        []string{"Links"},
	}, links.ListLinks)

	huma.Register(api, huma.Operation{
		OperationID: "get-link",
		Method:      http.MethodGet,
		Path:        "/api/links/{id}",
		Summary:     "Get a link",
		Tags:        []string{"Links"},
	}, links.GetLink)

	huma.Register(api, huma.Operation{
		OperationID: "update-link",
		Method:      http.MethodPut,
		Path:        "/api/links/{id}",
		Summary:     "Update a link",
		Tags:        []string{"Links"},
	}, links.UpdateLink)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-link",
		Method:        http.MethodDelete,
		Path:          "/api/links/{id}",
		Summary:       "Delete a link",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusNoContent,
	}, links.DeleteLink)

	huma.Register(api, huma.Operation{
		OperationID: "create-checkout-session",
		Method:      http.MethodPost,
		Path:        "/api/subscription/create-session",
		Summary:     "Start a premium checkout",
		Tags:        []string{"Subscription"},
	}, subscriptions.CreateSession)

	huma.Register(api, huma.Operation{
		OperationID: "subscription-webhook",
		Method:      http.MethodPost,
		Path:        "/api/subscription/webhook",
		Summary:     "Payment provider webhook",
		Tags:        []string{"Subscription"},
	}, subscriptions.Webhook)

	huma.Register(api, huma.Operation{
		OperationID: "subscription-status",
		Method:      http.MethodGet,
		Path:        "/api/subscription/status",
		Summary:     "Get the caller's subscription",
		Tags:        []string{"Subscription"},
	}, subscriptions.Status)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{shortId}",
		Summary:     "Redirect to the original URL",
		Tags:        []string{"Redirect"},
	}, redirects.Redirect)

	huma.Register(api, huma.Operation{
		OperationID: "alias-redirect",
		Method:      http.MethodGet,
		Path:        "/{alias}/{shortId}",
		Summary:     "Redirect via an alias-decorated short URL",
		Tags:        []string{"Redirect"},
	}, redirects.AliasRedirect)
}
