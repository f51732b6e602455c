package middleware

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shortlyhq/shortly/internal/auth"
	"github.com/shortlyhq/shortly/internal/user"
)

// Identity is a middleware that resolves the authenticated user from the
// session cookie or an Authorization bearer token. Requests with missing or
// invalid tokens proceed anonymously; operations that require an identity
// reject them individually.
func Identity(_ huma.API, tokens *auth.TokenManager, users user.Repository) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		raw := tokenFromRequest(ctx)
		if raw == "" {
			next(ctx)

			return
		}

		userID, err := tokens.Parse(raw)
		if err != nil {
			next(ctx)

			return
		}

		u, err := users.GetByID(ctx.Context(), userID)
		if err != nil {
			next(ctx)

			return
		}

		ctx = huma.WithContext(ctx, auth.ContextWithUser(ctx.Context(), u))

		next(ctx)
	}
}

func tokenFromRequest(ctx huma.Context) string {
	if cookie, err := huma.ReadCookie(ctx, auth.TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := ctx.Header("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
