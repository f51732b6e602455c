package auth

import (
	"context"

	"github.com/shortlyhq/shortly/internal/user"
)

type userKey struct{}

// ContextWithUser stores the authenticated user in the context.
func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *user.User {
	if u, ok := ctx.Value(userKey{}).(*user.User); ok {
		return u
	}

	return nil
}
