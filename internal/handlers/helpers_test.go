package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shortlyhq/shortly/internal/auth"
	"github.com/shortlyhq/shortly/internal/handlers"
	"github.com/shortlyhq/shortly/internal/link"
	"github.com/shortlyhq/shortly/internal/store"
	"github.com/shortlyhq/shortly/internal/user"
)

const (
	testBaseURL = "https://shortly.example"
	testPrefix  = "api"
)

type fakeQR struct{}

func (fakeQR) DataURL(string) (string, error) {
	return "data:image/png;base64,dGVzdA==", nil
}

type testEnv struct {
	mem       *store.MemoryStore
	links     *handlers.LinkHandler
	redirects *handlers.RedirectHandler
	accounts  *handlers.AuthHandler
	tokens    *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := store.NewMemoryStore()

	gen, err := link.NewGenerator(link.DefaultLength)
	require.NoError(t, err)

	linkService := link.NewService(mem, link.NewAllocator(mem, gen), fakeQR{})
	resolver := link.NewResolver(mem, mem.UserStore(), testPrefix)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return &testEnv{
		mem:       mem,
		links:     handlers.NewLinkHandler(linkService, testBaseURL, zap.NewNop()),
		redirects: handlers.NewRedirectHandler(resolver, zap.NewNop()),
		accounts:  handlers.NewAuthHandler(user.NewService(mem.UserStore()), tokens, zap.NewNop()),
		tokens:    tokens,
	}
}

func (e *testEnv) newUser(t *testing.T, premium bool, prefix string) *user.User {
	t.Helper()

	u := &user.User{
		ID:                 uuid.New(),
		FirstName:          "Test",
		LastName:           "User",
		Email:              uuid.NewString() + "@example.com",
		IsPremium:          premium,
		CustomDomainPrefix: prefix,
	}

	require.NoError(t, e.mem.UserStore().Create(context.Background(), u))

	return u
}

func asUser(u *user.User) context.Context {
	return auth.ContextWithUser(context.Background(), u)
}

func (e *testEnv) createLink(t *testing.T, ctx context.Context, originalURL string) handlers.LinkPayload {
	t.Helper()

	req := &handlers.CreateLinkRequest{}
	req.Body.OriginalURL = originalURL

	resp, err := e.links.CreateLink(ctx, req)
	require.NoError(t, err)

	return resp.Body
}
