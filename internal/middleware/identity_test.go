package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlyhq/shortly/internal/auth"
	"github.com/shortlyhq/shortly/internal/handlers"
	"github.com/shortlyhq/shortly/internal/middleware"
	"github.com/shortlyhq/shortly/internal/store"
	"github.com/shortlyhq/shortly/internal/user"
)

type whoamiOutput struct {
	Body struct {
		Email        string `json:"email"`
		DomainPrefix string `json:"domainPrefix"`
	}
}

func setupIdentityAPI(t *testing.T) (*chi.Mux, *auth.TokenManager, *user.User) {
	t.Helper()

	mem := store.NewMemoryStore()
	users := mem.UserStore()

	u := &user.User{ID: uuid.New(), Email: "ada@example.com"}
	require.NoError(t, users.Create(context.Background(), u))

	tokens := auth.NewTokenManager("test-secret", time.Hour)

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(
		middleware.DomainPrefix(api),
		middleware.Identity(api, tokens, users),
	)

	huma.Get(api, "/whoami", func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		out := &whoamiOutput{}
		out.Body.DomainPrefix = handlers.DomainPrefixFromContext(ctx)

		if u := auth.UserFromContext(ctx); u != nil {
			out.Body.Email = u.Email
		}

		return out, nil
	})

	return router, tokens, u
}

func TestIdentity(t *testing.T) {
	t.Run("resolves the user from the session cookie", func(t *testing.T) {
		router, tokens, u := setupIdentityAPI(t)

		token, err := tokens.Issue(u.ID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: token})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ada@example.com")
	})

	t.Run("resolves the user from a bearer token", func(t *testing.T) {
		router, tokens, u := setupIdentityAPI(t)

		token, err := tokens.Issue(u.ID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ada@example.com")
	})

	t.Run("treats an invalid token as anonymous", func(t *testing.T) {
		router, _, _ := setupIdentityAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: "forged"})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "ada@example.com")
	})

	t.Run("treats a missing token as anonymous", func(t *testing.T) {
		router, _, _ := setupIdentityAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "ada@example.com")
	})
}

func TestDomainPrefixMiddleware(t *testing.T) {
	t.Run("stores the tenant subdomain in the context", func(t *testing.T) {
		router, _, _ := setupIdentityAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Host = "acme.shortly.example"

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"domainPrefix":"acme"`)
	})

	t.Run("leaves bare hosts without a prefix", func(t *testing.T) {
		router, _, _ := setupIdentityAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Host = "shortly.example"

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"domainPrefix":""`)
	})
}
