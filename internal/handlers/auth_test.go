package handlers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlyhq/shortly/internal/auth"
	"github.com/shortlyhq/shortly/internal/handlers"
)

func registerRequest(email string) *handlers.RegisterRequest {
	req := &handlers.RegisterRequest{}
	req.Body.FirstName = "Ada"
	req.Body.LastName = "Lovelace"
	req.Body.Email = email
	req.Body.Password = "s3cret!"

	return req
}

func TestRegister(t *testing.T) {
	t.Run("creates an account and a session", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.accounts.Register(context.Background(), registerRequest("ada@example.com"))

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", resp.Body.User.Email)
		assert.NotEmpty(t, resp.Body.Token)

		assert.Equal(t, auth.TokenCookie, resp.SetCookie.Name)
		assert.True(t, resp.SetCookie.HttpOnly)
		assert.Equal(t, "/", resp.SetCookie.Path)

		userID, err := env.tokens.Parse(resp.Body.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.Body.User.ID, userID.String())
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Register(context.Background(), registerRequest("ada@example.com"))
		require.NoError(t, err)

		_, err = env.accounts.Register(context.Background(), registerRequest("ada@example.com"))

		assert.Error(t, err)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		env := newTestEnv(t)

		req := registerRequest("ada@example.com")
		req.Body.Password = ""

		_, err := env.accounts.Register(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	t.Run("returns a session for valid credentials", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Register(context.Background(), registerRequest("ada@example.com"))
		require.NoError(t, err)

		req := &handlers.LoginRequest{}
		req.Body.Email = "ada@example.com"
		req.Body.Password = "s3cret!"

		resp, err := env.accounts.Login(context.Background(), req)

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Body.Token)
		assert.Equal(t, "ada@example.com", resp.Body.User.Email)
	})

	t.Run("rejects bad credentials", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Register(context.Background(), registerRequest("ada@example.com"))
		require.NoError(t, err)

		req := &handlers.LoginRequest{}
		req.Body.Email = "ada@example.com"
		req.Body.Password = "wrong-password"

		_, err = env.accounts.Login(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestProfile(t *testing.T) {
	t.Run("returns the authenticated account", func(t *testing.T) {
		env := newTestEnv(t)
		u := env.newUser(t, true, "acme")

		resp, err := env.accounts.Profile(asUser(u), nil)

		require.NoError(t, err)
		assert.Equal(t, u.Email, resp.Body.Email)
		assert.True(t, resp.Body.IsPremium)
	})

	t.Run("requires authentication", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Profile(context.Background(), nil)

		assert.Error(t, err)
	})
}
