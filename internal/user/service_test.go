package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shortlyhq/shortly/internal/store"
	"github.com/shortlyhq/shortly/internal/user"
)

func newService() *user.Service {
	return user.NewService(store.NewMemoryStore().UserStore())
}

func validParams() user.RegisterParams {
	return user.RegisterParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Password:  "s3cret!",
	}
}

func TestService_Register(t *testing.T) {
	t.Run("creates an account with a hashed password", func(t *testing.T) {
		svc := newService()

		u, err := svc.Register(context.Background(), validParams())

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", u.Email, "emails are normalized to lower case")
		assert.False(t, u.IsPremium)
		assert.NoError(t, bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("s3cret!")))
	})

	t.Run("requires all fields", func(t *testing.T) {
		svc := newService()

		p := validParams()
		p.Email = ""

		_, err := svc.Register(context.Background(), p)

		assert.ErrorIs(t, err, user.ErrMissingFields)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		svc := newService()

		p := validParams()
		p.Password = "12345"

		_, err := svc.Register(context.Background(), p)

		assert.ErrorIs(t, err, user.ErrPasswordTooShort)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		svc := newService()

		_, err := svc.Register(context.Background(), validParams())
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), validParams())

		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	t.Run("returns the user for valid credentials", func(t *testing.T) {
		svc := newService()

		registered, err := svc.Register(context.Background(), validParams())
		require.NoError(t, err)

		u, err := svc.Login(context.Background(), "ada@example.com", "s3cret!")

		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("is case-insensitive on the email", func(t *testing.T) {
		svc := newService()

		_, err := svc.Register(context.Background(), validParams())
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), "ADA@example.COM", "s3cret!")

		assert.NoError(t, err)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		svc := newService()

		_, err := svc.Register(context.Background(), validParams())
		require.NoError(t, err)

		_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "s3cret!")
		_, wrongErr := svc.Login(context.Background(), "ada@example.com", "wrong-password")

		assert.ErrorIs(t, unknownErr, user.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, user.ErrInvalidCredentials)
	})
}
