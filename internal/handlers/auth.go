package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/shortlyhq/shortly/internal/auth"
	"github.com/shortlyhq/shortly/internal/user"
)

// AuthHandler handles account registration and sessions.
type AuthHandler struct {
	users  *user.Service
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users *user.Service, tokens *auth.TokenManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

func (h *AuthHandler) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	u, err := h.users.Register(ctx, user.RegisterParams{
		FirstName: req.Body.FirstName,
		LastName:  req.Body.LastName,
		Email:     req.Body.Email,
		Password:  req.Body.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingFields):
			return nil, huma.Error400BadRequest("firstName, lastName, email and password are required")
		case errors.Is(err, user.ErrPasswordTooShort):
			return nil, huma.Error400BadRequest("password must be at least 6 characters")
		case errors.Is(err, user.ErrEmailTaken):
			return nil, huma.Error400BadRequest("email is already registered")
		}

		h.logger.Error("failed to register user", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to register user")
	}

	return h.session(u)
}

func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := h.users.Login(ctx, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return nil, huma.Error401Unauthorized("invalid email or password")
		}

		h.logger.Error("failed to log in user", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to log in")
	}

	return h.session(u)
}

func (h *AuthHandler) Profile(ctx context.Context, _ *struct{}) (*ProfileResponse, error) {
	u := auth.UserFromContext(ctx)
	if u == nil {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	return &ProfileResponse{Body: userPayload(u)}, nil
}

func (h *AuthHandler) session(u *user.User) (*AuthResponse, error) {
	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to issue token")
	}

	resp := &AuthResponse{
		SetCookie: http.Cookie{
			Name:     auth.TokenCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(h.tokens.TTL().Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	resp.Body.Token = token
	resp.Body.User = userPayload(u)

	return resp, nil
}

func userPayload(u *user.User) UserPayload {
	return UserPayload{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsPremium: u.IsPremium,
	}
}
