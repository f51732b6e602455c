package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/shortlyhq/shortly/internal/link"
)

// RedirectHandler resolves short identifiers into redirects.
type RedirectHandler struct {
	resolver *link.Resolver
	logger   *zap.Logger
}

// NewRedirectHandler creates a redirect handler.
func NewRedirectHandler(resolver *link.Resolver, logger *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		resolver: resolver,
		logger:   logger,
	}
}

func (h *RedirectHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	return h.redirect(ctx, req.ShortID)
}

// AliasRedirect serves alias-decorated short URLs. The alias segment is
// cosmetic and plays no part in resolution.
func (h *RedirectHandler) AliasRedirect(ctx context.Context, req *AliasRedirectRequest) (*RedirectResponse, error) {
	return h.redirect(ctx, req.ShortID)
}

func (h *RedirectHandler) redirect(ctx context.Context, shortID string) (*RedirectResponse, error) {
	target, err := h.resolver.Resolve(ctx, shortID, DomainPrefixFromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, link.ErrNotFound):
			return nil, huma.Error404NotFound("short url not found")
		case errors.Is(err, link.ErrExpired):
			return nil, huma.NewError(http.StatusGone, "short url has expired")
		case errors.Is(err, link.ErrInactive):
			return nil, huma.NewError(http.StatusGone, "short url is disabled")
		}

		h.logger.Error("failed to resolve short url", zap.String("shortId", shortID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to resolve short url")
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: target,
	}, nil
}
