package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shortlyhq/shortly/internal/auth"
	"github.com/shortlyhq/shortly/internal/link"
	"github.com/shortlyhq/shortly/internal/user"
)

// LinkHandler handles link lifecycle operations.
type LinkHandler struct {
	service *link.Service
	baseURL string
	logger  *zap.Logger
}

// NewLinkHandler creates a link handler.
func NewLinkHandler(service *link.Service, baseURL string, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{
		service: service,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	owner := auth.UserFromContext(ctx)

	params := link.CreateParams{
		OriginalURL: req.Body.OriginalURL,
		CustomAlias: req.Body.CustomAlias,
		ExpiresAt:   req.Body.ExpiresAt,
		GenerateQR:  req.Body.IsQRCode,
	}
	if owner != nil {
		params.OwnerID = &owner.ID
	}

	l, err := h.service.Create(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, link.ErrInvalidURL):
			return nil, huma.Error400BadRequest("originalUrl must be an absolute http or https URL")
		case errors.Is(err, link.ErrInvalidAlias):
			return nil, huma.Error400BadRequest("customAlias must be 3-30 characters of letters, digits, '-' or '_'")
		case errors.Is(err, link.ErrAliasTaken):
			return nil, huma.Error400BadRequest("customAlias is already in use")
		}

		h.logger.Error("failed to create link", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create link")
	}

	return &CreateLinkResponse{Body: h.payload(l, owner)}, nil
}

func (h *LinkHandler) ListLinks(ctx context.Context, _ *struct{}) (*ListLinksResponse, error) {
	owner := auth.UserFromContext(ctx)
	if owner == nil {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	links, err := h.service.List(ctx, owner.ID)
	if err != nil {
		h.logger.Error("failed to list links", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list links")
	}

	resp := &ListLinksResponse{}
	resp.Body.Count = len(links)
	resp.Body.Links = make([]LinkPayload, 0, len(links))

	for _, l := range links {
		resp.Body.Links = append(resp.Body.Links, h.payload(l, owner))
	}

	return resp, nil
}

func (h *LinkHandler) GetLink(ctx context.Context, req *GetLinkRequest) (*GetLinkResponse, error) {
	owner, id, err := h.ownedLinkID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	l, err := h.service.Get(ctx, id, owner.ID)
	if err != nil {
		return nil, h.lookupError(err)
	}

	return &GetLinkResponse{Body: h.payload(l, owner)}, nil
}

func (h *LinkHandler) UpdateLink(ctx context.Context, req *UpdateLinkRequest) (*UpdateLinkResponse, error) {
	owner, id, err := h.ownedLinkID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	params := link.UpdateParams{
		OriginalURL:    req.Body.OriginalURL,
		ExpiresAt:      req.Body.ExpiresAt,
		ClearExpiresAt: req.Body.ClearExpiresAt,
		Active:         req.Body.Active,
	}

	l, err := h.service.Update(ctx, id, owner.ID, params)
	if err != nil {
		if errors.Is(err, link.ErrInvalidURL) {
			return nil, huma.Error400BadRequest("originalUrl must be an absolute http or https URL")
		}

		return nil, h.lookupError(err)
	}

	return &UpdateLinkResponse{Body: h.payload(l, owner)}, nil
}

func (h *LinkHandler) DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkResponse, error) {
	owner, id, err := h.ownedLinkID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if _, err := h.service.Delete(ctx, id, owner.ID); err != nil {
		return nil, h.lookupError(err)
	}

	return &DeleteLinkResponse{Status: http.StatusNoContent}, nil
}

// ownedLinkID authenticates the caller and parses the path identifier.
func (h *LinkHandler) ownedLinkID(ctx context.Context, raw string) (*user.User, uuid.UUID, error) {
	owner := auth.UserFromContext(ctx)
	if owner == nil {
		return nil, uuid.Nil, huma.Error401Unauthorized("authentication required")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, uuid.Nil, huma.Error404NotFound("link not found")
	}

	return owner, id, nil
}

func (h *LinkHandler) lookupError(err error) error {
	if errors.Is(err, link.ErrNotFound) {
		return huma.Error404NotFound("link not found")
	}

	h.logger.Error("link operation failed", zap.Error(err))

	return huma.Error500InternalServerError("link operation failed")
}

func (h *LinkHandler) payload(l *link.Link, owner *user.User) LinkPayload {
	branded := owner != nil && owner.Branded()

	return LinkPayload{
		ID:             l.ID.String(),
		ShortURL:       h.shortURLFor(l, owner),
		ShortID:        l.ShortID,
		CustomAlias:    l.CustomAlias,
		OriginalURL:    l.OriginalURL,
		ExpiresAt:      l.ExpiresAt,
		Active:         l.Active,
		IsExpired:      l.Expired(time.Now()),
		IsPremiumURL:   branded,
		QRCodeImageURL: l.QRCodeImageURL,
		CreatedAt:      l.CreatedAt,
	}
}

// shortURLFor composes the public short URL. Links owned by a branded
// account are addressed through the owner's subdomain.
func (h *LinkHandler) shortURLFor(l *link.Link, owner *user.User) string {
	base := h.baseURL

	if owner != nil && owner.Branded() {
		if u, err := url.Parse(h.baseURL); err == nil {
			u.Host = owner.CustomDomainPrefix + "." + u.Host
			base = u.String()
		}
	}

	return fmt.Sprintf("%s/%s", base, l.Path())
}
