// Package handler exposes the catalogue over a JSON HTTP API.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"boardshelf/backend/internal/auth"
	"boardshelf/backend/internal/bgg"
	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/config"
	"boardshelf/backend/internal/duplicate"
	"boardshelf/backend/internal/hub"
	"boardshelf/backend/internal/models"
	"boardshelf/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// Lookup is the external game catalogue used to enrich submissions.
type Lookup interface {
	Search(ctx context.Context, name string) ([]bgg.SearchResult, error)
	Thing(ctx context.Context, id string) (catalog.Record, error)
}

// Handler carries the dependencies of every endpoint.
type Handler struct {
	cfg      *config.Config
	store    *store.Store
	detector *duplicate.Detector
	lookup   Lookup
	hub      *hub.Hub
	logger   *slog.Logger
}

// New wires a Handler. lookup may be nil, in which case the BGG endpoints
// answer 503.
func New(cfg *config.Config, st *store.Store, lookup Lookup, h *hub.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    st,
		detector: duplicate.New(cfg.DuplicateThreshold),
		lookup:   lookup,
		hub:      h,
		logger:   logger,
	}
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// respondError maps well-known errors onto status codes. Anything else is
// logged and reported as a 500 with fallback as message.
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, catalog.ErrInvalidRecord):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateID),
		errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrCategoryExists),
		errors.Is(err, store.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		h.logger.Error(fallback, slog.String("path", c.FullPath()), slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// currentUser loads the authenticated user. ok is false when the request is
// anonymous or the user no longer exists.
func (h *Handler) currentUser(c *gin.Context) (models.User, bool) {
	id, ok := auth.UserID(c)
	if !ok {
		return models.User{}, false
	}
	u, err := h.store.UserByID(c.Request.Context(), id)
	if err != nil {
		return models.User{}, false
	}
	return u, true
}

// requireUser is currentUser for protected routes: it answers 401 itself.
func (h *Handler) requireUser(c *gin.Context) (models.User, bool) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return u, ok
}

// topicFor is the event topic a user's changes are published on.
func topicFor(u models.User) string {
	if u.HouseholdID != nil {
		return hub.HouseholdTopic(*u.HouseholdID)
	}
	return hub.UserTopic(u.ID)
}

func (h *Handler) publish(topic, eventType string, payload any) {
	n, err := h.hub.Broadcast(topic, hub.Event{Type: eventType, Payload: payload})
	if err != nil {
		h.logger.Warn("broadcast failed", slog.String("topic", topic), slog.Any("err", err))
		return
	}
	h.logger.Debug("event published",
		slog.String("topic", topic),
		slog.String("type", eventType),
		slog.Int("delivered", n),
	)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

func pageParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}
	return page, limit
}
