package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"boardshelf/backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

// SearchBGG godoc
// @Summary      Search BoardGameGeek
// @Description  Finds board games by name. An empty query returns no results.
// @Tags         bgg
// @Produce      json
// @Security     BearerAuth
// @Param        q   query     string  true  "Game name"
// @Success      200 {array}   bgg.SearchResult
// @Failure      502 {object}  ErrorResponse "BoardGameGeek lookup failed"
// @Router       /bgg/search [get]
func (h *Handler) SearchBGG(c *gin.Context) {
	if !h.lookupConfigured(c) {
		return
	}
	results, err := h.lookup.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Warn("bgg search failed", slog.String("q", c.Query("q")), slog.Any("err", err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "BoardGameGeek lookup failed"})
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetBGGThing godoc
// @Summary      Fetch a BoardGameGeek game
// @Description  Returns the game as a record that can be submitted to POST /games.
// @Tags         bgg
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "BoardGameGeek ID"
// @Success      200 {object}  catalog.Record
// @Failure      404 {object}  ErrorResponse
// @Failure      502 {object}  ErrorResponse "BoardGameGeek lookup failed"
// @Router       /bgg/things/{id} [get]
func (h *Handler) GetBGGThing(c *gin.Context) {
	if !h.lookupConfigured(c) {
		return
	}
	rec, err := h.lookup.Thing(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "BoardGameGeek game not found"})
		return
	}
	if err != nil {
		h.logger.Warn("bgg thing failed", slog.String("id", c.Param("id")), slog.Any("err", err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "BoardGameGeek lookup failed"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) lookupConfigured(c *gin.Context) bool {
	if h.lookup == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "BoardGameGeek lookup is not configured"})
		return false
	}
	return true
}
