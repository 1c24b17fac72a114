package handler

import (
	"errors"
	"net/http"
	"time"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type RatingInput struct {
	Score   float64 `json:"score" binding:"gte=0,lte=10" example:"8"`
	Comment string  `json:"comment" example:"Great with four"`
}

type RatingResponse struct {
	ID        uint      `json:"id"`
	GameID    string    `json:"game_id"`
	Score     float64   `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func newRatingResponse(r models.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		GameID:    r.GameID,
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// RateGame godoc
// @Summary      Rate a game
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string       true  "Game ID"
// @Param        input body  RatingInput  true  "Rating"
// @Success      201  {object}  RatingResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/ratings [post]
func (h *Handler) RateGame(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	var input RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r := models.Rating{GameID: c.Param("id"), UserID: user.ID, Score: input.Score, Comment: input.Comment}
	err := h.store.AddRating(c.Request.Context(), &r)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to save rating")
		return
	}
	c.JSON(http.StatusCreated, newRatingResponse(r))
}

// GetMyRatings godoc
// @Summary      List the caller's ratings
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[RatingResponse]
// @Router       /users/me/ratings [get]
func (h *Handler) GetMyRatings(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	ratings, total, err := h.store.RatingsByUser(c.Request.Context(), user.ID, page, limit)
	if err != nil {
		h.respondError(c, err, "Failed to retrieve ratings")
		return
	}

	response := make([]RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		response = append(response, newRatingResponse(r))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(response, total, page, limit))
}
