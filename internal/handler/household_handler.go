package handler

import (
	"errors"
	"net/http"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type HouseholdInput struct {
	Name string `json:"name" binding:"required" example:"Home"`
}

type HouseholdResponse struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func newHouseholdResponse(hh models.Household) HouseholdResponse {
	members := make([]string, 0, len(hh.Members))
	for _, m := range hh.Members {
		members = append(members, m.Nickname)
	}
	return HouseholdResponse{ID: hh.ID, Name: hh.Name, Members: members}
}

// CreateHousehold godoc
// @Summary      Create a household
// @Description  Creates a household and moves the caller into it.
// @Tags         households
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body HouseholdInput true "Household Info"
// @Success      201  {object}  HouseholdResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /households [post]
func (h *Handler) CreateHousehold(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	var input HouseholdInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hh, err := h.store.CreateHousehold(c.Request.Context(), user.ID, input.Name)
	if err != nil {
		h.respondError(c, err, "Failed to create household")
		return
	}
	c.JSON(http.StatusCreated, newHouseholdResponse(hh))
}

// JoinHousehold godoc
// @Summary      Join a household
// @Description  Moves the caller into an existing household, leaving any previous one.
// @Tags         households
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Household ID"
// @Success      200  {object}  HouseholdResponse
// @Failure      404  {object}  ErrorResponse "Household not found"
// @Router       /households/{id}/join [post]
func (h *Handler) JoinHousehold(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	hh, err := h.store.JoinHousehold(c.Request.Context(), user.ID, id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Household not found"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to join household")
		return
	}
	c.JSON(http.StatusOK, newHouseholdResponse(hh))
}

// GetMyHousehold godoc
// @Summary      Get the caller's household
// @Tags         households
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  HouseholdResponse
// @Failure      404  {object}  ErrorResponse "Not in a household"
// @Router       /households/me [get]
func (h *Handler) GetMyHousehold(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	hh, err := h.store.HouseholdOf(c.Request.Context(), user.ID)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not in a household"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to load household")
		return
	}
	c.JSON(http.StatusOK, newHouseholdResponse(hh))
}
