package handler

import (
	"errors"
	"net/http"
	"time"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

type CategoryResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
}

func newCategoryResponse(cat models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
		Name:      cat.Name,
	}
}

// GetCategoryNames godoc
// @Summary      List category names
// @Description  Returns the category vocabulary offered by the filters.
// @Tags         meta
// @Produce      json
// @Success      200  {array}   string
// @Router       /categories [get]
func (h *Handler) GetCategoryNames(c *gin.Context) {
	names, err := h.vocabulary(c)
	if err != nil {
		h.respondError(c, err, "Failed to retrieve categories")
		return
	}
	c.JSON(http.StatusOK, names)
}

// GetLanguages godoc
// @Summary      List language codes
// @Tags         meta
// @Produce      json
// @Success      200  {array}   string
// @Router       /languages [get]
func (h *Handler) GetLanguages(c *gin.Context) {
	langs := h.cfg.Languages()
	if langs == nil {
		langs = []string{}
	}
	c.JSON(http.StatusOK, langs)
}

// CreateCategory godoc
// @Summary      Create a new category
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CategoryInput true "Category Info"
// @Success      201  {object}  CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Category already exists"
// @Router       /admin/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.store.CreateCategory(c.Request.Context(), input.Name)
	if err != nil {
		h.respondError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, newCategoryResponse(cat))
}

// GetCategories godoc
// @Summary      Get all categories
// @Tags         admin-categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   CategoryResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	cats, err := h.store.Categories(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to retrieve categories")
		return
	}

	response := make([]CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		response = append(response, newCategoryResponse(cat))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateCategory godoc
// @Summary      Rename a category
// @Description  Renames a category. Games keep their link to it.
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int      true  "Category ID"
// @Param        input body CategoryInput true "New Category Info"
// @Success      200  {object}  CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Category not found"
// @Failure      409  {object}  ErrorResponse "Category already exists"
// @Router       /admin/categories/{id} [put]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.store.RenameCategory(c.Request.Context(), id, input.Name)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(cat))
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Deletes a category and unlinks it from every game.
// @Tags         admin-categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  map[string]string "{"message": "Category deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Category not found"
// @Router       /admin/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	err := h.store.DeleteCategory(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
