package handler

import (
	"errors"
	"net/http"
	"time"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/hub"
	"boardshelf/backend/internal/models"
	"boardshelf/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// PendingResponse defines the structure for a submission awaiting review.
type PendingResponse struct {
	ID          uint                 `json:"id"`
	Status      models.PendingStatus `json:"status"`
	SubmittedBy string               `json:"submitted_by"`
	CreatedAt   time.Time            `json:"created_at"`
	Game        catalog.Record       `json:"game"`
}

func newPendingResponse(p models.PendingGame, rec catalog.Record) PendingResponse {
	return PendingResponse{
		ID:          p.ID,
		Status:      p.Status,
		SubmittedBy: p.SubmittedBy.Nickname,
		CreatedAt:   p.CreatedAt,
		Game:        rec,
	}
}

// SubmitPending godoc
// @Summary      Submit a game for review
// @Description  Queues a game for an admin to approve or deny.
// @Tags         pending
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  PendingResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /games/pending [post]
func (h *Handler) SubmitPending(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	rec, _, ok := bindRecord(c)
	if !ok {
		return
	}
	if len(rec.Owners) == 0 {
		rec.Owners = []string{user.Nickname}
	}

	p, err := h.store.SubmitPending(c.Request.Context(), user.ID, rec)
	if err != nil {
		h.respondError(c, err, "Failed to submit game")
		return
	}
	p.SubmittedBy = user

	resp := newPendingResponse(p, rec)
	h.publish(hub.AdminTopic, hub.PendingSubmitted, resp)
	c.JSON(http.StatusCreated, resp)
}

// GetPending godoc
// @Summary      List open submissions
// @Tags         admin-pending
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending, approved or denied" default(pending)
// @Success      200  {array}   PendingResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/pending [get]
func (h *Handler) GetPending(c *gin.Context) {
	status := models.PendingStatus(c.DefaultQuery("status", string(models.PendingOpen)))

	list, err := h.store.PendingList(c.Request.Context(), status)
	if err != nil {
		h.respondError(c, err, "Failed to retrieve submissions")
		return
	}

	response := make([]PendingResponse, 0, len(list))
	for _, p := range list {
		rec, err := store.DecodePending(p)
		if err != nil {
			h.respondError(c, err, "Failed to decode submission")
			return
		}
		response = append(response, newPendingResponse(p, rec))
	}
	c.JSON(http.StatusOK, response)
}

// ApprovePending godoc
// @Summary      Approve a submission
// @Description  Adds the submitted game to the catalogue. Duplicates are rejected with 409 unless force is set.
// @Tags         admin-pending
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int   true   "Submission ID"
// @Param        force query bool  false  "Store even when similar games exist"
// @Success      201  {object}  catalog.Record
// @Failure      404  {object}  ErrorResponse "Submission not found"
// @Failure      409  {object}  DuplicatesResponse
// @Router       /admin/pending/{id}/approve [post]
func (h *Handler) ApprovePending(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	_, rec, ok := h.openPending(c, id)
	if !ok {
		return
	}

	if !cast.ToBool(c.Query("force")) {
		matches, err := h.duplicates(c, rec)
		if err != nil {
			h.respondError(c, err, "Failed to check for duplicates")
			return
		}
		if len(matches) > 0 {
			c.JSON(http.StatusConflict, DuplicatesResponse{Error: "Similar games already exist", Duplicates: matches})
			return
		}
	}

	p, created, err := h.store.ApprovePending(ctx, id)
	if err != nil {
		h.respondError(c, err, "Failed to approve submission")
		return
	}

	topic := topicFor(p.SubmittedBy)
	h.publish(topic, hub.PendingApproved, gin.H{"id": id, "game": created})
	h.publish(topic, hub.GameCreated, created)
	c.JSON(http.StatusCreated, created)
}

// DenyPending godoc
// @Summary      Deny a submission
// @Tags         admin-pending
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Submission ID"
// @Success      200  {object}  map[string]string "{"message": "Submission denied"}"
// @Failure      404  {object}  ErrorResponse "Submission not found"
// @Failure      409  {object}  ErrorResponse "Submission already reviewed"
// @Router       /admin/pending/{id}/deny [post]
func (h *Handler) DenyPending(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	p, _, ok := h.openPending(c, id)
	if !ok {
		return
	}
	if err := h.store.ResolvePending(c.Request.Context(), id, models.PendingDenied); err != nil {
		h.respondError(c, err, "Failed to resolve submission")
		return
	}

	h.publish(topicFor(p.SubmittedBy), hub.PendingDenied, gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"message": "Submission denied"})
}

// openPending loads a submission that is still awaiting review.
func (h *Handler) openPending(c *gin.Context, id uint) (models.PendingGame, catalog.Record, bool) {
	p, rec, err := h.store.Pending(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return p, rec, false
	}
	if err != nil {
		h.respondError(c, err, "Failed to load submission")
		return p, rec, false
	}
	if p.Status != models.PendingOpen {
		c.JSON(http.StatusConflict, gin.H{"error": store.ErrAlreadyResolved.Error()})
		return p, rec, false
	}
	return p, rec, true
}
