package handler

import (
	"errors"
	"net/http"
	"strings"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/duplicate"
	"boardshelf/backend/internal/filter"
	"boardshelf/backend/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// region --- DTOs ---

// GameInput documents the accepted game payload. The API accepts any key
// spelling the catalogue has used over time (minPlayers, min_players,
// personalRating, owner, ...); unknown keys are ignored.
type GameInput struct {
	ID         string   `json:"id" example:"13"`
	BGGID      string   `json:"bgg_id" example:"13"`
	Name       string   `json:"name" example:"Catan"`
	Language   string   `json:"language" example:"en"`
	Rating     float64  `json:"rating" example:"7.5"`
	MinPlayers int      `json:"min_players" example:"3"`
	MaxPlayers int      `json:"max_players" example:"4"`
	Categories []string `json:"categories"`
	Owners     []string `json:"owners"`
	Tag        string   `json:"tag" example:"Board Game"`
	LastPlayed string   `json:"last_played" example:"2024-03-01"`
}

// DuplicatesResponse lists the existing games a submission collides with.
type DuplicatesResponse struct {
	Error      string            `json:"error,omitempty"`
	Duplicates []duplicate.Match `json:"duplicates"`
}

// endregion

// bindRecord reads a loosely typed game payload from the request body.
func bindRecord(c *gin.Context) (catalog.Record, map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return catalog.Record{}, nil, false
	}
	rec, err := catalog.Normalize(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return catalog.Record{}, nil, false
	}
	return rec, raw, true
}

// region --- Public Handlers ---

// GetGames godoc
// @Summary      Get a filtered list of games
// @Description  Applies the collection filters and returns one page of the result. Malformed filter values are ignored.
// @Tags         games
// @Produce      json
// @Param        mode                  query  string  false  "Tag to match, or All"
// @Param        num_players           query  int     false  "Players that must be able to play"
// @Param        rating                query  number  false  "Minimum personal rating"
// @Param        categories            query  string  false  "Comma-separated categories"
// @Param        category_filter_type  query  string  false  "AND or OR" default(OR)
// @Param        language              query  string  false  "Language code, or All"
// @Param        owner                 query  string  false  "Owner name, or All"
// @Param        my_games_only         query  bool    false  "Only games the caller owns"
// @Param        household_only        query  bool    false  "Only games owned within the caller's household"
// @Param        q                     query  string  false  "Search query for game name"
// @Param        page                  query  int     false  "Page number" default(1)
// @Param        limit                 query  int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[catalog.Record]
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	ctx := c.Request.Context()
	spec := filter.FromQuery(c.Request.URL.Query())

	if user, ok := h.currentUser(c); ok {
		spec.CurrentUser = user.Nickname
		members, err := h.store.HouseholdMembers(ctx, user.ID)
		if err != nil {
			h.respondError(c, err, "Failed to load household")
			return
		}
		spec.Household = members
	}

	vocabulary, err := h.vocabulary(c)
	if err != nil {
		h.respondError(c, err, "Failed to load categories")
		return
	}
	records, err := h.store.Records(ctx)
	if err != nil {
		h.respondError(c, err, "Failed to retrieve games")
		return
	}

	matched := filter.NewEngine(vocabulary).Apply(records, spec)
	page, limit := pageParams(c)
	c.JSON(http.StatusOK, PaginateSlice(matched, page, limit))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Tags         games
// @Produce      json
// @Param        id path string true "Game ID"
// @Success      200 {object} catalog.Record
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	rec, err := h.store.Game(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to retrieve game")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// endregion

// region --- Authenticated Handlers ---

// CreateGame godoc
// @Summary      Add a game to the catalogue
// @Description  Normalizes the payload, optionally enriches it from BoardGameGeek (bgg_id), and screens it for duplicates. Duplicates are rejected with 409 unless force is set.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Param        force query bool false "Store even when similar games exist"
// @Success      201  {object}  catalog.Record
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  DuplicatesResponse
// @Failure      502  {object}  ErrorResponse "BoardGameGeek lookup failed"
// @Router       /games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	rec, raw, ok := bindRecord(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if bggID := strings.TrimSpace(cast.ToString(raw["bgg_id"])); bggID != "" {
		if h.lookup == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "BoardGameGeek lookup is not configured"})
			return
		}
		fragment, err := h.lookup.Thing(ctx, bggID)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "BoardGameGeek game not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "BoardGameGeek lookup failed"})
			return
		}
		rec = catalog.Merge(rec, fragment)
	}
	if len(rec.Owners) == 0 {
		rec.Owners = []string{user.Nickname}
	}
	if err := rec.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	force := cast.ToBool(c.Query("force"))
	if !force {
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

	created, err := h.store.CreateGame(ctx, rec, &user.ID)
	if err != nil {
		h.respondError(c, err, "Failed to create game")
		return
	}

	h.publish(topicFor(user), hub.GameCreated, created)
	c.JSON(http.StatusCreated, created)
}

// CheckDuplicates godoc
// @Summary      Screen a game for duplicates
// @Description  Runs duplicate detection against the catalogue without storing anything.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      200  {object}  DuplicatesResponse
// @Failure      400  {object}  ErrorResponse "Neither id nor name given"
// @Router       /games/duplicates [post]
func (h *Handler) CheckDuplicates(c *gin.Context) {
	rec, _, ok := bindRecord(c)
	if !ok {
		return
	}
	matches, err := h.duplicates(c, rec)
	if err != nil {
		h.respondError(c, err, "Failed to check for duplicates")
		return
	}
	c.JSON(http.StatusOK, DuplicatesResponse{Duplicates: matches})
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Replaces a game's fields. The ID never changes.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string    true  "Game ID"
// @Param        input body      GameInput true  "New Game Info"
// @Success      200   {object}  catalog.Record
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [put]
func (h *Handler) UpdateGame(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	rec, _, ok := bindRecord(c)
	if !ok {
		return
	}

	updated, err := h.store.UpdateGame(c.Request.Context(), c.Param("id"), rec)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to update game")
		return
	}

	h.publish(topicFor(user), hub.GameUpdated, updated)
	c.JSON(http.StatusOK, updated)
}

// DeleteGame godoc
// @Summary      Delete a game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Game deleted"}"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func (h *Handler) DeleteGame(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}
	id := c.Param("id")

	err := h.store.DeleteGame(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to delete game")
		return
	}

	h.publish(topicFor(user), hub.GameDeleted, gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}

// endregion

// duplicates screens rec against the current catalogue snapshot.
func (h *Handler) duplicates(c *gin.Context, rec catalog.Record) ([]duplicate.Match, error) {
	records, err := h.store.Records(c.Request.Context())
	if err != nil {
		return nil, err
	}
	matches, err := h.detector.Matches(rec, records)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []duplicate.Match{}
	}
	return matches, nil
}

// vocabulary returns the names of the stored categories.
func (h *Handler) vocabulary(c *gin.Context) ([]string, error) {
	cats, err := h.store.Categories(c.Request.Context())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cats))
	for _, cat := range cats {
		names = append(names, cat.Name)
	}
	return names, nil
}
