package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/models"
)

// GameHandler serves the catalog endpoints.
type GameHandler struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewGameHandler creates a GameHandler. logger may be nil.
func NewGameHandler(svc *catalog.Service, logger *slog.Logger) *GameHandler {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &GameHandler{catalog: svc, logger: logger}
}

// gameID parses the :id path parameter.
func gameID(c *gin.Context) (models.GameID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return models.GameID{}, fmt.Errorf("%w: invalid game id %q", models.ErrInvalidArgument, c.Param("id"))
	}
	return id, nil
}

// GetGames godoc
// @Summary      Get the catalog
// @Description  Lists every game sorted by name, optionally filtered by name and owner.
// @Tags         games
// @Produce      json
// @Param        q      query     string  false  "Case-insensitive substring of the game name"
// @Param        owner  query     string  false  "Only games owned by this player"
// @Success      200    {object}  GameListResponse
// @Failure      503    {object}  ErrorResponse "Catalog store unavailable"
// @Router       /games [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	games, err := h.catalog.ListGames(c.Request.Context(), catalog.ListFilter{
		Query: c.Query("q"),
		Owner: c.Query("owner"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, GameListResponse{Items: newGameResponses(games)})
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Tags         games
// @Produce      json
// @Param        id   path      string  true  "Game ID"
// @Success      200  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, err := gameID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	game, err := h.catalog.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newGameResponse(*game))
}

// CreateGame godoc
// @Summary      Add a game
// @Description  Adds a game with its capacity, initial owners and play-mode flags.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input  body      GameInput  true  "Game Info"
// @Success      201    {object}  GameResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse "Game name already exists"
// @Router       /games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, h.logger, err)
		return
	}

	game, err := h.catalog.CreateGame(c.Request.Context(), catalog.NewGame{
		Name:              input.Name,
		Capacity:          input.Capacity,
		Owners:            input.Owners,
		FullPartyOnly:     input.FullPartyOnly,
		RemotePlayEnabled: input.RemotePlayEnabled,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, newGameResponse(*game))
}

// UpdateGame godoc
// @Summary      Edit a game
// @Description  Changes any of a game's fields. Omitted fields keep their value; owners replaces the whole list.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id     path      string           true  "Game ID"
// @Param        input  body      GameUpdateInput  true  "Fields to change"
// @Success      200    {object}  GameResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse "Game not found"
// @Failure      409    {object}  ErrorResponse "Game name already exists"
// @Router       /games/{id} [put]
func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, err := gameID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var input GameUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, h.logger, err)
		return
	}

	game, err := h.catalog.UpdateGame(c.Request.Context(), id, input.toUpdate())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newGameResponse(*game))
}

// DeleteGame godoc
// @Summary      Delete a game
// @Tags         games
// @Produce      json
// @Param        id   path      string  true  "Game ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, err := gameID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.catalog.DeleteGame(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Game deleted"})
}

// AddOwner godoc
// @Summary      Add an owner to a game
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        id     path      string      true  "Game ID"
// @Param        input  body      OwnerInput  true  "Owner"
// @Success      200    {object}  GameResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse "Game not found"
// @Failure      409    {object}  ErrorResponse "Already an owner"
// @Router       /games/{id}/owners [post]
func (h *GameHandler) AddOwner(c *gin.Context) {
	id, err := gameID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var input OwnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, h.logger, err)
		return
	}

	game, err := h.catalog.AddOwner(c.Request.Context(), id, input.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newGameResponse(*game))
}

// RemoveOwner godoc
// @Summary      Remove an owner from a game
// @Description  Removing a player who does not own the game succeeds and changes nothing.
// @Tags         owners
// @Produce      json
// @Param        id    path      string  true  "Game ID"
// @Param        name  path      string  true  "Owner name"
// @Success      200   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/owners/{name} [delete]
func (h *GameHandler) RemoveOwner(c *gin.Context) {
	id, err := gameID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	game, err := h.catalog.RemoveOwner(c.Request.Context(), id, c.Param("name"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newGameResponse(*game))
}

// GetPlayableGames godoc
// @Summary      Find games a group can play
// @Description  Returns the games that seat the whole group and that the group owns (one owner suffices for remote-play games), sorted by name.
// @Tags         games
// @Produce      json
// @Param        players  query     string  true  "Comma-separated player names"
// @Success      200      {object}  PlayableGameListResponse
// @Failure      400      {object}  ErrorResponse "No players given"
// @Failure      503      {object}  ErrorResponse "Catalog store unavailable"
// @Router       /games/playable [get]
func (h *GameHandler) GetPlayableGames(c *gin.Context) {
	var players []string
	for _, value := range c.QueryArray("players") {
		players = append(players, catalog.SplitNames(value)...)
	}
	players = catalog.NormalizeNames(players)

	matches, err := h.catalog.PlayableGames(c.Request.Context(), players)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, PlayableGameListResponse{
		Players: players,
		Items:   newPlayableGameResponses(matches),
	})
}
