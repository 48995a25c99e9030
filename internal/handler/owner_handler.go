package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOwners godoc
// @Summary      List owners
// @Description  Lists every player who owns at least one game, sorted case-insensitively.
// @Tags         owners
// @Produce      json
// @Success      200  {object}  OwnerListResponse
// @Failure      503  {object}  ErrorResponse "Catalog store unavailable"
// @Router       /owners [get]
func (h *GameHandler) GetOwners(c *gin.Context) {
	owners, err := h.catalog.Owners(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, OwnerListResponse{Items: owners})
}

// GetOwnerGames godoc
// @Summary      List a player's games
// @Tags         owners
// @Produce      json
// @Param        name  path      string  true  "Owner name"
// @Success      200   {object}  GameListResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /owners/{name}/games [get]
func (h *GameHandler) GetOwnerGames(c *gin.Context) {
	games, err := h.catalog.GamesByOwner(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, GameListResponse{Items: newGameResponses(games)})
}
