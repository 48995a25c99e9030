package handler

import (
	"time"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/models"
)

// region --- DTOs ---

// GameInput defines the body used to add a game.
type GameInput struct {
	Name              string   `json:"name" binding:"required" example:"Zelda"`
	Capacity          int      `json:"capacity" binding:"required" example:"2"`
	Owners            []string `json:"owners" example:"Alice,Bob"`
	FullPartyOnly     bool     `json:"full_party_only"`
	RemotePlayEnabled bool     `json:"remote_play_enabled"`
}

// GameUpdateInput defines the body used to edit a game. Omitted fields are kept.
type GameUpdateInput struct {
	Name              *string   `json:"name,omitempty"`
	Capacity          *int      `json:"capacity,omitempty"`
	Owners            *[]string `json:"owners,omitempty"`
	FullPartyOnly     *bool     `json:"full_party_only,omitempty"`
	RemotePlayEnabled *bool     `json:"remote_play_enabled,omitempty"`
}

func (in GameUpdateInput) toUpdate() catalog.GameUpdate {
	return catalog.GameUpdate{
		Name:              in.Name,
		Capacity:          in.Capacity,
		Owners:            in.Owners,
		FullPartyOnly:     in.FullPartyOnly,
		RemotePlayEnabled: in.RemotePlayEnabled,
	}
}

// OwnerInput defines the body used to add an owner to a game.
type OwnerInput struct {
	Name string `json:"name" binding:"required" example:"Alice"`
}

// GameResponse is a catalog entry as returned by the API.
type GameResponse struct {
	ID                string    `json:"id" example:"8c1f4a57-3f3e-4a4e-9a55-3d1f0b5e2c11"`
	Name              string    `json:"name" example:"Zelda"`
	Capacity          int       `json:"capacity" example:"2"`
	Owners            []string  `json:"owners"`
	FullPartyOnly     bool      `json:"full_party_only"`
	RemotePlayEnabled bool      `json:"remote_play_enabled"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func newGameResponse(game models.Game) GameResponse {
	owners := game.Owners
	if owners == nil {
		owners = []string{}
	}
	return GameResponse{
		ID:                game.ID.String(),
		Name:              game.Name,
		Capacity:          game.Capacity,
		Owners:            owners,
		FullPartyOnly:     game.FullPartyOnly,
		RemotePlayEnabled: game.RemotePlayEnabled,
		CreatedAt:         game.CreatedAt,
		UpdatedAt:         game.UpdatedAt,
	}
}

func newGameResponses(games []models.Game) []GameResponse {
	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	return response
}

// PlayableGameResponse is a game the requested group can play, with the
// requested players who own it.
type PlayableGameResponse struct {
	GameResponse
	MatchedOwners []string `json:"matched_owners"`
}

func newPlayableGameResponses(matches []catalog.Match) []PlayableGameResponse {
	response := make([]PlayableGameResponse, 0, len(matches))
	for _, m := range matches {
		response = append(response, PlayableGameResponse{
			GameResponse:  newGameResponse(m.Game),
			MatchedOwners: m.MatchedOwners,
		})
	}
	return response
}

// GameListResponse wraps a list of games.
type GameListResponse struct {
	Items []GameResponse `json:"items"`
}

// PlayableGameListResponse wraps the result of a playable-games query.
type PlayableGameListResponse struct {
	Players []string               `json:"players"`
	Items   []PlayableGameResponse `json:"items"`
}

// OwnerListResponse wraps the list of known owners.
type OwnerListResponse struct {
	Items []string `json:"items"`
}

// MessageResponse is returned by operations without a body to report.
type MessageResponse struct {
	Message string `json:"message" example:"Game deleted"`
}

// endregion
