package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// GameID identifies a catalog entry. Stores assign it on create and never reuse it.
type GameID = uuid.UUID

// Game represents a game in the catalog.
type Game struct {
	ID       GameID `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"` // max simultaneous players
	// Owners keeps the spelling and order in which names were entered.
	Owners            []string  `json:"owners"`
	FullPartyOnly     bool      `json:"full_party_only"`
	RemotePlayEnabled bool      `json:"remote_play_enabled"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Clone returns a copy of the game that shares no memory with g.
func (g Game) Clone() Game {
	g.Owners = slices.Clone(g.Owners)
	if g.Owners == nil {
		g.Owners = []string{}
	}
	return g
}
