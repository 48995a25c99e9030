package cli

import "time"

// Game mirrors the API's game representation
type Game struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Capacity          int       `json:"capacity"`
	Owners            []string  `json:"owners"`
	FullPartyOnly     bool      `json:"full_party_only"`
	RemotePlayEnabled bool      `json:"remote_play_enabled"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// GameList is a list of games
type GameList struct {
	Items []Game `json:"items"`
}

// PlayableGame is a game a group can play
type PlayableGame struct {
	Game
	MatchedOwners []string `json:"matched_owners"`
}

// PlayableList is the result of a playable-games query
type PlayableList struct {
	Players []string       `json:"players"`
	Items   []PlayableGame `json:"items"`
}

// OwnerList is the list of known owners
type OwnerList struct {
	Items []string `json:"items"`
}

// Message is a plain confirmation from the API
type Message struct {
	Message string `json:"message"`
}

// HealthResult is the response of the health endpoint
type HealthResult struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
