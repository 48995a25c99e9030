package catalog

import (
	"fmt"
	"slices"
	"strings"

	"gamersdb/backend/internal/models"
)

// Match is a game the requested group can play, annotated with the requested
// players who own it.
type Match struct {
	Game          models.Game
	MatchedOwners []string
}

// MatchPlayable returns the games in catalog that the group of players can
// play together, sorted by name. A game qualifies when it seats the whole
// group, when a full-party-only game is filled exactly, and when every player
// owns it (or, with remote play, at least one player does).
//
// Player names are trimmed and compared case-insensitively; blank entries and
// repeated names are ignored. The catalog is not modified.
func MatchPlayable(players []string, catalog []models.Game) ([]Match, error) {
	group := NormalizeNames(players)
	if len(group) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", models.ErrInvalidArgument)
	}

	matches := make([]Match, 0)
	for _, game := range catalog {
		if !seatsGroup(game, len(group)) {
			continue
		}
		matched := matchedOwners(game, group)
		if !ownershipSatisfied(game, len(matched), len(group)) {
			continue
		}
		matches = append(matches, Match{Game: game.Clone(), MatchedOwners: matched})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return compareNames(a.Game.Name, b.Game.Name)
	})
	return matches, nil
}

// seatsGroup applies the capacity and full-party checks.
func seatsGroup(game models.Game, groupSize int) bool {
	if game.Capacity < groupSize {
		return false
	}
	if game.FullPartyOnly && game.Capacity != groupSize {
		return false
	}
	return true
}

// matchedOwners lists the players in group that own game, in group order.
func matchedOwners(game models.Game, group []string) []string {
	owners := newNameSet(game.Owners)
	matched := make([]string, 0, len(group))
	for _, player := range group {
		if owners.has(player) {
			matched = append(matched, player)
		}
	}
	return matched
}

func ownershipSatisfied(game models.Game, owning, groupSize int) bool {
	if game.RemotePlayEnabled {
		return owning >= 1
	}
	return owning == groupSize
}

func compareNames(a, b string) int {
	return strings.Compare(NameKey(a), NameKey(b))
}

// SortGames orders games by name, case-insensitive, keeping the relative order
// of games whose names compare equal.
func SortGames(games []models.Game) {
	slices.SortStableFunc(games, func(a, b models.Game) int {
		return compareNames(a.Name, b.Name)
	})
}
