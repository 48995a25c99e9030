package catalog

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamersdb/backend/internal/models"
)

func game(name string, capacity int, owners ...string) models.Game {
	return models.Game{
		ID:       uuid.New(),
		Name:     name,
		Capacity: capacity,
		Owners:   owners,
	}
}

func remote(g models.Game) models.Game {
	g.RemotePlayEnabled = true
	return g
}

func fullParty(g models.Game) models.Game {
	g.FullPartyOnly = true
	return g
}

func names(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Game.Name)
	}
	return out
}

func scenarioCatalog() []models.Game {
	return []models.Game{
		game("Zelda", 2, "Alice", "Bob"),
		remote(game("Ace", 4, "Alice")),
	}
}

func TestMatchPlayable_BothOwnersAndRemotePlay(t *testing.T) {
	matches, err := MatchPlayable([]string{"alice", "BOB"}, scenarioCatalog())
	require.NoError(t, err)

	assert.Equal(t, []string{"Ace", "Zelda"}, names(matches))
	assert.Equal(t, []string{"alice"}, matches[0].MatchedOwners)
	assert.Equal(t, []string{"alice", "BOB"}, matches[1].MatchedOwners)
}

func TestMatchPlayable_NobodyOwns(t *testing.T) {
	matches, err := MatchPlayable([]string{"Charlie"}, scenarioCatalog())
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatchPlayable_FullPartyNeedsExactGroup(t *testing.T) {
	catalog := []models.Game{fullParty(game("Trio", 3, "Alice", "Bob", "Cara"))}

	matches, err := MatchPlayable([]string{"Alice", "Bob"}, catalog)
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = MatchPlayable([]string{"Alice", "Bob", "Cara"}, catalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"Trio"}, names(matches))
}

func TestMatchPlayable_CapacityBeforeOwnership(t *testing.T) {
	catalog := []models.Game{
		game("Solo", 1, "Alice", "Bob"),
		remote(game("Solo Online", 1, "Alice", "Bob")),
	}

	matches, err := MatchPlayable([]string{"Alice", "Bob"}, catalog)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatchPlayable_RemotePlayNeedsOneOwner(t *testing.T) {
	catalog := []models.Game{
		remote(game("Online", 4, "Bob")),
		game("Couch", 4, "Bob"),
	}

	matches, err := MatchPlayable([]string{"Alice", "Bob", "Cara"}, catalog)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Online", matches[0].Game.Name)
	assert.Equal(t, []string{"Bob"}, matches[0].MatchedOwners)
}

func TestMatchPlayable_TrimsAndIgnoresCase(t *testing.T) {
	catalog := []models.Game{game("Zelda", 2, " alice", "BOB ")}

	matches, err := MatchPlayable([]string{"  ALICE  ", "bob\t"}, catalog)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"ALICE", "bob"}, matches[0].MatchedOwners)
}

func TestMatchPlayable_RepeatedPlayersCountOnce(t *testing.T) {
	catalog := []models.Game{fullParty(game("Duo", 2, "Alice", "Bob"))}

	matches, err := MatchPlayable([]string{"Alice", "alice", "Bob", " "}, catalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"Duo"}, names(matches))
}

func TestMatchPlayable_EmptyPlayers(t *testing.T) {
	for _, players := range [][]string{nil, {}, {"", "   "}} {
		_, err := MatchPlayable(players, scenarioCatalog())
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	}
}

func TestMatchPlayable_SortsByNameCaseInsensitive(t *testing.T) {
	catalog := []models.Game{
		game("zombies", 4, "Alice"),
		game("Ace", 4, "Alice"),
		game("mario", 4, "Alice"),
		game("Bomberman", 4, "Alice"),
	}

	matches, err := MatchPlayable([]string{"Alice"}, catalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ace", "Bomberman", "mario", "zombies"}, names(matches))
}

func TestMatchPlayable_DoesNotModifyCatalog(t *testing.T) {
	catalog := scenarioCatalog()
	before := make([]models.Game, len(catalog))
	for i, g := range catalog {
		before[i] = g.Clone()
	}

	matches, err := MatchPlayable([]string{"Alice", "Bob"}, catalog)
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	matches[0].Game.Owners[0] = "Mallory"
	assert.Equal(t, before, catalog)
}

func TestMatchPlayable_OrderOfPlayersDoesNotMatter(t *testing.T) {
	catalog := randomCatalog(rand.New(rand.NewSource(7)), 40)

	a, err := MatchPlayable([]string{"Alice", "Bob", "Cara"}, catalog)
	require.NoError(t, err)
	b, err := MatchPlayable([]string{"cara", "ALICE", "bob"}, catalog)
	require.NoError(t, err)

	assert.Equal(t, names(a), names(b))
}

func TestMatchPlayable_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := []string{"Alice", "Bob", "Cara", "Dan", "Eve"}

	for i := 0; i < 200; i++ {
		catalog := randomCatalog(rng, 12)
		players := pickPlayers(rng, pool)

		matches, err := MatchPlayable(players, catalog)
		require.NoError(t, err)

		again, err := MatchPlayable(players, catalog)
		require.NoError(t, err)
		assert.Equal(t, matches, again, "repeated calls must agree")

		for j, m := range matches {
			g := m.Game
			assert.GreaterOrEqual(t, g.Capacity, len(players), "capacity of %s", g.Name)
			if g.FullPartyOnly {
				assert.Equal(t, len(players), g.Capacity, "full party %s", g.Name)
			}
			if g.RemotePlayEnabled {
				assert.NotEmpty(t, m.MatchedOwners, "remote %s", g.Name)
			} else {
				for _, p := range players {
					assert.True(t, ContainsName(g.Owners, p), "%s must own %s", p, g.Name)
				}
			}
			for _, owner := range m.MatchedOwners {
				assert.True(t, ContainsName(g.Owners, owner))
				assert.True(t, ContainsName(players, owner))
			}
			if j > 0 {
				assert.LessOrEqual(t, NameKey(matches[j-1].Game.Name), NameKey(g.Name))
			}
		}

		// Every game left out must fail at least one rule.
		playable := make(map[models.GameID]bool, len(matches))
		for _, m := range matches {
			playable[m.Game.ID] = true
		}
		for _, g := range catalog {
			if playable[g.ID] {
				continue
			}
			assert.True(t, excluded(g, players), "game %s should have matched", g.Name)
		}
	}
}

func excluded(g models.Game, players []string) bool {
	if g.Capacity < len(players) || (g.FullPartyOnly && g.Capacity != len(players)) {
		return true
	}
	owning := 0
	for _, p := range players {
		if ContainsName(g.Owners, p) {
			owning++
		}
	}
	if g.RemotePlayEnabled {
		return owning == 0
	}
	return owning != len(players)
}

func randomCatalog(rng *rand.Rand, n int) []models.Game {
	pool := []string{"Alice", "bob", "CARA", "Dan", "Eve", "Frank"}
	catalog := make([]models.Game, 0, n)
	for i := 0; i < n; i++ {
		var owners []string
		for _, p := range pool {
			if rng.Intn(2) == 0 {
				owners = append(owners, p)
			}
		}
		g := game(fmt.Sprintf("Game %02d", rng.Intn(100)), 1+rng.Intn(5), owners...)
		g.FullPartyOnly = rng.Intn(4) == 0
		g.RemotePlayEnabled = rng.Intn(3) == 0
		catalog = append(catalog, g)
	}
	return catalog
}

func pickPlayers(rng *rand.Rand, pool []string) []string {
	n := 1 + rng.Intn(len(pool))
	perm := rng.Perm(len(pool))
	players := make([]string, 0, n)
	for _, idx := range perm[:n] {
		players = append(players, pool[idx])
	}
	return players
}

func TestSortGamesIsStable(t *testing.T) {
	first := game("Tetris", 1)
	second := game("TETRIS", 2)
	games := []models.Game{game("zork", 1), first, second, game("Asteroids", 1)}

	SortGames(games)

	require.Len(t, games, 4)
	assert.Equal(t, "Asteroids", games[0].Name)
	assert.Equal(t, first.ID, games[1].ID)
	assert.Equal(t, second.ID, games[2].ID)
	assert.Equal(t, "zork", games[3].Name)
}
