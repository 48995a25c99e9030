package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Game catalog commands",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesGetCmd())
	cmd.AddCommand(newGamesAddCmd())
	cmd.AddCommand(newGamesEditCmd())
	cmd.AddCommand(newGamesDeleteCmd())

	return cmd
}

func newGamesListCmd() *cobra.Command {
	var query, owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			if query != "" {
				params.Set("q", query)
			}
			if owner != "" {
				params.Set("owner", owner)
			}

			path := "/api/v1/games"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var result GameList
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "q", "", "Only games whose name contains this text")
	cmd.Flags().StringVar(&owner, "owner", "", "Only games owned by this player")

	return cmd
}

func newGamesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get(cmd.Context(), gamePath(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGamesAddCmd() *cobra.Command {
	var (
		capacity      int
		owners        string
		fullPartyOnly bool
		remotePlay    bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a game to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":                args[0],
				"capacity":            capacity,
				"owners":              splitList(owners),
				"full_party_only":     fullPartyOnly,
				"remote_play_enabled": remotePlay,
			}

			var result Game
			if err := client.Post(cmd.Context(), "/api/v1/games", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 0, "Maximum number of players (required)")
	cmd.Flags().StringVar(&owners, "owners", "", "Comma-separated owners")
	cmd.Flags().BoolVar(&fullPartyOnly, "full-party-only", false, "Only playable with exactly --capacity players")
	cmd.Flags().BoolVar(&remotePlay, "remote-play", false, "One owner in the group is enough")
	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}

func newGamesEditCmd() *cobra.Command {
	var (
		name          string
		capacity      int
		owners        string
		fullPartyOnly bool
		remotePlay    bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a game's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			req := map[string]any{}
			if flags.Changed("name") {
				req["name"] = name
			}
			if flags.Changed("capacity") {
				req["capacity"] = capacity
			}
			if flags.Changed("owners") {
				req["owners"] = splitList(owners)
			}
			if flags.Changed("full-party-only") {
				req["full_party_only"] = fullPartyOnly
			}
			if flags.Changed("remote-play") {
				req["remote_play_enabled"] = remotePlay
			}
			if len(req) == 0 {
				return fmt.Errorf("nothing to change: pass at least one of --name, --capacity, --owners, --full-party-only, --remote-play")
			}

			var result Game
			if err := client.Put(cmd.Context(), gamePath(args[0]), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "New maximum number of players")
	cmd.Flags().StringVar(&owners, "owners", "", "Replace owners with this comma-separated list")
	cmd.Flags().BoolVar(&fullPartyOnly, "full-party-only", false, "Only playable with exactly capacity players")
	cmd.Flags().BoolVar(&remotePlay, "remote-play", false, "One owner in the group is enough")

	return cmd
}

func newGamesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Message
			if err := client.Delete(cmd.Context(), gamePath(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func gamePath(id string) string {
	return "/api/v1/games/" + url.PathEscape(id)
}

// splitList splits a comma-separated flag value, dropping blank entries.
func splitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
