package cli

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newPlayableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "playable <player>...",
		Short: "Find the games a group of players can play together",
		Long: `Find the games a group of players can play together.

Players may be given as separate arguments or comma-separated:
  gamersctl playable Alice Bob
  gamersctl playable "Alice, Bob"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			params.Set("players", strings.Join(args, ","))

			var result PlayableList
			if err := client.Get(cmd.Context(), "/api/v1/games/playable?"+params.Encode(), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
