package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newOwnersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owners",
		Short: "Game ownership commands",
	}

	cmd.AddCommand(newOwnersListCmd())
	cmd.AddCommand(newOwnersGamesCmd())
	cmd.AddCommand(newOwnersAddCmd())
	cmd.AddCommand(newOwnersRemoveCmd())

	return cmd
}

func newOwnersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List everyone who owns a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OwnerList
			if err := client.Get(cmd.Context(), "/api/v1/owners", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newOwnersGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games <name>",
		Short: "List the games a player owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameList
			path := "/api/v1/owners/" + url.PathEscape(args[0]) + "/games"
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newOwnersAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <game-id> <name>",
		Short: "Add an owner to a game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			req := map[string]string{"name": args[1]}
			if err := client.Post(cmd.Context(), gamePath(args[0])+"/owners", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newOwnersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <game-id> <name>",
		Short: "Remove an owner from a game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			path := gamePath(args[0]) + "/owners/" + url.PathEscape(args[1])
			if err := client.Delete(cmd.Context(), path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
