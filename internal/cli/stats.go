package cli

import (
	"github.com/spf13/cobra"
)

func newGameDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gamedata",
		Short: "Show today's rollup, announcements and the active event",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameData

			if err := client.Get("/api/v1/gamedata", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show global and daily statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Stats

			if err := client.Get("/api/v1/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLeaderboardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboards",
		Short: "Show the leaderboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboards

			if err := client.Get("/api/v1/leaderboards", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
