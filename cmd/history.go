package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.ResultRepo().RecentResults(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		p := printer(cmd)
		if jsonOutput(cmd) {
			return p.JSON(results)
		}
		p.History(results)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of results to show; 0 shows all")
}
