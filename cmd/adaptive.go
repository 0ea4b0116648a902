package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/error402-ai/intellitest/internal/assessment"
)

// historyWindow is how many stored results analyze reads.
const historyWindow = 5

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Compute the next difficulty from a performance snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		metricsPath, _ := cmd.Flags().GetString("metrics")

		acfg, err := readConfig(cfgPath)
		if err != nil {
			return err
		}
		perf, err := readPerformance(metricsPath)
		if err != nil {
			return err
		}

		adj := controller(cmd).AdjustDifficulty(perf.Metrics, perf.RecentAnswers, acfg)

		p := printer(cmd)
		if jsonOutput(cmd) {
			return p.JSON(adj)
		}
		p.Adjustment(adj)
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Pick the next question for a running assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		metricsPath, _ := cmd.Flags().GetString("metrics")

		acfg, err := readConfig(cfgPath)
		if err != nil {
			return err
		}
		perf, err := readPerformance(metricsPath)
		if err != nil {
			return err
		}
		pool, err := questionSource(cmd)
		if err != nil {
			return err
		}

		q, adj := controller(cmd).NextQuestion(perf.Metrics, perf.RecentAnswers, acfg, pool)

		p := printer(cmd)
		if jsonOutput(cmd) {
			return p.JSON(struct {
				Question   *assessment.Question  `json:"question"`
				Adjustment assessment.Adjustment `json:"adjustment"`
			}{q, adj})
		}
		p.Adjustment(adj)
		p.Question(q)
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze recent results for strengths, weaknesses and a starting difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		resultsPath, _ := cmd.Flags().GetString("results")

		var results []assessment.TestResult
		if resultsPath != "" {
			var err error
			results, err = readResults(resultsPath)
			if err != nil {
				return err
			}
		} else {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			results, err = s.ResultRepo().RecentResults(cmd.Context(), historyWindow)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
		}

		a := controller(cmd).AnalyzeLearningPatterns(results)

		p := printer(cmd)
		if jsonOutput(cmd) {
			return p.JSON(a)
		}
		p.Analysis(a)
		return nil
	},
}

func init() {
	adjustCmd.Flags().StringP("config", "c", "", "Assessment config JSON file")
	adjustCmd.Flags().StringP("metrics", "m", "", "Performance snapshot JSON file")
	_ = adjustCmd.MarkFlagRequired("config")
	_ = adjustCmd.MarkFlagRequired("metrics")

	nextCmd.Flags().StringP("config", "c", "", "Assessment config JSON file")
	nextCmd.Flags().StringP("metrics", "m", "", "Performance snapshot JSON file")
	nextCmd.Flags().StringP("questions", "q", "", "Question pool JSON file")
	nextCmd.Flags().StringP("pool", "p", "", "Stored question pool name")
	_ = nextCmd.MarkFlagRequired("config")
	_ = nextCmd.MarkFlagRequired("metrics")

	analyzeCmd.Flags().StringP("results", "r", "", "Results JSON file (default: stored history)")
}
