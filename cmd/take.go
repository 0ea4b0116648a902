package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/error402-ai/intellitest/internal/app"
	"github.com/error402-ai/intellitest/internal/logging"
	"github.com/error402-ai/intellitest/internal/screens/quiz"
	"github.com/error402-ai/intellitest/internal/session"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take an adaptive assessment in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfgPath, _ := cmd.Flags().GetString("config")

		acfg, err := readConfig(cfgPath)
		if err != nil {
			return err
		}
		candidates, err := questionSource(cmd)
		if err != nil {
			return err
		}

		plan := session.BuildPlan(acfg, candidates)
		if len(plan.Questions) == 0 {
			return errors.New("no questions match the configured question type")
		}
		if plan.Dropped > 0 {
			log := logging.FromContext(ctx)
			log.Info().
				Int("dropped", plan.Dropped).
				Str("type", string(acfg.QuestionType)).
				Msg("questions excluded from the assessment")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sess := session.New(acfg, plan.Questions, controller(cmd))
		qs := quiz.New(ctx, sess, s.ResultRepo())
		runErr := app.Run(qs)

		// Saves the result when the program was interrupted before the summary.
		if err := qs.Close(); err != nil {
			return fmt.Errorf("save result: %w", err)
		}
		if runErr != nil {
			return fmt.Errorf("run assessment: %w", runErr)
		}
		return nil
	},
}

func init() {
	takeCmd.Flags().StringP("config", "c", "", "Assessment config JSON file")
	takeCmd.Flags().StringP("questions", "q", "", "Question pool JSON file")
	takeCmd.Flags().StringP("pool", "p", "", "Stored question pool name")
	_ = takeCmd.MarkFlagRequired("config")
}
