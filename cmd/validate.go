package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/error402-ai/intellitest/internal/assessment"
	"github.com/error402-ai/intellitest/internal/llm"
	"github.com/error402-ai/intellitest/internal/logging"
	"github.com/error402-ai/intellitest/internal/quality"
	"github.com/error402-ai/intellitest/internal/store"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Score candidate questions and build an approved pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfgPath, _ := cmd.Flags().GetString("config")
		questionsPath, _ := cmd.Flags().GetString("questions")
		poolName, _ := cmd.Flags().GetString("pool")
		existingName, _ := cmd.Flags().GetString("existing")

		acfg, err := readConfig(cfgPath)
		if err != nil {
			return err
		}
		candidates, err := readQuestions(questionsPath)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var existing []assessment.Question
		if existingName != "" {
			existing, err = s.PoolRepo().LoadPool(ctx, existingName)
			if err != nil {
				return fmt.Errorf("load pool %q: %w", existingName, err)
			}
		}

		cfg := settings(cmd)
		ctrl := quality.New(
			assessor(ctx, aiEnabled(cmd, cfg.Quality.AICheck), cfg.LLM, s.EventRepo()),
			quality.WithAssessorTimeout(cfg.Quality.AITimeout),
		)
		rep := ctrl.FilterPool(ctx, candidates, acfg, existing...)

		p := printer(cmd)
		if jsonOutput(cmd) {
			if err := p.JSON(rep); err != nil {
				return err
			}
		} else {
			p.Pool(rep)
		}

		if poolName == "" {
			return nil
		}
		pool := poolToSave(poolName, existingName, existing, rep.Approved())
		if err := s.PoolRepo().SavePool(ctx, poolName, pool); err != nil {
			return fmt.Errorf("save pool %q: %w", poolName, err)
		}
		if !jsonOutput(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d questions to pool %q\n", len(pool), poolName)
		}
		return nil
	},
}

// aiEnabled reports whether the AI check runs. An explicit --ai flag, true
// or false, wins over the configured default.
func aiEnabled(cmd *cobra.Command, configured bool) bool {
	if !cmd.Flags().Changed("ai") {
		return configured
	}
	on, _ := cmd.Flags().GetBool("ai")
	return on
}

// poolToSave returns the questions to store under name. Saving back into
// the pool that seeded the duplicate check keeps its questions ahead of
// the newly approved ones.
func poolToSave(name, existingName string, existing, approved []assessment.Question) []assessment.Question {
	if name != existingName {
		return approved
	}
	return append(slices.Clip(existing), approved...)
}

// assessor returns the AI quality assessor, or nil when the check is off or
// no provider is configured. A missing provider is not an error: the rule
// checks run alone.
func assessor(ctx context.Context, enabled bool, cfg llm.Config, events store.EventRepo) quality.QuestionQualityAssessor {
	if !enabled {
		return nil
	}
	log := logging.FromContext(ctx)
	provider, err := llm.NewProviderFromConfig(ctx, cfg, events)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			log.Warn().Msg("AI quality check requested but no LLM provider is configured")
		} else {
			log.Warn().Err(err).Msg("AI quality check unavailable")
		}
		return nil
	}
	log.Debug().Str("model", provider.ModelID()).Msg("AI quality check enabled")
	return quality.NewLLMAssessor(provider)
}

func init() {
	validateCmd.Flags().StringP("config", "c", "", "Assessment config JSON file")
	validateCmd.Flags().StringP("questions", "q", "", "Candidate questions JSON file")
	validateCmd.Flags().StringP("pool", "p", "", "Save approved questions under this pool name")
	validateCmd.Flags().String("existing", "", "Treat questions in this stored pool as already approved")
	validateCmd.Flags().Bool("ai", false, "Include the AI quality check (overrides INTELLITEST_QUALITY_AI_CHECK)")
	_ = validateCmd.MarkFlagRequired("config")
	_ = validateCmd.MarkFlagRequired("questions")
}
