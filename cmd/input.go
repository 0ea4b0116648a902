package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/error402-ai/intellitest/internal/assessment"
)

func readConfig(path string) (assessment.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return assessment.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return assessment.LoadConfig(f)
}

func readQuestions(path string) ([]assessment.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()
	return assessment.LoadQuestions(f)
}

func readPerformance(path string) (assessment.Performance, error) {
	f, err := os.Open(path)
	if err != nil {
		return assessment.Performance{}, fmt.Errorf("open metrics: %w", err)
	}
	defer f.Close()
	return assessment.LoadPerformance(f)
}

func readResults(path string) ([]assessment.TestResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()
	return assessment.LoadResults(f)
}

// questionSource reads the question pool from --questions or from the
// stored pool named by --pool. Exactly one of the two must be set.
func questionSource(cmd *cobra.Command) ([]assessment.Question, error) {
	path, _ := cmd.Flags().GetString("questions")
	name, _ := cmd.Flags().GetString("pool")

	switch {
	case path != "" && name != "":
		return nil, errors.New("use either --questions or --pool, not both")
	case path != "":
		return readQuestions(path)
	case name != "":
		s, err := openStore(cmd)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		qs, err := s.PoolRepo().LoadPool(cmd.Context(), name)
		if err != nil {
			return nil, fmt.Errorf("load pool %q: %w", name, err)
		}
		if len(qs) == 0 {
			return nil, fmt.Errorf("pool %q is empty or does not exist", name)
		}
		return qs, nil
	default:
		return nil, errors.New("one of --questions or --pool is required")
	}
}
