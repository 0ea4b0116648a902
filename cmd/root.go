package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/error402-ai/intellitest/internal/adaptive"
	"github.com/error402-ai/intellitest/internal/config"
	"github.com/error402-ai/intellitest/internal/logging"
	"github.com/error402-ai/intellitest/internal/report"
	"github.com/error402-ai/intellitest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "intellitest",
	Short: "Question quality checks and adaptive difficulty for assessments",
	Long: "IntelliTest validates generated assessment questions, picks the next question\n" +
		"at the right difficulty and analyzes past results.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides INTELLITEST_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides INTELLITEST_LOG_LEVEL)")
	pf.Uint64("seed", 0, "Seed for question selection; 0 picks a random seed")
	pf.Bool("no-color", false, "Disable colored output")
	pf.Bool("json", false, "Print results as JSON")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

type settingsKey struct{}

// setup loads configuration, applies flag overrides and stores the settings
// and logger in the command context.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	ctx = logging.IntoContext(ctx, logger)
	cmd.SetContext(context.WithValue(ctx, settingsKey{}, cfg))
	return nil
}

// settings returns the configuration loaded by setup.
func settings(cmd *cobra.Command) *config.App {
	if cfg, ok := cmd.Context().Value(settingsKey{}).(*config.App); ok {
		return cfg
	}
	return &config.App{}
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg *config.App) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(settings(cmd))
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// printer writes reports to the command output. Color is used only on a
// terminal.
func printer(cmd *cobra.Command) *report.Printer {
	noColor, _ := cmd.Flags().GetBool("no-color")
	color := !noColor && isatty.IsTerminal(os.Stdout.Fd())
	return report.New(cmd.OutOrStdout(), color)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

// controller builds the adaptive controller, seeded when a seed is set.
func controller(cmd *cobra.Command) *adaptive.Controller {
	if seed := settings(cmd).Seed; seed != 0 {
		return adaptive.NewSeeded(seed)
	}
	return adaptive.New(nil)
}
