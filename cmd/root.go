package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "adaptiq",
	Short: "Turn study material into a multiple-choice assessment",
	Long: "adaptiq reads study material, asks a language model for a multiple-choice\n" +
		"assessment, runs you through it and reports how you did. Nothing is saved.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("llm-log", "", "Record model requests to this SQLite file (overrides ADAPTIQ_LLM_LOG)")
	rootCmd.PersistentFlags().Bool("llm-log-bodies", false, "Also record request and response bodies, including material text")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file instead of ./.env")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnv loads --env-file when given, otherwise ./.env if present.
// Variables already set in the environment win.
func loadEnv(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("env-file"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	_ = godotenv.Load()
	return nil
}

// openRequestLog opens the LLM request log chosen by --llm-log, then
// ADAPTIQ_LLM_LOG, then memory.
func openRequestLog(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("llm-log")
	dsn, err := store.ResolveDSN(path)
	if err != nil {
		return nil, fmt.Errorf("resolve request log path: %w", err)
	}
	bodies, _ := cmd.Flags().GetBool("llm-log-bodies")
	st, err := store.Open(dsn, store.Options{CaptureBodies: bodies})
	if err != nil {
		return nil, fmt.Errorf("open request log: %w", err)
	}
	return st, nil
}
