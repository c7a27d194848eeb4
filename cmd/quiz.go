package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/app"
	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take an assessment in the terminal",
	Example: `  adaptiq quiz --file chapter3.pdf --count 5 --level hard
  pbpaste | adaptiq quiz --text -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := readMaterial(cmd, cmd.InOrStdin())
		if err != nil {
			return err
		}
		cfg, err := readQuizConfig(cmd)
		if err != nil {
			return err
		}

		// The terminal belongs to the TUI, so logs only go to ADAPTIQ_LOG_FILE.
		logger, closeLog, err := newLogger(logText, io.Discard)
		if err != nil {
			return err
		}
		defer closeLog()

		st, err := openRequestLog(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gen, err := newGenerator(cmd, st, logger)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		noSplash, _ := cmd.Flags().GetBool("no-splash")
		return app.Run(cmd.Context(), app.Options{
			Generator: gen,
			Material:  m,
			Config:    cfg,
			Email:     email,
			Splash:    !noSplash,
			Logger:    logger,
		})
	},
}

// newGenerator wires the configured provider, with request logging, into
// an assessment generator.
func newGenerator(cmd *cobra.Command, st *store.Store, logger *slog.Logger) (assessment.Generator, error) {
	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo(), logger)
	if err != nil {
		return nil, fmt.Errorf("language model not configured: %w", err)
	}
	return assessment.New(provider, generatorConfig(cmd), logger), nil
}

func init() {
	addMaterialFlags(quizCmd)
	quizCmd.Flags().String("email", "", "Prefill the sign-in email")
	quizCmd.Flags().Bool("no-splash", false, "Skip the intro screen")
}
