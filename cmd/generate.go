package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an assessment and print it as JSON",
	Example: `  adaptiq generate --file notes.md --count 3 > questions.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := readMaterial(cmd, cmd.InOrStdin())
		if err != nil {
			return err
		}
		cfg, err := readQuizConfig(cmd)
		if err != nil {
			return err
		}

		logger, closeLog, err := newLogger(logText, os.Stderr)
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

		questions, err := gen.Generate(cmd.Context(), m, cfg)
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return session.ErrNoQuestions
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(questions)
	},
}

func init() {
	addMaterialFlags(generateCmd)
}
