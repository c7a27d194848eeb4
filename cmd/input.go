package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/material"
)

// addMaterialFlags registers the flags shared by quiz and generate.
func addMaterialFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Study material file (.pdf, .txt or .md, up to 20 MiB)")
	cmd.Flags().StringP("text", "t", "", "Study material as text; - reads standard input")
	cmd.Flags().IntP("count", "n", assessment.DefaultQuestionCount, "Number of questions")
	cmd.Flags().StringP("level", "l", string(assessment.Medium), "Difficulty: easy, medium or hard")
	cmd.Flags().Bool("pass-through", false, "Accept the model's questions without structural checks")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
}

// readMaterial loads material from --file or --text.
func readMaterial(cmd *cobra.Command, stdin io.Reader) (material.Material, error) {
	file, _ := cmd.Flags().GetString("file")
	text, _ := cmd.Flags().GetString("text")

	switch {
	case file != "":
		return material.IngestFile(file, material.ModeText)
	case text == "-":
		data, err := io.ReadAll(io.LimitReader(stdin, material.MaxFileSize+1))
		if err != nil {
			return material.Material{}, fmt.Errorf("read standard input: %w", err)
		}
		if int64(len(data)) > material.MaxFileSize {
			return material.Material{}, &material.TooLargeError{Name: "stdin", Limit: material.MaxFileSize}
		}
		text = string(data)
	}

	m := material.FromText(text)
	if err := material.Validate(m); err != nil {
		return material.Material{}, fmt.Errorf("no study material: pass --file or --text: %w", err)
	}
	return m, nil
}

// readQuizConfig builds the QuizConfig from --count and --level.
func readQuizConfig(cmd *cobra.Command) (assessment.QuizConfig, error) {
	count, _ := cmd.Flags().GetInt("count")
	rawLevel, _ := cmd.Flags().GetString("level")

	level, err := assessment.ParseDifficulty(rawLevel)
	if err != nil {
		return assessment.QuizConfig{}, err
	}
	cfg := assessment.QuizConfig{Count: count, Level: level}
	if err := cfg.Validate(); err != nil {
		return assessment.QuizConfig{}, err
	}
	return cfg, nil
}

// generatorConfig picks strict or pass-through validation.
func generatorConfig(cmd *cobra.Command) assessment.Config {
	if pt, _ := cmd.Flags().GetBool("pass-through"); pt {
		return assessment.PassThroughConfig()
	}
	return assessment.DefaultConfig()
}

func openFileOrStdin(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
