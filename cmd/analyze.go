package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/analysis"
	"github.com/abhisek/adaptiq/internal/assessment"
)

// analyzeInput is the document read by the analyze command.
type analyzeInput struct {
	Questions []assessment.Question `json:"questions"`
	Attempts  []assessment.Attempt  `json:"attempts"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze recorded attempts and print a performance report",
	Long: "Reads a JSON document {\"questions\": [...], \"attempts\": [...]} from file\n" +
		"or standard input and prints the performance report.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		r, err := openFileOrStdin(path)
		if err != nil {
			return err
		}
		defer r.Close()

		logger, closeLog, err := newLogger(logText, os.Stderr)
		if err != nil {
			return err
		}
		defer closeLog()

		var in analyzeInput
		if err := json.NewDecoder(r).Decode(&in); err != nil {
			return fmt.Errorf("decode input: %w", err)
		}

		report, err := analysis.AnalyzeWithLogger(in.Attempts, in.Questions, logger)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		case "text":
			printReport(cmd.OutOrStdout(), report)
			return nil
		}
		return fmt.Errorf("unknown format %q: want json or text", format)
	},
}

func printReport(w io.Writer, r *analysis.Report) {
	line := strings.Repeat("─", 56)

	fmt.Fprintf(w, "Accuracy:   %.1f%% (%d/%d)  %s\n", r.Accuracy, r.CorrectCount, r.Total, r.Standing)
	fmt.Fprintf(w, "Avg pace:   %.1fs per question\n", r.AvgResponseTime)
	fmt.Fprintf(w, "Pace:       %d fast, %d optimal, %d slow\n", r.TimeBuckets.Fast, r.TimeBuckets.Optimal, r.TimeBuckets.Slow)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-28s  %7s  %8s  %7s\n", "Topic", "Correct", "Accuracy", "Avg s")
	fmt.Fprintln(w, line)
	topics := make([]string, 0, len(r.TopicBreakdown))
	for t := range r.TopicBreakdown {
		topics = append(topics, t)
	}
	slices.Sort(topics)
	for _, t := range topics {
		b := r.TopicBreakdown[t]
		fmt.Fprintf(w, "%-28s  %3d/%-3d  %7.0f%%  %7.1f\n", truncate(t, 28), b.Correct, b.Total, b.Accuracy()*100, b.AvgResponseTime)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-28s  %7s  %8s  %7s\n", "Difficulty", "Correct", "Accuracy", "Avg s")
	fmt.Fprintln(w, line)
	for _, d := range assessment.Difficulties {
		b, ok := r.DifficultyBreakdown[d]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-28s  %3d/%-3d  %7.0f%%  %7.1f\n", d, b.Correct, b.Total, b.Accuracy()*100, b.AvgResponseTime)
	}

	fmt.Fprintln(w)
	if len(r.WeakTopics) == 0 {
		fmt.Fprintln(w, "Weak topics: none")
	} else {
		fmt.Fprintf(w, "Weak topics: %s\n", strings.Join(r.WeakTopics, ", "))
	}
	if r.Unmatched > 0 {
		fmt.Fprintf(w, "Skipped %d attempts with unknown question ids\n", r.Unmatched)
	}
}

func init() {
	analyzeCmd.Flags().String("format", "json", "Output format: json or text")
}
