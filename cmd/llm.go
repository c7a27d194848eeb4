package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect a file-backed model request log",
	Long: "Inspect requests recorded with --llm-log PATH or ADAPTIQ_LLM_LOG.\n" +
		"The default log lives in memory and is gone when the process exits.",
}

// openFileLog refuses the in-memory log, which is always empty here.
func openFileLog(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("llm-log")
	dsn, err := store.ResolveDSN(path)
	if err != nil {
		return nil, fmt.Errorf("resolve request log path: %w", err)
	}
	if dsn == store.MemoryDSN {
		return nil, errors.New("no request log file: pass --llm-log PATH or set ADAPTIQ_LLM_LOG")
	}
	return store.Open(dsn, store.Options{})
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		Headers(headers...)
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openFileLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No requests recorded.")
			return nil
		}

		t := newTable("ID", "When", "Purpose", "Model", "In", "Out", "Latency", "OK")
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			t.Row(
				strconv.Itoa(e.ID),
				humanize.Time(e.Timestamp),
				e.Purpose,
				truncate(e.Model, 28),
				humanize.Comma(int64(e.InputTokens)),
				humanize.Comma(int64(e.OutputTokens)),
				(time.Duration(e.LatencyMs) * time.Millisecond).String(),
				ok,
			)
		}
		fmt.Fprintln(out, t.String())
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one request with its prompt and reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openFileLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func printEvent(w io.Writer, e *store.LLMRequestEvent) {
	status := "ok"
	if !e.Success {
		status = "failed: " + e.ErrorMessage
	}
	fmt.Fprintf(w, "Request %d (sequence %d)\n", e.ID, e.Sequence)
	fmt.Fprintf(w, "  time      %s (%s)\n", e.Timestamp.Local().Format(time.DateTime), humanize.Time(e.Timestamp))
	fmt.Fprintf(w, "  provider  %s / %s\n", e.Provider, e.Model)
	fmt.Fprintf(w, "  purpose   %s\n", e.Purpose)
	fmt.Fprintf(w, "  tokens    %s in, %s out\n", humanize.Comma(int64(e.InputTokens)), humanize.Comma(int64(e.OutputTokens)))
	fmt.Fprintf(w, "  latency   %s\n", time.Duration(e.LatencyMs)*time.Millisecond)
	fmt.Fprintf(w, "  status    %s\n", status)

	section := func(title, body string) {
		fmt.Fprintf(w, "\n── %s ", title)
		if body == "" {
			fmt.Fprintln(w, "(not captured; record with --llm-log-bodies)")
			return
		}
		fmt.Fprintf(w, "(%s)\n%s\n", humanize.Bytes(uint64(len(body))), body)
	}
	section("request", e.RequestBody)
	section("response", e.ResponseBody)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openFileLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No requests recorded.")
			return nil
		}
		printUsage(out, byPurpose, byModel)
		return nil
	},
}

func printUsage(w io.Writer, byPurpose []store.LLMUsageStats, byModel []store.LLMModelUsage) {
	usage := newTable("Purpose", "Calls", "Input", "Output", "Avg latency")
	var calls, in, outTok int
	for _, st := range byPurpose {
		usage.Row(st.Purpose,
			strconv.Itoa(st.Calls),
			humanize.Comma(int64(st.InputTokens)),
			humanize.Comma(int64(st.OutputTokens)),
			(time.Duration(st.AvgLatencyMs) * time.Millisecond).String())
		calls += st.Calls
		in += st.InputTokens
		outTok += st.OutputTokens
	}
	usage.Row("total", strconv.Itoa(calls), humanize.Comma(int64(in)), humanize.Comma(int64(outTok)), "")
	fmt.Fprintln(w, usage.String())

	cost := newTable("Model", "Calls", "Input", "Output", "Cost (USD)")
	var total float64
	var unpriced []string
	for _, mu := range byModel {
		price := "?"
		if c := llm.LookupCost(mu.Model); c != nil {
			usd := c.Cost(mu.InputTokens, mu.OutputTokens)
			total += usd
			price = formatCost(usd)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		cost.Row(truncate(mu.Model, 32), strconv.Itoa(mu.Calls),
			humanize.Comma(int64(mu.InputTokens)), humanize.Comma(int64(mu.OutputTokens)), price)
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	cost.Row(label, "", "", "", formatCost(total))
	fmt.Fprintln(w)
	fmt.Fprintln(w, cost.String())
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "No pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

var llmPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete requests older than a given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetDuration("older-than")
		if age <= 0 {
			return errors.New("--older-than must be positive")
		}

		s, err := openFileLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		cutoff := time.Now().Add(-age)
		n, err := s.EventRepo().PruneLLMEvents(cmd.Context(), cutoff)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s recorded before %s.\n",
			humanize.Comma(n), cutoff.Local().Format(time.DateTime))
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only this purpose (e.g. assessment-gen)")
	llmListCmd.Flags().Duration("since", 0, "Only requests newer than this age (e.g. 24h)")
	llmPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Age beyond which requests are deleted")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd, llmPruneCmd)
}
