package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/store"
)

func seedLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requests.db")
	s, err := store.Open(path, store.Options{CaptureBodies: true})
	require.NoError(t, err)
	defer s.Close()

	repo := s.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "openrouter", Model: "openai/gpt-4o-mini", Purpose: "assessment-gen",
		InputTokens: 1200, OutputTokens: 900, LatencyMs: 2300, Success: true,
		RequestBody: "[system]\nMitochondria notes", ResponseBody: "[]",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "assessment-gen",
		LatencyMs: 5, ErrorMessage: "rate limited",
	}))
	return path
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestLLMList(t *testing.T) {
	out := runRoot(t, "llm", "list", "--llm-log", seedLog(t))

	assert.Contains(t, out, "openai/gpt-4o-mini")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "2.3s")
	assert.Contains(t, out, "✗")
}

func TestLLMView(t *testing.T) {
	out := runRoot(t, "llm", "view", "1", "--llm-log", seedLog(t))

	assert.Contains(t, out, "Request 1")
	assert.Contains(t, out, "openrouter / openai/gpt-4o-mini")
	assert.Contains(t, out, "Mitochondria notes")
}

func TestLLMStats(t *testing.T) {
	out := runRoot(t, "llm", "stats", "--llm-log", seedLog(t))

	assert.Contains(t, out, "assessment-gen")
	assert.Contains(t, out, "total (partial)")
	assert.Contains(t, out, "No pricing for: mock")
}

func TestLLMPrune_KeepsRecentRequests(t *testing.T) {
	path := seedLog(t)
	out := runRoot(t, "llm", "prune", "--older-than", "1h", "--llm-log", path)
	assert.Contains(t, out, "Removed 0")

	out = runRoot(t, "llm", "list", "--llm-log", path)
	assert.Contains(t, out, "openai/gpt-4o-mini")
}

func TestLLM_RefusesMemoryLog(t *testing.T) {
	t.Setenv("ADAPTIQ_LLM_LOG", "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"llm", "stats", "--llm-log", ""})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "no request log file")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcdef", truncate("abcdef", 6))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
