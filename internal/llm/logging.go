package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/adaptiq/internal/store"
)

// LoggingProvider records every call in the request log and emits one
// slog line per call.
type LoggingProvider struct {
	inner  Provider
	vendor string
	events store.EventRepo
	logger *slog.Logger
}

// WithLogging wraps p. A nil repo only logs; a nil logger uses slog.Default().
func WithLogging(p Provider, events store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, vendor: vendorName(p), events: events, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:    l.vendor,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	attrs := []any{
		"purpose", ev.Purpose,
		"provider", ev.Provider,
		"model", ev.Model,
		"latency_ms", ev.LatencyMs,
	}
	if req.Schema != nil {
		attrs = append(attrs, "schema", req.Schema.Name)
	}
	if trace := TraceFrom(ctx); trace != "" {
		attrs = append(attrs, "trace", trace)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		ev.ResponseBody = failedBody(err)
		l.logger.Error("llm request failed", append(attrs, "kind", errorKind(err), "error", err)...)
	} else {
		l.logger.Debug("llm request", append(attrs,
			"input_tokens", ev.InputTokens,
			"output_tokens", ev.OutputTokens)...)
	}

	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(ctx, ev); logErr != nil {
			l.logger.Warn("failed to record llm request", "error", logErr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func vendorName(p Provider) string {
	switch p.(type) {
	case *OpenRouterProvider:
		return "openrouter"
	case *OpenAIProvider:
		return "openai"
	case *AnthropicProvider:
		return "anthropic"
	case *GeminiProvider:
		return "gemini"
	case *MockProvider:
		return "mock"
	}
	return p.ModelID()
}

// errorKind is a short stable label for log filtering.
func errorKind(err error) string {
	var (
		rl      *ErrRateLimit
		invalid *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
		refused *ErrRefused
		down    *ErrProviderUnavailable
	)
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &rl):
		return "rate_limit"
	case errors.As(err, &invalid):
		return "invalid_response"
	case errors.As(err, &maxTok):
		return "max_tokens"
	case errors.As(err, &refused):
		return "refused"
	case errors.As(err, &down):
		return "unavailable"
	}
	return "other"
}

// failedBody keeps whatever the model did send when the call failed on
// its content, so the log shows what was rejected.
func failedBody(err error) string {
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return string(invalid.Content)
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return string(maxTok.Content)
	}
	return ""
}

// renderRequest flattens a request into the sectioned text shown by
// `adaptiq llm view`.
func renderRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
	}
	fmt.Fprintf(&b, "[params] max_tokens=%d temperature=%.2f\n", req.MaxTokens, req.Temperature)
	return b.String()
}
