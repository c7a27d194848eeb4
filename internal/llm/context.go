package llm

import "context"

type labelKey int

const (
	purposeLabel labelKey = iota
	traceLabel
)

// WithPurpose tags model calls made under ctx with what they are for,
// e.g. "assessment-gen". The tag ends up in logs and the request log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeLabel, purpose)
}

func PurposeFrom(ctx context.Context) string {
	purpose, _ := ctx.Value(purposeLabel).(string)
	if purpose == "" {
		return "unknown"
	}
	return purpose
}

// WithTrace ties model calls to an outer request, such as an HTTP
// request ID, so their log lines can be correlated.
func WithTrace(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, traceLabel, id)
}

// TraceFrom returns the trace ID set by WithTrace, or "".
func TraceFrom(ctx context.Context) string {
	id, _ := ctx.Value(traceLabel).(string)
	return id
}
