package llm

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retrying(mock *MockProvider, attempts int) Provider {
	return WithRetry(mock, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}, slog.New(slog.DiscardHandler))
}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection reset")}}
}

func TestRetry_SingleAttemptIsPassThrough(t *testing.T) {
	mock := NewMockProvider(down(), MockReply(`[]`))
	_, err := retrying(mock, 1).Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(down(), MockResponse{Err: &ErrRateLimit{}}, MockReply(`[]`))
	resp, err := retrying(mock, 3).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(resp.Content))
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(down(), down(), down(), MockReply(`[]`))
	_, err := retrying(mock, 3).Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_NeverRetried(t *testing.T) {
	for _, err := range []error{
		&ErrMaxTokensExceeded{},
		&ErrRefused{Reason: "safety"},
		context.Canceled,
	} {
		mock := NewMockProvider(MockResponse{Err: err}, MockReply(`[]`))
		_, got := retrying(mock, 3).Generate(context.Background(), Request{})
		assert.Error(t, got)
		assert.Equal(t, 1, mock.CallCount(), "%T", err)
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	invalid := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("not an array")}}
	mock := NewMockProvider(invalid, invalid, MockReply(`[]`))

	_, err := retrying(mock, 5).Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_CancelDuringBackoff(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Minute}}, MockReply(`[]`))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := retrying(mock, 3).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_Wait(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}

	assert.Equal(t, 5*time.Second, r.wait(1, &ErrRateLimit{RetryAfter: 5 * time.Second}))

	first := r.wait(1, errors.New("x"))
	assert.GreaterOrEqual(t, first, 80*time.Millisecond)
	assert.LessOrEqual(t, first, 120*time.Millisecond)

	capped := r.wait(5, errors.New("x"))
	assert.LessOrEqual(t, capped, 360*time.Millisecond)
	assert.GreaterOrEqual(t, capped, 240*time.Millisecond)
}

func TestRetry_ModelID(t *testing.T) {
	assert.Equal(t, MockModel, retrying(NewMockProvider(), 2).ModelID())
}
