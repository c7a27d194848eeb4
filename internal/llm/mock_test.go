package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysScriptInOrder(t *testing.T) {
	mock := NewMockProvider(MockReply(`[1]`), MockReply(`[2]`))
	mock.AddResponse(MockResponse{Content: []byte(`[3]`), StopReason: StopMaxTokens})

	for _, want := range []string{`[1]`, `[2]`} {
		resp, err := mock.Generate(context.Background(), Request{})
		require.NoError(t, err)
		assert.Equal(t, want, string(resp.Content))
		assert.Equal(t, StopEnd, resp.StopReason)
		assert.Equal(t, MockModel, resp.Model)
	}
	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
	assert.Zero(t, mock.Remaining())
}

func TestMockProvider_ExhaustedScript(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})

	var down *ErrProviderUnavailable
	require.True(t, errors.As(err, &down))
	assert.ErrorIs(t, err, errScriptExhausted)
	assert.Equal(t, 1, mock.CallCount())
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider(MockReply(`[]`))
	req := Request{System: "Study material: cell biology", MaxTokens: 4000, Temperature: 0.7}

	_, err := mock.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, mock.Calls, 1)
	assert.Equal(t, req, mock.Calls[0])
}

func TestMockProvider_ScriptedError(t *testing.T) {
	boom := &ErrRateLimit{Err: errors.New("slow down")}
	_, err := NewMockProvider(MockResponse{Err: boom}).Generate(context.Background(), Request{})
	assert.Same(t, boom, err)
}

func TestMockProvider_DelayHonoursContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Delay: time.Minute, Content: []byte(`[]`)})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := mock.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestContextLabels(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(bg))
	assert.Equal(t, "unknown", PurposeFrom(WithPurpose(bg, "")))
	assert.Equal(t, "assessment-gen", PurposeFrom(WithPurpose(bg, "assessment-gen")))

	assert.Empty(t, TraceFrom(bg))
	assert.Equal(t, bg, WithTrace(bg, ""))
	assert.Equal(t, "abc", TraceFrom(WithTrace(bg, "abc")))
}
