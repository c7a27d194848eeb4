package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// MockModel is the model name every MockProvider reply reports.
const MockModel = "mock"

var errScriptExhausted = errors.New("mock provider has no scripted replies left")

// MockResponse is one scripted reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage

	// StopReason defaults to StopEnd.
	StopReason string

	// Delay holds the reply back; a cancelled context ends the wait early.
	Delay time.Duration

	Err error
}

// MockReply scripts a successful reply with the given body.
func MockReply(content string) MockResponse {
	return MockResponse{Content: json.RawMessage(content)}
}

// MockProvider replays scripted replies in order and records every request.
// It does not apply Request.Schema; callers validate what they get back.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: errScriptExhausted}
	}
	next := m.script[0]
	m.script = m.script[1:]
	m.mu.Unlock()

	if next.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(next.Delay):
		}
	}
	if next.Err != nil {
		return nil, next.Err
	}

	stop := next.StopReason
	if stop == "" {
		stop = StopEnd
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      MockModel,
		StopReason: stop,
	}, nil
}

func (m *MockProvider) ModelID() string { return MockModel }

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Remaining is the number of scripted replies not yet consumed.
func (m *MockProvider) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.script)
}
