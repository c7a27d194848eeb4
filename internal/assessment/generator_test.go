package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mitochondria = "The mitochondria is the powerhouse of the cell."

const mitochondriaReply = `[{"text":"What is the mitochondria?","options":["Powerhouse of the cell","Nucleus","Ribosome","Cell wall"],"correctAnswer":"Powerhouse of the cell","difficulty":"easy","topic":"Biology","explanation":"Stated directly in the material."}]`

var idPattern = regexp.MustCompile(`^q-\d+-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func reply(s string) llm.MockResponse {
	return llm.MockReply(s)
}

// questionJSON renders n well-formed questions about cell biology.
func questionJSON(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"text":"Question %d about cells?","options":["A%d","B%d","C%d","D%d"],"correctAnswer":"B%d","difficulty":"medium","topic":"Cells","explanation":"The material says so."}`, i, i, i, i, i, i)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestGenerate_Mitochondria(t *testing.T) {
	mock := llm.NewMockProvider(reply(mitochondriaReply))
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	require.NoError(t, err)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.Regexp(t, idPattern, q.ID)
	assert.True(t, strings.HasPrefix(q.ID, "q-0-"))
	assert.Equal(t, "What is the mitochondria?", q.Text)
	assert.Equal(t, []string{"Powerhouse of the cell", "Nucleus", "Ribosome", "Cell wall"}, q.Options)
	assert.Equal(t, "Powerhouse of the cell", q.CorrectAnswer)
	assert.Equal(t, Easy, q.Difficulty)
	assert.Equal(t, "Biology", q.Topic)
	assert.Equal(t, "Stated directly in the material.", q.Explanation)
	assert.True(t, q.IsCorrect("Powerhouse of the cell"))
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(reply(mitochondriaReply))
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Hard})
	require.NoError(t, err)
	require.Equal(t, 1, mock.CallCount())

	req := mock.Calls[0]
	assert.Contains(t, req.System, mitochondria)
	assert.Contains(t, req.System, "Create exactly 1 multiple-choice questions")
	assert.Contains(t, req.System, "hard difficulty level")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Equal(t, userPrompt, req.Messages[0].Content)
	assert.Equal(t, 4000, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Same(t, QuestionListSchema, req.Schema)
}

func TestGenerate_PassThroughSendsNoSchema(t *testing.T) {
	mock := llm.NewMockProvider(reply(mitochondriaReply))
	gen := New(mock, PassThroughConfig(), nil)

	_, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	require.NoError(t, err)
	assert.Nil(t, mock.Calls[0].Schema)
}

func TestGenerate_FilePayloadUsesFallbackText(t *testing.T) {
	mock := llm.NewMockProvider(reply(mitochondriaReply))
	gen := New(mock, DefaultConfig(), nil)

	m := material.Material{File: &material.FilePayload{Data: []byte("%PDF-1.4"), MediaType: material.MediaPDF}}
	_, err := gen.Generate(context.Background(), m, QuizConfig{Count: 1, Level: Easy})
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].System, "General knowledge topics.")
}

func TestGenerate_MissingMaterialSkipsNetwork(t *testing.T) {
	mock := llm.NewMockProvider(reply(mitochondriaReply))
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), material.FromText("   "), QuizConfig{Count: 5, Level: Medium})
	assert.ErrorIs(t, err, material.ErrMissing)

	var genErr *GenerationError
	assert.False(t, errors.As(err, &genErr))
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerate_InvalidQuizConfig(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 0, Level: Easy})
	assert.Error(t, err)
	_, err = gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 3, Level: "expert"})
	assert.Error(t, err)
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerate_TruncatesToCount(t *testing.T) {
	mock := llm.NewMockProvider(reply(questionJSON(5)))
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 3, Level: Medium})
	require.NoError(t, err)
	require.Len(t, qs, 3)
	for i, q := range qs {
		assert.True(t, strings.HasPrefix(q.ID, fmt.Sprintf("q-%d-", i)))
		assert.Equal(t, fmt.Sprintf("Question %d about cells?", i), q.Text)
	}
}

func TestGenerate_FewerThanRequested(t *testing.T) {
	mock := llm.NewMockProvider(reply(questionJSON(2)))
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 10, Level: Medium})
	require.NoError(t, err)
	assert.Len(t, qs, 2)
}

func TestGenerate_FreshIDs(t *testing.T) {
	mock := llm.NewMockProvider(reply(mitochondriaReply), reply(mitochondriaReply))
	gen := New(mock, DefaultConfig(), nil)
	m := material.FromText(mitochondria)
	cfg := QuizConfig{Count: 1, Level: Easy}

	first, err := gen.Generate(context.Background(), m, cfg)
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), m, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestGenerate_StripsCodeFences(t *testing.T) {
	fenced := "```json\n" + mitochondriaReply + "\n```"
	mock := llm.NewMockProvider(reply(fenced))
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	require.NoError(t, err)
	assert.Len(t, qs, 1)
}

func TestGenerate_FencedVendorReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-fenced",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "```json\n" + mitochondriaReply + "\n```"},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 60, "total_tokens": 90},
		})
	}))
	t.Cleanup(srv.Close)

	p, err := llm.NewOpenAIProvider(llm.OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	gen := New(p, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "What is the mitochondria?", qs[0].Text)
}

func TestGenerate_MalformedOutputIsGenerationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"empty body", "", ErrEmptyReply},
		{"only fences", "```json\n```", ErrEmptyReply},
		{"prose", "Sure! Here are your questions.", nil},
		{"object instead of array", `{"questions":[]}`, ErrNotArray},
		{"array of strings", `["What is a cell?"]`, nil},
	}

	for _, cfg := range []Config{DefaultConfig(), PassThroughConfig()} {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("strict=%t/%s", cfg.Strict, tt.name), func(t *testing.T) {
				mock := llm.NewMockProvider(reply(tt.content))
				gen := New(mock, cfg, nil)

				qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
				assert.Nil(t, qs)

				var genErr *GenerationError
				require.True(t, errors.As(err, &genErr), "got %v", err)
				assert.Equal(t, GenerationFailedMessage, err.Error())
				if tt.target != nil {
					assert.ErrorIs(t, err, tt.target)
				}
			})
		}
	}
}

func TestGenerate_ProviderErrorIsGenerationError(t *testing.T) {
	rateLimited := &llm.ErrRateLimit{Err: errors.New("429")}
	mock := llm.NewMockProvider(llm.MockResponse{Err: rateLimited})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl), "cause stays reachable")
	assert.Equal(t, 1, mock.CallCount(), "no retries")
}

// truncatingProvider replies as if the token budget ran out.
type truncatingProvider struct{}

func (truncatingProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return &llm.Response{Content: json.RawMessage(`[{"text":"What is`), StopReason: llm.StopMaxTokens}, nil
}

func (truncatingProvider) ModelID() string { return "truncating" }

func TestGenerate_MaxTokensIsGenerationError(t *testing.T) {
	gen := New(truncatingProvider{}, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	var maxErr *llm.ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxErr))
}

func TestGenerate_RefusalIsGenerationError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{StopReason: llm.StopRefused})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	var refused *llm.ErrRefused
	assert.True(t, errors.As(err, &refused))
}

const malformedItem = `[{"text":"What is the mitochondria?","options":["Powerhouse of the cell","Nucleus"],"correctAnswer":"Golgi body","difficulty":"expert","topic":"","explanation":""}]`

func TestGenerate_StrictRejectsMalformedItems(t *testing.T) {
	mock := llm.NewMockProvider(reply(malformedItem))
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid), "schema check runs first, got %v", genErr.Err)
}

func TestGenerate_ValidatorsWithoutSchema(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strict = false
	mock := llm.NewMockProvider(reply(malformedItem))
	gen := New(mock, cfg, nil)

	_, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "structural", verr.Validator)
	assert.Equal(t, 0, verr.Index)
}

func TestGenerate_PassThroughKeepsMalformedItems(t *testing.T) {
	mock := llm.NewMockProvider(reply(malformedItem))
	gen := New(mock, PassThroughConfig(), nil)

	qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 1, Level: Easy})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Len(t, qs[0].Options, 2)
	assert.Equal(t, Difficulty("expert"), qs[0].Difficulty)
	assert.Regexp(t, idPattern, qs[0].ID)
}

func TestGenerate_AllOrNothing(t *testing.T) {
	// The second item repeats an option.
	content := `[` +
		`{"text":"Q1?","options":["a","b","c","d"],"correctAnswer":"a","difficulty":"easy","topic":"T","explanation":"e"},` +
		`{"text":"Q2?","options":["a","a","c","d"],"correctAnswer":"a","difficulty":"easy","topic":"T","explanation":"e"}` +
		`]`
	mock := llm.NewMockProvider(reply(content))
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 2, Level: Easy})
	assert.Nil(t, qs)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Index)
}

func TestGenerate_PropertyCorrectAnswerInOptions(t *testing.T) {
	for count := 1; count <= 6; count++ {
		mock := llm.NewMockProvider(reply(questionJSON(4)))
		gen := New(mock, DefaultConfig(), nil)

		qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: count, Level: Medium})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(qs), count)
		for _, q := range qs {
			assert.Len(t, q.Options, OptionCount)
			assert.Contains(t, q.Options, q.CorrectAnswer)
		}
	}
}

func TestGenerate_EmptyArray(t *testing.T) {
	mock := llm.NewMockProvider(reply(`[]`))
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), material.FromText(mitochondria), QuizConfig{Count: 3, Level: Easy})
	require.NoError(t, err)
	assert.Empty(t, qs)
}
