package assessment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/material"
	"github.com/google/uuid"
)

// Purpose labels generation requests in the LLM request log.
const Purpose = "assessment-gen"

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
	newID    func() string
}

// New creates a new LLMGenerator. A nil logger uses slog.Default().
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger, newID: uuid.NewString}
}

// Generate asks the model for cfg.Count questions about m.
//
// Invalid input and missing material are returned as-is before any network
// call. Every later failure is logged and returned as *GenerationError.
func (g *LLMGenerator) Generate(ctx context.Context, m material.Material, cfg QuizConfig) ([]Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := material.Validate(m); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: buildSystemPrompt(m, cfg),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userPrompt},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	if g.config.Strict {
		req.Schema = QuestionListSchema
	}

	questions, err := g.generate(ctx, req, cfg)
	if err != nil {
		g.logger.Error("assessment generation failed",
			"count", cfg.Count,
			"level", cfg.Level,
			"model", g.provider.ModelID(),
			"error", err,
		)
		return nil, &GenerationError{Err: err}
	}

	g.logger.Info("assessment generated",
		"requested", cfg.Count,
		"returned", len(questions),
		"level", cfg.Level,
	)
	return questions, nil
}

func (g *LLMGenerator) generate(ctx context.Context, req llm.Request, cfg QuizConfig) ([]Question, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	switch resp.StopReason {
	case llm.StopMaxTokens:
		return nil, &llm.ErrMaxTokensExceeded{Content: resp.Content}
	case llm.StopRefused:
		return nil, &llm.ErrRefused{}
	}

	body, items, err := decodeReply(string(resp.Content))
	if err != nil {
		return nil, err
	}

	if g.config.Strict {
		if err := llm.ValidateContent(QuestionListSchema, body); err != nil {
			return nil, err
		}
	}

	questions := make([]Question, 0, len(items))
	for i, raw := range items {
		q, err := decodeQuestion(raw, i)
		if err != nil {
			return nil, err
		}
		for _, v := range g.config.Validators {
			if verr := v.Validate(&q, cfg); verr != nil {
				verr.Index = i
				return nil, verr
			}
		}
		questions = append(questions, q)
	}

	if len(questions) > cfg.Count {
		g.logger.Warn("model returned more questions than requested",
			"requested", cfg.Count,
			"returned", len(questions),
		)
		questions = questions[:cfg.Count]
	}

	for i := range questions {
		questions[i].ID = fmt.Sprintf("q-%d-%s", i, g.newID())
	}
	return questions, nil
}
