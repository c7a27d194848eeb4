package assessment

import (
	"context"

	"github.com/abhisek/adaptiq/internal/material"
)

// Generator produces a question list from study material.
type Generator interface {
	// Generate returns up to cfg.Count questions drawn from m. All
	// configured validators are run before returning.
	Generate(ctx context.Context, m material.Material, cfg QuizConfig) ([]Question, error)
}
