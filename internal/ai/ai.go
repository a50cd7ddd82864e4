package ai

import (
	"context"

	"github.com/oba-crm/backend/internal/models"
)

// Analyzer produces an AIAnalysis for a raw feedback message. The second
// return value is the observed processing latency in milliseconds.
type Analyzer interface {
	AnalyzeMessage(ctx context.Context, text string) (models.AIAnalysis, int64, error)
}
