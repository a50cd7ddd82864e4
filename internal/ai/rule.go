package ai

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/oba-crm/backend/internal/lexicon"
	"github.com/oba-crm/backend/internal/models"
	"github.com/oba-crm/backend/internal/priority"
)

const maxKeywords = 5

// RuleAnalyzer is the deterministic keyword-driven classifier. When MinDelay
// and MaxDelay are set it sleeps a uniform random duration in that range per
// call to emulate a remote AI API's latency profile; the delay never affects
// the classification result and each concurrent call suspends independently.
type RuleAnalyzer struct {
	ModelVersion string
	MinDelay     time.Duration
	MaxDelay     time.Duration
}

func (a RuleAnalyzer) AnalyzeMessage(ctx context.Context, text string) (models.AIAnalysis, int64, error) {
	start := time.Now()

	if a.MaxDelay > a.MinDelay {
		delay := a.MinDelay + time.Duration(rand.Int63n(int64(a.MaxDelay-a.MinDelay)))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
		}
	}

	return Classify(text), time.Since(start).Milliseconds(), nil
}

// Classify is the pure classification function. Total over all inputs: empty
// or unmatched text degrades to neutral/general_feedback/low, it never fails.
func Classify(text string) models.AIAnalysis {
	lower := strings.ToLower(text)

	positiveScore := lexicon.CountHits(lower, lexicon.PositiveWords)
	negativeScore := lexicon.CountHits(lower, lexicon.NegativeWords)

	sentiment := models.SentimentNeutral
	confidence := 0.75
	switch {
	case positiveScore > negativeScore:
		sentiment = models.SentimentPositive
		confidence = math.Min(0.70+float64(positiveScore)*0.10, 0.98)
	case negativeScore > positiveScore:
		sentiment = models.SentimentNegative
		confidence = math.Min(0.70+float64(negativeScore)*0.10, 0.98)
	}

	category := lexicon.MatchCategory(lower)

	decision := priority.CriticalRulePolicy{}.Evaluate(priority.Signals{
		Sentiment: sentiment,
		Category:  category,
		Text:      lower,
	})

	return models.AIAnalysis{
		Sentiment:        sentiment,
		Confidence:       round2(confidence),
		Category:         category,
		Priority:         decision.Priority,
		Keywords:         lexicon.ExtractKeywords(lower, maxKeywords),
		Department:       lexicon.DepartmentFor(category),
		SendToCallCenter: decision.SendToCallCenter,
		SuggestedAction:  lexicon.ActionFor(category),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
