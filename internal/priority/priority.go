// Package priority holds the two escalation-decision strategies. They use
// different signals and thresholds and can disagree on the same message;
// callers pick one explicitly and the two are never merged.
package priority

import (
	"strings"

	"github.com/oba-crm/backend/internal/lexicon"
	"github.com/oba-crm/backend/internal/models"
)

// Signals carries the inputs a policy may consume. Text is the lowercased
// message; Keywords are already-extracted lexicon terms.
type Signals struct {
	Sentiment models.Sentiment
	Category  models.Category
	Keywords  []string
	Text      string
}

// Decision is a policy verdict. Score is only populated by the weighted
// policy.
type Decision struct {
	Priority         models.Priority `json:"priority"`
	Score            int             `json:"score"`
	SendToCallCenter bool            `json:"sendToCallCenter"`
}

type Policy interface {
	Name() string
	Evaluate(s Signals) Decision
}

// CriticalRulePolicy is the classifier's own escalation rule: a negative
// message containing an escalation word goes high and to the call center; a
// negative message or any *_complaint category is medium; everything else is
// low.
type CriticalRulePolicy struct{}

func (CriticalRulePolicy) Name() string { return "critical_rule" }

func (CriticalRulePolicy) Evaluate(s Signals) Decision {
	hasCritical := lexicon.ContainsAny(s.Text, lexicon.EscalationWords)

	switch {
	case s.Sentiment == models.SentimentNegative && hasCritical:
		return Decision{Priority: models.PriorityHigh, SendToCallCenter: true}
	case s.Sentiment == models.SentimentNegative:
		return Decision{Priority: models.PriorityMedium}
	case strings.Contains(string(s.Category), "complaint"):
		return Decision{Priority: models.PriorityMedium}
	default:
		return Decision{Priority: models.PriorityLow}
	}
}

// Weighted-score contributions and bucket thresholds.
const (
	scoreNegative = 50
	scoreNeutral  = 25
	scorePositive = 10

	scoreCriticalKeyword = 30
	scoreMediumKeyword   = 15

	scoreHighCategory   = 20
	scoreMediumCategory = 10

	highThreshold   = 70
	mediumThreshold = 40
)

var highPriorityCategories = map[models.Category]struct{}{
	models.CategoryStaffComplaint:   {},
	models.CategoryTechnicalIssue:   {},
	models.CategoryProductComplaint: {},
}

var mediumPriorityCategories = map[models.Category]struct{}{
	models.CategoryServiceComplaint:  {},
	models.CategoryFacilityComplaint: {},
	models.CategoryPricingFeedback:   {},
}

// WeightedScorePolicy converts (sentiment, keywords, category) into an
// additive score and buckets it. Used where richer signals are already
// available, e.g. ticket priority recalculation.
type WeightedScorePolicy struct{}

func (WeightedScorePolicy) Name() string { return "weighted_score" }

func (WeightedScorePolicy) Evaluate(s Signals) Decision {
	score := 0

	switch s.Sentiment {
	case models.SentimentNegative:
		score += scoreNegative
	case models.SentimentNeutral:
		score += scoreNeutral
	case models.SentimentPositive:
		score += scorePositive
	}

	// Critical takes precedence; the medium bump never stacks on top of it.
	if hasAnyKeyword(s.Keywords, lexicon.CriticalKeywords) {
		score += scoreCriticalKeyword
	} else if hasAnyKeyword(s.Keywords, lexicon.MediumSeverityKeywords) {
		score += scoreMediumKeyword
	}

	if _, ok := highPriorityCategories[s.Category]; ok {
		score += scoreHighCategory
	} else if _, ok := mediumPriorityCategories[s.Category]; ok {
		score += scoreMediumCategory
	}

	d := Decision{Score: score}
	switch {
	case score >= highThreshold:
		d.Priority = models.PriorityHigh
		d.SendToCallCenter = true
	case score >= mediumThreshold:
		d.Priority = models.PriorityMedium
	default:
		d.Priority = models.PriorityLow
	}
	return d
}

// hasAnyKeyword matches by exact equality, not substring: the scorer operates
// on already-extracted lexicon terms.
func hasAnyKeyword(keywords []string, set []string) bool {
	for _, kw := range keywords {
		for _, s := range set {
			if kw == s {
				return true
			}
		}
	}
	return false
}
