package priority

import (
	"testing"

	"github.com/oba-crm/backend/internal/models"
)

func TestCriticalRuleNegativeWithEscalationWord(t *testing.T) {
	d := CriticalRulePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentNegative,
		Category:  models.CategoryServiceComplaint,
		Text:      "bu qəbul edilməz bir vəziyyətdir",
	})
	if d.Priority != models.PriorityHigh || !d.SendToCallCenter {
		t.Fatalf("expected high + escalation, got %+v", d)
	}
}

func TestCriticalRuleNegativeWithoutEscalationWord(t *testing.T) {
	d := CriticalRulePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentNegative,
		Category:  models.CategoryGeneralFeedback,
		Text:      "çox narazıyam",
	})
	if d.Priority != models.PriorityMedium || d.SendToCallCenter {
		t.Fatalf("expected medium without escalation, got %+v", d)
	}
}

func TestCriticalRuleComplaintCategoryBumpsNeutral(t *testing.T) {
	d := CriticalRulePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentNeutral,
		Category:  models.CategoryStaffComplaint,
		Text:      "satıcı haqqında",
	})
	if d.Priority != models.PriorityMedium {
		t.Fatalf("expected medium for complaint category, got %+v", d)
	}
}

func TestCriticalRuleDefaultLow(t *testing.T) {
	d := CriticalRulePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentPositive,
		Category:  models.CategoryServicePraise,
		Text:      "əla xidmət",
	})
	if d.Priority != models.PriorityLow || d.SendToCallCenter {
		t.Fatalf("expected low, got %+v", d)
	}
}

func TestWeightedScoreMaximum(t *testing.T) {
	// negative(50) + critical keyword(30) + high category(20) = 100.
	d := WeightedScorePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentNegative,
		Category:  models.CategoryStaffComplaint,
		Keywords:  []string{"kobud"},
	})
	if d.Score != 100 {
		t.Fatalf("expected score 100, got %d", d.Score)
	}
	if d.Priority != models.PriorityHigh || !d.SendToCallCenter {
		t.Fatalf("expected high + escalation at score 100, got %+v", d)
	}
}

func TestWeightedScoreMediumBucket(t *testing.T) {
	// neutral(25) + medium keyword(15) = 40, exactly the medium threshold.
	d := WeightedScorePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentNeutral,
		Category:  models.CategoryGeneralFeedback,
		Keywords:  []string{"ləng"},
	})
	if d.Score != 40 {
		t.Fatalf("expected score 40, got %d", d.Score)
	}
	if d.Priority != models.PriorityMedium || d.SendToCallCenter {
		t.Fatalf("expected medium without escalation, got %+v", d)
	}
}

func TestWeightedScoreLowBucket(t *testing.T) {
	// positive(10) + medium category(10) = 20.
	d := WeightedScorePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentPositive,
		Category:  models.CategoryPricingFeedback,
		Keywords:  nil,
	})
	if d.Score != 20 || d.Priority != models.PriorityLow {
		t.Fatalf("expected score 20 / low, got %+v", d)
	}
}

func TestWeightedScoreCriticalAndMediumKeywordsDoNotStack(t *testing.T) {
	// Both a critical and a medium keyword present: only the critical
	// contribution applies.
	d := WeightedScorePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentNeutral,
		Category:  models.CategoryGeneralFeedback,
		Keywords:  []string{"kobud", "ləng"},
	})
	if d.Score != 25+30 {
		t.Fatalf("expected 55 (critical only), got %d", d.Score)
	}
}

func TestWeightedScoreKeywordMatchIsExact(t *testing.T) {
	// "problemlər" contains "problem" as a substring but the scorer matches
	// extracted keywords by equality only.
	d := WeightedScorePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentNeutral,
		Category:  models.CategoryGeneralFeedback,
		Keywords:  []string{"problemlər"},
	})
	if d.Score != 25 {
		t.Fatalf("expected no keyword contribution, got score %d", d.Score)
	}
}

func TestWeightedScoreHighThresholdBoundary(t *testing.T) {
	// negative(50) + high category(20) = 70, exactly the high threshold.
	d := WeightedScorePolicy{}.Evaluate(Signals{
		Sentiment: models.SentimentNegative,
		Category:  models.CategoryTechnicalIssue,
	})
	if d.Score != 70 || d.Priority != models.PriorityHigh || !d.SendToCallCenter {
		t.Fatalf("expected high at boundary 70, got %+v", d)
	}
}

func TestPolicyNames(t *testing.T) {
	if got := (CriticalRulePolicy{}).Name(); got != "critical_rule" {
		t.Fatalf("unexpected critical rule name %q", got)
	}
	if got := (WeightedScorePolicy{}).Name(); got != "weighted_score" {
		t.Fatalf("unexpected weighted score name %q", got)
	}
}
