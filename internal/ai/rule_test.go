package ai

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/oba-crm/backend/internal/models"
)

func TestClassifyPositive(t *testing.T) {
	a := Classify("Təşəkkür edirəm, hər şey əla idi")
	if a.Sentiment != models.SentimentPositive {
		t.Fatalf("expected positive, got %s", a.Sentiment)
	}
	if a.Confidence != 0.90 {
		t.Fatalf("expected confidence 0.90 for two hits, got %v", a.Confidence)
	}
	if a.Category != models.CategoryServicePraise {
		t.Fatalf("expected service_praise, got %s", a.Category)
	}
	if a.Priority != models.PriorityLow || a.SendToCallCenter {
		t.Fatalf("expected low priority without escalation, got %+v", a)
	}
}

func TestClassifyNegativeEscalates(t *testing.T) {
	a := Classify("Kassada çox gözlədim, bu qəbul edilməz bir problemdir")
	if a.Sentiment != models.SentimentNegative {
		t.Fatalf("expected negative, got %s", a.Sentiment)
	}
	if a.Category != models.CategoryServiceComplaint {
		t.Fatalf("expected service_complaint, got %s", a.Category)
	}
	if a.Priority != models.PriorityHigh || !a.SendToCallCenter {
		t.Fatalf("expected high priority and escalation, got %+v", a)
	}
	if a.Department != models.DepartmentOperations {
		t.Fatalf("expected Operations routing, got %s", a.Department)
	}
}

func TestClassifyNegativeWithoutEscalationWordIsMedium(t *testing.T) {
	a := Classify("Çox narazıyam")
	if a.Sentiment != models.SentimentNegative {
		t.Fatalf("expected negative, got %s", a.Sentiment)
	}
	if a.Priority != models.PriorityMedium || a.SendToCallCenter {
		t.Fatalf("expected medium without escalation, got %+v", a)
	}
}

func TestClassifyNeutralInquiry(t *testing.T) {
	a := Classify("Mağaza nə vaxt açılır?")
	if a.Sentiment != models.SentimentNeutral {
		t.Fatalf("expected neutral, got %s", a.Sentiment)
	}
	if a.Confidence != 0.75 {
		t.Fatalf("expected fixed neutral confidence 0.75, got %v", a.Confidence)
	}
	if a.Category != models.CategoryInquiry {
		t.Fatalf("expected inquiry, got %s", a.Category)
	}
	if a.SuggestedAction != "Müştəriyə məlumat verin" {
		t.Fatalf("unexpected action %q", a.SuggestedAction)
	}
}

func TestClassifyEmptyText(t *testing.T) {
	a := Classify("")
	if a.Sentiment != models.SentimentNeutral || a.Confidence != 0.75 {
		t.Fatalf("expected neutral defaults, got %+v", a)
	}
	if a.Category != models.CategoryGeneralFeedback || a.Priority != models.PriorityLow {
		t.Fatalf("expected general_feedback/low defaults, got %+v", a)
	}
	if len(a.Keywords) != 0 || a.SendToCallCenter {
		t.Fatalf("expected no keywords and no escalation, got %+v", a)
	}
}

func TestClassifyConfidenceBounds(t *testing.T) {
	// Enough negative hits to push past the cap.
	a := Classify("pis kobud narazı şikayət biabırçı berbad xəta ləng")
	if a.Confidence != 0.98 {
		t.Fatalf("expected capped confidence 0.98, got %v", a.Confidence)
	}

	texts := []string{"yaxşı", "pis", "yaxşı gözəl", "salam", "kobud problem xəta"}
	for _, text := range texts {
		c := Classify(text).Confidence
		if c < 0.70 || c > 0.98 {
			t.Fatalf("confidence %v out of range for %q", c, text)
		}
		if math.Round(c*100)/100 != c {
			t.Fatalf("confidence %v not rounded to 2 decimals for %q", c, text)
		}
	}
}

func TestClassifyKeywordsAreSubstringsCappedAtFive(t *testing.T) {
	text := "əla yaxşı gözəl mükəmməl super pis kobud kassa qiymət"
	a := Classify(text)
	if len(a.Keywords) > 5 {
		t.Fatalf("expected at most 5 keywords, got %d", len(a.Keywords))
	}
	lower := strings.ToLower(text)
	for _, kw := range a.Keywords {
		if !strings.Contains(lower, kw) {
			t.Fatalf("keyword %q not a substring of the message", kw)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "Satıcı çox kobud davrandı, şikayət edirəm"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		if got := Classify(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("classification not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	if !reflect.DeepEqual(Classify("KOBUD PROBLEM"), Classify("kobud problem")) {
		t.Fatalf("expected case-insensitive classification")
	}
}

func TestAnalyzeMessageNoDelayMatchesClassify(t *testing.T) {
	a := RuleAnalyzer{ModelVersion: "test"}
	got, _, err := a.AnalyzeMessage(context.Background(), "xidmət əla idi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, Classify("xidmət əla idi")) {
		t.Fatalf("analyzer result diverges from pure classification")
	}
}
