package lexicon

import (
	"strings"
	"testing"

	"github.com/oba-crm/backend/internal/models"
)

func TestMatchCategoryOrderMatters(t *testing.T) {
	// "məhsul" triggers both product patterns; the complaint pattern is
	// declared first and must win.
	if got := MatchCategory("məhsul yarımçıq idi"); got != models.CategoryProductComplaint {
		t.Fatalf("expected product_complaint, got %s", got)
	}
	if got := MatchCategory("məhsul çox dadlı idi"); got != models.CategoryProductComplaint {
		t.Fatalf("expected product_complaint for bare məhsul mention, got %s", got)
	}
}

func TestMatchCategoryFallback(t *testing.T) {
	if got := MatchCategory("hər şey normaldır"); got != models.CategoryGeneralFeedback {
		t.Fatalf("expected general_feedback, got %s", got)
	}
}

func TestMatchCategoryInquiry(t *testing.T) {
	if got := MatchCategory("mağaza nə vaxt açılır"); got != models.CategoryInquiry {
		t.Fatalf("expected inquiry, got %s", got)
	}
}

func TestDepartmentForUnmappedDefaultsToService(t *testing.T) {
	if got := DepartmentFor(models.Category("unknown")); got != models.DepartmentService {
		t.Fatalf("expected Service fallback, got %s", got)
	}
	if got := DepartmentFor(models.CategoryStaffComplaint); got != models.DepartmentHR {
		t.Fatalf("expected HR for staff_complaint, got %s", got)
	}
}

func TestActionForUnmappedDefaults(t *testing.T) {
	if got := ActionFor(models.Category("unknown")); got != DefaultAction {
		t.Fatalf("expected %q, got %q", DefaultAction, got)
	}
}

func TestCountHitsCountsDistinctEntriesOnce(t *testing.T) {
	// "pis" occurs twice but is one lexicon entry; "kobud" adds a second hit.
	if got := CountHits("pis pis kobud", NegativeWords); got != 2 {
		t.Fatalf("expected 2 hits, got %d", got)
	}
}

func TestExtractKeywordsCapAndOrder(t *testing.T) {
	text := "əla yaxşı gözəl pis kobud narazı kassa"
	got := ExtractKeywords(text, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 keywords, got %d: %v", len(got), got)
	}
	// Pool order is positive, negative, then nouns: positives come first.
	if got[0] != "əla" || got[1] != "yaxşı" {
		t.Fatalf("expected pool order preserved, got %v", got)
	}
	for _, kw := range got {
		if !strings.Contains(text, kw) {
			t.Fatalf("keyword %q not present in text", kw)
		}
	}
}

func TestExtractKeywordsEmpty(t *testing.T) {
	if got := ExtractKeywords("salam", 5); len(got) != 0 {
		t.Fatalf("expected no keywords, got %v", got)
	}
}
