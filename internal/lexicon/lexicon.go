// Package lexicon holds the static Azerbaijani keyword sets driving the
// rule-based feedback classifier. Pure data and pure lookups; safe for
// concurrent use.
package lexicon

import (
	"strings"

	"github.com/oba-crm/backend/internal/models"
)

// Sentiment lexicons. Matching is case-insensitive substring matching against
// the lowercased message; each entry contributes at most one hit regardless of
// how many times it recurs in the text.
var (
	PositiveWords = []string{
		"təşəkkür", "sağol", "əla", "yaxşı", "gözəl", "mükəmməl", "super",
		"maraqlı", "minnətdar", "razı", "sevindim", "peşəkar", "səliqəli",
	}

	NegativeWords = []string{
		"pis", "kobud", "narazı", "şikayət", "qəbul edilməz", "biabırçı",
		"berbad", "xoşagəlməz", "problem", "xəta", "gözlədim", "ləng",
		"yarımçıq", "çatışmır",
	}
)

// EscalationWords trigger the classifier's own escalation rule when present
// as substrings in a negative message.
var EscalationWords = []string{
	"şikayət", "kobud", "problem", "qəbul edilməz", "biabırçı", "yarımçıq",
}

// CriticalKeywords and MediumSeverityKeywords are used by the weighted
// priority scorer. Unlike the substring sets above they are matched by exact
// equality against already-extracted keywords. Overlapping with, but not
// identical to, EscalationWords.
var (
	CriticalKeywords = []string{
		"şikayət", "kobud", "problem", "qəbul edilməz", "biabırçı",
		"dərhal", "təcili",
	}

	MediumSeverityKeywords = []string{
		"narazı", "gözləmək", "ləng", "bahalı", "yarımçıq",
	}
)

// ExtraKeywordNouns extends the keyword-extraction pool beyond the sentiment
// lexicons with a few domain nouns.
var ExtraKeywordNouns = []string{
	"kassa", "park", "qiymət", "məhsul", "xidmət", "ödəniş",
}

// CategoryPattern binds a category to its trigger substrings.
type CategoryPattern struct {
	Category models.Category
	Triggers []string
}

// CategoryPatterns is scanned in declaration order and the first category with
// any trigger hit wins. The order is load-bearing: several categories share
// trigger words (e.g. "məhsul" appears in both product patterns) and edits
// here change classification results.
var CategoryPatterns = []CategoryPattern{
	{models.CategoryProductComplaint, []string{"məhsul", "yarımçıq", "qırıq", "köhnə", "süt", "çörək"}},
	{models.CategoryProductPraise, []string{"məhsul", "təzə", "keyfiyyət"}},
	{models.CategoryServiceComplaint, []string{"kassa", "gözləmək", "ləng", "növbə", "xidmət"}},
	{models.CategoryServicePraise, []string{"xidmət", "əla", "yaxşı"}},
	{models.CategoryStaffComplaint, []string{"satıcı", "işçi", "kobud", "davranış"}},
	{models.CategoryStaffPraise, []string{"satıcı", "işçi", "peşəkar", "köməkçi"}},
	{models.CategoryPricingFeedback, []string{"qiymət", "bahalı", "endirim", "ucuz"}},
	{models.CategoryFacilityComplaint, []string{"park", "dayanacaq", "təmizlik"}},
	{models.CategoryFacilityPraise, []string{"təmiz", "səliqəli", "rahat"}},
	{models.CategoryTechnicalIssue, []string{"kart", "ödəniş", "problem", "işləmir", "xəta"}},
	{models.CategorySuggestion, []string{"olsa", "gərək", "yaxşı olar", "təklif"}},
	{models.CategoryInquiry, []string{"nə vaxt", "harada", "necə", "varmı"}},
}

var departmentByCategory = map[models.Category]models.Department{
	models.CategoryProductComplaint:  models.DepartmentProducts,
	models.CategoryProductPraise:     models.DepartmentProducts,
	models.CategoryServiceComplaint:  models.DepartmentOperations,
	models.CategoryServicePraise:     models.DepartmentService,
	models.CategoryStaffComplaint:    models.DepartmentHR,
	models.CategoryStaffPraise:       models.DepartmentHR,
	models.CategoryPricingFeedback:   models.DepartmentMarketing,
	models.CategoryFacilityComplaint: models.DepartmentFacilities,
	models.CategoryFacilityPraise:    models.DepartmentFacilities,
	models.CategoryTechnicalIssue:    models.DepartmentIT,
	models.CategorySuggestion:        models.DepartmentManagement,
	models.CategoryInquiry:           models.DepartmentService,
	models.CategoryGeneralFeedback:   models.DepartmentService,
}

// DefaultAction is returned for categories without a dedicated action
// template.
const DefaultAction = "Rəy qeydə alındı"

var actionByCategory = map[models.Category]string{
	models.CategoryProductComplaint:  "Məhsulu yoxlayın və əvəz edin",
	models.CategoryServiceComplaint:  "Xidmət keyfiyyətini artırın",
	models.CategoryStaffComplaint:    "İşçi ilə görüş keçirin",
	models.CategoryPricingFeedback:   "Qiymət siyasətini nəzərdən keçirin",
	models.CategoryFacilityComplaint: "İnfrastruktur problemini həll edin",
	models.CategoryTechnicalIssue:    "Texniki dəstək göndərin",
	models.CategorySuggestion:        "Təklifi rəhbərliyə çatdırın",
	models.CategoryInquiry:           "Müştəriyə məlumat verin",
	models.CategoryProductPraise:     "Müsbət rəy qeydə alındı",
	models.CategoryServicePraise:     "Müsbət rəy komandaya çatdırıldı",
	models.CategoryStaffPraise:       "Müsbət rəy HR-a göndərildi",
	models.CategoryFacilityPraise:    "Müsbət rəy qeydə alındı",
	models.CategoryGeneralFeedback:   "Rəy qeydə alındı",
}

// DepartmentFor maps a category to its routing department. Total: unmapped
// categories degrade to Service.
func DepartmentFor(c models.Category) models.Department {
	if d, ok := departmentByCategory[c]; ok {
		return d
	}
	return models.DepartmentService
}

// ActionFor maps a category to its suggested-action template. Total: unmapped
// categories degrade to DefaultAction.
func ActionFor(c models.Category) string {
	if a, ok := actionByCategory[c]; ok {
		return a
	}
	return DefaultAction
}

// MatchCategory scans CategoryPatterns in order and returns the first
// category with a trigger-substring hit in the lowercased text, or
// general_feedback when nothing matches.
func MatchCategory(lower string) models.Category {
	for _, p := range CategoryPatterns {
		if ContainsAny(lower, p.Triggers) {
			return p.Category
		}
	}
	return models.CategoryGeneralFeedback
}

// ContainsAny reports whether any of the words occurs as a substring of text.
func ContainsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// CountHits counts how many distinct lexicon entries occur in text.
func CountHits(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

// ExtractKeywords returns the lexicon terms present in the lowercased text,
// in pool order (positive, negative, then domain nouns), capped at max.
func ExtractKeywords(lower string, max int) []string {
	pool := make([]string, 0, len(PositiveWords)+len(NegativeWords)+len(ExtraKeywordNouns))
	pool = append(pool, PositiveWords...)
	pool = append(pool, NegativeWords...)
	pool = append(pool, ExtraKeywordNouns...)

	var found []string
	for _, kw := range pool {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
			if len(found) == max {
				break
			}
		}
	}
	return found
}
