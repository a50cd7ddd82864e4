package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/oba-crm/backend/internal/models"
	"github.com/oba-crm/backend/internal/store"
)

func newSurveyService(rec *recorder) *SurveyService {
	return &SurveyService{
		Store:    store.NewMemory(nil),
		Notifier: rec,
		Logger:   zerolog.Nop(),
	}
}

func TestCreateSurveyRenumbersQuestions(t *testing.T) {
	svc := newSurveyService(&recorder{})

	survey, err := svc.Create(context.Background(), CreateSurveyInput{
		Title: "Xidmət keyfiyyəti",
		Questions: []models.SurveyQuestion{
			{ID: 7, Text: "Xidməti necə qiymətləndirirsiniz?", Type: "rating"},
			{ID: 7, Text: "Yenidən gələrdinizmi?", Type: "yesno"},
			{Text: "Təklifiniz?", Type: "text"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if survey.Status != models.SurveyDraft {
		t.Fatalf("new survey must be draft, got %s", survey.Status)
	}
	for i, q := range survey.Questions {
		if q.ID != i+1 {
			t.Fatalf("expected question %d to have id %d, got %d", i, i+1, q.ID)
		}
	}
}

func TestScheduleSurveyDefaultsTargetCount(t *testing.T) {
	svc := newSurveyService(&recorder{})
	created, err := svc.Create(context.Background(), CreateSurveyInput{Title: "Test"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	survey, err := svc.Schedule(context.Background(), created.ID, "2026-09-01", 0)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if survey.Status != models.SurveyScheduled || survey.ScheduledDate != "2026-09-01" {
		t.Fatalf("unexpected survey %+v", survey)
	}
	if survey.TargetCount != 100 {
		t.Fatalf("expected default target 100, got %d", survey.TargetCount)
	}
}

func TestActivateSurveyPublishesEvent(t *testing.T) {
	rec := &recorder{}
	svc := newSurveyService(rec)
	created, err := svc.Create(context.Background(), CreateSurveyInput{Title: "Test"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	survey, err := svc.Activate(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if survey.Status != models.SurveyActive {
		t.Fatalf("expected active, got %s", survey.Status)
	}
	if survey.SentTo < 50 || survey.SentTo >= 150 {
		t.Fatalf("sentTo out of range: %d", survey.SentTo)
	}
	if rec.count(EventSurveyActivated) != 1 {
		t.Fatalf("expected one survey_activated event, got %v", rec.events)
	}
}

func TestSurveyResultsDeterministic(t *testing.T) {
	svc := newSurveyService(&recorder{})
	created, err := svc.Create(context.Background(), CreateSurveyInput{
		Title: "Test",
		Questions: []models.SurveyQuestion{
			{Text: "Qiymətləndirin", Type: "rating"},
			{Text: "Razısınızmı?", Type: "yesno"},
			{Text: "Fikriniz?", Type: "text"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Activate(context.Background(), created.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}

	first, err := svc.Results(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	second, err := svc.Results(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results must be stable across reads")
	}

	if len(first.QuestionResults) != 3 {
		t.Fatalf("expected results for 3 questions, got %d", len(first.QuestionResults))
	}
	if first.QuestionResults[0].Average == "" || len(first.QuestionResults[0].Distribution) != 5 {
		t.Fatalf("rating question missing figures: %+v", first.QuestionResults[0])
	}
	if first.QuestionResults[1].Yes == 0 {
		t.Fatalf("yesno question missing figures: %+v", first.QuestionResults[1])
	}
	if len(first.QuestionResults[2].SampleResponses) == 0 {
		t.Fatalf("text question missing samples: %+v", first.QuestionResults[2])
	}
}

func TestDeleteSurvey(t *testing.T) {
	svc := newSurveyService(&recorder{})
	created, err := svc.Create(context.Background(), CreateSurveyInput{Title: "Test"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
