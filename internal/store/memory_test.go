package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oba-crm/backend/internal/models"
)

func TestMemoryInsertFeedbackWithTicket(t *testing.T) {
	m := NewMemory(DefaultMarkets())
	ctx := context.Background()

	fb := models.Feedback{ID: "f1", Text: "problem var", Status: models.FeedbackPending}
	ticket := models.Ticket{ID: "t1", FeedbackID: "f1", Status: models.TicketOpen, Notes: []models.Note{}}

	if err := m.InsertFeedback(ctx, fb, &ticket); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := m.GetFeedback(ctx, "f1"); err != nil {
		t.Fatalf("feedback not stored: %v", err)
	}
	got, err := m.GetTicket(ctx, "t1")
	if err != nil {
		t.Fatalf("ticket not stored: %v", err)
	}
	if got.FeedbackID != "f1" {
		t.Fatalf("expected ticket linked to f1, got %s", got.FeedbackID)
	}
}

func TestMemoryGetFeedbackNotFound(t *testing.T) {
	m := NewMemory(nil)
	if _, err := m.GetFeedback(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryUpdateTicketNotFound(t *testing.T) {
	m := NewMemory(nil)
	_, err := m.UpdateTicket(context.Background(), "nope", func(*models.Ticket) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryReturnsDeepCopies(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()

	ticket := models.Ticket{ID: "t1", Notes: []models.Note{{ID: "n1", Text: "ilk qeyd"}}}
	if err := m.InsertTicket(ctx, ticket); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := m.GetTicket(ctx, "t1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Notes[0].Text = "dəyişdirildi"
	got.Notes = append(got.Notes, models.Note{ID: "n2"})

	again, err := m.GetTicket(ctx, "t1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(again.Notes) != 1 || again.Notes[0].Text != "ilk qeyd" {
		t.Fatalf("stored ticket aliased by caller mutation: %+v", again.Notes)
	}
}

func TestMemoryListTicketsOrdering(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	base := time.Now().UTC()

	_ = m.InsertTicket(ctx, models.Ticket{ID: "low-new", Priority: models.PriorityLow, CreatedAt: base})
	_ = m.InsertTicket(ctx, models.Ticket{ID: "high-old", Priority: models.PriorityHigh, CreatedAt: base.Add(-time.Hour)})
	_ = m.InsertTicket(ctx, models.Ticket{ID: "high-new", Priority: models.PriorityHigh, CreatedAt: base})

	out, err := m.ListTickets(ctx, TicketFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(out))
	}
	if out[0].ID != "high-new" || out[1].ID != "high-old" || out[2].ID != "low-new" {
		t.Fatalf("unexpected order: %s %s %s", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestMemoryListFeedbacksFilterAndLimit(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	base := time.Now().UTC()

	for i, st := range []models.FeedbackStatus{models.FeedbackPending, models.FeedbackPending, models.FeedbackResolved} {
		fb := models.Feedback{
			ID:        string(rune('a' + i)),
			Status:    st,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := m.InsertFeedback(ctx, fb, nil); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	out, err := m.ListFeedbacks(ctx, FeedbackFilter{Status: models.FeedbackPending, Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 feedback after limit, got %d", len(out))
	}
	// Newest first.
	if out[0].ID != "b" {
		t.Fatalf("expected newest pending feedback first, got %s", out[0].ID)
	}
}

func TestMemoryDeleteSurvey(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()

	if err := m.InsertSurvey(ctx, models.Survey{ID: "s1"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := m.DeleteSurvey(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.GetSurvey(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := m.DeleteSurvey(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryDefaultMarketsSeeded(t *testing.T) {
	m := NewMemory(DefaultMarkets())
	markets, err := m.ListMarkets(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(markets) != 5 {
		t.Fatalf("expected 5 seeded markets, got %d", len(markets))
	}
	if _, err := m.GetMarket(context.Background(), "M001"); err != nil {
		t.Fatalf("expected M001 to exist: %v", err)
	}
}
