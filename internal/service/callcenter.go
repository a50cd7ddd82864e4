package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/oba-crm/backend/internal/models"
	"github.com/oba-crm/backend/internal/priority"
	"github.com/oba-crm/backend/internal/store"
)

// CallCenterService owns the ticket queue. Priority recalculation uses the
// weighted-score policy; the classifier path that created the ticket used the
// critical-rule policy, and the two intentionally stay separate.
type CallCenterService struct {
	Store    store.Store
	Scorer   priority.Policy
	Notifier Notifier
	Logger   zerolog.Logger
}

func (s *CallCenterService) List(ctx context.Context, f store.TicketFilter) ([]models.Ticket, error) {
	return s.Store.ListTickets(ctx, f)
}

func (s *CallCenterService) Get(ctx context.Context, id string) (models.Ticket, error) {
	return s.Store.GetTicket(ctx, id)
}

// CreateFromFeedback escalates an existing feedback into a ticket manually.
func (s *CallCenterService) CreateFromFeedback(ctx context.Context, feedbackID string) (models.Ticket, error) {
	fb, err := s.Store.GetFeedback(ctx, feedbackID)
	if err != nil {
		return models.Ticket{}, err
	}

	t := NewTicketFromFeedback(fb, time.Now().UTC())
	if err := s.Store.InsertTicket(ctx, t); err != nil {
		return models.Ticket{}, err
	}
	s.Notifier.Publish(EventNewTicket, t)
	return t, nil
}

// TicketUpdate is the whitelist of operator-mutable fields. Identity,
// snapshot fields and timestamps are not client-writable.
type TicketUpdate struct {
	Status     *models.TicketStatus `json:"status"`
	AssignedTo *string              `json:"assignedTo"`
	Priority   *models.Priority     `json:"priority"`
}

func (s *CallCenterService) Update(ctx context.Context, id string, upd TicketUpdate) (models.Ticket, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return models.Ticket{}, ErrInvalidStatus
	}
	if upd.Priority != nil && !upd.Priority.Valid() {
		return models.Ticket{}, ErrInvalidStatus
	}

	t, err := s.Store.UpdateTicket(ctx, id, func(t *models.Ticket) error {
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		if upd.AssignedTo != nil {
			t.AssignedTo = upd.AssignedTo
		}
		if upd.Priority != nil {
			t.Priority = *upd.Priority
		}
		t.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return models.Ticket{}, err
	}
	s.Notifier.Publish(EventTicketUpdated, t)
	return t, nil
}

// AddNote appends to the ticket's note log. Always permitted regardless of
// status; bumps updatedAt only.
func (s *CallCenterService) AddNote(ctx context.Context, id, text, author, noteType string) (models.Ticket, error) {
	if author == "" {
		author = "Operator"
	}
	now := time.Now().UTC()
	note := models.Note{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		Type:      noteType,
		CreatedAt: now,
	}

	t, err := s.Store.UpdateTicket(ctx, id, func(t *models.Ticket) error {
		t.Notes = append(t.Notes, note)
		t.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.Ticket{}, err
	}
	s.Notifier.Publish(EventTicketUpdated, t)
	return t, nil
}

// SimulateCall appends a timestamped call note and forces the ticket into
// in_progress (a no-op when already there).
func (s *CallCenterService) SimulateCall(ctx context.Context, id, operator string) (models.Ticket, error) {
	if operator == "" {
		operator = "Call Center"
	}
	now := time.Now().UTC()
	note := models.Note{
		ID:        uuid.NewString(),
		Text:      fmt.Sprintf("Zəng edildi: %s", now.Format("15:04:05")),
		Author:    operator,
		Type:      "call",
		CreatedAt: now,
	}

	t, err := s.Store.UpdateTicket(ctx, id, func(t *models.Ticket) error {
		t.Notes = append(t.Notes, note)
		t.Status = models.TicketInProgress
		t.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.Ticket{}, err
	}
	s.Notifier.Publish(EventTicketUpdated, t)
	return t, nil
}

// Recalculate re-scores the ticket's priority with the weighted policy using
// the originating feedback's sentiment and keywords.
func (s *CallCenterService) Recalculate(ctx context.Context, id string) (models.Ticket, priority.Decision, error) {
	ticket, err := s.Store.GetTicket(ctx, id)
	if err != nil {
		return models.Ticket{}, priority.Decision{}, err
	}
	fb, err := s.Store.GetFeedback(ctx, ticket.FeedbackID)
	if err != nil {
		return models.Ticket{}, priority.Decision{}, err
	}

	decision := s.Scorer.Evaluate(priority.Signals{
		Sentiment: fb.AIAnalysis.Sentiment,
		Category:  ticket.Category,
		Keywords:  fb.AIAnalysis.Keywords,
	})
	s.Logger.Info().
		Str("ticket_id", id).
		Str("policy", s.Scorer.Name()).
		Int("score", decision.Score).
		Str("priority", string(decision.Priority)).
		Msg("ticket priority recalculated")

	t, err := s.Store.UpdateTicket(ctx, id, func(t *models.Ticket) error {
		t.Priority = decision.Priority
		t.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return models.Ticket{}, priority.Decision{}, err
	}
	s.Notifier.Publish(EventTicketUpdated, t)
	return t, decision, nil
}
