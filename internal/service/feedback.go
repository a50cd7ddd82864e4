package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/oba-crm/backend/internal/ai"
	"github.com/oba-crm/backend/internal/models"
	"github.com/oba-crm/backend/internal/store"
)

// ErrInvalidStatus is returned when an update names a value outside the
// closed status enums.
var ErrInvalidStatus = errors.New("invalid status")

// FeedbackService owns the feedback lifecycle: classification of inbound
// messages, the escalation-derived ticket write, status updates and summary
// statistics.
type FeedbackService struct {
	Store    store.Store
	AI       ai.Analyzer
	Notifier Notifier
	Logger   zerolog.Logger
}

type CreateFeedbackInput struct {
	Text     string
	Customer models.Customer
	MarketID string
	Source   models.Source
	// Analysis, when non-nil, skips classification (webhook callers that
	// already ran the analyzer pass it through).
	Analysis *models.AIAnalysis
}

// Create classifies the message (unless a precomputed analysis is supplied),
// persists the feedback and, when escalation fires, the derived call-center
// ticket in one atomic commit, then notifies observers.
func (s *FeedbackService) Create(ctx context.Context, in CreateFeedbackInput) (models.Feedback, *models.Ticket, error) {
	analysis := in.Analysis
	if analysis == nil {
		a, latency, err := s.AI.AnalyzeMessage(ctx, in.Text)
		if err != nil {
			return models.Feedback{}, nil, err
		}
		s.Logger.Debug().Int64("latency_ms", latency).Str("category", string(a.Category)).Msg("message analyzed")
		analysis = &a
	}

	market, err := s.Store.GetMarket(ctx, in.MarketID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return models.Feedback{}, nil, err
		}
		// Unknown or absent market falls back to the first one.
		markets, err := s.Store.ListMarkets(ctx)
		if err != nil {
			return models.Feedback{}, nil, err
		}
		if len(markets) > 0 {
			market = markets[0]
		}
	}

	now := time.Now().UTC()
	fb := models.Feedback{
		ID:         uuid.NewString(),
		Text:       in.Text,
		Customer:   in.Customer,
		MarketID:   market.ID,
		MarketName: market.Name,
		Timestamp:  now,
		Source:     in.Source,
		AIAnalysis: *analysis,
		Status:     models.FeedbackInProgress,
	}

	var ticket *models.Ticket
	if analysis.SendToCallCenter {
		fb.Status = models.FeedbackPending
		t := NewTicketFromFeedback(fb, now)
		ticket = &t
	}

	if err := s.Store.InsertFeedback(ctx, fb, ticket); err != nil {
		return models.Feedback{}, nil, err
	}

	s.Notifier.Publish(EventNewFeedback, fb)
	if ticket != nil {
		s.Notifier.Publish(EventNewTicket, *ticket)
		s.Notifier.Publish(EventCallCenterAlert, map[string]any{
			"type":     "high_priority",
			"feedback": fb,
		})
	}
	return fb, ticket, nil
}

// NewTicketFromFeedback snapshots the escalation-relevant fields of a
// feedback into a fresh open ticket. The copy is independent: later mutations
// of either side do not propagate.
func NewTicketFromFeedback(fb models.Feedback, now time.Time) models.Ticket {
	return models.Ticket{
		ID:              uuid.NewString(),
		FeedbackID:      fb.ID,
		Customer:        fb.Customer,
		Message:         fb.Text,
		Priority:        fb.AIAnalysis.Priority,
		Category:        fb.AIAnalysis.Category,
		Department:      fb.AIAnalysis.Department,
		SuggestedAction: fb.AIAnalysis.SuggestedAction,
		Status:          models.TicketOpen,
		AssignedTo:      nil,
		Notes:           []models.Note{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *FeedbackService) List(ctx context.Context, f store.FeedbackFilter) ([]models.Feedback, error) {
	return s.Store.ListFeedbacks(ctx, f)
}

func (s *FeedbackService) Get(ctx context.Context, id string) (models.Feedback, error) {
	return s.Store.GetFeedback(ctx, id)
}

// UpdateStatus overwrites the feedback status. Only enum membership is
// validated; transitions between valid states are free-form, and resolved is
// only ever reached through this explicit operator call.
func (s *FeedbackService) UpdateStatus(ctx context.Context, id string, status models.FeedbackStatus) (models.Feedback, error) {
	if !status.Valid() {
		return models.Feedback{}, ErrInvalidStatus
	}
	fb, err := s.Store.UpdateFeedback(ctx, id, func(f *models.Feedback) error {
		f.Status = status
		return nil
	})
	if err != nil {
		return models.Feedback{}, err
	}
	s.Notifier.Publish(EventFeedbackUpdated, fb)
	return fb, nil
}
