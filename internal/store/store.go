// Package store abstracts persistence behind a capability interface so the
// in-memory default can be swapped for postgres without touching the
// classifier or the lifecycle services.
package store

import (
	"context"
	"errors"

	"github.com/oba-crm/backend/internal/models"
)

// ErrNotFound is returned on any identity lookup miss.
var ErrNotFound = errors.New("not found")

type FeedbackFilter struct {
	Status     models.FeedbackStatus
	Priority   models.Priority
	Department models.Department
	Limit      int
}

type TicketFilter struct {
	Status   models.TicketStatus
	Priority models.Priority
}

type SurveyFilter struct {
	Status models.SurveyStatus
}

// Store is the full capability set the boundary layer needs. Implementations
// must make every mutating call atomic with respect to the others; in
// particular InsertFeedback commits the feedback and its derived ticket as
// one unit.
type Store interface {
	ListFeedbacks(ctx context.Context, f FeedbackFilter) ([]models.Feedback, error)
	GetFeedback(ctx context.Context, id string) (models.Feedback, error)
	// InsertFeedback stores the feedback and, when ticket is non-nil, the
	// derived call-center ticket in the same atomic commit.
	InsertFeedback(ctx context.Context, fb models.Feedback, ticket *models.Ticket) error
	UpdateFeedback(ctx context.Context, id string, apply func(*models.Feedback) error) (models.Feedback, error)

	ListTickets(ctx context.Context, f TicketFilter) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id string) (models.Ticket, error)
	InsertTicket(ctx context.Context, t models.Ticket) error
	UpdateTicket(ctx context.Context, id string, apply func(*models.Ticket) error) (models.Ticket, error)

	ListSurveys(ctx context.Context, f SurveyFilter) ([]models.Survey, error)
	GetSurvey(ctx context.Context, id string) (models.Survey, error)
	InsertSurvey(ctx context.Context, s models.Survey) error
	UpdateSurvey(ctx context.Context, id string, apply func(*models.Survey) error) (models.Survey, error)
	DeleteSurvey(ctx context.Context, id string) error

	ListMarkets(ctx context.Context) ([]models.Market, error)
	GetMarket(ctx context.Context, id string) (models.Market, error)

	Ping(ctx context.Context) error
	Close()
}

var priorityOrder = map[models.Priority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// TicketLess orders tickets for the open-ticket queue: high priority first,
// then newest first.
func TicketLess(a, b models.Ticket) bool {
	if priorityOrder[a.Priority] != priorityOrder[b.Priority] {
		return priorityOrder[a.Priority] < priorityOrder[b.Priority]
	}
	return a.CreatedAt.After(b.CreatedAt)
}
