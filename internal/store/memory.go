package store

import (
	"context"
	"sort"
	"sync"

	"github.com/oba-crm/backend/internal/models"
)

// Memory is the default in-process store. One RWMutex guards all collections
// so the feedback→ticket derived write appears atomically to readers.
type Memory struct {
	mu        sync.RWMutex
	feedbacks []models.Feedback
	tickets   []models.Ticket
	surveys   []models.Survey
	markets   []models.Market
}

func NewMemory(markets []models.Market) *Memory {
	return &Memory{markets: markets}
}

func (m *Memory) ListFeedbacks(_ context.Context, f FeedbackFilter) ([]models.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Feedback, 0, len(m.feedbacks))
	for _, fb := range m.feedbacks {
		if f.Status != "" && fb.Status != f.Status {
			continue
		}
		if f.Priority != "" && fb.AIAnalysis.Priority != f.Priority {
			continue
		}
		if f.Department != "" && fb.AIAnalysis.Department != f.Department {
			continue
		}
		out = append(out, copyFeedback(fb))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *Memory) GetFeedback(_ context.Context, id string) (models.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, fb := range m.feedbacks {
		if fb.ID == id {
			return copyFeedback(fb), nil
		}
	}
	return models.Feedback{}, ErrNotFound
}

func (m *Memory) InsertFeedback(_ context.Context, fb models.Feedback, ticket *models.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.feedbacks = append(m.feedbacks, copyFeedback(fb))
	if ticket != nil {
		m.tickets = append(m.tickets, copyTicket(*ticket))
	}
	return nil
}

func (m *Memory) UpdateFeedback(_ context.Context, id string, apply func(*models.Feedback) error) (models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.feedbacks {
		if m.feedbacks[i].ID == id {
			fb := copyFeedback(m.feedbacks[i])
			if err := apply(&fb); err != nil {
				return models.Feedback{}, err
			}
			m.feedbacks[i] = copyFeedback(fb)
			return fb, nil
		}
	}
	return models.Feedback{}, ErrNotFound
}

func (m *Memory) ListTickets(_ context.Context, f TicketFilter) ([]models.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		out = append(out, copyTicket(t))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return TicketLess(out[i], out[j])
	})
	return out, nil
}

func (m *Memory) GetTicket(_ context.Context, id string) (models.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.tickets {
		if t.ID == id {
			return copyTicket(t), nil
		}
	}
	return models.Ticket{}, ErrNotFound
}

func (m *Memory) InsertTicket(_ context.Context, t models.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tickets = append(m.tickets, copyTicket(t))
	return nil
}

func (m *Memory) UpdateTicket(_ context.Context, id string, apply func(*models.Ticket) error) (models.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tickets {
		if m.tickets[i].ID == id {
			t := copyTicket(m.tickets[i])
			if err := apply(&t); err != nil {
				return models.Ticket{}, err
			}
			m.tickets[i] = copyTicket(t)
			return t, nil
		}
	}
	return models.Ticket{}, ErrNotFound
}

func (m *Memory) ListSurveys(_ context.Context, f SurveyFilter) ([]models.Survey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Survey, 0, len(m.surveys))
	for _, s := range m.surveys {
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		out = append(out, copySurvey(s))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) GetSurvey(_ context.Context, id string) (models.Survey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.surveys {
		if s.ID == id {
			return copySurvey(s), nil
		}
	}
	return models.Survey{}, ErrNotFound
}

func (m *Memory) InsertSurvey(_ context.Context, s models.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.surveys = append(m.surveys, copySurvey(s))
	return nil
}

func (m *Memory) UpdateSurvey(_ context.Context, id string, apply func(*models.Survey) error) (models.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.surveys {
		if m.surveys[i].ID == id {
			s := copySurvey(m.surveys[i])
			if err := apply(&s); err != nil {
				return models.Survey{}, err
			}
			m.surveys[i] = copySurvey(s)
			return s, nil
		}
	}
	return models.Survey{}, ErrNotFound
}

func (m *Memory) DeleteSurvey(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.surveys {
		if m.surveys[i].ID == id {
			m.surveys = append(m.surveys[:i], m.surveys[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListMarkets(_ context.Context) ([]models.Market, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Market, len(m.markets))
	copy(out, m.markets)
	return out, nil
}

func (m *Memory) GetMarket(_ context.Context, id string) (models.Market, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, mk := range m.markets {
		if mk.ID == id {
			return mk, nil
		}
	}
	return models.Market{}, ErrNotFound
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() {}

// Deep copies keep callers from aliasing stored slices.

func copyFeedback(fb models.Feedback) models.Feedback {
	if fb.AIAnalysis.Keywords != nil {
		kw := make([]string, len(fb.AIAnalysis.Keywords))
		copy(kw, fb.AIAnalysis.Keywords)
		fb.AIAnalysis.Keywords = kw
	}
	return fb
}

func copyTicket(t models.Ticket) models.Ticket {
	notes := make([]models.Note, len(t.Notes))
	copy(notes, t.Notes)
	t.Notes = notes
	if t.AssignedTo != nil {
		v := *t.AssignedTo
		t.AssignedTo = &v
	}
	return t
}

func copySurvey(s models.Survey) models.Survey {
	if s.Questions != nil {
		qs := make([]models.SurveyQuestion, len(s.Questions))
		copy(qs, s.Questions)
		s.Questions = qs
	}
	return s
}
