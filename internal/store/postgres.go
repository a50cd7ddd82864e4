package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oba-crm/backend/internal/models"
)

// Postgres implements Store on a pgx pool. Row payloads that the API treats
// as opaque documents (customer, analysis, questions, notes) live in jsonb
// columns.
type Postgres struct {
	Pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Close() {
	p.Pool.Close()
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

func (p *Postgres) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (p *Postgres) ListFeedbacks(ctx context.Context, f FeedbackFilter) ([]models.Feedback, error) {
	query := `SELECT id, text, customer, market_id, market_name, created_at, source, analysis, status FROM feedbacks`
	var args []any
	var wheres []string
	if f.Status != "" {
		args = append(args, f.Status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		wheres = append(wheres, fmt.Sprintf("analysis->>'priority' = $%d", len(args)))
	}
	if f.Department != "" {
		args = append(args, f.Department)
		wheres = append(wheres, fmt.Sprintf("analysis->>'department' = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := p.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

func (p *Postgres) GetFeedback(ctx context.Context, id string) (models.Feedback, error) {
	row := p.Pool.QueryRow(ctx, `SELECT id, text, customer, market_id, market_name, created_at, source, analysis, status FROM feedbacks WHERE id = $1`, id)
	fb, err := scanFeedback(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Feedback{}, ErrNotFound
	}
	return fb, err
}

func (p *Postgres) InsertFeedback(ctx context.Context, fb models.Feedback, ticket *models.Ticket) error {
	return p.withTx(ctx, func(tx pgx.Tx) error {
		if err := insertFeedbackTx(ctx, tx, fb); err != nil {
			return err
		}
		if ticket != nil {
			return insertTicketTx(ctx, tx, *ticket)
		}
		return nil
	})
}

func (p *Postgres) UpdateFeedback(ctx context.Context, id string, apply func(*models.Feedback) error) (models.Feedback, error) {
	var out models.Feedback
	err := p.withTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT id, text, customer, market_id, market_name, created_at, source, analysis, status FROM feedbacks WHERE id = $1 FOR UPDATE`, id)
		fb, err := scanFeedback(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := apply(&fb); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE feedbacks SET status = $1 WHERE id = $2`, fb.Status, id); err != nil {
			return err
		}
		out = fb
		return nil
	})
	return out, err
}

func (p *Postgres) ListTickets(ctx context.Context, f TicketFilter) ([]models.Ticket, error) {
	query := `SELECT id, feedback_id, customer, message, priority, category, department, suggested_action, status, assigned_to, notes, created_at, updated_at FROM tickets`
	var args []any
	var wheres []string
	if f.Status != "" {
		args = append(args, f.Status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		wheres = append(wheres, fmt.Sprintf("priority = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += ` ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, created_at DESC`

	rows, err := p.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (p *Postgres) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	row := p.Pool.QueryRow(ctx, `SELECT id, feedback_id, customer, message, priority, category, department, suggested_action, status, assigned_to, notes, created_at, updated_at FROM tickets WHERE id = $1`, id)
	t, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Ticket{}, ErrNotFound
	}
	return t, err
}

func (p *Postgres) InsertTicket(ctx context.Context, t models.Ticket) error {
	return p.withTx(ctx, func(tx pgx.Tx) error {
		return insertTicketTx(ctx, tx, t)
	})
}

func (p *Postgres) UpdateTicket(ctx context.Context, id string, apply func(*models.Ticket) error) (models.Ticket, error) {
	var out models.Ticket
	err := p.withTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT id, feedback_id, customer, message, priority, category, department, suggested_action, status, assigned_to, notes, created_at, updated_at FROM tickets WHERE id = $1 FOR UPDATE`, id)
		t, err := scanTicket(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := apply(&t); err != nil {
			return err
		}
		notes, _ := json.Marshal(t.Notes)
		if _, err := tx.Exec(ctx, `
			UPDATE tickets SET priority = $1, status = $2, assigned_to = $3, notes = $4, updated_at = $5
			WHERE id = $6
		`, t.Priority, t.Status, t.AssignedTo, notes, t.UpdatedAt, id); err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}

func (p *Postgres) ListSurveys(ctx context.Context, f SurveyFilter) ([]models.Survey, error) {
	query := `SELECT id, title, description, questions, status, sent_to, responses, start_date, end_date, scheduled_date, target_count, created_at FROM surveys`
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC"

	rows, err := p.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Survey
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *Postgres) GetSurvey(ctx context.Context, id string) (models.Survey, error) {
	row := p.Pool.QueryRow(ctx, `SELECT id, title, description, questions, status, sent_to, responses, start_date, end_date, scheduled_date, target_count, created_at FROM surveys WHERE id = $1`, id)
	s, err := scanSurvey(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Survey{}, ErrNotFound
	}
	return s, err
}

func (p *Postgres) InsertSurvey(ctx context.Context, s models.Survey) error {
	questions, _ := json.Marshal(s.Questions)
	_, err := p.Pool.Exec(ctx, `
		INSERT INTO surveys (id, title, description, questions, status, sent_to, responses, start_date, end_date, scheduled_date, target_count, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, s.ID, s.Title, s.Description, questions, s.Status, s.SentTo, s.Responses, s.StartDate, s.EndDate, s.ScheduledDate, s.TargetCount, s.CreatedAt)
	return err
}

func (p *Postgres) UpdateSurvey(ctx context.Context, id string, apply func(*models.Survey) error) (models.Survey, error) {
	var out models.Survey
	err := p.withTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT id, title, description, questions, status, sent_to, responses, start_date, end_date, scheduled_date, target_count, created_at FROM surveys WHERE id = $1 FOR UPDATE`, id)
		s, err := scanSurvey(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := apply(&s); err != nil {
			return err
		}
		questions, _ := json.Marshal(s.Questions)
		if _, err := tx.Exec(ctx, `
			UPDATE surveys SET title = $1, description = $2, questions = $3, status = $4, sent_to = $5,
				responses = $6, start_date = $7, end_date = $8, scheduled_date = $9, target_count = $10
			WHERE id = $11
		`, s.Title, s.Description, questions, s.Status, s.SentTo, s.Responses, s.StartDate, s.EndDate, s.ScheduledDate, s.TargetCount, id); err != nil {
			return err
		}
		out = s
		return nil
	})
	return out, err
}

func (p *Postgres) DeleteSurvey(ctx context.Context, id string) error {
	tag, err := p.Pool.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) ListMarkets(ctx context.Context) ([]models.Market, error) {
	rows, err := p.Pool.Query(ctx, `SELECT id, name, location, phone FROM markets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Market
	for rows.Next() {
		var m models.Market
		if err := rows.Scan(&m.ID, &m.Name, &m.Location, &m.Phone); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *Postgres) GetMarket(ctx context.Context, id string) (models.Market, error) {
	var m models.Market
	err := p.Pool.QueryRow(ctx, `SELECT id, name, location, phone FROM markets WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Location, &m.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Market{}, ErrNotFound
	}
	return m, err
}

func insertFeedbackTx(ctx context.Context, tx pgx.Tx, fb models.Feedback) error {
	customer, _ := json.Marshal(fb.Customer)
	analysis, _ := json.Marshal(fb.AIAnalysis)
	_, err := tx.Exec(ctx, `
		INSERT INTO feedbacks (id, text, customer, market_id, market_name, created_at, source, analysis, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, fb.ID, fb.Text, customer, fb.MarketID, fb.MarketName, fb.Timestamp, fb.Source, analysis, fb.Status)
	return err
}

func insertTicketTx(ctx context.Context, tx pgx.Tx, t models.Ticket) error {
	customer, _ := json.Marshal(t.Customer)
	notes, _ := json.Marshal(t.Notes)
	_, err := tx.Exec(ctx, `
		INSERT INTO tickets (id, feedback_id, customer, message, priority, category, department, suggested_action, status, assigned_to, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, t.ID, t.FeedbackID, customer, t.Message, t.Priority, t.Category, t.Department, t.SuggestedAction, t.Status, t.AssignedTo, notes, t.CreatedAt, t.UpdatedAt)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row rowScanner) (models.Feedback, error) {
	var fb models.Feedback
	var customer, analysis []byte
	if err := row.Scan(&fb.ID, &fb.Text, &customer, &fb.MarketID, &fb.MarketName, &fb.Timestamp, &fb.Source, &analysis, &fb.Status); err != nil {
		return models.Feedback{}, err
	}
	if err := json.Unmarshal(customer, &fb.Customer); err != nil {
		return models.Feedback{}, err
	}
	if err := json.Unmarshal(analysis, &fb.AIAnalysis); err != nil {
		return models.Feedback{}, err
	}
	return fb, nil
}

func scanTicket(row rowScanner) (models.Ticket, error) {
	var t models.Ticket
	var customer, notes []byte
	if err := row.Scan(&t.ID, &t.FeedbackID, &customer, &t.Message, &t.Priority, &t.Category, &t.Department, &t.SuggestedAction, &t.Status, &t.AssignedTo, &notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Ticket{}, err
	}
	if err := json.Unmarshal(customer, &t.Customer); err != nil {
		return models.Ticket{}, err
	}
	if err := json.Unmarshal(notes, &t.Notes); err != nil {
		return models.Ticket{}, err
	}
	if t.Notes == nil {
		t.Notes = []models.Note{}
	}
	return t, nil
}

func scanSurvey(row rowScanner) (models.Survey, error) {
	var s models.Survey
	var questions []byte
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &questions, &s.Status, &s.SentTo, &s.Responses, &s.StartDate, &s.EndDate, &s.ScheduledDate, &s.TargetCount, &s.CreatedAt); err != nil {
		return models.Survey{}, err
	}
	if err := json.Unmarshal(questions, &s.Questions); err != nil {
		return models.Survey{}, err
	}
	return s, nil
}
