package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aumatic/backend-quote/internal/common"
)

// Contact identifies the prospect a submitted quote belongs to.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// SubmittedQuote is a persisted quote: the selection as submitted, the totals
// computed server-side at submission time, and the contact that requested it.
// SubmissionKey carries the client's Idempotency-Key so a replay that slips
// past the redis guard still hits the database's unique index.
type SubmittedQuote struct {
	ID            uuid.UUID `json:"id"`
	Contact       Contact   `json:"contact"`
	Selection     Selection `json:"selection"`
	Result        Result    `json:"result"`
	ValidUntil    time.Time `json:"validUntil"`
	CreatedAt     time.Time `json:"createdAt"`
	SubmissionKey string    `json:"-"`
}

// Service persists submitted quotes.
type Service struct {
	Pool *pgxpool.Pool
}

const uniqueViolation = "23505"

// Save inserts the quote and returns the stored row's timestamps. A duplicate
// submission key surfaces as a 409.
func (s *Service) Save(ctx context.Context, q *SubmittedQuote) error {
	selJSON, err := json.Marshal(q.Selection)
	if err != nil {
		return fmt.Errorf("quote: marshal selection: %w", err)
	}
	resJSON, err := json.Marshal(q.Result)
	if err != nil {
		return fmt.Errorf("quote: marshal result: %w", err)
	}

	row := s.Pool.QueryRow(ctx, `
		INSERT INTO quotes (id, contact_name, contact_email, contact_company, contact_phone, selection, result, currency, valid_until, submission_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		q.ID, q.Contact.Name, q.Contact.Email, q.Contact.Company, q.Contact.Phone,
		selJSON, resJSON, q.Result.Currency, q.ValidUntil, q.SubmissionKey,
	)
	if err := row.Scan(&q.CreatedAt); err != nil {
		return insertError(err)
	}
	return nil
}

func insertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return common.NewAppError("DUPLICATE_SUBMISSION", "quote already submitted", http.StatusConflict, err)
	}
	return fmt.Errorf("quote: insert: %w", err)
}

// Get fetches a single quote by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (SubmittedQuote, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, contact_name, contact_email, contact_company, contact_phone, selection, result, valid_until, created_at
		FROM quotes WHERE id = $1`, id)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SubmittedQuote{}, common.NotFoundError("quote not found")
		}
		return SubmittedQuote{}, fmt.Errorf("quote: get: %w", err)
	}
	return q, nil
}

// List returns the newest quotes first, paginated by limit/offset.
func (s *Service) List(ctx context.Context, limit, offset int) ([]SubmittedQuote, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, contact_name, contact_email, contact_company, contact_phone, selection, result, valid_until, created_at
		FROM quotes ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("quote: list: %w", err)
	}
	defer rows.Close()

	out := make([]SubmittedQuote, 0, limit)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("quote: list scan: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanQuote(row pgx.Row) (SubmittedQuote, error) {
	var (
		q       SubmittedQuote
		selJSON []byte
		resJSON []byte
	)
	if err := row.Scan(&q.ID, &q.Contact.Name, &q.Contact.Email, &q.Contact.Company, &q.Contact.Phone,
		&selJSON, &resJSON, &q.ValidUntil, &q.CreatedAt); err != nil {
		return SubmittedQuote{}, err
	}
	if err := json.Unmarshal(selJSON, &q.Selection); err != nil {
		return SubmittedQuote{}, fmt.Errorf("decode selection: %w", err)
	}
	if err := json.Unmarshal(resJSON, &q.Result); err != nil {
		return SubmittedQuote{}, fmt.Errorf("decode result: %w", err)
	}
	return q, nil
}
