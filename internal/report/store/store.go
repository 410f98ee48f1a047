package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/rkap/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListExpenses(ctx context.Context, rng report.Range, itemIDs []int64) ([]report.Expense, error) {
	query := `
		SELECT date, category_id, item_id, amount
		FROM transactions
		WHERE amount < 0 AND date >= $1 AND date <= $2
	`
	args := []any{rng.Start, rng.End}

	if len(itemIDs) > 0 {
		query += ` AND item_id = ANY($3)`

		args = append(args, itemIDs)
	}

	query += ` ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var out []report.Expense

	for rows.Next() {
		var e report.Expense
		if err := rows.Scan(&e.Date, &e.CategoryID, &e.ItemID, &e.Amount); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return out, nil
}

func (s *Store) ListCategoryLines(ctx context.Context) ([]report.Line, error) {
	return s.lines(ctx, `SELECT id, name, budget FROM categories ORDER BY name, id`)
}

func (s *Store) ListItemLines(ctx context.Context, ids []int64) ([]report.Line, error) {
	if len(ids) == 0 {
		return s.lines(ctx, `SELECT id, name, 0 FROM items ORDER BY name, id`)
	}

	return s.lines(ctx, `SELECT id, name, 0 FROM items WHERE id = ANY($1) ORDER BY name, id`, ids)
}

func (s *Store) lines(ctx context.Context, query string, args ...any) ([]report.Line, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing report lines: %w", err)
	}
	defer rows.Close()

	var out []report.Line

	for rows.Next() {
		var l report.Line
		if err := rows.Scan(&l.ID, &l.Name, &l.Budget); err != nil {
			return nil, fmt.Errorf("scanning report line: %w", err)
		}

		out = append(out, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report lines: %w", err)
	}

	return out, nil
}

func (s *Store) ListAttachments(ctx context.Context, rng report.Range) ([]report.Attachment, error) {
	query := `
		SELECT id, date, payee, amount, attachment_url
		FROM transactions
		WHERE attachment_url <> '' AND date >= $1 AND date <= $2
		ORDER BY date, id
	`

	rows, err := s.db.QueryContext(ctx, query, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	defer rows.Close()

	var out []report.Attachment

	for rows.Next() {
		var a report.Attachment
		if err := rows.Scan(&a.TransactionID, &a.Date, &a.Payee, &a.Amount, &a.URL); err != nil {
			return nil, fmt.Errorf("scanning attachment: %w", err)
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachments: %w", err)
	}

	return out, nil
}
