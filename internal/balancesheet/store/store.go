package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/rkap/internal/balancesheet"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateBalanceSheet(ctx context.Context, bs *balancesheet.BalanceSheet) error {
	query := `
		INSERT INTO balance_sheet (name, initial_balance, balance, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, bs.Name, bs.InitialBalance, bs.Balance).Scan(&bs.ID, &bs.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating balance sheet: %w", err)
	}

	return nil
}

func (s *Store) GetBalanceSheet(ctx context.Context, id int64) (*balancesheet.BalanceSheet, error) {
	query := `SELECT id, name, initial_balance, balance, created_at FROM balance_sheet WHERE id = $1`

	var bs balancesheet.BalanceSheet

	err := s.db.QueryRowContext(ctx, query, id).Scan(&bs.ID, &bs.Name, &bs.InitialBalance, &bs.Balance, &bs.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, balancesheet.ErrNotFound
		}

		return nil, fmt.Errorf("getting balance sheet: %w", err)
	}

	return &bs, nil
}

func (s *Store) ListBalanceSheets(ctx context.Context) ([]balancesheet.BalanceSheet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, initial_balance, balance, created_at FROM balance_sheet ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing balance sheets: %w", err)
	}
	defer rows.Close()

	var sheets []balancesheet.BalanceSheet

	for rows.Next() {
		var bs balancesheet.BalanceSheet
		if err := rows.Scan(&bs.ID, &bs.Name, &bs.InitialBalance, &bs.Balance, &bs.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning balance sheet: %w", err)
		}

		sheets = append(sheets, bs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating balance sheets: %w", err)
	}

	return sheets, nil
}

func (s *Store) DeleteBalanceSheets(ctx context.Context, ids []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		res, err := tx.ExecContext(ctx, `DELETE FROM balance_sheet WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("deleting balance sheet: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting balance sheet: %w", err)
		}

		if n == 0 {
			return fmt.Errorf("balance sheet %d: %w", id, balancesheet.ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	return nil
}

func (s *Store) ListDrift(ctx context.Context) ([]balancesheet.Drift, error) {
	query := `
		SELECT b.id, b.name, b.balance, b.initial_balance + COALESCE(SUM(t.amount), 0) AS expected
		FROM balance_sheet b
		LEFT JOIN transactions t ON t.balance_sheet_id = b.id
		GROUP BY b.id, b.name, b.balance, b.initial_balance
		HAVING b.balance <> b.initial_balance + COALESCE(SUM(t.amount), 0)
		ORDER BY b.id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("checking balances: %w", err)
	}
	defer rows.Close()

	var drift []balancesheet.Drift

	for rows.Next() {
		var d balancesheet.Drift
		if err := rows.Scan(&d.ID, &d.Name, &d.Balance, &d.Expected); err != nil {
			return nil, fmt.Errorf("scanning drift: %w", err)
		}

		drift = append(drift, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drift: %w", err)
	}

	return drift, nil
}
