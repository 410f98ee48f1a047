package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/rkap/internal/database"
	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.date, t.category_id, c.name, t.item_id, i.name, t.payee, t.amount,
	t.balance_sheet_id, b.name, t.attachment_url, t.created_at, t.updated_at
`

const fromTransactions = `
	FROM transactions t
	JOIN categories c ON c.id = t.category_id
	JOIN items i ON i.id = t.item_id
	LEFT JOIN balance_sheet b ON b.id = t.balance_sheet_id
`

// scanTransaction reads a joined transaction row.
// Expected column order matches selectTransactionColumns.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var sheetID sql.NullInt64

	var sheetName sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.Date, &tx.CategoryID, &tx.CategoryName, &tx.ItemID, &tx.ItemName, &tx.Payee, &tx.Amount,
		&sheetID, &sheetName, &tx.AttachmentURL, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if sheetID.Valid {
		tx.BalanceSheetID = &sheetID.Int64
		tx.BalanceSheetName = sheetName.String
	}

	return &tx, nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + ` WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + ` WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.BalanceSheetID != nil {
		query += fmt.Sprintf(" AND t.balance_sheet_id = $%d", argIdx)

		args = append(args, *filter.BalanceSheetID)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.ItemID != nil {
		query += fmt.Sprintf(" AND t.item_id = $%d", argIdx)

		args = append(args, *filter.ItemID)
	}

	query += " ORDER BY t.date DESC, t.id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (transaction.LedgerTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{tx: dbTx}, nil
}

func (l *ledgerTx) Commit() error   { return l.tx.Commit() }
func (l *ledgerTx) Rollback() error { return l.tx.Rollback() }

// LockTransaction reads the bare row with FOR UPDATE; joins are left out
// because PostgreSQL cannot lock the nullable side of an outer join.
func (l *ledgerTx) LockTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `
		SELECT id, date, category_id, item_id, payee, amount, balance_sheet_id, attachment_url, created_at, updated_at
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`

	var tx transaction.Transaction

	var sheetID sql.NullInt64

	err := l.tx.QueryRowContext(ctx, query, id).Scan(
		&tx.ID, &tx.Date, &tx.CategoryID, &tx.ItemID, &tx.Payee, &tx.Amount,
		&sheetID, &tx.AttachmentURL, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d: %w", id, transaction.ErrNotFound)
		}

		return nil, fmt.Errorf("locking transaction: %w", err)
	}

	if sheetID.Valid {
		tx.BalanceSheetID = &sheetID.Int64
	}

	return &tx, nil
}

func (l *ledgerTx) ItemCategory(ctx context.Context, itemID int64) (int64, error) {
	var categoryID int64

	err := l.tx.QueryRowContext(ctx, `SELECT category_id FROM items WHERE id = $1`, itemID).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("item %d: %w", itemID, transaction.ErrItemNotFound)
		}

		return 0, fmt.Errorf("resolving item category: %w", err)
	}

	return categoryID, nil
}

func (l *ledgerTx) ImportCatalog(ctx context.Context) (*transaction.Catalog, error) {
	var catalog transaction.Catalog

	itemRows, err := l.tx.QueryContext(ctx, `SELECT id, category_id, name FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var ref transaction.ItemRef
		if err := itemRows.Scan(&ref.ID, &ref.CategoryID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		catalog.Items = append(catalog.Items, ref)
	}

	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	sheetRows, err := l.tx.QueryContext(ctx, `SELECT id, name FROM balance_sheet ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing balance sheets: %w", err)
	}
	defer sheetRows.Close()

	for sheetRows.Next() {
		var ref transaction.SheetRef
		if err := sheetRows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scanning balance sheet: %w", err)
		}

		catalog.BalanceSheets = append(catalog.BalanceSheets, ref)
	}

	if err := sheetRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating balance sheets: %w", err)
	}

	return &catalog, nil
}

func (l *ledgerTx) InsertTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (date, category_id, item_id, payee, amount, balance_sheet_id, attachment_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := l.tx.QueryRowContext(ctx, query,
		tx.Date,
		tx.CategoryID,
		tx.ItemID,
		tx.Payee,
		tx.Amount,
		tx.BalanceSheetID,
		tx.AttachmentURL,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", referenceError(err))
	}

	return nil
}

func (l *ledgerTx) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET date = $1, category_id = $2, item_id = $3, payee = $4, amount = $5,
		    balance_sheet_id = $6, attachment_url = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := l.tx.QueryRowContext(ctx, query,
		tx.Date,
		tx.CategoryID,
		tx.ItemID,
		tx.Payee,
		tx.Amount,
		tx.BalanceSheetID,
		tx.AttachmentURL,
		tx.ID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("transaction %d: %w", tx.ID, transaction.ErrNotFound)
		}

		return fmt.Errorf("updating transaction: %w", referenceError(err))
	}

	return nil
}

func (l *ledgerTx) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := l.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("transaction %d: %w", id, transaction.ErrNotFound)
	}

	return nil
}

func (l *ledgerTx) ApplyBalanceDelta(ctx context.Context, balanceSheetID, delta int64) error {
	res, err := l.tx.ExecContext(ctx,
		`UPDATE balance_sheet SET balance = balance + $1 WHERE id = $2`, delta, balanceSheetID)
	if err != nil {
		return fmt.Errorf("applying balance delta: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("applying balance delta: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("balance sheet %d: %w", balanceSheetID, transaction.ErrBalanceSheetNotFound)
	}

	return nil
}

// referenceError maps foreign key failures on the transactions table to
// the domain's not-found errors.
func referenceError(err error) error {
	constraint, ok := database.ForeignKeyViolation(err)
	if !ok {
		return err
	}

	switch constraint {
	case "transactions_item_id_fkey":
		return transaction.ErrItemNotFound
	case "transactions_category_id_fkey":
		return transaction.ErrCategoryNotFound
	case "transactions_balance_sheet_id_fkey":
		return transaction.ErrBalanceSheetNotFound
	}

	return err
}
