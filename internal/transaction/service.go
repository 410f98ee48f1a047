package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	Begin(ctx context.Context) (LedgerTx, error)
}

// LedgerTx is a single storage transaction. Every row write and balance
// delta of one ledger operation goes through the same LedgerTx so they
// commit or roll back together.
type LedgerTx interface {
	// LockTransaction loads a row and holds it until commit.
	LockTransaction(ctx context.Context, id int64) (*Transaction, error)
	ItemCategory(ctx context.Context, itemID int64) (int64, error)
	ImportCatalog(ctx context.Context) (*Catalog, error)

	InsertTransaction(ctx context.Context, tx *Transaction) error
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error

	// ApplyBalanceDelta adds delta to the sheet's balance as a relative
	// increment evaluated by the storage engine.
	ApplyBalanceDelta(ctx context.Context, balanceSheetID, delta int64) error

	Commit() error
	Rollback() error
}

// AttachmentRemover releases stored attachment files.
type AttachmentRemover interface {
	Remove(ctx context.Context, ref string) error
}

type Service struct {
	repo        Repository
	attachments AttachmentRemover
}

func NewService(repo Repository, attachments AttachmentRemover) *Service {
	return &Service{repo: repo, attachments: attachments}
}

type CreateParams struct {
	Date           time.Time `json:"date" validate:"required"`
	CategoryID     int64     `json:"categoryId" validate:"gte=0"`
	ItemID         int64     `json:"itemId" validate:"gt=0"`
	Payee          string    `json:"payee" validate:"required"`
	Amount         int64     `json:"amount" validate:"required,gt=-9223372036854775808"`
	BalanceSheetID *int64    `json:"balanceSheetId" validate:"omitempty,gt=0"`
	AttachmentURL  string    `json:"attachmentUrl"`

	// KeepAttachment makes Update retain the stored attachment and ignore
	// AttachmentURL.
	KeepAttachment bool `json:"-"`
}

func (p CreateParams) normalize() CreateParams {
	p.Payee = strings.TrimSpace(p.Payee)
	p.AttachmentURL = strings.TrimSpace(p.AttachmentURL)

	return p
}

type ListFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	BalanceSheetID *int64
	CategoryID     *int64
	ItemID         *int64
}

func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Create inserts a transaction and applies its amount to the referenced
// balance sheet in one storage transaction.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	params = params.normalize()
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	ltx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create: %w", err)
	}
	defer ltx.Rollback()

	tx, err := s.insert(ctx, ltx, params)
	if err != nil {
		return nil, err
	}

	if err := ltx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	slog.InfoContext(ctx, "transaction created",
		"id", tx.ID, "amount", tx.Amount, "balance_sheet_id", tx.BalanceSheetID)

	return tx, nil
}

// Update reverses the stored transaction's effect on its previous balance
// sheet, applies the new amount to the new sheet and overwrites the row.
// A replaced or cleared attachment is released after commit.
func (s *Service) Update(ctx context.Context, id int64, params CreateParams) (*Transaction, error) {
	params = params.normalize()
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	ltx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer ltx.Rollback()

	old, err := ltx.LockTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, ltx, params)
	if err != nil {
		return nil, err
	}

	// Reversal and re-application stay two increments even when the sheet
	// is unchanged.
	if err := applyEffect(ctx, ltx, old.BalanceSheetID, -old.Amount); err != nil {
		return nil, fmt.Errorf("reversing transaction %d: %w", id, err)
	}

	if err := applyEffect(ctx, ltx, params.BalanceSheetID, params.Amount); err != nil {
		return nil, fmt.Errorf("applying transaction %d: %w", id, err)
	}

	tx := toTransaction(params, categoryID)
	tx.ID = old.ID
	tx.CreatedAt = old.CreatedAt

	if params.KeepAttachment {
		tx.AttachmentURL = old.AttachmentURL
	}

	if err := ltx.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if err := ltx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	if old.AttachmentURL != "" && old.AttachmentURL != tx.AttachmentURL {
		s.releaseAttachment(ctx, old.AttachmentURL)
	}

	slog.InfoContext(ctx, "transaction updated",
		"id", tx.ID,
		"old_amount", old.Amount, "old_balance_sheet_id", old.BalanceSheetID,
		"amount", tx.Amount, "balance_sheet_id", tx.BalanceSheetID)

	return tx, nil
}

// Delete removes the given transactions, reversing each one's balance
// effect. A missing id aborts the whole batch. Attachments are released
// only after the batch commits.
func (s *Service) Delete(ctx context.Context, ids []int64) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return validation.Field("ids", "is required")
	}

	ltx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer ltx.Rollback()

	var attachments []string

	for _, id := range ids {
		old, err := ltx.LockTransaction(ctx, id)
		if err != nil {
			return err
		}

		if err := applyEffect(ctx, ltx, old.BalanceSheetID, -old.Amount); err != nil {
			return fmt.Errorf("reversing transaction %d: %w", id, err)
		}

		if err := ltx.DeleteTransaction(ctx, id); err != nil {
			return err
		}

		if old.AttachmentURL != "" {
			attachments = append(attachments, old.AttachmentURL)
		}
	}

	if err := ltx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	for _, ref := range attachments {
		s.releaseAttachment(ctx, ref)
	}

	slog.InfoContext(ctx, "transactions deleted", "count", len(ids))

	return nil
}

// Import reconciles loosely-typed rows against the current items and
// balance sheets and creates every acceptable row in one storage
// transaction. Rejected rows are reported, never returned as errors.
func (s *Service) Import(ctx context.Context, rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{SkippedRows: []SkippedRow{}}
	if len(rows) == 0 {
		return result, nil
	}

	ltx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer ltx.Rollback()

	catalog, err := ltx.ImportCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load import catalog: %w", err)
	}

	accepted, skipped := Reconcile(rows, catalog)

	for _, row := range accepted {
		if _, err := s.insert(ctx, ltx, row.Params); err != nil {
			return nil, fmt.Errorf("import line %d: %w", row.Line, err)
		}
	}

	if err := ltx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result.SuccessCount = len(accepted)
	result.SkippedRows = append(result.SkippedRows, skipped...)

	slog.InfoContext(ctx, "transactions imported",
		"rows", len(rows), "imported", result.SuccessCount, "skipped", len(skipped))

	return result, nil
}

func (s *Service) insert(ctx context.Context, ltx LedgerTx, params CreateParams) (*Transaction, error) {
	categoryID, err := s.resolveCategory(ctx, ltx, params)
	if err != nil {
		return nil, err
	}

	if err := applyEffect(ctx, ltx, params.BalanceSheetID, params.Amount); err != nil {
		return nil, fmt.Errorf("applying transaction: %w", err)
	}

	tx := toTransaction(params, categoryID)
	if err := ltx.InsertTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// resolveCategory returns the explicit category or falls back to the
// category owning the item.
func (s *Service) resolveCategory(ctx context.Context, ltx LedgerTx, params CreateParams) (int64, error) {
	if params.CategoryID != 0 {
		return params.CategoryID, nil
	}

	return ltx.ItemCategory(ctx, params.ItemID)
}

func (s *Service) releaseAttachment(ctx context.Context, ref string) {
	if s.attachments == nil {
		return
	}

	if err := s.attachments.Remove(ctx, ref); err != nil {
		slog.WarnContext(ctx, "failed to release attachment", "attachment", ref, "error", err)
	}
}

func applyEffect(ctx context.Context, ltx LedgerTx, balanceSheetID *int64, delta int64) error {
	if balanceSheetID == nil {
		return nil
	}

	return ltx.ApplyBalanceDelta(ctx, *balanceSheetID, delta)
}

func toTransaction(p CreateParams, categoryID int64) *Transaction {
	return &Transaction{
		Date:           p.Date,
		CategoryID:     categoryID,
		ItemID:         p.ItemID,
		Payee:          p.Payee,
		Amount:         p.Amount,
		BalanceSheetID: p.BalanceSheetID,
		AttachmentURL:  p.AttachmentURL,
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
