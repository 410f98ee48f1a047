package balancesheet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=balancesheet
type Repository interface {
	CreateBalanceSheet(ctx context.Context, bs *BalanceSheet) error
	GetBalanceSheet(ctx context.Context, id int64) (*BalanceSheet, error)
	ListBalanceSheets(ctx context.Context) ([]BalanceSheet, error)
	// DeleteBalanceSheets removes every id or none of them.
	DeleteBalanceSheets(ctx context.Context, ids []int64) error
	ListDrift(ctx context.Context) ([]Drift, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string `json:"name" validate:"required,max=255"`
	Balance int64  `json:"balance"`
}

// Create opens a sheet whose balance starts at the given amount.
func (s *Service) Create(ctx context.Context, params CreateParams) (*BalanceSheet, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	bs := &BalanceSheet{
		Name:           params.Name,
		InitialBalance: params.Balance,
		Balance:        params.Balance,
	}

	if err := s.repo.CreateBalanceSheet(ctx, bs); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "balance sheet created", "id", bs.ID, "name", bs.Name, "balance", bs.Balance)

	return bs, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*BalanceSheet, error) {
	return s.repo.GetBalanceSheet(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]BalanceSheet, error) {
	return s.repo.ListBalanceSheets(ctx)
}

// Summary lists the sheets in presentation order.
func (s *Service) Summary(ctx context.Context) ([]BalanceSheet, error) {
	sheets, err := s.repo.ListBalanceSheets(ctx)
	if err != nil {
		return nil, err
	}

	return Order(sheets), nil
}

// Delete removes sheets. Transactions that referenced them keep their rows
// with no sheet.
func (s *Service) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return validation.Field("ids", "is required")
	}

	if err := s.repo.DeleteBalanceSheets(ctx, ids); err != nil {
		return err
	}

	slog.InfoContext(ctx, "balance sheets deleted", "ids", ids)

	return nil
}

// Check returns every sheet whose balance differs from its opening balance
// plus the sum of its transactions. It never repairs anything.
func (s *Service) Check(ctx context.Context) ([]Drift, error) {
	return s.repo.ListDrift(ctx)
}
