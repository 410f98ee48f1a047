package report

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/rkap/internal/attachment"
	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	ListExpenses(ctx context.Context, rng Range, itemIDs []int64) ([]Expense, error)
	ListCategoryLines(ctx context.Context) ([]Line, error)
	ListItemLines(ctx context.Context, ids []int64) ([]Line, error)
	ListAttachments(ctx context.Context, rng Range) ([]Attachment, error)
}

// Files opens stored attachments by reference.
type Files interface {
	Open(ref string) (*os.File, error)
}

// Attachment is a transaction in range that carries a receipt.
type Attachment struct {
	TransactionID int64
	Date          time.Time
	Payee         string
	Amount        int64
	URL           string
}

type Service struct {
	repo  Repository
	files Files
}

func NewService(repo Repository, files Files) *Service {
	return &Service{repo: repo, files: files}
}

func validateRange(rng Range) error {
	if err := validation.Struct(rng); err != nil {
		return err
	}

	if rng.End.Before(rng.Start) {
		return validation.Field("endDate", "must not be before startDate")
	}

	return nil
}

// ByCategory reports spend per RKAP category against its budget.
func (s *Service) ByCategory(ctx context.Context, rng Range) (*Report, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}

	lines, err := s.repo.ListCategoryLines(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.ListExpenses(ctx, rng, nil)
	if err != nil {
		return nil, err
	}

	rep := Aggregate("Realization by category", rng, lines, expenses,
		func(e Expense) int64 { return e.CategoryID }, true)

	slog.InfoContext(ctx, "category report built", "rows", len(rep.Rows), "expenses", len(expenses))

	return rep, nil
}

// ByItem reports spend per item. An empty id list means every item.
func (s *Service) ByItem(ctx context.Context, rng Range, itemIDs []int64) (*Report, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}

	lines, err := s.repo.ListItemLines(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.ListExpenses(ctx, rng, itemIDs)
	if err != nil {
		return nil, err
	}

	rep := Aggregate("Realization by item", rng, lines, expenses,
		func(e Expense) int64 { return e.ItemID }, false)

	slog.InfoContext(ctx, "item report built", "rows", len(rep.Rows), "expenses", len(expenses))

	return rep, nil
}

// WriteAttachments zips the receipts of every transaction in range along
// with a summary.txt listing them. Missing files are listed but skipped.
func (s *Service) WriteAttachments(ctx context.Context, rng Range, w io.Writer) error {
	if err := validateRange(rng); err != nil {
		return err
	}

	atts, err := s.repo.ListAttachments(ctx, rng)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)

	files := make([]string, len(atts))

	for i, a := range atts {
		name, err := s.copyAttachment(zw, a)
		if err != nil {
			if errors.Is(err, attachment.ErrNotFound) || errors.Is(err, attachment.ErrInvalidName) {
				slog.WarnContext(ctx, "attachment missing from archive", "transaction_id", a.TransactionID, "ref", a.URL)
				continue
			}

			return err
		}

		files[i] = name
	}

	sw, err := zw.Create("summary.txt")
	if err != nil {
		return fmt.Errorf("creating summary: %w", err)
	}

	if _, err := io.WriteString(sw, Summary(atts, files)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

func (s *Service) copyAttachment(zw *zip.Writer, a Attachment) (string, error) {
	f, err := s.files.Open(a.URL)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := archiveName(a, filepath.Ext(f.Name()))

	zf, err := zw.Create(name)
	if err != nil {
		return "", fmt.Errorf("adding %s: %w", name, err)
	}

	if _, err := io.Copy(zf, f); err != nil {
		return "", fmt.Errorf("copying %s: %w", name, err)
	}

	return name, nil
}

// archiveName is YYYYMMDD_<id>_<payee>.<ext>.
func archiveName(a Attachment, ext string) string {
	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, a.Payee)

	return fmt.Sprintf("%s_%d_%s%s", a.Date.Format("20060102"), a.TransactionID, safe, ext)
}

// Summary lists attachments one per line; files holds the archived file
// name for each, empty when the file was missing.
func Summary(atts []Attachment, files []string) string {
	var sb strings.Builder

	for i, a := range atts {
		file := "missing"
		if i < len(files) && files[i] != "" {
			file = files[i]
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s\n", a.Date.Format(time.DateOnly), a.Payee, FormatAmount(a.Amount), file)
	}

	return sb.String()
}

// FormatAmount groups thousands with dots, e.g. -1.500.000.
func FormatAmount(v int64) string {
	sign := ""

	u := uint64(v)
	if v < 0 {
		sign = "-"
		u = uint64(-v)
	}

	digits := fmt.Sprintf("%d", u)

	var sb strings.Builder

	sb.WriteString(sign)

	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}

		sb.WriteRune(d)
	}

	return sb.String()
}
