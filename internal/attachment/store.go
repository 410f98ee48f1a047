// Package attachment keeps transaction receipts on local disk.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path stored in transaction rows.
const URLPrefix = "/api/v1/attachments/"

var (
	ErrNotFound    = errors.New("attachment not found")
	ErrInvalidName = errors.New("invalid attachment name")
)

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating attachment directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Save writes r under a fresh random name that keeps the original
// extension and returns its reference URL.
func (s *Store) Save(ctx context.Context, r io.Reader, filename string) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating attachment: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())

		return "", fmt.Errorf("writing attachment: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing attachment: %w", err)
	}

	slog.InfoContext(ctx, "attachment saved", "name", name, "original", filename)

	return URLPrefix + name, nil
}

// Open returns the stored file for a reference URL or bare name.
func (s *Store) Open(ref string) (*os.File, error) {
	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("opening attachment: %w", err)
	}

	return f, nil
}

// Remove deletes the stored file. A missing file is reported as ErrNotFound.
func (s *Store) Remove(ctx context.Context, ref string) error {
	path, err := s.path(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", ref, ErrNotFound)
		}

		return fmt.Errorf("removing attachment: %w", err)
	}

	slog.InfoContext(ctx, "attachment removed", "ref", ref)

	return nil
}

// Name extracts the stored file name from a reference URL.
func Name(ref string) string {
	return strings.TrimPrefix(strings.TrimSpace(ref), URLPrefix)
}

func (s *Store) path(ref string) (string, error) {
	name := Name(ref)

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if _, err := uuid.Parse(stem); err != nil || name != filepath.Base(name) {
		return "", fmt.Errorf("%q: %w", ref, ErrInvalidName)
	}

	return filepath.Join(s.dir, name), nil
}
