package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id int64) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, it *Item) error
	GetItem(ctx context.Context, id int64) (*Item, error)
	ListItems(ctx context.Context, categoryID *int64) ([]Item, error)
	UpdateItem(ctx context.Context, it *Item) error
	DeleteItem(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CategoryParams struct {
	Name   string `json:"name" validate:"required,max=255"`
	Budget int64  `json:"budget" validate:"gte=0"`
}

type ItemParams struct {
	Name       string `json:"name" validate:"required,max=255"`
	CategoryID int64  `json:"categoryId" validate:"gt=0"`
}

func (s *Service) CreateCategory(ctx context.Context, params CategoryParams) (*Category, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	c := &Category{Name: params.Name, Budget: params.Budget}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "category created", "id", c.ID, "name", c.Name)

	return c, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, params CategoryParams) (*Category, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = params.Name
	c.Budget = params.Budget

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// DeleteCategory removes the category together with its items and their
// transactions. Balance sheets are not adjusted for the removed rows.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	slog.WarnContext(ctx, "category deleted with cascade", "id", id)

	return nil
}

func (s *Service) CreateItem(ctx context.Context, params ItemParams) (*Item, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	it := &Item{Name: params.Name, CategoryID: params.CategoryID}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "item created", "id", it.ID, "name", it.Name, "category_id", it.CategoryID)

	return it, nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

// ListItems returns all items, or only those of one category.
func (s *Service) ListItems(ctx context.Context, categoryID *int64) ([]Item, error) {
	return s.repo.ListItems(ctx, categoryID)
}

func (s *Service) UpdateItem(ctx context.Context, id int64, params ItemParams) (*Item, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	it.Name = params.Name
	it.CategoryID = params.CategoryID

	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

// DeleteItem removes the item and its transactions. Balance sheets are not
// adjusted for the removed rows.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}

	slog.WarnContext(ctx, "item deleted with cascade", "id", id)

	return nil
}
