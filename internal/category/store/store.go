package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/rkap/internal/category"
	"github.com/MrJamesThe3rd/rkap/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, budget, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Budget).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	var c category.Category

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, budget, created_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Budget, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]category.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, budget, created_at FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []category.Category

	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Budget, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, budget = $2 WHERE id = $3`, c.Name, c.Budget, c.ID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return expectOne(res, category.ErrNotFound)
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return expectOne(res, category.ErrNotFound)
}

const selectItem = `
	SELECT i.id, i.name, i.category_id, c.name, i.created_at
	FROM items i
	JOIN categories c ON c.id = i.category_id
`

func (s *Store) CreateItem(ctx context.Context, it *category.Item) error {
	query := `
		INSERT INTO items (name, category_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, it.Name, it.CategoryID).Scan(&it.ID, &it.CreatedAt); err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return category.ErrNotFound
		}

		return fmt.Errorf("creating item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*category.Item, error) {
	var it category.Item

	err := s.db.QueryRowContext(ctx, selectItem+` WHERE i.id = $1`, id).
		Scan(&it.ID, &it.Name, &it.CategoryID, &it.CategoryName, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrItemNotFound
		}

		return nil, fmt.Errorf("getting item: %w", err)
	}

	return &it, nil
}

func (s *Store) ListItems(ctx context.Context, categoryID *int64) ([]category.Item, error) {
	query := selectItem

	var args []any

	if categoryID != nil {
		query += ` WHERE i.category_id = $1`

		args = append(args, *categoryID)
	}

	query += ` ORDER BY i.name, i.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var out []category.Item

	for rows.Next() {
		var it category.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CategoryID, &it.CategoryName, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		out = append(out, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateItem(ctx context.Context, it *category.Item) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET name = $1, category_id = $2 WHERE id = $3`, it.Name, it.CategoryID, it.ID)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return category.ErrNotFound
		}

		return fmt.Errorf("updating item: %w", err)
	}

	return expectOne(res, category.ErrItemNotFound)
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	return expectOne(res, category.ErrItemNotFound)
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
