// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rango/internal/models"
	"rango/internal/slug"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, views, likes, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner rowScanner) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Views, &c.Likes,
		timestamp{&c.CreatedAt}, timestamp{&c.UpdatedAt},
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert inserts the category, or overwrites slug, views and likes of the
// existing row with the same name, in a single statement. An empty slug is
// derived from the name. Returns the stored row.
func (s *CategoryStore) Upsert(ctx context.Context, c *models.Category) (*models.Category, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, fmt.Errorf("upsert category: name is required")
	}
	if c.Views < 0 || c.Likes < 0 {
		return nil, fmt.Errorf("upsert category %q: views and likes must not be negative", name)
	}
	catSlug := c.Slug
	if catSlug == "" {
		catSlug = slug.Generate(name)
	}
	if !slug.Valid(catSlug) {
		return nil, fmt.Errorf("upsert category %q: invalid slug %q", name, catSlug)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, slug, views, likes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (name) DO UPDATE SET
			slug = excluded.slug,
			views = excluded.views,
			likes = excluded.likes,
			updated_at = excluded.updated_at
		RETURNING `+categoryColumns,
		uuid.New(), name, catSlug, c.Views, c.Likes, now(),
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("upsert category %q: %w", name, err)
	}
	return result, nil
}

// FindByName retrieves a category by its exact name. Returns nil if not found.
func (s *CategoryStore) FindByName(ctx context.Context, name string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, catSlug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, catSlug)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	return s.query(ctx, "list categories",
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
}

// Top returns the n most liked categories.
func (s *CategoryStore) Top(ctx context.Context, n int) ([]models.Category, error) {
	return s.query(ctx, "top categories",
		`SELECT `+categoryColumns+` FROM categories ORDER BY likes DESC, name LIMIT $1`, n)
}

// Count returns the number of stored categories.
func (s *CategoryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (s *CategoryStore) query(ctx context.Context, op, q string, args ...any) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}
