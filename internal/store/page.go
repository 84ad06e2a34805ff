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
)

// PageStore manages bookmarked pages in the database.
type PageStore struct {
	db *sql.DB
}

// NewPageStore returns a new PageStore.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, category_id, title, url, views, created_at, updated_at`

// scanPage scans a row into a Page struct.
func scanPage(scanner rowScanner) (*models.Page, error) {
	var p models.Page
	err := scanner.Scan(
		&p.ID, &p.CategoryID, &p.Title, &p.URL, &p.Views,
		timestamp{&p.CreatedAt}, timestamp{&p.UpdatedAt},
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts the page, or overwrites url and views of the existing page
// with the same category and title, in a single statement. Returns the
// stored row.
func (s *PageStore) Upsert(ctx context.Context, p *models.Page) (*models.Page, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, fmt.Errorf("upsert page: title is required")
	}
	if p.CategoryID == uuid.Nil {
		return nil, fmt.Errorf("upsert page %q: category is required", title)
	}
	if p.Views < 0 {
		return nil, fmt.Errorf("upsert page %q: views must not be negative", title)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO pages (id, category_id, title, url, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (category_id, title) DO UPDATE SET
			url = excluded.url,
			views = excluded.views,
			updated_at = excluded.updated_at
		RETURNING `+pageColumns,
		uuid.New(), p.CategoryID, title, p.URL, p.Views, now(),
	)
	result, err := scanPage(row)
	if err != nil {
		return nil, fmt.Errorf("upsert page %q: %w", title, err)
	}
	return result, nil
}

// FindByID retrieves a page by ID. Returns nil if not found.
func (s *PageStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = $1`, id)
	p, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// ListByCategory returns the pages of one category ordered by title.
func (s *PageStore) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Page, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE category_id = $1 ORDER BY title`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list pages by category: %w", err)
	}
	defer rows.Close()

	var items []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// MostViewed returns the n most viewed pages with their category names.
func (s *PageStore) MostViewed(ctx context.Context, n int) ([]models.Page, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.category_id, p.title, p.url, p.views, p.created_at, p.updated_at,
		       c.name
		FROM pages p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.views DESC, p.title
		LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("most viewed pages: %w", err)
	}
	defer rows.Close()

	var items []models.Page
	for rows.Next() {
		var p models.Page
		err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Title, &p.URL, &p.Views,
			timestamp{&p.CreatedAt}, timestamp{&p.UpdatedAt},
			&p.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// IncrementViews records one click-through on a page and returns the
// updated row. Returns nil if the page does not exist.
func (s *PageStore) IncrementViews(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE pages SET views = views + 1, updated_at = $1
		WHERE id = $2
		RETURNING `+pageColumns, now(), id)
	p, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("increment page views: %w", err)
	}
	return p, nil
}

// Count returns the number of stored pages.
func (s *PageStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}
