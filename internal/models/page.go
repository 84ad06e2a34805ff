// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Field limits for pages, counted in runes.
const (
	PageTitleMaxLength = 128
	PageURLMaxLength   = 200
)

// Page is a bookmarked web page. It always belongs to exactly one category;
// the (CategoryID, Title) pair identifies it.
type Page struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Views      int       `json:"views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Virtual field populated by joined store queries.
	CategoryName string `json:"category_name,omitempty"`
}

// String returns the page title.
func (p Page) String() string {
	return p.Title
}
