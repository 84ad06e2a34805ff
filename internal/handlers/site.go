// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rango/internal/cache"
	"rango/internal/forms"
	"rango/internal/models"
	"rango/internal/render"
	"rango/internal/store"
)

// topN is how many categories and pages the index lists.
const topN = 5

const (
	msgNameTaken = "Category with this Name already exists."
	msgSlugTaken = "Category with this Slug already exists."
)

// Site groups the handlers for the public site. Rendered index and
// category pages are kept in the Valkey page cache when one is configured.
type Site struct {
	categories *store.CategoryStore
	pages      *store.PageStore
	renderer   *render.Renderer
	pageCache  *cache.PageCache
}

// NewSite creates a new Site handler group. pageCache may be nil.
func NewSite(categories *store.CategoryStore, pages *store.PageStore, renderer *render.Renderer, pageCache *cache.PageCache) *Site {
	return &Site{
		categories: categories,
		pages:      pages,
		renderer:   renderer,
		pageCache:  pageCache,
	}
}

// Index lists the most liked categories and the most viewed pages.
func (s *Site) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := s.pageCache.Get(ctx, cache.IndexKey()); ok {
		render.Write(w, http.StatusOK, cached)
		return
	}

	categories, err := s.categories.Top(ctx, topN)
	if err != nil {
		serverError(w, "list top categories failed", err)
		return
	}
	pages, err := s.pages.MostViewed(ctx, topN)
	if err != nil {
		serverError(w, "list most viewed pages failed", err)
		return
	}

	s.renderCached(w, r, cache.IndexKey(), "index", &render.PageData{
		Title: "Home",
		Data: map[string]any{
			"Categories": categories,
			"Pages":      pages,
		},
	})
}

// ShowCategory lists the pages of the category named by the slug.
func (s *Site) ShowCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catSlug := chi.URLParam(r, "slug")
	key := cache.CategoryKey(catSlug)

	if cached, ok := s.pageCache.Get(ctx, key); ok {
		render.Write(w, http.StatusOK, cached)
		return
	}

	category, ok := s.categoryFromSlug(w, r)
	if !ok {
		return
	}
	pages, err := s.pages.ListByCategory(ctx, category.ID)
	if err != nil {
		serverError(w, "list category pages failed", err)
		return
	}

	s.renderCached(w, r, key, "category", &render.PageData{
		Title: category.Name,
		Data: map[string]any{
			"Category": category,
			"Pages":    pages,
		},
	})
}

// AddCategory shows the category form and saves valid submissions.
func (s *Site) AddCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.categoryForm(w, r, forms.NewCategoryForm(nil))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	form := forms.NewCategoryForm(r.PostForm)
	if !form.Validate() {
		s.categoryForm(w, r, form)
		return
	}

	category := form.Category()
	taken, err := s.categories.FindByName(ctx, category.Name)
	if err != nil {
		serverError(w, "check category name failed", err)
		return
	}
	if taken != nil {
		form.Errors().Add("name", msgNameTaken)
		s.categoryForm(w, r, form)
		return
	}
	taken, err = s.categories.FindBySlug(ctx, category.Slug)
	if err != nil {
		serverError(w, "check category slug failed", err)
		return
	}
	if taken != nil {
		form.Errors().Add("name", msgSlugTaken)
		s.categoryForm(w, r, form)
		return
	}

	saved, err := s.categories.Upsert(ctx, category)
	if err != nil {
		serverError(w, "save category failed", err)
		return
	}
	slog.Info("category saved", "id", saved.ID, "name", saved.Name, "slug", saved.Slug)

	s.pageCache.Invalidate(ctx, cache.IndexKey(), cache.CategoryKey(saved.Slug))
	http.Redirect(w, r, "/", http.StatusFound)
}

// AddPage shows the page form for a category and saves valid submissions.
func (s *Site) AddPage(w http.ResponseWriter, r *http.Request) {
	category, ok := s.categoryFromSlug(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		s.pageForm(w, r, category, forms.NewPageForm(nil))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	form := forms.NewPageForm(r.PostForm)
	if !form.Validate() {
		s.pageForm(w, r, category, form)
		return
	}

	saved, err := s.pages.Upsert(ctx, form.Page(category.ID))
	if err != nil {
		serverError(w, "save page failed", err)
		return
	}
	slog.Info("page saved", "id", saved.ID, "category", category.Name, "title", saved.Title)

	s.pageCache.Invalidate(ctx, cache.IndexKey(), cache.CategoryKey(category.Slug))
	http.Redirect(w, r, "/category/"+category.Slug, http.StatusFound)
}

// Goto counts a click-through and redirects to the page's URL.
func (s *Site) Goto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	page, err := s.pages.IncrementViews(ctx, id)
	if err != nil {
		serverError(w, "increment page views failed", err)
		return
	}
	if page == nil {
		http.NotFound(w, r)
		return
	}

	keys := []string{cache.IndexKey()}
	if category, err := s.categories.FindByID(ctx, page.CategoryID); err != nil {
		slog.Warn("lookup page category failed", "page_id", page.ID, "error", err)
	} else if category != nil {
		keys = append(keys, cache.CategoryKey(category.Slug))
	}
	s.pageCache.Invalidate(ctx, keys...)

	http.Redirect(w, r, page.URL, http.StatusFound)
}

// categoryFromSlug loads the category named by the {slug} URL parameter.
// It writes a 404 or 500 and returns false when the category is unusable.
func (s *Site) categoryFromSlug(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	category, err := s.categories.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, "find category failed", err)
		return nil, false
	}
	if category == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return category, true
}

func (s *Site) categoryForm(w http.ResponseWriter, r *http.Request, form *forms.CategoryForm) {
	s.renderer.Page(w, r, http.StatusOK, "add_category", &render.PageData{
		Title: "Add a Category",
		Data: map[string]any{
			"Form":    form,
			"NameMax": models.CategoryNameMaxLength,
		},
	})
}

func (s *Site) pageForm(w http.ResponseWriter, r *http.Request, category *models.Category, form *forms.PageForm) {
	s.renderer.Page(w, r, http.StatusOK, "add_page", &render.PageData{
		Title: "Add a Page",
		Data: map[string]any{
			"Form":     form,
			"Category": category,
			"TitleMax": models.PageTitleMaxLength,
			"URLMax":   models.PageURLMaxLength,
		},
	})
}

// renderCached renders a page without a CSRF token, stores it under key
// and writes it.
func (s *Site) renderCached(w http.ResponseWriter, r *http.Request, key, name string, data *render.PageData) {
	body, err := s.renderer.Render(name, data)
	if err != nil {
		serverError(w, "render page failed", err)
		return
	}
	s.pageCache.Set(r.Context(), key, body)
	render.Write(w, http.StatusOK, body)
}

func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
