// Package populate loads a fixed catalog of sample categories and pages so
// a fresh database has credible data to browse. Loading is idempotent:
// categories are matched by name and pages by (category, title), and the
// remaining fields are overwritten on every run.
package populate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"rango/internal/models"
)

// Page view counts are drawn uniformly from [MinViews, MaxViews].
const (
	MinViews = 10
	MaxViews = 100
)

// Categories is the category storage the populator writes through.
type Categories interface {
	Upsert(ctx context.Context, c *models.Category) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

// Pages is the page storage the populator writes through.
type Pages interface {
	Upsert(ctx context.Context, p *models.Page) (*models.Page, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Page, error)
}

// Populator loads a catalog into storage.
type Populator struct {
	categories Categories
	pages      Pages
	catalog    []CategorySeed
	rng        *rand.Rand
	out        io.Writer
}

// New returns a Populator for the default catalog. rng supplies page view
// counts; a nil rng uses a randomly seeded source. The report is written
// to out; a nil out discards it.
func New(categories Categories, pages Pages, rng *rand.Rand, out io.Writer) *Populator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if out == nil {
		out = io.Discard
	}
	return &Populator{
		categories: categories,
		pages:      pages,
		catalog:    DefaultCatalog(),
		rng:        rng,
		out:        out,
	}
}

// WithCatalog replaces the catalog to load.
func (p *Populator) WithCatalog(catalog []CategorySeed) *Populator {
	p.catalog = catalog
	return p
}

// Run upserts every category and page of the catalog, then reports each
// stored (category, page) pair. The first storage error aborts the run.
func (p *Populator) Run(ctx context.Context) error {
	var pageCount int
	for _, seed := range p.catalog {
		cat, err := p.categories.Upsert(ctx, &models.Category{
			Name:  seed.Name,
			Views: seed.Views,
			Likes: seed.Likes,
		})
		if err != nil {
			return fmt.Errorf("populate category %q: %w", seed.Name, err)
		}

		for _, ps := range seed.Pages {
			_, err := p.pages.Upsert(ctx, &models.Page{
				CategoryID: cat.ID,
				Title:      ps.Title,
				URL:        ps.URL,
				Views:      p.randomViews(),
			})
			if err != nil {
				return fmt.Errorf("populate page %q: %w", ps.Title, err)
			}
			pageCount++
		}
	}

	slog.Info("catalog loaded", "categories", len(p.catalog), "pages", pageCount)
	return p.report(ctx)
}

// randomViews returns a view count in [MinViews, MaxViews].
func (p *Populator) randomViews() int {
	return MinViews + p.rng.IntN(MaxViews-MinViews+1)
}

// report writes "- <category>: <page>" for every stored page.
func (p *Populator) report(ctx context.Context) error {
	cats, err := p.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("populate report: %w", err)
	}
	for _, c := range cats {
		pages, err := p.pages.ListByCategory(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("populate report: %w", err)
		}
		for _, pg := range pages {
			if _, err := fmt.Fprintf(p.out, "- %s: %s\n", c, pg); err != nil {
				return fmt.Errorf("populate report: %w", err)
			}
		}
	}
	return nil
}
