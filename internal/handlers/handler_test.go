// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test gets its own migrated in-memory SQLite database. Cache tests
// are skipped when Valkey is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"rango/internal/cache"
	"rango/internal/config"
	"rango/internal/database"
	"rango/internal/populate"
	"rango/internal/render"
	"rango/internal/store"
)

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	DB         *sql.DB
	Categories *store.CategoryStore
	Pages      *store.PageStore
	PageCache  *cache.PageCache
	Site       *Site
	Router     chi.Router
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a fresh in-memory SQLite database and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(config.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db, config.DriverSQLite); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a client on DB 15. Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "rango:page:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

// newTestEnv wires the site handlers to a fresh database. pageCache may be nil.
func newTestEnv(t *testing.T, pageCache *cache.PageCache) *testEnv {
	t.Helper()

	db := testDB(t)
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		DB:         db,
		Categories: store.NewCategoryStore(db),
		Pages:      store.NewPageStore(db),
		PageCache:  pageCache,
	}
	env.Site = NewSite(env.Categories, env.Pages, renderer, pageCache)

	r := chi.NewRouter()
	r.Get("/", env.Site.Index)
	r.Get("/category/{slug}", env.Site.ShowCategory)
	r.Get("/add_category", env.Site.AddCategory)
	r.Post("/add_category", env.Site.AddCategory)
	r.Get("/category/{slug}/add_page", env.Site.AddPage)
	r.Post("/category/{slug}/add_page", env.Site.AddPage)
	r.Get("/goto/{id}", env.Site.Goto)
	env.Router = r

	return env
}

// seed loads the default catalog with a fixed random source.
func (env *testEnv) seed(t *testing.T) {
	t.Helper()
	p := populate.New(env.Categories, env.Pages, rand.New(rand.NewPCG(1, 2)), nil)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
}

func (env *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (env *testEnv) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}
