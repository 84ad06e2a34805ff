// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the site. Every page
// template defines a "content" block that is rendered inside base.html.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"rango/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const baseTemplate = "base.html"

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	templates map[string]*template.Template
}

var funcMap = template.FuncMap{
	// plural formats a count with a singular or plural noun.
	"plural": func(n int, singular, plural string) string {
		if n == 1 {
			return "1 " + singular
		}
		return strconv.Itoa(n) + " " + plural
	},
}

// New parses every page template from the embedded filesystem, each paired
// with the base layout.
func New() (*Renderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == baseTemplate || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(funcMap).ParseFS(
			templateFS, "templates/"+baseTemplate, "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}
	return r, nil
}

// Render executes the named page into a buffer. The result is suitable for
// caching because it carries no per-request CSRF token unless data does.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, baseTemplate, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a full page with the given status. The CSRF token is taken
// from the request context.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	body, err := rn.Render(name, data)
	if err != nil {
		slog.Error("render page failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	Write(w, status, body)
}

// Write sends pre-rendered HTML.
func Write(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
