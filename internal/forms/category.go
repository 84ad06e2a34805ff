package forms

import (
	"net/url"
	"strings"

	"rango/internal/models"
	"rango/internal/slug"
)

// CategoryForm edits a category. Only the name is visible to users; views
// and likes are hidden and default to 0, and slug is a hidden field the
// caller may fill in. A supplied slug must already be well formed; the
// name must produce a non-empty slug.
type CategoryForm struct {
	Name  string `form:"name" validate:"required,runemax=128,slugable"`
	Views int    `form:"views" validate:"gte=0"`
	Likes int    `form:"likes" validate:"gte=0"`
	Slug  string `form:"slug" validate:"slugfield"`

	bindErrs FieldErrors
	errs     FieldErrors
}

// NewCategoryForm binds submitted values. A nil map yields a blank form
// with its initial values, suitable for rendering.
func NewCategoryForm(values url.Values) *CategoryForm {
	f := &CategoryForm{bindErrs: FieldErrors{}, errs: FieldErrors{}}
	if values == nil {
		return f
	}
	f.Name = strings.TrimSpace(values.Get("name"))
	f.Slug = strings.TrimSpace(values.Get("slug"))
	f.Views = intField(values, "views", 0, f.bindErrs)
	f.Likes = intField(values, "likes", 0, f.bindErrs)
	return f
}

// Validate implements Form.
func (f *CategoryForm) Validate() bool {
	f.errs = FieldErrors{}
	for field, msgs := range f.bindErrs {
		for _, m := range msgs {
			f.errs.Add(field, m)
		}
	}
	check(f, f.errs)
	return len(f.errs) == 0
}

// Errors implements Form.
func (f *CategoryForm) Errors() FieldErrors {
	return f.errs
}

// Category builds the record described by the cleaned form. The slug is
// derived from the name unless one was supplied.
func (f *CategoryForm) Category() *models.Category {
	s := f.Slug
	if s == "" {
		s = slug.Generate(f.Name)
	}
	return &models.Category{
		Name:  f.Name,
		Slug:  s,
		Views: f.Views,
		Likes: f.Likes,
	}
}

var _ Form = (*CategoryForm)(nil)
