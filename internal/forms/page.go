package forms

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"rango/internal/models"
)

// DefaultScheme is prepended to submitted URLs that carry no scheme.
const DefaultScheme = "http://"

// recognizedSchemes are the prefixes NormalizeURL leaves alone.
var recognizedSchemes = []string{"http://", "https://", "ftp://", "ftps://"}

// NormalizeURL prepends DefaultScheme to a non-empty value that does not
// already start with a recognized scheme. Scheme matching ignores case.
func NormalizeURL(raw string) string {
	if raw == "" {
		return raw
	}
	lower := strings.ToLower(raw)
	for _, scheme := range recognizedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return raw
		}
	}
	return DefaultScheme + raw
}

// PageForm edits a page. The owning category is not part of the form;
// callers supply it when building the record.
type PageForm struct {
	Title string `form:"title" validate:"required,runemax=128"`
	URL   string `form:"url" validate:"required,weburlmax=200,weburl"`
	Views int    `form:"views" validate:"gte=0"`

	bindErrs FieldErrors
	errs     FieldErrors
}

// NewPageForm binds submitted values. A nil map yields a blank form with
// its initial values.
func NewPageForm(values url.Values) *PageForm {
	f := &PageForm{bindErrs: FieldErrors{}, errs: FieldErrors{}}
	if values == nil {
		return f
	}
	f.Title = strings.TrimSpace(values.Get("title"))
	f.URL = strings.TrimSpace(values.Get("url"))
	f.Views = intField(values, "views", 0, f.bindErrs)
	return f
}

// Validate implements Form. When every field check passes the URL is
// normalized in place.
func (f *PageForm) Validate() bool {
	f.errs = FieldErrors{}
	for field, msgs := range f.bindErrs {
		for _, m := range msgs {
			f.errs.Add(field, m)
		}
	}
	check(f, f.errs)
	if len(f.errs) > 0 {
		return false
	}
	f.clean()
	return true
}

// clean runs after field checks pass. It only rewrites values.
func (f *PageForm) clean() {
	f.URL = NormalizeURL(f.URL)
}

// Errors implements Form.
func (f *PageForm) Errors() FieldErrors {
	return f.errs
}

// Page builds the record described by the cleaned form, owned by
// categoryID.
func (f *PageForm) Page(categoryID uuid.UUID) *models.Page {
	return &models.Page{
		CategoryID: categoryID,
		Title:      f.Title,
		URL:        f.URL,
		Views:      f.Views,
	}
}

var _ Form = (*PageForm)(nil)
