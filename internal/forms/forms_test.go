package forms

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"rango/internal/models"
	"rango/internal/slug"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare host", "example.com", "http://example.com"},
		{"bare host with path", "www.djangorocks.com/", "http://www.djangorocks.com/"},
		{"http kept", "http://example.com", "http://example.com"},
		{"https kept", "https://docs.djangoproject.com/", "https://docs.djangoproject.com/"},
		{"ftp kept", "ftp://files.example.com", "ftp://files.example.com"},
		{"uppercase scheme kept", "HTTP://EXAMPLE.COM", "HTTP://EXAMPLE.COM"},
		{"empty untouched", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.input); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPageForm(t *testing.T) {
	tests := []struct {
		name       string
		values     url.Values
		wantValid  bool
		wantURL    string
		wantErrors []string
	}{
		{
			name:      "bare url gets default scheme",
			values:    url.Values{"title": {"Example"}, "url": {"example.com"}},
			wantValid: true,
			wantURL:   "http://example.com",
		},
		{
			name:      "url with scheme unchanged",
			values:    url.Values{"title": {"Example"}, "url": {"http://example.com"}},
			wantValid: true,
			wantURL:   "http://example.com",
		},
		{
			name:      "https not doubled",
			values:    url.Values{"title": {"Docs"}, "url": {"https://docs.djangoproject.com/en/2.1/intro/tutorial01/"}},
			wantValid: true,
			wantURL:   "https://docs.djangoproject.com/en/2.1/intro/tutorial01/",
		},
		{
			name:      "surrounding whitespace trimmed",
			values:    url.Values{"title": {"  Flask  "}, "url": {"  flask.pocoo.org  "}},
			wantValid: true,
			wantURL:   "http://flask.pocoo.org",
		},
		{
			name:       "empty url required",
			values:     url.Values{"title": {"Example"}, "url": {""}},
			wantErrors: []string{"url"},
		},
		{
			name:       "missing url required",
			values:     url.Values{"title": {"Example"}},
			wantErrors: []string{"url"},
		},
		{
			name:       "empty title required",
			values:     url.Values{"title": {"   "}, "url": {"example.com"}},
			wantErrors: []string{"title"},
		},
		{
			name:       "title too long",
			values:     url.Values{"title": {strings.Repeat("a", models.PageTitleMaxLength+1)}, "url": {"example.com"}},
			wantErrors: []string{"title"},
		},
		{
			name:       "url too long once normalized",
			values:     url.Values{"title": {"Long"}, "url": {"example.com/" + strings.Repeat("a", models.PageURLMaxLength-len("example.com/")-3)}},
			wantErrors: []string{"url"},
		},
		{
			name:       "not url shaped",
			values:     url.Values{"title": {"Bad"}, "url": {"not a url"}},
			wantErrors: []string{"url"},
		},
		{
			name:       "host without dot",
			values:     url.Values{"title": {"Bad"}, "url": {"nodot"}},
			wantErrors: []string{"url"},
		},
		{
			name:       "views not a number",
			values:     url.Values{"title": {"Example"}, "url": {"example.com"}, "views": {"many"}},
			wantErrors: []string{"views"},
		},
		{
			name:       "negative views",
			values:     url.Values{"title": {"Example"}, "url": {"example.com"}, "views": {"-1"}},
			wantErrors: []string{"views"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPageForm(tt.values)
			valid := f.Validate()
			if valid != (len(tt.wantErrors) == 0) {
				t.Fatalf("Validate() = %v, errors: %v", valid, f.Errors())
			}
			if valid && f.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", f.URL, tt.wantURL)
			}
			got := f.Errors().Fields()
			if strings.Join(got, ",") != strings.Join(tt.wantErrors, ",") {
				t.Errorf("error fields = %v, want %v", got, tt.wantErrors)
			}
		})
	}
}

// TestPageFormLeavesInvalidURLAlone verifies that the clean step only runs
// after field checks pass.
func TestPageFormLeavesInvalidURLAlone(t *testing.T) {
	f := NewPageForm(url.Values{"title": {""}, "url": {"example.com"}})
	if f.Validate() {
		t.Fatal("expected invalid form")
	}
	if f.URL != "example.com" {
		t.Errorf("URL = %q, want it untouched", f.URL)
	}
}

func TestPageFormMessages(t *testing.T) {
	f := NewPageForm(url.Values{"title": {strings.Repeat("x", 130)}, "url": {""}})
	f.Validate()

	if got := f.Errors().Get("url"); got != "This field is required." {
		t.Errorf("url error = %q", got)
	}
	want := "Ensure this value has at most 128 characters (it has 130)."
	if got := f.Errors().Get("title"); got != want {
		t.Errorf("title error = %q, want %q", got, want)
	}

	f = NewPageForm(url.Values{"title": {"T"}, "url": {"not a url"}})
	f.Validate()
	if got := f.Errors().Get("url"); got != "Enter a valid URL." {
		t.Errorf("url error = %q", got)
	}
}

func TestPageFormDefaultsAndRecord(t *testing.T) {
	f := NewPageForm(url.Values{"title": {"Bottle"}, "url": {"bottlepy.org/docs/dev/"}})
	if !f.Validate() {
		t.Fatalf("Validate: %v", f.Errors())
	}
	if f.Views != 0 {
		t.Errorf("Views = %d, want default 0", f.Views)
	}

	catID := uuid.New()
	p := f.Page(catID)
	if p.CategoryID != catID {
		t.Errorf("CategoryID = %s, want %s", p.CategoryID, catID)
	}
	if p.URL != "http://bottlepy.org/docs/dev/" || p.Title != "Bottle" {
		t.Errorf("record = %+v", p)
	}
}

// TestPageFormIgnoresCategoryField verifies the owning category cannot be
// set through submitted data.
func TestPageFormIgnoresCategoryField(t *testing.T) {
	f := NewPageForm(url.Values{"title": {"T"}, "url": {"x.com"}, "category": {uuid.NewString()}})
	if !f.Validate() {
		t.Fatalf("Validate: %v", f.Errors())
	}
	if p := f.Page(uuid.Nil); p.CategoryID != uuid.Nil {
		t.Errorf("CategoryID = %s, want caller-supplied value", p.CategoryID)
	}
}

func TestCategoryForm(t *testing.T) {
	tests := []struct {
		name       string
		values     url.Values
		wantErrors []string
	}{
		{"valid with defaults", url.Values{"name": {"Python"}}, nil},
		{"valid at max length", url.Values{"name": {strings.Repeat("a", models.CategoryNameMaxLength)}}, nil},
		{"explicit zero hidden fields", url.Values{"name": {"Go"}, "views": {"0"}, "likes": {"0"}}, nil},
		{"name too long", url.Values{"name": {strings.Repeat("a", models.CategoryNameMaxLength+1)}}, []string{"name"}},
		{"multibyte within limit", url.Values{"name": {strings.Repeat("é", models.CategoryNameMaxLength)}}, nil},
		{"empty name", url.Values{"name": {""}}, []string{"name"}},
		{"whitespace name", url.Values{"name": {"   "}}, []string{"name"}},
		{"views not a number", url.Values{"name": {"Go"}, "views": {"1.5"}}, []string{"views"}},
		{"negative likes", url.Values{"name": {"Go"}, "likes": {"-3"}}, []string{"likes"}},
		{"punctuation only name", url.Values{"name": {"!!!"}}, []string{"name"}},
		{"explicit slug", url.Values{"name": {"Go"}, "slug": {"go-lang"}}, nil},
		{"malformed slug", url.Values{"name": {"Go"}, "slug": {"Not A/Slug"}}, []string{"slug"}},
		{"slug too long", url.Values{"name": {"Go"}, "slug": {strings.Repeat("a", slug.MaxLength+1)}}, []string{"slug"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewCategoryForm(tt.values)
			valid := f.Validate()
			if valid != (len(tt.wantErrors) == 0) {
				t.Fatalf("Validate() = %v, errors: %v", valid, f.Errors())
			}
			got := f.Errors().Fields()
			if strings.Join(got, ",") != strings.Join(tt.wantErrors, ",") {
				t.Errorf("error fields = %v, want %v", got, tt.wantErrors)
			}
		})
	}
}

func TestCategoryFormRecord(t *testing.T) {
	f := NewCategoryForm(url.Values{"name": {" Other Frameworks "}})
	if !f.Validate() {
		t.Fatalf("Validate: %v", f.Errors())
	}
	c := f.Category()
	if c.Name != "Other Frameworks" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.Slug != "other-frameworks" {
		t.Errorf("Slug = %q, want derived slug", c.Slug)
	}
	if c.Views != 0 || c.Likes != 0 {
		t.Errorf("Views/Likes = %d/%d, want 0/0", c.Views, c.Likes)
	}

	f = NewCategoryForm(url.Values{"name": {"Django"}, "slug": {"django-web"}, "views": {"64"}, "likes": {"32"}})
	if !f.Validate() {
		t.Fatalf("Validate: %v", f.Errors())
	}
	c = f.Category()
	if c.Slug != "django-web" || c.Views != 64 || c.Likes != 32 {
		t.Errorf("record = %+v", c)
	}
}

func TestBlankForms(t *testing.T) {
	var forms = []Form{NewCategoryForm(nil), NewPageForm(nil)}
	for _, f := range forms {
		if f.Validate() {
			t.Errorf("%T: blank form should not validate", f)
		}
		if len(f.Errors()) == 0 {
			t.Errorf("%T: expected required-field errors", f)
		}
	}
}

func TestCategoryFormMessagesForSlugs(t *testing.T) {
	f := NewCategoryForm(url.Values{"name": {"???"}, "slug": {"Bad Slug"}})
	if f.Validate() {
		t.Fatal("expected validation to fail")
	}
	if got := f.Errors().Get("name"); got != msgNoSlug {
		t.Errorf("name error = %q, want %q", got, msgNoSlug)
	}
	if got := f.Errors().Get("slug"); got != msgInvalidSlug {
		t.Errorf("slug error = %q, want %q", got, msgInvalidSlug)
	}
}

// tagParam returns the parameter of rule in the validate tag of field.
func tagParam(t *testing.T, form any, field, rule string) int {
	t.Helper()
	sf, ok := reflect.TypeOf(form).Elem().FieldByName(field)
	if !ok {
		t.Fatalf("%T has no field %s", form, field)
	}
	for _, r := range strings.Split(sf.Tag.Get("validate"), ",") {
		name, param, found := strings.Cut(r, "=")
		if name == rule && found {
			n, err := strconv.Atoi(param)
			if err != nil {
				t.Fatalf("%s.%s: bad %s param %q", reflect.TypeOf(form).Elem().Name(), field, rule, param)
			}
			return n
		}
	}
	t.Fatalf("%s.%s: no %s rule", reflect.TypeOf(form).Elem().Name(), field, rule)
	return 0
}

// TestTagLimitsMatchModels keeps the validate tags in step with the
// column limits declared on the models.
func TestTagLimitsMatchModels(t *testing.T) {
	tests := []struct {
		form  any
		field string
		rule  string
		want  int
	}{
		{&CategoryForm{}, "Name", "runemax", models.CategoryNameMaxLength},
		{&PageForm{}, "Title", "runemax", models.PageTitleMaxLength},
		{&PageForm{}, "URL", "weburlmax", models.PageURLMaxLength},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := tagParam(t, tt.form, tt.field, tt.rule); got != tt.want {
				t.Errorf("%s=%d, want %d", tt.rule, got, tt.want)
			}
		})
	}
}
