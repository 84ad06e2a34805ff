// Package forms binds submitted category and page data, applies the field
// constraints the schema imposes, and cleans values before they are saved.
//
// Field checks are declared as go-playground/validator tags. A form that
// passes them may run a clean step that normalizes values; cleaning never
// adds errors.
package forms

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"rango/internal/slug"
)

// Form is implemented by every record-editing form.
type Form interface {
	// Validate runs field checks followed by the clean step and reports
	// whether the form is acceptable.
	Validate() bool
	// Errors returns the messages collected by the last Validate call.
	Errors() FieldErrors
}

// FieldErrors maps a form field name to its error messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Get returns the first message for field, or "".
func (fe FieldErrors) Get(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the names of fields with errors, sorted.
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Messages used for field errors.
const (
	msgRequired    = "This field is required."
	msgWholeNumber = "Enter a whole number."
	msgInvalidURL  = "Enter a valid URL."
	msgNonNegative = "Ensure this value is greater than or equal to 0."
	msgNoSlug      = "Enter a name that contains at least one letter or number."
	msgInvalidSlug = "Enter a valid slug consisting of lowercase letters, numbers or hyphens."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the submitted field name rather than the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("runemax", runeMax))
	must(v.RegisterValidation("weburl", webURL))
	must(v.RegisterValidation("weburlmax", webURLMax))
	must(v.RegisterValidation("slugable", slugable))
	must(v.RegisterValidation("slugfield", slugField))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// runeMax limits a string to Param runes.
func runeMax(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(fl.Field().String()) <= limit
}

// webURL accepts values that form an absolute URL with a host once the
// default scheme is applied, so bare hosts such as "example.com" pass.
func webURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	if strings.ContainsAny(raw, " \t\r\n") {
		return false
	}
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || strings.Contains(strings.Trim(host, "."), ".")
}

// webURLMax limits the URL to Param runes after normalization, which is the
// value that gets stored.
func webURLMax(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(NormalizeURL(fl.Field().String())) <= limit
}

// slugable accepts values that yield a non-empty slug.
func slugable(fl validator.FieldLevel) bool {
	return slug.Generate(fl.Field().String()) != ""
}

// slugField accepts an empty value or a well-formed slug.
func slugField(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == "" || slug.Valid(v)
}

// check validates a bound form struct and translates validator failures
// into user-facing messages keyed by field name.
func check(form any, errs FieldErrors) {
	err := validate.Struct(form)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("__all__", err.Error())
		return
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "runemax", "weburlmax":
		value := fe.Value().(string)
		if fe.Tag() == "weburlmax" {
			value = NormalizeURL(value)
		}
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).",
			fe.Param(), utf8.RuneCountInString(value))
	case "weburl":
		return msgInvalidURL
	case "gte":
		return msgNonNegative
	case "slugable":
		return msgNoSlug
	case "slugfield":
		return msgInvalidSlug
	default:
		return fmt.Sprintf("Failed the %q check.", fe.Tag())
	}
}

// intField parses a hidden integer field. Absent or blank values take def;
// anything else must be a whole number.
func intField(values url.Values, name string, def int, errs FieldErrors) int {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(name, msgWholeNumber)
		return def
	}
	return n
}
