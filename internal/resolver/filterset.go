package resolver

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

// FilterSet maps a field name to the value the user typed for it.
// A normalized FilterSet only holds string and int values, and every
// present field carries a non-empty value.
type FilterSet map[string]any

// Has reports whether field is populated.
func (fs FilterSet) Has(field string) bool {
	_, ok := fs[field]
	return ok
}

// String returns the value of field as text, or "" when absent.
func (fs FilterSet) String(field string) string {
	switch v := fs[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the value of field when it holds a number.
func (fs FilterSet) Int(field string) (int, bool) {
	switch v := fs[field].(type) {
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}

// Fields returns the populated field names in lexical order.
func (fs FilterSet) Fields() []string {
	return slices.Sorted(maps.Keys(fs))
}

// Without returns a copy of fs with fields removed.
func (fs FilterSet) Without(fields ...string) FilterSet {
	out := maps.Clone(fs)
	if out == nil {
		out = FilterSet{}
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

func (fs FilterSet) Clone() FilterSet {
	return fs.Without()
}

// Kind tells Normalize how to clean up a field.
type Kind int

const (
	// Text is trimmed.
	Text Kind = iota
	// Digits holds a masked identifier (CPF, phone, zip code). Every
	// non-digit is stripped so the display mask never reaches the backend.
	Digits
	// Number is parsed as an integer; non-numeric input is dropped.
	Number
	// Date must use the YYYY-MM-DD layout.
	Date
	// Enum only keeps values from Field.Values, matched case-insensitively.
	Enum
)

type Field struct {
	Kind   Kind
	Values []string
}

// Schema lists the fields a view accepts.
type Schema map[string]Field

// DateLayout is the layout of every Date field.
const DateLayout = time.DateOnly

// Normalize returns the FilterSet that is actually sent: fields outside the
// schema and empty values are dropped, masks are stripped and enum values
// take their canonical spelling. A malformed date rejects the whole
// submission with an *InvalidInputError. Normalize(Normalize(x)) == Normalize(x).
func Normalize(schema Schema, in FilterSet) (FilterSet, error) {
	out := FilterSet{}
	invalid := map[string][]string{}

	for name, raw := range in {
		field, ok := schema[name]
		if !ok || raw == nil {
			continue
		}
		text := strings.TrimSpace(in.String(name))

		switch field.Kind {
		case Text:
			if text != "" {
				out[name] = text
			}
		case Digits:
			if digits := models.Digits(text); digits != "" {
				out[name] = digits
			}
		case Number:
			if n, err := strconv.Atoi(text); err == nil {
				out[name] = n
			}
		case Date:
			if text == "" {
				continue
			}
			if _, err := time.Parse(DateLayout, text); err != nil {
				invalid[name] = append(invalid[name], "must be a date formatted as YYYY-MM-DD")
				continue
			}
			out[name] = text
		case Enum:
			for _, allowed := range field.Values {
				if strings.EqualFold(allowed, text) {
					out[name] = allowed
					break
				}
			}
		}
	}

	if len(invalid) > 0 {
		return nil, &InvalidInputError{Fields: invalid}
	}
	return out, nil
}
