// Package views holds the list screens of the yard system: for each entity
// the filters it accepts, the order in which lookups are tried and how rows
// are checked against the filters a lookup did not apply.
package views

import (
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

type Options struct {
	PageSize int
	Sort     resolver.Sort
	Logger   *zap.Logger
}

func newView[T models.Entity](schema resolver.Schema, r *resolver.Resolver[T], store resolver.Store[T], opts Options) *resolver.View[T] {
	r.WithLogger(opts.Logger)
	return resolver.NewView(schema, r,
		resolver.WithPageSize[T](opts.PageSize),
		resolver.WithSort[T](opts.Sort),
		resolver.WithStore[T](store))
}

// rule reports whether item satisfies the filter value of one field.
type rule[T any] func(item T, fs resolver.FilterSet, field string) bool

func textEq[T any](get func(T) string) rule[T] {
	return func(item T, fs resolver.FilterSet, field string) bool {
		return strings.EqualFold(strings.TrimSpace(get(item)), fs.String(field))
	}
}

func numberEq[T any](get func(T) int) rule[T] {
	return func(item T, fs resolver.FilterSet, field string) bool {
		n, ok := fs.Int(field)
		return ok && get(item) == n
	}
}

// dateFrom and dateTo are inclusive bounds on YYYY-MM-DD values, which
// order lexically. Rows without a date never satisfy a bound.
func dateFrom[T any](get func(T) string) rule[T] {
	return func(item T, fs resolver.FilterSet, field string) bool {
		d := get(item)
		return d != "" && d >= fs.String(field)
	}
}

func dateTo[T any](get func(T) string) rule[T] {
	return func(item T, fs resolver.FilterSet, field string) bool {
		d := get(item)
		return d != "" && d <= fs.String(field)
	}
}

func matcher[T any](rules map[string]rule[T]) resolver.Matcher[T] {
	return func(item T, field string, fs resolver.FilterSet) (bool, bool) {
		r, ok := rules[field]
		if !ok {
			return false, false
		}
		return r(item, fs, field), true
	}
}

func toQuery(fs resolver.FilterSet) url.Values {
	q := url.Values{}
	for _, f := range fs.Fields() {
		q.Set(f, fs.String(f))
	}
	return q
}

func pageQuery(fs resolver.FilterSet, req resolver.PageRequest) url.Values {
	q := toQuery(fs)
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("size", strconv.Itoa(req.Size))
	field := req.Sort.Field
	if field == "" && req.Sort.Desc {
		field = "id"
	}
	if field != "" {
		dir := "asc"
		if req.Sort.Desc {
			dir = "desc"
		}
		q.Set("sort", field+","+dir)
	}
	return q
}

func has(field string) func(resolver.FilterSet) bool {
	return func(fs resolver.FilterSet) bool { return fs.Has(field) }
}
