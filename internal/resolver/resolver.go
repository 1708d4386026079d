package resolver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

const DefaultPageSize = 10

var ErrNoStrategy = errors.New("no lookup strategy applies")

type Sort struct {
	Field string
	Desc  bool
}

// PageRequest asks for the zero-based page Page of Size rows.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

func (p PageRequest) normalized() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	return p
}

// Strategy is one way of answering a FilterSet. Exactly one of List and
// Lookup is set: List is a paged endpoint that receives every filter,
// Lookup returns an unpaged slice and leaves every field it does not
// consume to the post-filter.
type Strategy[T models.Entity] struct {
	Name     string
	Consumes []string
	Applies  func(FilterSet) bool
	List     func(ctx context.Context, fs FilterSet, req PageRequest) (models.Page[T], error)
	Lookup   func(ctx context.Context, fs FilterSet) ([]T, error)
}

// Always is the predicate of a catch-all strategy.
func Always(FilterSet) bool { return true }

// Matcher reports whether item satisfies the filter on field. known is false
// for fields the matcher cannot evaluate; those never reject a row.
type Matcher[T any] func(item T, field string, fs FilterSet) (matched, known bool)

// Resolver picks the first applicable strategy for a FilterSet and turns its
// answer into a page.
type Resolver[T models.Entity] struct {
	entity     string
	match      Matcher[T]
	strategies []Strategy[T]
	logger     *zap.Logger
}

func New[T models.Entity](entity string, match Matcher[T], strategies ...Strategy[T]) *Resolver[T] {
	return &Resolver[T]{
		entity:     entity,
		match:      match,
		strategies: strategies,
		logger:     zap.NewNop(),
	}
}

func (r *Resolver[T]) WithLogger(logger *zap.Logger) *Resolver[T] {
	if logger != nil {
		r.logger = logger.With(zap.String("entity", r.entity))
	}
	return r
}

// Pick returns the first strategy whose predicate holds for fs.
func (r *Resolver[T]) Pick(fs FilterSet) (Strategy[T], bool) {
	for _, s := range r.strategies {
		if s.Applies == nil || s.Applies(fs) {
			return s, true
		}
	}
	return Strategy[T]{}, false
}

// Resolve answers fs with one page of rows. fs must already be normalized.
func (r *Resolver[T]) Resolve(ctx context.Context, fs FilterSet, req PageRequest) (models.Page[T], error) {
	req = req.normalized()

	s, ok := r.Pick(fs)
	if !ok {
		return models.Page[T]{}, ErrNoStrategy
	}
	r.logger.Debug("strategy selected",
		zap.String("strategy", s.Name),
		zap.Strings("filters", fs.Fields()),
		zap.Int("page", req.Page))

	if s.List != nil {
		page, err := s.List(ctx, fs, req)
		if err != nil {
			return models.Page[T]{}, fmt.Errorf("%s: %w", s.Name, err)
		}
		return page, nil
	}
	if s.Lookup == nil {
		return models.Page[T]{}, fmt.Errorf("%s: strategy has no endpoint", s.Name)
	}

	rows, err := s.Lookup(ctx, fs)
	if err != nil {
		return models.Page[T]{}, fmt.Errorf("%s: %w", s.Name, err)
	}

	remaining := fs.Without(s.Consumes...)
	res := postFilter(rows, remaining, r.match)
	if len(res.unknown) > 0 {
		r.logger.Debug("filters not checked locally", zap.Strings("fields", res.unknown))
	}

	var foundBy []string
	for _, f := range s.Consumes {
		if fs.Has(f) {
			foundBy = append(foundBy, f)
		}
	}
	if len(foundBy) > 0 && len(rows) > 0 && len(res.kept) == 0 && len(res.rejectedBy) > 0 {
		return models.Page[T]{}, &MismatchError{
			Entity:     r.entity,
			FoundBy:    foundBy,
			Mismatched: res.rejectedBy,
		}
	}

	return Paginate(res.kept, req), nil
}

type filterResult[T any] struct {
	kept       []T
	rejectedBy []string
	unknown    []string
}

func postFilter[T any](rows []T, fs FilterSet, match Matcher[T]) filterResult[T] {
	res := filterResult[T]{kept: []T{}}
	rejected := map[string]bool{}
	unknown := map[string]bool{}
	fields := fs.Fields()

	for _, row := range rows {
		keep := true
		for _, f := range fields {
			ok, known := true, false
			if match != nil {
				ok, known = match(row, f, fs)
			}
			if !known {
				unknown[f] = true
				continue
			}
			if !ok {
				keep = false
				rejected[f] = true
			}
		}
		if keep {
			res.kept = append(res.kept, row)
		}
	}

	for _, f := range fields {
		if rejected[f] {
			res.rejectedBy = append(res.rejectedBy, f)
		}
		if unknown[f] {
			res.unknown = append(res.unknown, f)
		}
	}
	return res
}

// PostFilter keeps the rows that satisfy every field of fs. Fields match
// cannot evaluate are ignored.
func PostFilter[T any](rows []T, fs FilterSet, match Matcher[T]) []T {
	return postFilter(rows, fs, match).kept
}

// Paginate sorts rows by id, honoring the requested direction, and cuts out
// the requested page. Pages past the end are empty.
func Paginate[T models.Entity](rows []T, req PageRequest) models.Page[T] {
	req = req.normalized()

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b T) int {
		c := cmp.Compare(a.GetID(), b.GetID())
		if req.Sort.Desc {
			return -c
		}
		return c
	})

	start := min(req.Page*req.Size, len(sorted))
	end := min(start+req.Size, len(sorted))
	return models.NewPage(slices.Clone(sorted[start:end]), req.Page, req.Size, len(sorted))
}
