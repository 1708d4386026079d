package resolver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

type Status int

const (
	StatusIdle Status = iota
	StatusSearching
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSearching:
		return "searching"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "idle"
}

// Outcome tells apart what a successful search produced.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeResults
	OutcomeEmpty
	OutcomeMismatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResults:
		return "results"
	case OutcomeEmpty:
		return "empty"
	case OutcomeMismatch:
		return "mismatch"
	}
	return "none"
}

const EmptyMessage = "no results for these criteria"

var (
	// ErrSuperseded is returned to the caller whose response arrived after a
	// newer request was issued. The response is dropped.
	ErrSuperseded  = errors.New("response superseded by a newer request")
	ErrNotSearched = errors.New("no search has been submitted")
	ErrReadOnly    = errors.New("view does not support changes")
)

// State is a snapshot of a view.
type State[T any] struct {
	Status  Status
	Outcome Outcome
	Filters FilterSet
	Page    models.Page[T]
	Message string
	Err     error
}

// Store performs the mutations a view can trigger.
type Store[T any] interface {
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int, item T) (T, error)
	Delete(ctx context.Context, id int) error
}

// View owns the filters, page and status of one list screen. Requests are
// not cancelled when superseded; the last one issued wins and older
// responses are discarded.
type View[T models.Entity] struct {
	resolver *Resolver[T]
	store    Store[T]
	schema   Schema
	size     int
	sort     Sort
	logger   *zap.Logger

	mu        sync.Mutex
	seq       uint64
	submitted bool
	state     State[T]
}

type ViewOption[T models.Entity] func(*View[T])

func WithPageSize[T models.Entity](size int) ViewOption[T] {
	return func(v *View[T]) {
		if size > 0 {
			v.size = size
		}
	}
}

func WithSort[T models.Entity](sort Sort) ViewOption[T] {
	return func(v *View[T]) { v.sort = sort }
}

func WithStore[T models.Entity](store Store[T]) ViewOption[T] {
	return func(v *View[T]) { v.store = store }
}

func NewView[T models.Entity](schema Schema, resolver *Resolver[T], opts ...ViewOption[T]) *View[T] {
	v := &View[T]{
		resolver: resolver,
		schema:   schema,
		size:     DefaultPageSize,
		logger:   resolver.logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.state = v.idle()
	return v
}

func (v *View[T]) idle() State[T] {
	return State[T]{
		Status:  StatusIdle,
		Filters: FilterSet{},
		Page:    models.NewPage[T](nil, 0, v.size, 0),
	}
}

func (v *View[T]) snapshot() State[T] {
	s := v.state
	s.Filters = s.Filters.Clone()
	s.Page.Content = slices.Clone(s.Page.Content)
	return s
}

// State returns a copy of the current state.
func (v *View[T]) State() State[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot()
}

// Submit normalizes raw and searches from the first page. A malformed
// filter is reported without contacting the backend.
func (v *View[T]) Submit(ctx context.Context, raw FilterSet) (State[T], error) {
	fs, err := Normalize(v.schema, raw)
	if err != nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.seq++
		v.submitted = false
		v.state = v.idle()
		v.state.Status = StatusError
		v.state.Err = err
		v.state.Message = ErrorMessage(err)
		return v.snapshot(), err
	}
	return v.fetch(ctx, fs, 0, true)
}

// GoToPage loads page n of the last submitted search. On failure the
// previous page stays visible.
func (v *View[T]) GoToPage(ctx context.Context, n int) (State[T], error) {
	v.mu.Lock()
	searched := v.submitted
	fs := v.state.Filters.Clone()
	v.mu.Unlock()

	if !searched {
		return v.State(), ErrNotSearched
	}
	if n < 0 {
		return v.State(), fmt.Errorf("page %d: %w", n, &InvalidInputError{Fields: map[string][]string{"page": {"must be zero or positive"}}})
	}
	return v.fetch(ctx, fs, n, false)
}

// Refresh reloads the current page.
func (v *View[T]) Refresh(ctx context.Context) (State[T], error) {
	v.mu.Lock()
	n := v.state.Page.Number
	v.mu.Unlock()
	return v.GoToPage(ctx, n)
}

// Clear forgets filters and results. Responses still in flight are dropped.
func (v *View[T]) Clear() State[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.submitted = false
	v.state = v.idle()
	return v.snapshot()
}

// Delete removes id and reloads. Removing the only row shown on a page other
// than the first moves back one page.
func (v *View[T]) Delete(ctx context.Context, id int) (State[T], error) {
	if v.store == nil {
		return v.State(), ErrReadOnly
	}
	if err := v.store.Delete(ctx, id); err != nil {
		return v.fail(err), err
	}

	v.mu.Lock()
	page := v.state.Page
	fs := v.state.Filters.Clone()
	searched := v.submitted
	v.mu.Unlock()

	if !searched {
		return v.State(), nil
	}
	target := page.Number
	if len(page.Content) == 1 && page.Content[0].GetID() == id && page.Number > 0 {
		target--
	}
	return v.fetch(ctx, fs, target, false)
}

// Create stores item and reloads the current page.
func (v *View[T]) Create(ctx context.Context, item T) (T, State[T], error) {
	if v.store == nil {
		var zero T
		return zero, v.State(), ErrReadOnly
	}
	created, err := v.store.Create(ctx, item)
	if err != nil {
		return created, v.fail(err), err
	}
	st, err := v.reload(ctx)
	return created, st, err
}

// Update replaces the record id with item and reloads the current page.
func (v *View[T]) Update(ctx context.Context, id int, item T) (T, State[T], error) {
	if v.store == nil {
		var zero T
		return zero, v.State(), ErrReadOnly
	}
	updated, err := v.store.Update(ctx, id, item)
	if err != nil {
		return updated, v.fail(err), err
	}
	st, err := v.reload(ctx)
	return updated, st, err
}

func (v *View[T]) reload(ctx context.Context) (State[T], error) {
	v.mu.Lock()
	searched := v.submitted
	v.mu.Unlock()
	if !searched {
		return v.State(), nil
	}
	return v.Refresh(ctx)
}

// fail records a mutation error and keeps the rows on screen.
func (v *View[T]) fail(err error) State[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.submitted {
		v.state.Status = StatusError
	}
	v.state.Err = err
	v.state.Message = ErrorMessage(err)
	return v.snapshot()
}

func (v *View[T]) fetch(ctx context.Context, fs FilterSet, number int, fresh bool) (State[T], error) {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.state.Status = StatusSearching
	if fresh {
		v.submitted = true
		v.state.Filters = fs.Clone()
	}
	v.mu.Unlock()

	page, err := v.resolver.Resolve(ctx, fs, PageRequest{Page: number, Size: v.size, Sort: v.sort})

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		v.logger.Debug("discarding stale response", zap.Uint64("seq", seq), zap.Uint64("latest", v.seq))
		return v.snapshot(), ErrSuperseded
	}

	var mismatch *MismatchError
	switch {
	case errors.As(err, &mismatch):
		v.state.Status = StatusSuccess
		v.state.Outcome = OutcomeMismatch
		v.state.Page = models.NewPage[T](nil, 0, v.size, 0)
		v.state.Message = mismatch.Error()
		v.state.Err = nil
		return v.snapshot(), nil
	case err != nil:
		v.state.Status = StatusError
		v.state.Err = err
		v.state.Message = ErrorMessage(err)
		if fresh {
			v.state.Outcome = OutcomeNone
			v.state.Page = models.NewPage[T](nil, 0, v.size, 0)
		}
		return v.snapshot(), err
	}

	v.state.Status = StatusSuccess
	v.state.Page = page
	v.state.Err = nil
	if page.Empty() {
		v.state.Outcome = OutcomeEmpty
		v.state.Message = EmptyMessage
	} else {
		v.state.Outcome = OutcomeResults
		v.state.Message = ""
	}
	return v.snapshot(), nil
}
