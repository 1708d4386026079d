package resolver_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

type person struct {
	ID   int
	Name string
	CPF  string
}

func (p person) GetID() int { return p.ID }

// backend is an in-memory collaborator recording every lookup it serves.
type backend struct {
	mu     sync.Mutex
	people []person
	nextID int
	calls  []string
	err    error

	// before runs at the start of each lookup, outside the lock.
	before func(strategy string, fs resolver.FilterSet)
}

func newBackend(names ...string) *backend {
	b := &backend{nextID: 1}
	for _, n := range names {
		b.add(person{Name: n})
	}
	return b
}

func (b *backend) add(p person) person {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = b.nextID
	b.nextID++
	b.people = append(b.people, p)
	return p
}

func (b *backend) serve(strategy string, fs resolver.FilterSet, keep func(person) bool) ([]person, error) {
	if b.before != nil {
		b.before(strategy, fs)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, strategy)
	if b.err != nil {
		return nil, b.err
	}
	var out []person
	for _, p := range b.people {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (b *backend) setErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

func (b *backend) callLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

func (b *backend) Create(_ context.Context, p person) (person, error) {
	return b.add(p), nil
}

func (b *backend) Update(_ context.Context, id int, p person) (person, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.people {
		if b.people[i].ID == id {
			p.ID = id
			b.people[i] = p
			return p, nil
		}
	}
	return person{}, errors.New("not found")
}

func (b *backend) Delete(_ context.Context, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.people {
		if b.people[i].ID == id {
			b.people = slices.Delete(b.people, i, i+1)
			return nil
		}
	}
	return errors.New("not found")
}

func matchPerson(p person, field string, fs resolver.FilterSet) (bool, bool) {
	switch field {
	case "name":
		return strings.EqualFold(p.Name, fs.String("name")), true
	case "cpf":
		return p.CPF == fs.String("cpf"), true
	}
	return false, false
}

func peopleResolver(b *backend) *resolver.Resolver[person] {
	return resolver.New("person", matchPerson,
		resolver.Strategy[person]{
			Name:     "by-cpf",
			Consumes: []string{"cpf"},
			Applies: func(fs resolver.FilterSet) bool {
				return len(fs.String("cpf")) == 11 && !fs.Has("name")
			},
			Lookup: func(_ context.Context, fs resolver.FilterSet) ([]person, error) {
				return b.serve("by-cpf", fs, func(p person) bool { return p.CPF == fs.String("cpf") })
			},
		},
		resolver.Strategy[person]{
			Name:     "by-name",
			Consumes: []string{"name"},
			Applies:  func(fs resolver.FilterSet) bool { return fs.Has("name") },
			Lookup: func(_ context.Context, fs resolver.FilterSet) ([]person, error) {
				return b.serve("by-name", fs, func(p person) bool {
					return strings.Contains(strings.ToLower(p.Name), strings.ToLower(fs.String("name")))
				})
			},
		},
		resolver.Strategy[person]{
			Name:    "all",
			Applies: resolver.Always,
			Lookup: func(_ context.Context, fs resolver.FilterSet) ([]person, error) {
				return b.serve("all", fs, func(person) bool { return true })
			},
		},
	)
}

func peopleView(b *backend, size int) *resolver.View[person] {
	return resolver.NewView(testSchema, peopleResolver(b),
		resolver.WithPageSize[person](size),
		resolver.WithStore[person](b))
}

func ids(p models.Page[person]) []int {
	out := []int{}
	for _, r := range p.Content {
		out = append(out, r.ID)
	}
	return out
}
