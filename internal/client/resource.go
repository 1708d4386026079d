package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

// Resource is one REST collection, e.g. /clients.
type Resource[T models.Entity] struct {
	c    *Client
	path string
}

// All fetches the whole collection.
func (r Resource[T]) All(ctx context.Context) ([]T, error) {
	return r.Find(ctx, "", nil)
}

// Find fetches an unpaged list from a sub-path such as "/search-by-name".
func (r Resource[T]) Find(ctx context.Context, sub string, query url.Values) ([]T, error) {
	out := []T{}
	if err := r.c.do(ctx, http.MethodGet, r.path+sub, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne fetches a single record from a sub-path such as "/by-cpf/123".
// A 404 yields an empty slice.
func (r Resource[T]) FindOne(ctx context.Context, sub string) ([]T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.path+sub, nil, nil, &out)
	if IsNotFound(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []T{out}, nil
}

// Page fetches one page of the paged listing.
func (r Resource[T]) Page(ctx context.Context, query url.Values) (models.Page[T], error) {
	var out models.Page[T]
	err := r.c.do(ctx, http.MethodGet, r.path, query, nil, &out)
	return out, err
}

func (r Resource[T]) Get(ctx context.Context, id int) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.path+"/"+strconv.Itoa(id), nil, nil, &out)
	return out, err
}

func (r Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.path, nil, item, &out)
	return out, err
}

func (r Resource[T]) Update(ctx context.Context, id int, item T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPut, r.path+"/"+strconv.Itoa(id), nil, item, &out)
	return out, err
}

func (r Resource[T]) Delete(ctx context.Context, id int) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+strconv.Itoa(id), nil, nil, nil)
}
