package api

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is a generic CRUD service bound to one REST path. Every
// operation issues exactly one request and has no side effects beyond it;
// results are the unwrapped payload data and failures are the client core's
// normalized errors.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a resource service to a path such as "/api/admin/users".
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

// List fetches the full collection, optionally filtered by query params.
func (r *Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var items []T
	if err := r.client.Do(ctx, http.MethodGet, r.path, nil, query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one entity by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	return r.get(ctx, id, nil)
}

func (r *Resource[T]) get(ctx context.Context, id string, query url.Values) (T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodGet, r.path+"/"+id, nil, query, &item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Create posts a new entity and returns the server's view of it.
func (r *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodPost, r.path, payload, nil, &item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Update replaces an entity by id and returns the server's view of it.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodPut, r.path+"/"+id, payload, nil, &item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Remove deletes an entity by id.
func (r *Resource[T]) Remove(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, r.path+"/"+id, nil, nil, nil)
}
