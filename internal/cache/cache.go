// Package cache stores serialized list responses per entity namespace.
// Invalidating a namespace drops every entry written under it.
package cache

import "context"

// Generation identifies the state of a namespace when it was read. Set only
// keeps an entry when the namespace has not been invalidated since.
type Generation int64

type Cache interface {
	// Get decodes the entry for key into dest and reports whether it was
	// found, along with the generation to pass to a following Set.
	Get(ctx context.Context, namespace, key string, dest any) (Generation, bool, error)
	Set(ctx context.Context, namespace string, gen Generation, key string, value any) error
	Invalidate(ctx context.Context, namespace string) error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, string, any) (Generation, bool, error) { return 0, false, nil }
func (Nop) Set(context.Context, string, Generation, string, any) error         { return nil }
func (Nop) Invalidate(context.Context, string) error                           { return nil }
