package service

import "context"

// Cache is the read-through cache used by services. *cache.Client satisfies
// it, including as a nil pointer when caching is disabled.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) bool
	SetJSON(ctx context.Context, key string, v interface{})
	Delete(ctx context.Context, key string)
}
