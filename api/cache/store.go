package cache

import (
	"context"
	"time"
)

// Store is an expiring key-value store. Every value written through a store
// lives for the store's TTL.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	TTL() time.Duration
}
