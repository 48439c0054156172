package cart

import "context"

// Storage is the durable key-value store a cart persists through.
// Get returns ok=false when the key has no value; that is not an error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
