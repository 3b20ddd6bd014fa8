// Package metadata is the client's durable key/value store. The session
// token lives here; logout wipes the whole store, not just the token.
package metadata

import "context"

// Repository is the persistence collaborator. Get returns (nil, nil) when
// the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Clear removes every persisted key.
	Clear(ctx context.Context) error
}
