package pokeapi

import (
	"context"
)

// API defines the interface for PokeAPI operations
type API interface {
	// Get fetches {base}/{endpoint}/{identifier}/ into v
	Get(ctx context.Context, endpoint, identifier string, v any) error

	// List fetches one page of an endpoint's resource index
	List(ctx context.Context, endpoint string, offset, limit int) (*NamedAPIResourceList, error)

	// GetByURL fetches an absolute resource URL into v
	GetByURL(ctx context.Context, rawURL string, v any) error

	// ClearCache drops the memory cache and, when configured, the offline store
	ClearCache(ctx context.Context) error

	// HasOfflineStore reports whether offline mode can serve anything
	HasOfflineStore() bool
}

// Store is the offline persistence the client writes through to.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}

var _ API = (*Client)(nil)
