package pokeapi

import "context"

type offlineKey struct{}

// WithOffline marks ctx so the client answers only from its cache and
// offline store.
func WithOffline(ctx context.Context) context.Context {
	return context.WithValue(ctx, offlineKey{}, true)
}

// IsOffline reports whether ctx was marked with WithOffline.
func IsOffline(ctx context.Context) bool {
	offline, _ := ctx.Value(offlineKey{}).(bool)
	return offline
}
