// Package pokeapi provides a client for the PokeAPI v2 REST API.
//
// The client is the only component that talks to the network. It wraps a
// plain net/http client with a short-lived in-memory cache, optional
// client-side rate limiting and an optional offline store that keeps raw
// responses for use when the API cannot be reached.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := pokeapi.NewClient(logger,
//		pokeapi.WithCacheTTL(5*time.Minute),
//		pokeapi.WithRateLimit(10, 20),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	var ability pokeapi.Ability
//	if err := client.Get(ctx, pokeapi.EndpointAbility, "overgrow", &ability); err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// Non-200 responses are returned as *APIError, which exposes the status code
// through HTTPStatusCode and helpers such as IsNotFound. Transport failures
// are wrapped with the NETWORK_ERROR platform code so callers can classify
// them without string matching.
//
// # Offline Mode
//
// A context marked with WithOffline never reaches the network: the request
// is answered from the in-memory cache or the offline store, or fails with a
// NETWORK_ERROR when neither has the resource.
package pokeapi
