// Package service exposes the PokeAPI resource families through one shared
// request pipeline.
//
// Every call goes through Base: a connectivity gate, a retry loop with
// exponential backoff, and classification of the final failure into a
// *classify.Error. Resource[T] adds typed get/list/batch/sample operations
// on top, and the per-family services (Pokemon, Ability, Berry, ...) add
// flattened detail views and derived "by X" queries.
//
// A Registry builds every service around one pokeapi client so the response
// cache is shared.
package service
