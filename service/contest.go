package service

import (
	"context"

	"github.com/s0up4200/pokedex/pokeapi"
)

// ContestService covers contest types and (super) contest effects.
type ContestService struct {
	Types              *Resource[pokeapi.ContestType]
	Effects            *Resource[pokeapi.ContestEffect]
	SuperContestEffect *Resource[pokeapi.SuperContestEffect]
}

// NewContestService creates a ContestService.
func NewContestService(base *Base) *ContestService {
	return &ContestService{
		Types:              NewResource[pokeapi.ContestType](base, Descriptor{Endpoint: pokeapi.EndpointContestType, Label: "contest type"}),
		Effects:            NewResource[pokeapi.ContestEffect](base, Descriptor{Endpoint: pokeapi.EndpointContestEffect, Label: "contest effect"}),
		SuperContestEffect: NewResource[pokeapi.SuperContestEffect](base, Descriptor{Endpoint: pokeapi.EndpointSuperContestEffect, Label: "super contest effect"}),
	}
}

// EffectsByAppeal samples contest effects and keeps those with at least
// minAppeal appeal.
func (s *ContestService) EffectsByAppeal(ctx context.Context, minAppeal, sample int) ([]*pokeapi.ContestEffect, error) {
	return s.Effects.FilterSample(ctx, sample, func(e *pokeapi.ContestEffect) bool {
		return e.Appeal >= minAppeal
	})
}
