package service

import (
	"context"

	"github.com/s0up4200/pokedex/pokeapi"
)

// AbilityDetails is the flat view of an ability.
type AbilityDetails struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	DisplayName  string   `json:"display_name"`
	Effect       string   `json:"effect"`
	ShortEffect  string   `json:"short_effect"`
	FlavorText   string   `json:"flavor_text,omitempty"`
	Generation   string   `json:"generation"`
	IsMainSeries bool     `json:"is_main_series"`
	Pokemon      []string `json:"pokemon"`
}

// AbilityService covers abilities.
type AbilityService struct {
	Abilities   *Resource[pokeapi.Ability]
	generations *Resource[pokeapi.Generation]
}

// NewAbilityService creates an AbilityService.
func NewAbilityService(base *Base) *AbilityService {
	return &AbilityService{
		Abilities:   NewResource[pokeapi.Ability](base, Descriptor{Endpoint: pokeapi.EndpointAbility, Label: "ability"}),
		generations: NewResource[pokeapi.Generation](base, Descriptor{Endpoint: pokeapi.EndpointGeneration, Label: "generation"}),
	}
}

// Get fetches the raw ability.
func (s *AbilityService) Get(ctx context.Context, identifier string) (*pokeapi.Ability, error) {
	return s.Abilities.Get(ctx, identifier)
}

// Details fetches an ability with its English effect text.
func (s *AbilityService) Details(ctx context.Context, identifier string) (*AbilityDetails, error) {
	a, err := s.Abilities.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return SummarizeAbility(a), nil
}

// SummarizeAbility flattens an ability.
func SummarizeAbility(a *pokeapi.Ability) *AbilityDetails {
	effect, short := pokeapi.EnglishEffect(a.EffectEntries)
	d := &AbilityDetails{
		ID:           a.ID,
		Name:         a.Name,
		DisplayName:  pokeapi.EnglishName(a.Names, a.Name),
		Effect:       effect,
		ShortEffect:  short,
		FlavorText:   pokeapi.EnglishFlavorText(a.FlavorTextEntries),
		Generation:   a.Generation.Name,
		IsMainSeries: a.IsMainSeries,
		Pokemon:      make([]string, len(a.Pokemon)),
	}
	for i, p := range a.Pokemon {
		d.Pokemon[i] = p.Pokemon.Name
	}
	return d
}

// ByGeneration lists the abilities introduced in a generation.
func (s *AbilityService) ByGeneration(ctx context.Context, generation string) ([]pokeapi.NamedAPIResource, error) {
	g, err := s.generations.Get(ctx, generation)
	if err != nil {
		return nil, err
	}
	return g.Abilities, nil
}
