package service

import (
	"context"

	"github.com/s0up4200/pokedex/batch"
	"github.com/s0up4200/pokedex/pokeapi"
)

// GenerationDetails is the flat view of a generation.
type GenerationDetails struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name"`
	MainRegion    string   `json:"main_region"`
	Types         []string `json:"types"`
	VersionGroups []string `json:"version_groups"`
	SpeciesCount  int      `json:"species_count"`
	MoveCount     int      `json:"move_count"`
	AbilityCount  int      `json:"ability_count"`
}

// GameService covers generations, pokedexes, versions and version groups.
type GameService struct {
	base          *Base
	Generations   *Resource[pokeapi.Generation]
	Pokedexes     *Resource[pokeapi.Pokedex]
	Versions      *Resource[pokeapi.Version]
	VersionGroups *Resource[pokeapi.VersionGroup]
}

// NewGameService creates a GameService.
func NewGameService(base *Base) *GameService {
	return &GameService{
		base:          base,
		Generations:   NewResource[pokeapi.Generation](base, Descriptor{Endpoint: pokeapi.EndpointGeneration, Label: "generation"}),
		Pokedexes:     NewResource[pokeapi.Pokedex](base, Descriptor{Endpoint: pokeapi.EndpointPokedex, Label: "pokedex"}),
		Versions:      NewResource[pokeapi.Version](base, Descriptor{Endpoint: pokeapi.EndpointVersion, Label: "version"}),
		VersionGroups: NewResource[pokeapi.VersionGroup](base, Descriptor{Endpoint: pokeapi.EndpointVersionGroup, Label: "version group"}),
	}
}

// GenerationDetails fetches a generation and flattens it.
func (s *GameService) GenerationDetails(ctx context.Context, identifier string) (*GenerationDetails, error) {
	g, err := s.Generations.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return SummarizeGeneration(g), nil
}

// SummarizeGeneration flattens a generation.
func SummarizeGeneration(g *pokeapi.Generation) *GenerationDetails {
	return &GenerationDetails{
		ID:            g.ID,
		Name:          g.Name,
		DisplayName:   pokeapi.EnglishName(g.Names, g.Name),
		MainRegion:    g.MainRegion.Name,
		Types:         resourceNames(g.Types),
		VersionGroups: resourceNames(g.VersionGroups),
		SpeciesCount:  len(g.PokemonSpecies),
		MoveCount:     len(g.Moves),
		AbilityCount:  len(g.Abilities),
	}
}

// VersionsByGeneration fetches every version group of a generation and
// returns their versions in version group order.
func (s *GameService) VersionsByGeneration(ctx context.Context, generation string) ([]pokeapi.NamedAPIResource, error) {
	g, err := s.Generations.Get(ctx, generation)
	if err != nil {
		return nil, err
	}
	if len(g.VersionGroups) == 0 {
		return []pokeapi.NamedAPIResource{}, nil
	}

	urls := make([]string, len(g.VersionGroups))
	for i, vg := range g.VersionGroups {
		urls[i] = vg.URL
	}

	result, err := BatchOperation(ctx, s.base, urls, s.VersionGroups.GetByURL, batch.Options{StopOnError: true})
	if err != nil {
		return nil, err
	}

	versions := make([]pokeapi.NamedAPIResource, 0, len(result.Values)*2)
	for _, vg := range result.Values {
		versions = append(versions, vg.Versions...)
	}
	return versions, nil
}

func resourceNames(rs []pokeapi.NamedAPIResource) []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}
