package service

import (
	"context"

	"github.com/s0up4200/pokedex/batch"
	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/urlutil"
)

// MaxPokemonID is the highest national dex number used by Random.
const MaxPokemonID = 1025

// PokemonSummary is the flat view of a Pokémon used for filtering.
type PokemonSummary struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Height         int            `json:"height"`
	Weight         int            `json:"weight"`
	BaseExperience int            `json:"base_experience"`
	Types          []string       `json:"types"`
	Abilities      []string       `json:"abilities"`
	HiddenAbility  string         `json:"hidden_ability,omitempty"`
	Stats          map[string]int `json:"stats"`
	Moves          []string       `json:"moves"`
	Sprite         string         `json:"sprite,omitempty"`
	Species        string         `json:"species"`
}

// PokemonDetails adds the species data to a summary.
type PokemonDetails struct {
	PokemonSummary
	DisplayName      string `json:"display_name"`
	Genus            string `json:"genus,omitempty"`
	FlavorText       string `json:"flavor_text,omitempty"`
	Generation       string `json:"generation,omitempty"`
	IsLegendary      bool   `json:"is_legendary"`
	IsMythical       bool   `json:"is_mythical"`
	IsBaby           bool   `json:"is_baby"`
	CaptureRate      int    `json:"capture_rate"`
	EvolutionChainID int    `json:"evolution_chain_id,omitempty"`
}

// PokemonService covers pokemon, species and forms.
type PokemonService struct {
	base    *Base
	Pokemon *Resource[pokeapi.Pokemon]
	Species *Resource[pokeapi.PokemonSpecies]
	Forms   *Resource[pokeapi.PokemonForm]
	types   *Resource[pokeapi.Type]
}

// NewPokemonService creates a PokemonService.
func NewPokemonService(base *Base) *PokemonService {
	return &PokemonService{
		base:    base,
		Pokemon: NewResource[pokeapi.Pokemon](base, Descriptor{Endpoint: pokeapi.EndpointPokemon, Label: "pokemon", MaxID: MaxPokemonID}),
		Species: NewResource[pokeapi.PokemonSpecies](base, Descriptor{Endpoint: pokeapi.EndpointPokemonSpecies, Label: "pokemon species"}),
		Forms:   NewResource[pokeapi.PokemonForm](base, Descriptor{Endpoint: pokeapi.EndpointPokemonForm, Label: "pokemon form"}),
		types:   NewResource[pokeapi.Type](base, Descriptor{Endpoint: pokeapi.EndpointType, Label: "type"}),
	}
}

// Details fetches a Pokémon and its species and flattens both. A species
// failure is logged and leaves the species fields empty.
func (s *PokemonService) Details(ctx context.Context, identifier string) (*PokemonDetails, error) {
	p, err := s.Pokemon.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, p), nil
}

func (s *PokemonService) details(ctx context.Context, p *pokeapi.Pokemon) *PokemonDetails {
	d := &PokemonDetails{
		PokemonSummary: SummarizePokemon(p),
		DisplayName:    p.Name,
	}

	species, err := s.Species.GetByURL(ctx, p.Species.URL)
	if err != nil {
		s.base.logger.Warn().Err(err).Str("pokemon", p.Name).Msg("Failed to fetch species")
		return d
	}

	d.DisplayName = pokeapi.EnglishName(species.Names, p.Name)
	d.FlavorText = pokeapi.EnglishFlavorText(species.FlavorTextEntries)
	d.Generation = species.Generation.Name
	d.IsLegendary = species.IsLegendary
	d.IsMythical = species.IsMythical
	d.IsBaby = species.IsBaby
	d.CaptureRate = species.CaptureRate
	for _, g := range species.Genera {
		if g.Language.Name == "en" {
			d.Genus = g.Genus
		}
	}
	if id, ok := urlutil.ExtractID(species.EvolutionChain.URL); ok {
		d.EvolutionChainID = id
	}
	return d
}

// SummarizePokemon flattens a Pokémon without extra requests.
func SummarizePokemon(p *pokeapi.Pokemon) PokemonSummary {
	sum := PokemonSummary{
		ID:             p.ID,
		Name:           p.Name,
		Height:         p.Height,
		Weight:         p.Weight,
		BaseExperience: p.BaseExperience,
		Types:          make([]string, 0, len(p.Types)),
		Abilities:      make([]string, 0, len(p.Abilities)),
		Stats:          make(map[string]int, len(p.Stats)),
		Moves:          make([]string, 0, len(p.Moves)),
		Species:        p.Species.Name,
	}
	for _, t := range p.Types {
		sum.Types = append(sum.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		if a.IsHidden {
			sum.HiddenAbility = a.Ability.Name
		}
		sum.Abilities = append(sum.Abilities, a.Ability.Name)
	}
	for _, st := range p.Stats {
		sum.Stats[st.Stat.Name] = st.BaseStat
	}
	for _, m := range p.Moves {
		sum.Moves = append(sum.Moves, m.Move.Name)
	}
	if p.Sprites.FrontDefault != nil {
		sum.Sprite = *p.Sprites.FrontDefault
	}
	return sum
}

// ByType lists the Pokémon that have the given type.
func (s *PokemonService) ByType(ctx context.Context, typeName string) ([]pokeapi.NamedAPIResource, error) {
	t, err := s.types.Get(ctx, typeName)
	if err != nil {
		return nil, err
	}
	out := make([]pokeapi.NamedAPIResource, len(t.Pokemon))
	for i, tp := range t.Pokemon {
		out[i] = tp.Pokemon
	}
	return out, nil
}

// Random returns the details of a random Pokémon.
func (s *PokemonService) Random(ctx context.Context) (*PokemonDetails, error) {
	p, err := s.Pokemon.Random(ctx)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, p), nil
}

// Batch fetches details for many Pokémon. Values keep input order.
func (s *PokemonService) Batch(ctx context.Context, identifiers []string, opts batch.Options) (batch.Result[string, *PokemonDetails], error) {
	var empty batch.Result[string, *PokemonDetails]
	if len(identifiers) == 0 {
		return empty, nil
	}
	for _, id := range identifiers {
		if err := s.base.ValidateIdentifier(normalizeIdentifier(id), "pokemon"); err != nil {
			return empty, err
		}
	}
	return BatchOperation(ctx, s.base, identifiers, s.Details, opts)
}

// Search samples Pokémon and returns the summaries matching f.
func (s *PokemonService) Search(ctx context.Context, f filter.CompiledFilter, sample int) ([]filter.Record, error) {
	return s.Pokemon.Search(ctx, f, sample, func(p *pokeapi.Pokemon) any {
		return SummarizePokemon(p)
	})
}
