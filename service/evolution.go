package service

import (
	"context"

	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/urlutil"
)

// EvolutionStage is one species in a flattened evolution chain.
type EvolutionStage struct {
	Species   string `json:"species"`
	SpeciesID int    `json:"species_id,omitempty"`
	Stage     int    `json:"stage"`
	From      string `json:"from,omitempty"`
	IsBaby    bool   `json:"is_baby"`
	Trigger   string `json:"trigger,omitempty"`
	MinLevel  *int   `json:"min_level,omitempty"`
	Item      string `json:"item,omitempty"`
}

// EvolutionService covers evolution chains and triggers.
type EvolutionService struct {
	base     *Base
	Chains   *Resource[pokeapi.EvolutionChain]
	Triggers *Resource[pokeapi.EvolutionTrigger]
	species  *Resource[pokeapi.PokemonSpecies]
}

// NewEvolutionService creates an EvolutionService.
func NewEvolutionService(base *Base) *EvolutionService {
	return &EvolutionService{
		base:     base,
		Chains:   NewResource[pokeapi.EvolutionChain](base, Descriptor{Endpoint: pokeapi.EndpointEvolutionChain, Label: "evolution chain"}),
		Triggers: NewResource[pokeapi.EvolutionTrigger](base, Descriptor{Endpoint: pokeapi.EndpointEvolutionTrigger, Label: "evolution trigger"}),
		species:  NewResource[pokeapi.PokemonSpecies](base, Descriptor{Endpoint: pokeapi.EndpointPokemonSpecies, Label: "pokemon species"}),
	}
}

// ChainStages fetches a chain by ID and flattens it breadth-first.
func (s *EvolutionService) ChainStages(ctx context.Context, chainID int) ([]EvolutionStage, error) {
	chain, err := s.Chains.GetByID(ctx, chainID)
	if err != nil {
		return nil, err
	}
	return FlattenChain(chain.Chain), nil
}

// ForPokemon resolves a species' evolution chain and flattens it.
func (s *EvolutionService) ForPokemon(ctx context.Context, species string) ([]EvolutionStage, error) {
	sp, err := s.species.Get(ctx, species)
	if err != nil {
		return nil, err
	}
	chain, err := s.Chains.GetByURL(ctx, sp.EvolutionChain.URL)
	if err != nil {
		return nil, err
	}
	return FlattenChain(chain.Chain), nil
}

// FlattenChain lists every species in link, parents before children.
// Stage 1 is the root.
func FlattenChain(link pokeapi.ChainLink) []EvolutionStage {
	type node struct {
		link  pokeapi.ChainLink
		stage int
		from  string
	}

	var stages []EvolutionStage
	queue := []node{{link: link, stage: 1}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		st := EvolutionStage{
			Species: n.link.Species.Name,
			Stage:   n.stage,
			From:    n.from,
			IsBaby:  n.link.IsBaby,
		}
		if id, ok := urlutil.ExtractID(n.link.Species.URL); ok {
			st.SpeciesID = id
		}
		if len(n.link.EvolutionDetails) > 0 {
			det := n.link.EvolutionDetails[0]
			st.Trigger = det.Trigger.Name
			st.MinLevel = det.MinLevel
			if det.Item != nil {
				st.Item = det.Item.Name
			}
		}
		stages = append(stages, st)

		for _, next := range n.link.EvolvesTo {
			queue = append(queue, node{link: next, stage: n.stage + 1, from: n.link.Species.Name})
		}
	}
	return stages
}
