package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/pokedex/network"
	"github.com/s0up4200/pokedex/pokeapi"
)

// Registry builds every resource service over one shared Base and indexes
// them by family name.
type Registry struct {
	base *Base

	Pokemon   *PokemonService
	Abilities *AbilityService
	Berries   *BerryService
	Moves     *MoveService
	Items     *ItemService
	Locations *LocationService
	Evolution *EvolutionService
	Games     *GameService
	Contests  *ContestService
	Encounter *EncounterService
	Machines  *MachineService
	Types     *TypeService
	Utility   *UtilityService

	families map[string]Family
}

// NewRegistry creates a Registry whose services share client, monitor and
// configuration.
func NewRegistry(client pokeapi.API, monitor *network.Monitor, cfg Config, logger zerolog.Logger, opts ...BaseOption) *Registry {
	base := NewBase(client, monitor, cfg, logger, opts...)
	r := &Registry{
		base:      base,
		Pokemon:   NewPokemonService(base),
		Abilities: NewAbilityService(base),
		Berries:   NewBerryService(base),
		Moves:     NewMoveService(base),
		Items:     NewItemService(base),
		Locations: NewLocationService(base),
		Evolution: NewEvolutionService(base),
		Games:     NewGameService(base),
		Contests:  NewContestService(base),
		Encounter: NewEncounterService(base),
		Machines:  NewMachineService(base),
		Types:     NewTypeService(base),
		Utility:   NewUtilityService(base),
	}
	r.families = r.buildFamilies()
	return r
}

// Base returns the shared base service.
func (r *Registry) Base() *Base {
	return r.base
}

// Family returns the family registered under name.
func (r *Registry) Family(name string) (Family, error) {
	f, ok := r.families[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	return f, nil
}

// Families returns every registered family name, sorted.
func (r *Registry) Families() []string {
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) buildFamilies() map[string]Family {
	fams := []Family{
		newFamily(r.Pokemon.Pokemon, summarize(SummarizePokemon)).
			withDetails(func(ctx context.Context, id string) (any, error) {
				d, err := r.Pokemon.Details(ctx, id)
				if err != nil {
					return nil, err
				}
				return d, nil
			}),
		newFamily[pokeapi.PokemonSpecies](r.Pokemon.Species, nil),
		newFamily[pokeapi.PokemonForm](r.Pokemon.Forms, nil),

		newFamily(r.Abilities.Abilities, summarize(SummarizeAbility)),

		newFamily(r.Berries.Berries, summarize(SummarizeBerry)),
		newFamily[pokeapi.BerryFirmness](r.Berries.Firmness, nil),
		newFamily[pokeapi.BerryFlavor](r.Berries.Flavors, nil),

		newFamily(r.Moves.Moves, summarize(SummarizeMove)),
		newFamily[pokeapi.MoveDamageClass](r.Moves.DamageClasses, nil),
		newFamily[pokeapi.MoveAilment](r.Moves.Ailments, nil),

		newFamily(r.Items.Items, summarize(SummarizeItem)),
		newFamily[pokeapi.ItemCategory](r.Items.Categories, nil),
		newFamily[pokeapi.ItemAttribute](r.Items.Attributes, nil),
		newFamily[pokeapi.ItemPocket](r.Items.Pockets, nil),

		newFamily(r.Locations.Locations, summarize(SummarizeLocation)),
		newFamily[pokeapi.LocationArea](r.Locations.Areas, nil),
		newFamily[pokeapi.Region](r.Locations.Regions, nil),
		newFamily[pokeapi.PalParkArea](r.Locations.PalParkAreas, nil),

		newFamily[pokeapi.EvolutionChain](r.Evolution.Chains, nil).
			withDetails(func(ctx context.Context, id string) (any, error) {
				c, err := r.Evolution.Chains.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				return FlattenChain(c.Chain), nil
			}),
		newFamily[pokeapi.EvolutionTrigger](r.Evolution.Triggers, nil),

		newFamily(r.Games.Generations, summarize(SummarizeGeneration)),
		newFamily[pokeapi.Pokedex](r.Games.Pokedexes, nil),
		newFamily[pokeapi.Version](r.Games.Versions, nil),
		newFamily[pokeapi.VersionGroup](r.Games.VersionGroups, nil),

		newFamily[pokeapi.ContestType](r.Contests.Types, nil),
		newFamily[pokeapi.ContestEffect](r.Contests.Effects, nil),
		newFamily[pokeapi.SuperContestEffect](r.Contests.SuperContestEffect, nil),

		newFamily[pokeapi.EncounterMethod](r.Encounter.Methods, nil),
		newFamily[pokeapi.EncounterCondition](r.Encounter.Conditions, nil),
		newFamily[pokeapi.EncounterConditionValue](r.Encounter.Values, nil),

		newFamily(r.Machines.Machines, summarize(SummarizeMachine)),
		newFamily(r.Types.Types, summarize(SummarizeType)),
		newFamily[pokeapi.Language](r.Utility.Languages, nil),
	}

	m := make(map[string]Family, len(fams))
	for _, f := range fams {
		m[f.Endpoint()] = f
	}
	return m
}
