package service

import (
	"context"
	"strings"

	"github.com/jmgilman/go/errors"

	"github.com/s0up4200/pokedex/classify"
	"github.com/s0up4200/pokedex/pokeapi"
)

// TypeDetails is the flat view of a type and its damage relations.
type TypeDetails struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	DisplayName      string   `json:"display_name"`
	Generation       string   `json:"generation"`
	DamageClass      string   `json:"damage_class,omitempty"`
	DoubleDamageTo   []string `json:"double_damage_to"`
	HalfDamageTo     []string `json:"half_damage_to"`
	NoDamageTo       []string `json:"no_damage_to"`
	DoubleDamageFrom []string `json:"double_damage_from"`
	HalfDamageFrom   []string `json:"half_damage_from"`
	NoDamageFrom     []string `json:"no_damage_from"`
	PokemonCount     int      `json:"pokemon_count"`
	MoveCount        int      `json:"move_count"`
}

// TypeService covers types.
type TypeService struct {
	Types *Resource[pokeapi.Type]
}

// NewTypeService creates a TypeService.
func NewTypeService(base *Base) *TypeService {
	return &TypeService{
		Types: NewResource[pokeapi.Type](base, Descriptor{Endpoint: pokeapi.EndpointType, Label: "type"}),
	}
}

// Details fetches a type and flattens it.
func (s *TypeService) Details(ctx context.Context, identifier string) (*TypeDetails, error) {
	t, err := s.Types.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return SummarizeType(t), nil
}

// SummarizeType flattens a type.
func SummarizeType(t *pokeapi.Type) *TypeDetails {
	d := &TypeDetails{
		ID:               t.ID,
		Name:             t.Name,
		DisplayName:      pokeapi.EnglishName(t.Names, t.Name),
		Generation:       t.Generation.Name,
		DoubleDamageTo:   resourceNames(t.DamageRelations.DoubleDamageTo),
		HalfDamageTo:     resourceNames(t.DamageRelations.HalfDamageTo),
		NoDamageTo:       resourceNames(t.DamageRelations.NoDamageTo),
		DoubleDamageFrom: resourceNames(t.DamageRelations.DoubleDamageFrom),
		HalfDamageFrom:   resourceNames(t.DamageRelations.HalfDamageFrom),
		NoDamageFrom:     resourceNames(t.DamageRelations.NoDamageFrom),
		PokemonCount:     len(t.Pokemon),
		MoveCount:        len(t.Moves),
	}
	if t.MoveDamageClass != nil {
		d.DamageClass = t.MoveDamageClass.Name
	}
	return d
}

// Effectiveness returns the damage multiplier of an attacking type against
// one or two defending types.
func (s *TypeService) Effectiveness(ctx context.Context, attacking string, defending ...string) (float64, error) {
	if len(defending) == 0 || len(defending) > 2 {
		return 0, classify.Wrap(
			errors.Newf(errors.CodeInvalidInput, "expected 1 or 2 defending types, got %d", len(defending)),
			"type effectiveness",
		)
	}

	t, err := s.Types.Get(ctx, attacking)
	if err != nil {
		return 0, err
	}

	names := make([]string, len(defending))
	for i, d := range defending {
		def, err := s.Types.Get(ctx, d)
		if err != nil {
			if classify.Classify(err, "").Kind == classify.KindNotFound {
				return 0, classify.Wrap(
					errors.Newf(errors.CodeInvalidInput, "unknown defending type %q", d),
					"type effectiveness",
				)
			}
			return 0, err
		}
		names[i] = def.Name
	}
	return Multiplier(t.DamageRelations, names...), nil
}

// Multiplier applies the attacking relations to each defending type.
func Multiplier(rel pokeapi.TypeRelations, defending ...string) float64 {
	m := 1.0
	for _, d := range defending {
		d = strings.ToLower(strings.TrimSpace(d))
		switch {
		case hasName(rel.NoDamageTo, d):
			return 0
		case hasName(rel.DoubleDamageTo, d):
			m *= 2
		case hasName(rel.HalfDamageTo, d):
			m *= 0.5
		}
	}
	return m
}

func hasName(rs []pokeapi.NamedAPIResource, name string) bool {
	for _, r := range rs {
		if r.Name == name {
			return true
		}
	}
	return false
}
