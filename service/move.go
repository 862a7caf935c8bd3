package service

import (
	"context"

	"github.com/s0up4200/pokedex/pokeapi"
)

// MoveDetails is the flat view of a move.
type MoveDetails struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	Type         string `json:"type"`
	DamageClass  string `json:"damage_class"`
	Power        *int   `json:"power"`
	Accuracy     *int   `json:"accuracy"`
	PP           *int   `json:"pp"`
	Priority     int    `json:"priority"`
	Effect       string `json:"effect"`
	ShortEffect  string `json:"short_effect"`
	EffectChance *int   `json:"effect_chance"`
	Ailment      string `json:"ailment,omitempty"`
	Generation   string `json:"generation"`
	Target       string `json:"target"`
}

// MoveService covers moves, damage classes and ailments.
type MoveService struct {
	Moves         *Resource[pokeapi.Move]
	DamageClasses *Resource[pokeapi.MoveDamageClass]
	Ailments      *Resource[pokeapi.MoveAilment]
	types         *Resource[pokeapi.Type]
}

// NewMoveService creates a MoveService.
func NewMoveService(base *Base) *MoveService {
	return &MoveService{
		Moves:         NewResource[pokeapi.Move](base, Descriptor{Endpoint: pokeapi.EndpointMove, Label: "move"}),
		DamageClasses: NewResource[pokeapi.MoveDamageClass](base, Descriptor{Endpoint: pokeapi.EndpointMoveDamageClass, Label: "move damage class"}),
		Ailments:      NewResource[pokeapi.MoveAilment](base, Descriptor{Endpoint: pokeapi.EndpointMoveAilment, Label: "move ailment"}),
		types:         NewResource[pokeapi.Type](base, Descriptor{Endpoint: pokeapi.EndpointType, Label: "type"}),
	}
}

// Details fetches a move and flattens it.
func (s *MoveService) Details(ctx context.Context, identifier string) (*MoveDetails, error) {
	m, err := s.Moves.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return SummarizeMove(m), nil
}

// SummarizeMove flattens a move.
func SummarizeMove(m *pokeapi.Move) *MoveDetails {
	effect, short := pokeapi.EnglishEffect(m.EffectEntries)
	d := &MoveDetails{
		ID:           m.ID,
		Name:         m.Name,
		DisplayName:  pokeapi.EnglishName(m.Names, m.Name),
		Type:         m.Type.Name,
		DamageClass:  m.DamageClass.Name,
		Power:        m.Power,
		Accuracy:     m.Accuracy,
		PP:           m.PP,
		Priority:     m.Priority,
		Effect:       effect,
		ShortEffect:  short,
		EffectChance: m.EffectChance,
		Generation:   m.Generation.Name,
		Target:       m.Target.Name,
	}
	if m.Meta != nil {
		d.Ailment = m.Meta.Ailment.Name
	}
	return d
}

// ByType lists the moves of a type.
func (s *MoveService) ByType(ctx context.Context, typeName string) ([]pokeapi.NamedAPIResource, error) {
	t, err := s.types.Get(ctx, typeName)
	if err != nil {
		return nil, err
	}
	return t.Moves, nil
}

// ByDamageClass lists the moves of a damage class.
func (s *MoveService) ByDamageClass(ctx context.Context, class string) ([]pokeapi.NamedAPIResource, error) {
	c, err := s.DamageClasses.Get(ctx, class)
	if err != nil {
		return nil, err
	}
	return c.Moves, nil
}
