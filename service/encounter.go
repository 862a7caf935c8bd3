package service

import (
	"context"

	"github.com/s0up4200/pokedex/pokeapi"
)

// EncounterService covers encounter methods, conditions and condition values.
type EncounterService struct {
	Methods    *Resource[pokeapi.EncounterMethod]
	Conditions *Resource[pokeapi.EncounterCondition]
	Values     *Resource[pokeapi.EncounterConditionValue]
}

// NewEncounterService creates an EncounterService.
func NewEncounterService(base *Base) *EncounterService {
	return &EncounterService{
		Methods:    NewResource[pokeapi.EncounterMethod](base, Descriptor{Endpoint: pokeapi.EndpointEncounterMethod, Label: "encounter method"}),
		Conditions: NewResource[pokeapi.EncounterCondition](base, Descriptor{Endpoint: pokeapi.EndpointEncounterCondition, Label: "encounter condition"}),
		Values:     NewResource[pokeapi.EncounterConditionValue](base, Descriptor{Endpoint: pokeapi.EndpointEncounterValue, Label: "encounter condition value"}),
	}
}

// ConditionValues lists the values a condition can take.
func (s *EncounterService) ConditionValues(ctx context.Context, condition string) ([]pokeapi.NamedAPIResource, error) {
	c, err := s.Conditions.Get(ctx, condition)
	if err != nil {
		return nil, err
	}
	return c.Values, nil
}
