package service

import (
	"context"

	"github.com/s0up4200/pokedex/pokeapi"
)

// BerryDetails is the flat view of a berry.
type BerryDetails struct {
	ID               int            `json:"id"`
	Name             string         `json:"name"`
	GrowthTime       int            `json:"growth_time"`
	MaxHarvest       int            `json:"max_harvest"`
	NaturalGiftPower int            `json:"natural_gift_power"`
	NaturalGiftType  string         `json:"natural_gift_type"`
	Size             int            `json:"size"`
	Smoothness       int            `json:"smoothness"`
	Firmness         string         `json:"firmness"`
	Flavors          []string       `json:"flavors"`
	Potency          map[string]int `json:"potency"`
	Item             string         `json:"item"`
}

// BerryService covers berries, firmness and flavors.
type BerryService struct {
	Berries  *Resource[pokeapi.Berry]
	Firmness *Resource[pokeapi.BerryFirmness]
	Flavors  *Resource[pokeapi.BerryFlavor]
}

// NewBerryService creates a BerryService.
func NewBerryService(base *Base) *BerryService {
	return &BerryService{
		Berries:  NewResource[pokeapi.Berry](base, Descriptor{Endpoint: pokeapi.EndpointBerry, Label: "berry"}),
		Firmness: NewResource[pokeapi.BerryFirmness](base, Descriptor{Endpoint: pokeapi.EndpointBerryFirmness, Label: "berry firmness"}),
		Flavors:  NewResource[pokeapi.BerryFlavor](base, Descriptor{Endpoint: pokeapi.EndpointBerryFlavor, Label: "berry flavor"}),
	}
}

// Details fetches a berry and flattens it.
func (s *BerryService) Details(ctx context.Context, identifier string) (*BerryDetails, error) {
	b, err := s.Berries.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return SummarizeBerry(b), nil
}

// SummarizeBerry flattens a berry. Flavors lists only those with potency.
func SummarizeBerry(b *pokeapi.Berry) *BerryDetails {
	d := &BerryDetails{
		ID:               b.ID,
		Name:             b.Name,
		GrowthTime:       b.GrowthTime,
		MaxHarvest:       b.MaxHarvest,
		NaturalGiftPower: b.NaturalGiftPower,
		NaturalGiftType:  b.NaturalGiftType.Name,
		Size:             b.Size,
		Smoothness:       b.Smoothness,
		Firmness:         b.Firmness.Name,
		Flavors:          []string{},
		Potency:          make(map[string]int, len(b.Flavors)),
		Item:             b.Item.Name,
	}
	for _, f := range b.Flavors {
		d.Potency[f.Flavor.Name] = f.Potency
		if f.Potency > 0 {
			d.Flavors = append(d.Flavors, f.Flavor.Name)
		}
	}
	return d
}

// ByFlavor lists the berries that have the flavor with non-zero potency.
func (s *BerryService) ByFlavor(ctx context.Context, flavor string) ([]pokeapi.NamedAPIResource, error) {
	f, err := s.Flavors.Get(ctx, flavor)
	if err != nil {
		return nil, err
	}
	out := make([]pokeapi.NamedAPIResource, 0, len(f.Berries))
	for _, b := range f.Berries {
		if b.Potency > 0 {
			out = append(out, b.Berry)
		}
	}
	return out, nil
}

// ByFirmness lists the berries of a firmness.
func (s *BerryService) ByFirmness(ctx context.Context, firmness string) ([]pokeapi.NamedAPIResource, error) {
	f, err := s.Firmness.Get(ctx, firmness)
	if err != nil {
		return nil, err
	}
	return f.Berries, nil
}
