package service

import (
	"context"

	"github.com/s0up4200/pokedex/pokeapi"
)

// LocationDetails is the flat view of a location.
type LocationDetails struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Region      string   `json:"region,omitempty"`
	Areas       []string `json:"areas"`
}

// LocationService covers locations, areas, regions and Pal Park areas.
type LocationService struct {
	Locations    *Resource[pokeapi.Location]
	Areas        *Resource[pokeapi.LocationArea]
	Regions      *Resource[pokeapi.Region]
	PalParkAreas *Resource[pokeapi.PalParkArea]
}

// NewLocationService creates a LocationService.
func NewLocationService(base *Base) *LocationService {
	return &LocationService{
		Locations:    NewResource[pokeapi.Location](base, Descriptor{Endpoint: pokeapi.EndpointLocation, Label: "location"}),
		Areas:        NewResource[pokeapi.LocationArea](base, Descriptor{Endpoint: pokeapi.EndpointLocationArea, Label: "location area"}),
		Regions:      NewResource[pokeapi.Region](base, Descriptor{Endpoint: pokeapi.EndpointRegion, Label: "region"}),
		PalParkAreas: NewResource[pokeapi.PalParkArea](base, Descriptor{Endpoint: pokeapi.EndpointPalParkArea, Label: "pal park area"}),
	}
}

// Details fetches a location and flattens it.
func (s *LocationService) Details(ctx context.Context, identifier string) (*LocationDetails, error) {
	l, err := s.Locations.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return SummarizeLocation(l), nil
}

// SummarizeLocation flattens a location.
func SummarizeLocation(l *pokeapi.Location) *LocationDetails {
	d := &LocationDetails{
		ID:          l.ID,
		Name:        l.Name,
		DisplayName: pokeapi.EnglishName(l.Names, l.Name),
		Areas:       make([]string, len(l.Areas)),
	}
	if l.Region != nil {
		d.Region = l.Region.Name
	}
	for i, a := range l.Areas {
		d.Areas[i] = a.Name
	}
	return d
}

// ByRegion lists the locations of a region.
func (s *LocationService) ByRegion(ctx context.Context, region string) ([]pokeapi.NamedAPIResource, error) {
	r, err := s.Regions.Get(ctx, region)
	if err != nil {
		return nil, err
	}
	return r.Locations, nil
}
