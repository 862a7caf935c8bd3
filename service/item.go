package service

import (
	"context"

	"github.com/s0up4200/pokedex/pokeapi"
)

// ItemDetails is the flat view of an item.
type ItemDetails struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Cost        int      `json:"cost"`
	FlingPower  *int     `json:"fling_power"`
	Category    string   `json:"category"`
	Attributes  []string `json:"attributes"`
	Effect      string   `json:"effect"`
	ShortEffect string   `json:"short_effect"`
	Sprite      string   `json:"sprite,omitempty"`
	HeldBy      []string `json:"held_by"`
}

// ItemService covers items, categories, attributes and pockets.
type ItemService struct {
	Items      *Resource[pokeapi.Item]
	Categories *Resource[pokeapi.ItemCategory]
	Attributes *Resource[pokeapi.ItemAttribute]
	Pockets    *Resource[pokeapi.ItemPocket]
}

// NewItemService creates an ItemService.
func NewItemService(base *Base) *ItemService {
	return &ItemService{
		Items:      NewResource[pokeapi.Item](base, Descriptor{Endpoint: pokeapi.EndpointItem, Label: "item"}),
		Categories: NewResource[pokeapi.ItemCategory](base, Descriptor{Endpoint: pokeapi.EndpointItemCategory, Label: "item category"}),
		Attributes: NewResource[pokeapi.ItemAttribute](base, Descriptor{Endpoint: pokeapi.EndpointItemAttribute, Label: "item attribute"}),
		Pockets:    NewResource[pokeapi.ItemPocket](base, Descriptor{Endpoint: pokeapi.EndpointItemPocket, Label: "item pocket"}),
	}
}

// Details fetches an item and flattens it.
func (s *ItemService) Details(ctx context.Context, identifier string) (*ItemDetails, error) {
	it, err := s.Items.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return SummarizeItem(it), nil
}

// SummarizeItem flattens an item.
func SummarizeItem(it *pokeapi.Item) *ItemDetails {
	effect, short := pokeapi.EnglishEffect(it.EffectEntries)
	d := &ItemDetails{
		ID:          it.ID,
		Name:        it.Name,
		DisplayName: pokeapi.EnglishName(it.Names, it.Name),
		Cost:        it.Cost,
		FlingPower:  it.FlingPower,
		Category:    it.Category.Name,
		Attributes:  make([]string, len(it.Attributes)),
		Effect:      effect,
		ShortEffect: short,
		HeldBy:      make([]string, len(it.HeldByPokemon)),
	}
	for i, a := range it.Attributes {
		d.Attributes[i] = a.Name
	}
	for i, h := range it.HeldByPokemon {
		d.HeldBy[i] = h.Pokemon.Name
	}
	if it.Sprites.Default != nil {
		d.Sprite = *it.Sprites.Default
	}
	return d
}

// ByCategory lists the items of a category.
func (s *ItemService) ByCategory(ctx context.Context, category string) ([]pokeapi.NamedAPIResource, error) {
	c, err := s.Categories.Get(ctx, category)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

// ByAttribute lists the items with an attribute.
func (s *ItemService) ByAttribute(ctx context.Context, attribute string) ([]pokeapi.NamedAPIResource, error) {
	a, err := s.Attributes.Get(ctx, attribute)
	if err != nil {
		return nil, err
	}
	return a.Items, nil
}
