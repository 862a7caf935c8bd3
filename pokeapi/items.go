package pokeapi

// Item is a held or bag item.
type Item struct {
	ID                int                    `json:"id"`
	Name              string                 `json:"name"`
	Cost              int                    `json:"cost"`
	FlingPower        *int                   `json:"fling_power"`
	FlingEffect       *NamedAPIResource      `json:"fling_effect"`
	Attributes        []NamedAPIResource     `json:"attributes"`
	Category          NamedAPIResource       `json:"category"`
	EffectEntries     []VerboseEffect        `json:"effect_entries"`
	FlavorTextEntries []ItemFlavorText       `json:"flavor_text_entries"`
	GameIndices       []GenerationGameIndex  `json:"game_indices"`
	Names             []Name                 `json:"names"`
	Sprites           ItemSprites            `json:"sprites"`
	HeldByPokemon     []ItemHolderPokemon    `json:"held_by_pokemon"`
	BabyTriggerFor    *APIResource           `json:"baby_trigger_for"`
	Machines          []MachineVersionDetail `json:"machines"`
}

// ItemFlavorText is flavor text keyed by version group.
type ItemFlavorText struct {
	Text         string           `json:"text"`
	Language     NamedAPIResource `json:"language"`
	VersionGroup NamedAPIResource `json:"version_group"`
}

// ItemSprites holds the item sprite URL.
type ItemSprites struct {
	Default *string `json:"default"`
}

// ItemHolderPokemon is a Pokémon that may hold the item.
type ItemHolderPokemon struct {
	Pokemon NamedAPIResource `json:"pokemon"`
}

// ItemAttribute is a property shared by items ("holdable", "consumable").
type ItemAttribute struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Items        []NamedAPIResource `json:"items"`
	Names        []Name             `json:"names"`
	Descriptions []Description      `json:"descriptions"`
}

// ItemCategory groups items in the bag.
type ItemCategory struct {
	ID     int                `json:"id"`
	Name   string             `json:"name"`
	Items  []NamedAPIResource `json:"items"`
	Names  []Name             `json:"names"`
	Pocket NamedAPIResource   `json:"pocket"`
}

// ItemPocket is a bag pocket.
type ItemPocket struct {
	ID         int                `json:"id"`
	Name       string             `json:"name"`
	Categories []NamedAPIResource `json:"categories"`
	Names      []Name             `json:"names"`
}

// Berry is a berry that grows from a tree.
type Berry struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	GrowthTime       int              `json:"growth_time"`
	MaxHarvest       int              `json:"max_harvest"`
	NaturalGiftPower int              `json:"natural_gift_power"`
	Size             int              `json:"size"`
	Smoothness       int              `json:"smoothness"`
	SoilDryness      int              `json:"soil_dryness"`
	Firmness         NamedAPIResource `json:"firmness"`
	Flavors          []BerryFlavorMap `json:"flavors"`
	Item             NamedAPIResource `json:"item"`
	NaturalGiftType  NamedAPIResource `json:"natural_gift_type"`
}

// BerryFlavorMap is one flavor and its potency in a berry.
type BerryFlavorMap struct {
	Potency int              `json:"potency"`
	Flavor  NamedAPIResource `json:"flavor"`
}

// BerryFirmness is how hard a berry is.
type BerryFirmness struct {
	ID      int                `json:"id"`
	Name    string             `json:"name"`
	Berries []NamedAPIResource `json:"berries"`
	Names   []Name             `json:"names"`
}

// BerryFlavor is a berry taste.
type BerryFlavor struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Berries     []FlavorBerryMap `json:"berries"`
	ContestType NamedAPIResource `json:"contest_type"`
	Names       []Name           `json:"names"`
}

// FlavorBerryMap is one berry and its potency for a flavor.
type FlavorBerryMap struct {
	Potency int              `json:"potency"`
	Berry   NamedAPIResource `json:"berry"`
}

// Machine teaches a move through a TM or HM item.
type Machine struct {
	ID           int              `json:"id"`
	Item         NamedAPIResource `json:"item"`
	Move         NamedAPIResource `json:"move"`
	VersionGroup NamedAPIResource `json:"version_group"`
}

// Language is a language the API has text for.
type Language struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Official bool   `json:"official"`
	ISO639   string `json:"iso639"`
	ISO3166  string `json:"iso3166"`
	Names    []Name `json:"names"`
}
