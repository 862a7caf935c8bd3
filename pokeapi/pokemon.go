package pokeapi

// Pokemon is a single Pokémon as returned by /pokemon/{id}.
type Pokemon struct {
	ID                     int                `json:"id"`
	Name                   string             `json:"name"`
	BaseExperience         int                `json:"base_experience"`
	Height                 int                `json:"height"`
	IsDefault              bool               `json:"is_default"`
	Order                  int                `json:"order"`
	Weight                 int                `json:"weight"`
	Abilities              []PokemonAbility   `json:"abilities"`
	Forms                  []NamedAPIResource `json:"forms"`
	GameIndices            []VersionGameIndex `json:"game_indices"`
	HeldItems              []PokemonHeldItem  `json:"held_items"`
	LocationAreaEncounters string             `json:"location_area_encounters"`
	Moves                  []PokemonMove      `json:"moves"`
	Species                NamedAPIResource   `json:"species"`
	Sprites                PokemonSprites     `json:"sprites"`
	Stats                  []PokemonStat      `json:"stats"`
	Types                  []PokemonType      `json:"types"`
}

// PokemonAbility is an ability slot of a Pokémon.
type PokemonAbility struct {
	IsHidden bool             `json:"is_hidden"`
	Slot     int              `json:"slot"`
	Ability  NamedAPIResource `json:"ability"`
}

// PokemonType is a type slot of a Pokémon.
type PokemonType struct {
	Slot int              `json:"slot"`
	Type NamedAPIResource `json:"type"`
}

// PokemonHeldItem is an item a Pokémon may hold in the wild.
type PokemonHeldItem struct {
	Item NamedAPIResource `json:"item"`
}

// PokemonMove is a move a Pokémon can learn.
type PokemonMove struct {
	Move NamedAPIResource `json:"move"`
}

// PokemonStat is a base stat value.
type PokemonStat struct {
	Stat     NamedAPIResource `json:"stat"`
	Effort   int              `json:"effort"`
	BaseStat int              `json:"base_stat"`
}

// PokemonSprites holds the default sprite URLs.
type PokemonSprites struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
	BackDefault  *string `json:"back_default"`
	BackShiny    *string `json:"back_shiny"`
}

// PokemonSpecies is the species record shared by a Pokémon's forms.
type PokemonSpecies struct {
	ID                 int                `json:"id"`
	Name               string             `json:"name"`
	Order              int                `json:"order"`
	GenderRate         int                `json:"gender_rate"`
	CaptureRate        int                `json:"capture_rate"`
	BaseHappiness      int                `json:"base_happiness"`
	IsBaby             bool               `json:"is_baby"`
	IsLegendary        bool               `json:"is_legendary"`
	IsMythical         bool               `json:"is_mythical"`
	HatchCounter       int                `json:"hatch_counter"`
	GrowthRate         NamedAPIResource   `json:"growth_rate"`
	EggGroups          []NamedAPIResource `json:"egg_groups"`
	Color              NamedAPIResource   `json:"color"`
	Shape              *NamedAPIResource  `json:"shape"`
	EvolvesFromSpecies *NamedAPIResource  `json:"evolves_from_species"`
	EvolutionChain     APIResource        `json:"evolution_chain"`
	Habitat            *NamedAPIResource  `json:"habitat"`
	Generation         NamedAPIResource   `json:"generation"`
	Names              []Name             `json:"names"`
	FlavorTextEntries  []FlavorText       `json:"flavor_text_entries"`
	Genera             []Genus            `json:"genera"`
	Varieties          []SpeciesVariety   `json:"varieties"`
}

// Genus is a localized genus ("Seed Pokémon").
type Genus struct {
	Genus    string           `json:"genus"`
	Language NamedAPIResource `json:"language"`
}

// SpeciesVariety is one Pokémon belonging to a species.
type SpeciesVariety struct {
	IsDefault bool             `json:"is_default"`
	Pokemon   NamedAPIResource `json:"pokemon"`
}

// PokemonForm is a cosmetic or battle form of a Pokémon.
type PokemonForm struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Order        int              `json:"order"`
	FormOrder    int              `json:"form_order"`
	IsDefault    bool             `json:"is_default"`
	IsBattleOnly bool             `json:"is_battle_only"`
	IsMega       bool             `json:"is_mega"`
	FormName     string           `json:"form_name"`
	Pokemon      NamedAPIResource `json:"pokemon"`
	Types        []PokemonType    `json:"types"`
	VersionGroup NamedAPIResource `json:"version_group"`
}

// Type is an elemental type and its damage relations.
type Type struct {
	ID              int                   `json:"id"`
	Name            string                `json:"name"`
	DamageRelations TypeRelations         `json:"damage_relations"`
	GameIndices     []GenerationGameIndex `json:"game_indices"`
	Generation      NamedAPIResource      `json:"generation"`
	MoveDamageClass *NamedAPIResource     `json:"move_damage_class"`
	Names           []Name                `json:"names"`
	Pokemon         []TypePokemon         `json:"pokemon"`
	Moves           []NamedAPIResource    `json:"moves"`
}

// TypeRelations lists the types a type interacts with.
type TypeRelations struct {
	NoDamageTo       []NamedAPIResource `json:"no_damage_to"`
	HalfDamageTo     []NamedAPIResource `json:"half_damage_to"`
	DoubleDamageTo   []NamedAPIResource `json:"double_damage_to"`
	NoDamageFrom     []NamedAPIResource `json:"no_damage_from"`
	HalfDamageFrom   []NamedAPIResource `json:"half_damage_from"`
	DoubleDamageFrom []NamedAPIResource `json:"double_damage_from"`
}

// TypePokemon is a Pokémon that has a type.
type TypePokemon struct {
	Slot    int              `json:"slot"`
	Pokemon NamedAPIResource `json:"pokemon"`
}

// Ability is a Pokémon ability.
type Ability struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	IsMainSeries      bool             `json:"is_main_series"`
	Generation        NamedAPIResource `json:"generation"`
	Names             []Name           `json:"names"`
	EffectEntries     []VerboseEffect  `json:"effect_entries"`
	FlavorTextEntries []FlavorText     `json:"flavor_text_entries"`
	Pokemon           []AbilityPokemon `json:"pokemon"`
}

// AbilityPokemon is a Pokémon that can have an ability.
type AbilityPokemon struct {
	IsHidden bool             `json:"is_hidden"`
	Slot     int              `json:"slot"`
	Pokemon  NamedAPIResource `json:"pokemon"`
}
