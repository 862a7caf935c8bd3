package pokeapi

// Location is a place in a region.
type Location struct {
	ID          int                   `json:"id"`
	Name        string                `json:"name"`
	Region      *NamedAPIResource     `json:"region"`
	Names       []Name                `json:"names"`
	GameIndices []GenerationGameIndex `json:"game_indices"`
	Areas       []NamedAPIResource    `json:"areas"`
}

// LocationArea is a sub-area of a location with its encounters.
type LocationArea struct {
	ID                int                `json:"id"`
	Name              string             `json:"name"`
	GameIndex         int                `json:"game_index"`
	Location          NamedAPIResource   `json:"location"`
	Names             []Name             `json:"names"`
	PokemonEncounters []PokemonEncounter `json:"pokemon_encounters"`
}

// PokemonEncounter lists how a Pokémon appears in an area.
type PokemonEncounter struct {
	Pokemon        NamedAPIResource         `json:"pokemon"`
	VersionDetails []VersionEncounterDetail `json:"version_details"`
}

// PalParkArea is an area of Pal Park.
type PalParkArea struct {
	ID                int                `json:"id"`
	Name              string             `json:"name"`
	Names             []Name             `json:"names"`
	PokemonEncounters []PalParkEncounter `json:"pokemon_encounters"`
}

// PalParkEncounter is a species found in a Pal Park area.
type PalParkEncounter struct {
	BaseScore      int              `json:"base_score"`
	Rate           int              `json:"rate"`
	PokemonSpecies NamedAPIResource `json:"pokemon_species"`
}

// Region is an organized area of the Pokémon world.
type Region struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	Locations      []NamedAPIResource `json:"locations"`
	MainGeneration *NamedAPIResource  `json:"main_generation"`
	Names          []Name             `json:"names"`
	Pokedexes      []NamedAPIResource `json:"pokedexes"`
	VersionGroups  []NamedAPIResource `json:"version_groups"`
}

// Generation groups games released in the same era.
type Generation struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	Abilities      []NamedAPIResource `json:"abilities"`
	MainRegion     NamedAPIResource   `json:"main_region"`
	Moves          []NamedAPIResource `json:"moves"`
	Names          []Name             `json:"names"`
	PokemonSpecies []NamedAPIResource `json:"pokemon_species"`
	Types          []NamedAPIResource `json:"types"`
	VersionGroups  []NamedAPIResource `json:"version_groups"`
}

// Pokedex is a regional or national dex.
type Pokedex struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	IsMainSeries   bool               `json:"is_main_series"`
	Descriptions   []Description      `json:"descriptions"`
	Names          []Name             `json:"names"`
	PokemonEntries []PokemonEntry     `json:"pokemon_entries"`
	Region         *NamedAPIResource  `json:"region"`
	VersionGroups  []NamedAPIResource `json:"version_groups"`
}

// PokemonEntry is a species and its number in a dex.
type PokemonEntry struct {
	EntryNumber    int              `json:"entry_number"`
	PokemonSpecies NamedAPIResource `json:"pokemon_species"`
}

// Version is a single game release.
type Version struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Names        []Name           `json:"names"`
	VersionGroup NamedAPIResource `json:"version_group"`
}

// VersionGroup groups closely related versions.
type VersionGroup struct {
	ID               int                `json:"id"`
	Name             string             `json:"name"`
	Order            int                `json:"order"`
	Generation       NamedAPIResource   `json:"generation"`
	MoveLearnMethods []NamedAPIResource `json:"move_learn_methods"`
	Pokedexes        []NamedAPIResource `json:"pokedexes"`
	Regions          []NamedAPIResource `json:"regions"`
	Versions         []NamedAPIResource `json:"versions"`
}

// EncounterMethod is how a player can encounter a Pokémon.
type EncounterMethod struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
	Names []Name `json:"names"`
}

// EncounterCondition affects which Pokémon appear.
type EncounterCondition struct {
	ID     int                `json:"id"`
	Name   string             `json:"name"`
	Names  []Name             `json:"names"`
	Values []NamedAPIResource `json:"values"`
}

// EncounterConditionValue is one state of a condition.
type EncounterConditionValue struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Condition NamedAPIResource `json:"condition"`
	Names     []Name           `json:"names"`
}

// EvolutionChain is the tree of species linked by evolution.
type EvolutionChain struct {
	ID              int               `json:"id"`
	BabyTriggerItem *NamedAPIResource `json:"baby_trigger_item"`
	Chain           ChainLink         `json:"chain"`
}

// ChainLink is one node of an evolution chain.
type ChainLink struct {
	IsBaby           bool              `json:"is_baby"`
	Species          NamedAPIResource  `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionDetail is a condition for evolving into a species.
type EvolutionDetail struct {
	Item         *NamedAPIResource `json:"item"`
	Trigger      NamedAPIResource  `json:"trigger"`
	HeldItem     *NamedAPIResource `json:"held_item"`
	KnownMove    *NamedAPIResource `json:"known_move"`
	Location     *NamedAPIResource `json:"location"`
	MinLevel     *int              `json:"min_level"`
	MinHappiness *int              `json:"min_happiness"`
	TimeOfDay    string            `json:"time_of_day"`
}

// EvolutionTrigger is an event that causes evolution.
type EvolutionTrigger struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	Names          []Name             `json:"names"`
	PokemonSpecies []NamedAPIResource `json:"pokemon_species"`
}
