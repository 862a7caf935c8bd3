package pokeapi

// Endpoint names, one per resource family.
const (
	EndpointAbility            = "ability"
	EndpointBerry              = "berry"
	EndpointBerryFirmness      = "berry-firmness"
	EndpointBerryFlavor        = "berry-flavor"
	EndpointContestType        = "contest-type"
	EndpointContestEffect      = "contest-effect"
	EndpointSuperContestEffect = "super-contest-effect"
	EndpointEncounterMethod    = "encounter-method"
	EndpointEncounterCondition = "encounter-condition"
	EndpointEncounterValue     = "encounter-condition-value"
	EndpointEvolutionChain     = "evolution-chain"
	EndpointEvolutionTrigger   = "evolution-trigger"
	EndpointGeneration         = "generation"
	EndpointPokedex            = "pokedex"
	EndpointVersion            = "version"
	EndpointVersionGroup       = "version-group"
	EndpointItem               = "item"
	EndpointItemAttribute      = "item-attribute"
	EndpointItemCategory       = "item-category"
	EndpointItemPocket         = "item-pocket"
	EndpointLocation           = "location"
	EndpointLocationArea       = "location-area"
	EndpointPalParkArea        = "pal-park-area"
	EndpointRegion             = "region"
	EndpointMachine            = "machine"
	EndpointMove               = "move"
	EndpointMoveAilment        = "move-ailment"
	EndpointMoveDamageClass    = "move-damage-class"
	EndpointPokemon            = "pokemon"
	EndpointPokemonSpecies     = "pokemon-species"
	EndpointPokemonForm        = "pokemon-form"
	EndpointType               = "type"
	EndpointLanguage           = "language"
)

// NamedAPIResource references another resource by name and URL.
type NamedAPIResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// APIResource references another resource by URL only.
type APIResource struct {
	URL string `json:"url"`
}

// NamedAPIResourceList is one page of an endpoint's index.
type NamedAPIResourceList struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []NamedAPIResource `json:"results"`
}

// Name is a localized name.
type Name struct {
	Name     string           `json:"name"`
	Language NamedAPIResource `json:"language"`
}

// Description is a localized description.
type Description struct {
	Description string           `json:"description"`
	Language    NamedAPIResource `json:"language"`
}

// Effect is a localized effect text.
type Effect struct {
	Effect   string           `json:"effect"`
	Language NamedAPIResource `json:"language"`
}

// VerboseEffect is a localized effect with a short form.
type VerboseEffect struct {
	Effect      string           `json:"effect"`
	ShortEffect string           `json:"short_effect"`
	Language    NamedAPIResource `json:"language"`
}

// FlavorText is localized flavor text, optionally tied to a version.
type FlavorText struct {
	FlavorText string            `json:"flavor_text"`
	Language   NamedAPIResource  `json:"language"`
	Version    *NamedAPIResource `json:"version,omitempty"`
}

// GenerationGameIndex is a resource's index within a generation.
type GenerationGameIndex struct {
	GameIndex  int              `json:"game_index"`
	Generation NamedAPIResource `json:"generation"`
}

// VersionGameIndex is a resource's index within a version.
type VersionGameIndex struct {
	GameIndex int              `json:"game_index"`
	Version   NamedAPIResource `json:"version"`
}

// MachineVersionDetail ties a machine to a version group.
type MachineVersionDetail struct {
	Machine      APIResource      `json:"machine"`
	VersionGroup NamedAPIResource `json:"version_group"`
}

// Encounter describes one way to encounter a Pokémon.
type Encounter struct {
	MinLevel        int                `json:"min_level"`
	MaxLevel        int                `json:"max_level"`
	ConditionValues []NamedAPIResource `json:"condition_values"`
	Chance          int                `json:"chance"`
	Method          NamedAPIResource   `json:"method"`
}

// VersionEncounterDetail groups encounters per version.
type VersionEncounterDetail struct {
	Version          NamedAPIResource `json:"version"`
	MaxChance        int              `json:"max_chance"`
	EncounterDetails []Encounter      `json:"encounter_details"`
}

// EnglishName returns the English entry of names, or fallback.
func EnglishName(names []Name, fallback string) string {
	for _, n := range names {
		if n.Language.Name == "en" {
			return n.Name
		}
	}
	return fallback
}

// EnglishEffect returns the English effect and short effect, if any.
func EnglishEffect(entries []VerboseEffect) (effect, short string) {
	for _, e := range entries {
		if e.Language.Name == "en" {
			return e.Effect, e.ShortEffect
		}
	}
	return "", ""
}

// EnglishFlavorText returns the last English flavor text entry.
func EnglishFlavorText(entries []FlavorText) string {
	var text string
	for _, e := range entries {
		if e.Language.Name == "en" {
			text = e.FlavorText
		}
	}
	return text
}
