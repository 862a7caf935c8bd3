package pokeapi

// Move is a battle move.
type Move struct {
	ID                 int                    `json:"id"`
	Name               string                 `json:"name"`
	Accuracy           *int                   `json:"accuracy"`
	EffectChance       *int                   `json:"effect_chance"`
	PP                 *int                   `json:"pp"`
	Priority           int                    `json:"priority"`
	Power              *int                   `json:"power"`
	DamageClass        NamedAPIResource       `json:"damage_class"`
	EffectEntries      []VerboseEffect        `json:"effect_entries"`
	FlavorTextEntries  []MoveFlavorText       `json:"flavor_text_entries"`
	Generation         NamedAPIResource       `json:"generation"`
	Machines           []MachineVersionDetail `json:"machines"`
	Meta               *MoveMetaData          `json:"meta"`
	Names              []Name                 `json:"names"`
	Target             NamedAPIResource       `json:"target"`
	Type               NamedAPIResource       `json:"type"`
	ContestType        *NamedAPIResource      `json:"contest_type"`
	ContestEffect      *APIResource           `json:"contest_effect"`
	SuperContestEffect *APIResource           `json:"super_contest_effect"`
	LearnedByPokemon   []NamedAPIResource     `json:"learned_by_pokemon"`
}

// MoveFlavorText is flavor text keyed by version group.
type MoveFlavorText struct {
	FlavorText   string           `json:"flavor_text"`
	Language     NamedAPIResource `json:"language"`
	VersionGroup NamedAPIResource `json:"version_group"`
}

// MoveMetaData holds secondary move data.
type MoveMetaData struct {
	Ailment       NamedAPIResource `json:"ailment"`
	Category      NamedAPIResource `json:"category"`
	MinHits       *int             `json:"min_hits"`
	MaxHits       *int             `json:"max_hits"`
	Drain         int              `json:"drain"`
	Healing       int              `json:"healing"`
	CritRate      int              `json:"crit_rate"`
	AilmentChance int              `json:"ailment_chance"`
	FlinchChance  int              `json:"flinch_chance"`
	StatChance    int              `json:"stat_chance"`
}

// MoveDamageClass is physical, special or status.
type MoveDamageClass struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Descriptions []Description      `json:"descriptions"`
	Moves        []NamedAPIResource `json:"moves"`
	Names        []Name             `json:"names"`
}

// MoveAilment is a status condition a move can inflict.
type MoveAilment struct {
	ID    int                `json:"id"`
	Name  string             `json:"name"`
	Moves []NamedAPIResource `json:"moves"`
	Names []Name             `json:"names"`
}

// ContestType is a contest category such as "cool".
type ContestType struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	BerryFlavor NamedAPIResource `json:"berry_flavor"`
	Names       []ContestName    `json:"names"`
}

// ContestName is a localized contest type name and color.
type ContestName struct {
	Name     string           `json:"name"`
	Color    string           `json:"color"`
	Language NamedAPIResource `json:"language"`
}

// ContestEffect is the effect a move has in a contest.
type ContestEffect struct {
	ID                int          `json:"id"`
	Appeal            int          `json:"appeal"`
	Jam               int          `json:"jam"`
	EffectEntries     []Effect     `json:"effect_entries"`
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
}

// SuperContestEffect is the effect a move has in a super contest.
type SuperContestEffect struct {
	ID                int                `json:"id"`
	Appeal            int                `json:"appeal"`
	FlavorTextEntries []FlavorText       `json:"flavor_text_entries"`
	Moves             []NamedAPIResource `json:"moves"`
}
