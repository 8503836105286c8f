package domain

// TypeMatchMode selects how multiple requested types combine. It applies to
// the type dimension only; all other dimensions AND together.
type TypeMatchMode string

const (
	MatchAny TypeMatchMode = "any" // at least one requested type
	MatchAll TypeMatchMode = "all" // every requested type
)

// FilterCriteria is a declarative query over the dex. Every field is
// optional; the zero value matches everything. Criteria are immutable inputs
// to the repository and are never persisted.
type FilterCriteria struct {
	SearchText  string        `json:"searchText"`
	Types       []string      `json:"types"`
	TypeMode    TypeMatchMode `json:"typeMode"` // defaults to MatchAny
	Generations []int         `json:"generations"`

	// Per-stat inclusive bounds, keyed by canonical stat name. Each named
	// stat narrows independently of the others.
	MinStats map[string]int `json:"minStats"`
	MaxStats map[string]int `json:"maxStats"`

	// Measurement bounds in external units (meters, kilograms). Stored
	// values are in tenths; conversion happens at query time.
	MinHeightM  *float64 `json:"minHeightM"`
	MaxHeightM  *float64 `json:"maxHeightM"`
	MinWeightKg *float64 `json:"minWeightKg"`
	MaxWeightKg *float64 `json:"maxWeightKg"`

	IsLegendary *bool `json:"isLegendary"`
	IsMythical  *bool `json:"isMythical"`
	IsBaby      *bool `json:"isBaby"`

	// Ability names, match-any only.
	Abilities []string `json:"abilities"`
}

// IsEmpty reports whether the criteria impose no constraint at all.
func (c FilterCriteria) IsEmpty() bool {
	return c.SearchText == "" &&
		len(c.Types) == 0 &&
		len(c.Generations) == 0 &&
		len(c.MinStats) == 0 &&
		len(c.MaxStats) == 0 &&
		c.MinHeightM == nil && c.MaxHeightM == nil &&
		c.MinWeightKg == nil && c.MaxWeightKg == nil &&
		c.IsLegendary == nil && c.IsMythical == nil && c.IsBaby == nil &&
		len(c.Abilities) == 0
}

// StatRange is the observed (min, max) of a stat across the store.
type StatRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterOptions enumerates the selectable filter values. Types come from the
// fixed enumeration; the rest reflect the unfiltered store.
type FilterOptions struct {
	Types       []string             `json:"types"`
	Generations []int                `json:"generations"`
	StatRanges  map[string]StatRange `json:"statRanges"`
	Abilities   []string             `json:"abilities"`
}
