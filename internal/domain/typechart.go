package domain

// typeNames is the fixed type enumeration. Index+1 is the stable type ID,
// matching the upstream dex numbering. This is the single source of truth
// for the name<->ID bijection; both filtering and hydration go through it.
var typeNames = [...]string{
	"normal",   // 1
	"fighting", // 2
	"flying",   // 3
	"poison",   // 4
	"ground",   // 5
	"rock",     // 6
	"bug",      // 7
	"ghost",    // 8
	"steel",    // 9
	"fire",     // 10
	"water",    // 11
	"grass",    // 12
	"electric", // 13
	"psychic",  // 14
	"ice",      // 15
	"dragon",   // 16
	"dark",     // 17
	"fairy",    // 18
}

var typeIDByName = func() map[string]int {
	m := make(map[string]int, len(typeNames))
	for i, name := range typeNames {
		m[name] = i + 1
	}
	return m
}()

// TypeID resolves a canonical lowercase type name to its stable ID.
func TypeID(name string) (int, bool) {
	id, ok := typeIDByName[name]
	return id, ok
}

// TypeName resolves a stable type ID back to its canonical name.
func TypeName(id int) (string, bool) {
	if id < 1 || id > len(typeNames) {
		return "", false
	}
	return typeNames[id-1], true
}

// AllTypeNames returns the full enumerated type set in ID order.
func AllTypeNames() []string {
	names := make([]string, len(typeNames))
	copy(names, typeNames[:])
	return names
}

// generationUpperBounds[i] is the last dex number of generation i+1.
var generationUpperBounds = []int{151, 251, 386, 493, 649, 721, 809, 905, 1025}

// GenerationCount is the number of known generations.
var GenerationCount = len(generationUpperBounds)

// GenerationForID maps a dex number to its generation. IDs beyond the last
// known range fall into the newest generation.
func GenerationForID(id int) int {
	for gen, upper := range generationUpperBounds {
		if id <= upper {
			return gen + 1
		}
	}
	return len(generationUpperBounds)
}

// effectiveness lists the non-neutral entries of the attack type chart as
// attacking -> defending -> multiplier. Missing entries are 1.0.
var effectiveness = map[string]map[string]float64{
	"normal":   {"rock": 0.5, "ghost": 0, "steel": 0.5},
	"fighting": {"normal": 2, "flying": 0.5, "poison": 0.5, "rock": 2, "bug": 0.5, "ghost": 0, "steel": 2, "psychic": 0.5, "ice": 2, "dark": 2, "fairy": 0.5},
	"flying":   {"fighting": 2, "rock": 0.5, "bug": 2, "steel": 0.5, "grass": 2, "electric": 0.5},
	"poison":   {"poison": 0.5, "ground": 0.5, "rock": 0.5, "ghost": 0.5, "steel": 0, "grass": 2, "fairy": 2},
	"ground":   {"flying": 0, "poison": 2, "rock": 2, "bug": 0.5, "steel": 2, "fire": 2, "grass": 0.5, "electric": 2},
	"rock":     {"fighting": 0.5, "flying": 2, "ground": 0.5, "bug": 2, "steel": 0.5, "fire": 2, "ice": 2},
	"bug":      {"fighting": 0.5, "flying": 0.5, "poison": 0.5, "ghost": 0.5, "steel": 0.5, "fire": 0.5, "grass": 2, "psychic": 2, "dark": 2, "fairy": 0.5},
	"ghost":    {"normal": 0, "ghost": 2, "psychic": 2, "dark": 0.5},
	"steel":    {"rock": 2, "steel": 0.5, "fire": 0.5, "water": 0.5, "electric": 0.5, "ice": 2, "fairy": 2},
	"fire":     {"rock": 0.5, "bug": 2, "steel": 2, "fire": 0.5, "water": 0.5, "grass": 2, "ice": 2, "dragon": 0.5},
	"water":    {"ground": 2, "rock": 2, "fire": 2, "water": 0.5, "grass": 0.5, "dragon": 0.5},
	"grass":    {"flying": 0.5, "poison": 0.5, "ground": 2, "rock": 2, "bug": 0.5, "steel": 0.5, "fire": 0.5, "water": 2, "grass": 0.5, "dragon": 0.5},
	"electric": {"flying": 2, "ground": 0, "water": 2, "grass": 0.5, "electric": 0.5, "dragon": 0.5},
	"psychic":  {"fighting": 2, "poison": 2, "steel": 0.5, "psychic": 0.5, "dark": 0},
	"ice":      {"flying": 2, "ground": 2, "steel": 0.5, "fire": 0.5, "water": 0.5, "grass": 2, "ice": 0.5, "dragon": 2},
	"dragon":   {"steel": 0.5, "dragon": 2, "fairy": 0},
	"dark":     {"fighting": 0.5, "ghost": 2, "psychic": 2, "dark": 0.5, "fairy": 0.5},
	"fairy":    {"fighting": 2, "poison": 0.5, "steel": 0.5, "fire": 0.5, "dragon": 2, "dark": 2},
}

// Effectiveness returns the damage multiplier of an attacking type against a
// single defending type. Unknown names are treated as neutral.
func Effectiveness(attacking, defending string) float64 {
	row, ok := effectiveness[attacking]
	if !ok {
		return 1
	}
	if mult, ok := row[defending]; ok {
		return mult
	}
	return 1
}

// DefensiveMultiplier returns the combined multiplier of an attacking type
// against a defender with the given type combination.
func DefensiveMultiplier(attacking string, defending []string) float64 {
	mult := 1.0
	for _, d := range defending {
		mult *= Effectiveness(attacking, d)
	}
	return mult
}
