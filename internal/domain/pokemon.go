package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Canonical base stat names, matching the upstream dex data.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// StatNames lists the six base stats in display order.
var StatNames = []string{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

type Pokemon struct {
	ID           int               `json:"id" gorm:"primaryKey"`             // National dex number
	Name         string            `json:"name" gorm:"uniqueIndex;not null"` // lowercase, e.g. "bulbasaur"
	Generation   int               `json:"generation" gorm:"index;not null"`
	HeightDm     int               `json:"heightDm" gorm:"not null"` // decimeters
	WeightHg     int               `json:"weightHg" gorm:"not null"` // hectograms
	IsLegendary  bool              `json:"isLegendary"`
	IsMythical   bool              `json:"isMythical"`
	IsBaby       bool              `json:"isBaby"`
	SpriteURL    string            `json:"spriteUrl"`
	EggGroups    datatypes.JSON    `json:"eggGroups" gorm:"type:json"` // ["monster", "grass"]
	Types        []PokemonTypeSlot `json:"types" gorm:"foreignKey:PokemonID"`
	Stats        []PokemonStat     `json:"stats" gorm:"foreignKey:PokemonID"`
	Abilities    []PokemonAbility  `json:"abilities" gorm:"foreignKey:PokemonID"`
	LastSyncedAt time.Time         `json:"lastSyncedAt"`
}

func (Pokemon) TableName() string { return "pokemon" }

// HeightMeters converts the stored decimeter value to meters.
func (p *Pokemon) HeightMeters() float64 { return float64(p.HeightDm) / 10 }

// WeightKilograms converts the stored hectogram value to kilograms.
func (p *Pokemon) WeightKilograms() float64 { return float64(p.WeightHg) / 10 }

// Stat returns the base value for a named stat.
func (p *Pokemon) Stat(name string) (int, bool) {
	for _, s := range p.Stats {
		if s.Name == name {
			return s.BaseValue, true
		}
	}
	return 0, false
}

// TypeNames returns the pokemon's type names ordered by slot.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for slot := 1; slot <= 2; slot++ {
		for _, ts := range p.Types {
			if ts.Slot == slot {
				if name, ok := TypeName(ts.TypeID); ok {
					names = append(names, name)
				}
			}
		}
	}
	return names
}

// PokemonTypeSlot relates a pokemon to one of its types. Slot 1 is the
// primary type, slot 2 the secondary.
type PokemonTypeSlot struct {
	PokemonID int `json:"-" gorm:"primaryKey;autoIncrement:false"`
	TypeID    int `json:"typeId" gorm:"primaryKey;autoIncrement:false"`
	Slot      int `json:"slot" gorm:"not null"`
}

func (PokemonTypeSlot) TableName() string { return "pokemon_types" }

// PokemonStat holds one named base stat, conventionally in [0, 255].
type PokemonStat struct {
	PokemonID int    `json:"-" gorm:"primaryKey;autoIncrement:false"`
	Name      string `json:"name" gorm:"primaryKey"`
	BaseValue int    `json:"baseValue" gorm:"not null"`
}

func (PokemonStat) TableName() string { return "pokemon_stats" }

// Ability is a named capability tag, e.g. "overgrow".
type Ability struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Ability) TableName() string { return "abilities" }

// PokemonAbility relates a pokemon to an ability.
type PokemonAbility struct {
	PokemonID int     `json:"-" gorm:"primaryKey;autoIncrement:false"`
	AbilityID int     `json:"abilityId" gorm:"primaryKey;autoIncrement:false"`
	Slot      int     `json:"slot"`
	IsHidden  bool    `json:"isHidden"`
	Ability   Ability `json:"ability" gorm:"foreignKey:AbilityID"`
}

func (PokemonAbility) TableName() string { return "pokemon_abilities" }
