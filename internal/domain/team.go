package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTeamSize is the battle-team member limit.
const MaxTeamSize = 6

type Team struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:uuid;index;not null"`
	Name      string       `json:"name" gorm:"not null"`
	Members   []TeamMember `json:"members" gorm:"foreignKey:TeamID"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type TeamMember struct {
	TeamID    uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	PokemonID int       `json:"pokemonId" gorm:"primaryKey;autoIncrement:false"`
	Position  int       `json:"position" gorm:"not null"` // 1..MaxTeamSize
	Pokemon   *Pokemon  `json:"pokemon,omitempty" gorm:"foreignKey:PokemonID"`
}

// Speed tier buckets used by team analysis.
type SpeedTier string

const (
	SpeedTierFast   SpeedTier = "fast"   // base speed >= 100
	SpeedTierMedium SpeedTier = "medium" // 60..99
	SpeedTierSlow   SpeedTier = "slow"   // < 60
)

// SpeedTierFor buckets a base speed value.
func SpeedTierFor(speed int) SpeedTier {
	switch {
	case speed >= 100:
		return SpeedTierFast
	case speed >= 60:
		return SpeedTierMedium
	default:
		return SpeedTierSlow
	}
}

// SpeedEntry is one team member's placement in the speed ordering.
type SpeedEntry struct {
	PokemonID int       `json:"pokemonId"`
	Name      string    `json:"name"`
	Speed     int       `json:"speed"`
	Tier      SpeedTier `json:"tier"`
}

// TeamAnalysis aggregates simple arithmetic over a team's members.
type TeamAnalysis struct {
	TeamID            uuid.UUID    `json:"teamId"`
	SynergyScore      float64      `json:"synergyScore"` // 0..100
	OffensiveCoverage []string     `json:"offensiveCoverage"`
	UncoveredTypes    []string     `json:"uncoveredTypes"`
	ResistedTypes     []string     `json:"resistedTypes"`
	SharedWeaknesses  []string     `json:"sharedWeaknesses"`
	SpeedTiers        []SpeedEntry `json:"speedTiers"`
}
