package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectionEntry marks a pokemon as caught and/or favorited by a user.
type CollectionEntry struct {
	UserID    uuid.UUID  `json:"userId" gorm:"type:uuid;primaryKey"`
	PokemonID int        `json:"pokemonId" gorm:"primaryKey;autoIncrement:false"`
	Caught    bool       `json:"caught"`
	Favorite  bool       `json:"favorite"`
	CaughtAt  *time.Time `json:"caughtAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CollectionStats is the persisted per-user tally, recomputed by the
// collection service on every mutation.
type CollectionStats struct {
	UserID         uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	TotalCaught    int       `json:"totalCaught"`
	TotalFavorites int       `json:"totalFavorites"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
