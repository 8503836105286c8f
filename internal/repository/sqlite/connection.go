package sqlite

import (
	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/dexkit/pokedex-server/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Pokemon{},
		&domain.PokemonTypeSlot{},
		&domain.PokemonStat{},
		&domain.Ability{},
		&domain.PokemonAbility{},
		&domain.Team{},
		&domain.TeamMember{},
		&domain.CollectionEntry{},
		&domain.CollectionStats{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:       NewUserRepository(db),
		Session:    NewSessionRepository(db),
		Pokemon:    NewPokemonRepository(db),
		Ability:    NewAbilityRepository(db),
		Team:       NewTeamRepository(db),
		Collection: NewCollectionRepository(db),
	}
}
