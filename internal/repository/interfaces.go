package repository

import (
	"context"

	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type PokemonRepository interface {
	UpsertMany(ctx context.Context, pokemon []*domain.Pokemon) error
	GetAll(ctx context.Context) ([]*domain.Pokemon, error)
	GetByID(ctx context.Context, id int) (*domain.Pokemon, error)
	FindFiltered(ctx context.Context, criteria domain.FilterCriteria) ([]*domain.Pokemon, error)
	CountFiltered(ctx context.Context, criteria domain.FilterCriteria) (int64, error)
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
}

type AbilityRepository interface {
	UpsertMany(ctx context.Context, abilities []*domain.Ability) error
	GetAll(ctx context.Context) ([]*domain.Ability, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, member *domain.TeamMember) error
	RemoveMember(ctx context.Context, teamID uuid.UUID, pokemonID int) error
}

type CollectionRepository interface {
	GetEntry(ctx context.Context, userID uuid.UUID, pokemonID int) (*domain.CollectionEntry, error)
	UpsertEntry(ctx context.Context, entry *domain.CollectionEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CollectionEntry, error)
	CountCaught(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*domain.CollectionStats, error)
	SaveStats(ctx context.Context, stats *domain.CollectionStats) error
}

type Repositories struct {
	User       UserRepository
	Session    SessionRepository
	Pokemon    PokemonRepository
	Ability    AbilityRepository
	Team       TeamRepository
	Collection CollectionRepository
}
