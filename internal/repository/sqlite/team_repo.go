package sqlite

import (
	"context"

	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *teamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(team).Error
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Members.Pokemon", withRelations).
		First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Team, error) {
	var teams []*domain.Team
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Members.Pokemon", withRelations).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) Update(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(team).Error
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&domain.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Team{}, "id = ?", id).Error
	})
}

func (r *teamRepository) AddMember(ctx context.Context, member *domain.TeamMember) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID uuid.UUID, pokemonID int) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND pokemon_id = ?", teamID, pokemonID).
		Delete(&domain.TeamMember{}).Error
}
