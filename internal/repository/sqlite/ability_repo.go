package sqlite

import (
	"context"

	"github.com/dexkit/pokedex-server/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type abilityRepository struct {
	db *gorm.DB
}

func NewAbilityRepository(db *gorm.DB) *abilityRepository {
	return &abilityRepository{db: db}
}

func (r *abilityRepository) UpsertMany(ctx context.Context, abilities []*domain.Ability) error {
	if len(abilities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(abilities).Error
}

func (r *abilityRepository) GetAll(ctx context.Context) ([]*domain.Ability, error) {
	var abilities []*domain.Ability
	err := r.db.WithContext(ctx).Order("name ASC").Find(&abilities).Error
	if err != nil {
		return nil, err
	}
	return abilities, nil
}
