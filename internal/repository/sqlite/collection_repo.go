package sqlite

import (
	"context"

	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *collectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) GetEntry(ctx context.Context, userID uuid.UUID, pokemonID int) (*domain.CollectionEntry, error) {
	var entry domain.CollectionEntry
	err := r.db.WithContext(ctx).First(&entry, "user_id = ? AND pokemon_id = ?", userID, pokemonID).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *collectionRepository) UpsertEntry(ctx context.Context, entry *domain.CollectionEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "pokemon_id"}},
		UpdateAll: true,
	}).Create(entry).Error
}

func (r *collectionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CollectionEntry, error) {
	var entries []*domain.CollectionEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("pokemon_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *collectionRepository) CountCaught(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CollectionEntry{}).
		Where("user_id = ? AND caught = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *collectionRepository) CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CollectionEntry{}).
		Where("user_id = ? AND favorite = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *collectionRepository) GetStats(ctx context.Context, userID uuid.UUID) (*domain.CollectionStats, error) {
	var stats domain.CollectionStats
	err := r.db.WithContext(ctx).First(&stats, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *collectionRepository) SaveStats(ctx context.Context, stats *domain.CollectionStats) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(stats).Error
}
