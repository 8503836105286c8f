package service

import (
	"context"
	"errors"
	"time"

	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/dexkit/pokedex-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollectionService struct {
	collectionRepo repository.CollectionRepository
	pokemonRepo    repository.PokemonRepository
}

func NewCollectionService(collectionRepo repository.CollectionRepository, pokemonRepo repository.PokemonRepository) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		pokemonRepo:    pokemonRepo,
	}
}

func (s *CollectionService) List(ctx context.Context, userID uuid.UUID) ([]*domain.CollectionEntry, error) {
	return s.collectionRepo.ListByUser(ctx, userID)
}

func (s *CollectionService) SetCaught(ctx context.Context, userID uuid.UUID, pokemonID int, caught bool) (*domain.CollectionEntry, error) {
	entry, err := s.entryFor(ctx, userID, pokemonID)
	if err != nil {
		return nil, err
	}

	entry.Caught = caught
	if caught {
		now := time.Now()
		entry.CaughtAt = &now
	} else {
		entry.CaughtAt = nil
	}
	entry.UpdatedAt = time.Now()

	if err := s.collectionRepo.UpsertEntry(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.refreshStats(ctx, userID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CollectionService) SetFavorite(ctx context.Context, userID uuid.UUID, pokemonID int, favorite bool) (*domain.CollectionEntry, error) {
	entry, err := s.entryFor(ctx, userID, pokemonID)
	if err != nil {
		return nil, err
	}

	entry.Favorite = favorite
	entry.UpdatedAt = time.Now()

	if err := s.collectionRepo.UpsertEntry(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.refreshStats(ctx, userID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CollectionService) Stats(ctx context.Context, userID uuid.UUID) (*domain.CollectionStats, error) {
	stats, err := s.collectionRepo.GetStats(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.CollectionStats{UserID: userID, UpdatedAt: time.Now()}, nil
		}
		return nil, err
	}
	return stats, nil
}

func (s *CollectionService) entryFor(ctx context.Context, userID uuid.UUID, pokemonID int) (*domain.CollectionEntry, error) {
	if _, err := s.pokemonRepo.GetByID(ctx, pokemonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPokemonNotFound
		}
		return nil, err
	}

	entry, err := s.collectionRepo.GetEntry(ctx, userID, pokemonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.CollectionEntry{UserID: userID, PokemonID: pokemonID}, nil
		}
		return nil, err
	}
	return entry, nil
}

// refreshStats recomputes and persists the per-user tally after a mutation.
func (s *CollectionService) refreshStats(ctx context.Context, userID uuid.UUID) error {
	caught, err := s.collectionRepo.CountCaught(ctx, userID)
	if err != nil {
		return err
	}
	favorites, err := s.collectionRepo.CountFavorites(ctx, userID)
	if err != nil {
		return err
	}

	return s.collectionRepo.SaveStats(ctx, &domain.CollectionStats{
		UserID:         userID,
		TotalCaught:    int(caught),
		TotalFavorites: int(favorites),
		UpdatedAt:      time.Now(),
	})
}
