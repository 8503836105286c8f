package sqlite

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/dexkit/pokedex-server/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pokemonRepository struct {
	db *gorm.DB
}

func NewPokemonRepository(db *gorm.DB) *pokemonRepository {
	return &pokemonRepository{db: db}
}

func (r *pokemonRepository) UpsertMany(ctx context.Context, pokemon []*domain.Pokemon) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range pokemon {
			err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(p).Error
			if err != nil {
				return err
			}

			// Relation rows are replaced wholesale so re-syncs don't
			// accumulate stale memberships.
			if err := tx.Where("pokemon_id = ?", p.ID).Delete(&domain.PokemonTypeSlot{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pokemon_id = ?", p.ID).Delete(&domain.PokemonStat{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pokemon_id = ?", p.ID).Delete(&domain.PokemonAbility{}).Error; err != nil {
				return err
			}

			if len(p.Types) > 0 {
				if err := tx.Create(p.Types).Error; err != nil {
					return err
				}
			}
			if len(p.Stats) > 0 {
				if err := tx.Create(p.Stats).Error; err != nil {
					return err
				}
			}
			if len(p.Abilities) > 0 {
				if err := tx.Omit(clause.Associations).Create(p.Abilities).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *pokemonRepository) GetAll(ctx context.Context) ([]*domain.Pokemon, error) {
	var pokemon []*domain.Pokemon
	err := withRelations(r.db.WithContext(ctx)).Order("pokemon.id ASC").Find(&pokemon).Error
	if err != nil {
		return nil, err
	}
	return pokemon, nil
}

func (r *pokemonRepository) GetByID(ctx context.Context, id int) (*domain.Pokemon, error) {
	var pokemon domain.Pokemon
	err := withRelations(r.db.WithContext(ctx)).First(&pokemon, "pokemon.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pokemon, nil
}

// FindFiltered applies every populated criteria dimension as a conjunctive
// WHERE predicate and returns the matches hydrated with their relation rows,
// in ascending dex order.
func (r *pokemonRepository) FindFiltered(ctx context.Context, criteria domain.FilterCriteria) ([]*domain.Pokemon, error) {
	q, err := r.filtered(ctx, criteria)
	if err != nil {
		return nil, err
	}

	var pokemon []*domain.Pokemon
	if err := withRelations(q).Order("pokemon.id ASC").Find(&pokemon).Error; err != nil {
		return nil, err
	}
	return pokemon, nil
}

// CountFiltered pushes the same predicate set into a single aggregate query.
func (r *pokemonRepository) CountFiltered(ctx context.Context, criteria domain.FilterCriteria) (int64, error) {
	q, err := r.filtered(ctx, criteria)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FilterOptions reports the selectable filter values: the fixed type
// enumeration plus the generations, stat extents, and ability names observed
// across the whole (unfiltered) store.
func (r *pokemonRepository) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	opts := &domain.FilterOptions{
		Types:      domain.AllTypeNames(),
		StatRanges: make(map[string]domain.StatRange),
	}

	err := r.db.WithContext(ctx).Model(&domain.Pokemon{}).
		Distinct().
		Order("generation ASC").
		Pluck("generation", &opts.Generations).Error
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Name string
		Min  int
		Max  int
	}
	err = r.db.WithContext(ctx).Model(&domain.PokemonStat{}).
		Select("name, MIN(base_value) AS min, MAX(base_value) AS max").
		Group("name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		opts.StatRanges[row.Name] = domain.StatRange{Min: row.Min, Max: row.Max}
	}

	err = r.db.WithContext(ctx).Model(&domain.Ability{}).
		Order("name ASC").
		Pluck("name", &opts.Abilities).Error
	if err != nil {
		return nil, err
	}

	return opts, nil
}

// filtered builds the conjunctive predicate set for the criteria. Names that
// don't resolve (types, abilities, stat names) narrow their dimension to the
// empty set rather than being skipped.
func (r *pokemonRepository) filtered(ctx context.Context, c domain.FilterCriteria) (*gorm.DB, error) {
	q := r.db.WithContext(ctx).Model(&domain.Pokemon{})

	if search := strings.ToLower(strings.TrimSpace(c.SearchText)); search != "" {
		q = q.Where("pokemon.name LIKE ?", "%"+search+"%")
	}

	if len(c.Types) > 0 {
		typeIDs, allResolved := resolveTypeIDs(c.Types)
		switch {
		case c.TypeMode == domain.MatchAll:
			if !allResolved {
				q = q.Where("1 = 0")
				break
			}
			for _, id := range typeIDs {
				q = q.Where("EXISTS (SELECT 1 FROM pokemon_types pt WHERE pt.pokemon_id = pokemon.id AND pt.type_id = ?)", id)
			}
		case len(typeIDs) == 0:
			q = q.Where("1 = 0")
		default:
			q = q.Where("pokemon.id IN (SELECT pokemon_id FROM pokemon_types WHERE type_id IN ?)", typeIDs)
		}
	}

	if len(c.Generations) > 0 {
		q = q.Where("pokemon.generation IN ?", c.Generations)
	}

	for _, name := range sortedStatNames(c.MinStats) {
		q = q.Where(
			"EXISTS (SELECT 1 FROM pokemon_stats ps WHERE ps.pokemon_id = pokemon.id AND ps.name = ? AND ps.base_value >= ?)",
			name, c.MinStats[name],
		)
	}
	for _, name := range sortedStatNames(c.MaxStats) {
		q = q.Where(
			"EXISTS (SELECT 1 FROM pokemon_stats ps WHERE ps.pokemon_id = pokemon.id AND ps.name = ? AND ps.base_value <= ?)",
			name, c.MaxStats[name],
		)
	}

	if c.MinHeightM != nil {
		q = q.Where("pokemon.height_dm >= ?", toTenths(*c.MinHeightM))
	}
	if c.MaxHeightM != nil {
		q = q.Where("pokemon.height_dm <= ?", toTenths(*c.MaxHeightM))
	}
	if c.MinWeightKg != nil {
		q = q.Where("pokemon.weight_hg >= ?", toTenths(*c.MinWeightKg))
	}
	if c.MaxWeightKg != nil {
		q = q.Where("pokemon.weight_hg <= ?", toTenths(*c.MaxWeightKg))
	}

	if c.IsLegendary != nil {
		q = q.Where("pokemon.is_legendary = ?", *c.IsLegendary)
	}
	if c.IsMythical != nil {
		q = q.Where("pokemon.is_mythical = ?", *c.IsMythical)
	}
	if c.IsBaby != nil {
		q = q.Where("pokemon.is_baby = ?", *c.IsBaby)
	}

	if len(c.Abilities) > 0 {
		names := make([]string, 0, len(c.Abilities))
		for _, name := range c.Abilities {
			names = append(names, strings.ToLower(strings.TrimSpace(name)))
		}

		var abilityIDs []int
		err := r.db.WithContext(ctx).Model(&domain.Ability{}).
			Where("name IN ?", names).
			Pluck("id", &abilityIDs).Error
		if err != nil {
			return nil, err
		}

		if len(abilityIDs) == 0 {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("pokemon.id IN (SELECT pokemon_id FROM pokemon_abilities WHERE ability_id IN ?)", abilityIDs)
		}
	}

	return q, nil
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Types", func(db *gorm.DB) *gorm.DB { return db.Order("slot ASC") }).
		Preload("Stats").
		Preload("Abilities", func(db *gorm.DB) *gorm.DB { return db.Order("slot ASC") }).
		Preload("Abilities.Ability")
}

// resolveTypeIDs maps requested type names through the fixed lookup table,
// deduplicating so a tag requested twice behaves like one. allResolved is
// false if any requested name is unknown.
func resolveTypeIDs(names []string) (ids []int, allResolved bool) {
	allResolved = true
	seen := make(map[int]bool, len(names))
	for _, name := range names {
		id, ok := domain.TypeID(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			allResolved = false
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, allResolved
}

func sortedStatNames(bounds map[string]int) []string {
	names := make([]string, 0, len(bounds))
	for name := range bounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// toTenths converts an external-unit measurement (meters, kilograms) to the
// stored tenths unit.
func toTenths(v float64) int {
	return int(math.Round(v * 10))
}
