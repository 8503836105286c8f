package sqlite_test

import (
	"context"
	"testing"

	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/dexkit/pokedex-server/internal/repository/sqlite"
	"github.com/dexkit/pokedex-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Seeded dex numbers, ascending: bulbasaur 1, charmander 4, squirtle 7,
// pikachu 25, gengar 94, snorlax 143, mewtwo 150, mew 151, cyndaquil 155,
// pichu 172, lucario 448.
var seededIDs = []int{1, 4, 7, 25, 94, 143, 150, 151, 155, 172, 448}

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestPokemonRepository_FindFiltered(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewPokemonRepository(testDB.DB)
	ctx := context.Background()

	testutil.SeedPokedex(t, testDB.DB)

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		want     []int
	}{
		{
			name:     "empty criteria returns everything in dex order",
			criteria: domain.FilterCriteria{},
			want:     seededIDs,
		},
		{
			name:     "search by substring",
			criteria: domain.FilterCriteria{SearchText: "char"},
			want:     []int{4},
		},
		{
			name:     "search is case insensitive",
			criteria: domain.FilterCriteria{SearchText: "  MEW "},
			want:     []int{150, 151},
		},
		{
			name:     "search with no matches",
			criteria: domain.FilterCriteria{SearchText: "zzz"},
			want:     []int{},
		},
		{
			name:     "types match-any",
			criteria: domain.FilterCriteria{Types: []string{"grass", "water"}},
			want:     []int{1, 7},
		},
		{
			name:     "types match-any includes partial overlap",
			criteria: domain.FilterCriteria{Types: []string{"grass", "poison"}},
			want:     []int{1, 94},
		},
		{
			name:     "types match-all requires every tag",
			criteria: domain.FilterCriteria{Types: []string{"grass", "poison"}, TypeMode: domain.MatchAll},
			want:     []int{1},
		},
		{
			name:     "types match-all with duplicate tag behaves like one",
			criteria: domain.FilterCriteria{Types: []string{"fire", "fire"}, TypeMode: domain.MatchAll},
			want:     []int{4, 155},
		},
		{
			name:     "types match-all with impossible combination",
			criteria: domain.FilterCriteria{Types: []string{"fire", "water"}, TypeMode: domain.MatchAll},
			want:     []int{},
		},
		{
			name:     "unknown type name fails closed",
			criteria: domain.FilterCriteria{Types: []string{"shadow"}},
			want:     []int{},
		},
		{
			name:     "unknown type name fails closed in match-all",
			criteria: domain.FilterCriteria{Types: []string{"fire", "shadow"}, TypeMode: domain.MatchAll},
			want:     []int{},
		},
		{
			name:     "generation filter",
			criteria: domain.FilterCriteria{Generations: []int{2}},
			want:     []int{155, 172},
		},
		{
			name:     "multiple generations",
			criteria: domain.FilterCriteria{Generations: []int{2, 4}},
			want:     []int{155, 172, 448},
		},
		{
			name:     "stat minimum is inclusive",
			criteria: domain.FilterCriteria{MinStats: map[string]int{domain.StatSpeed: 100}},
			want:     []int{94, 150, 151},
		},
		{
			name:     "stat maximum is inclusive",
			criteria: domain.FilterCriteria{MaxStats: map[string]int{domain.StatSpeed: 45}},
			want:     []int{1, 7, 143},
		},
		{
			name: "independent stat bounds combine conjunctively",
			criteria: domain.FilterCriteria{
				MinStats: map[string]int{domain.StatAttack: 100},
				MaxStats: map[string]int{domain.StatSpeed: 90},
			},
			want: []int{448},
		},
		{
			name:     "unknown stat name fails closed",
			criteria: domain.FilterCriteria{MinStats: map[string]int{"luck": 1}},
			want:     []int{},
		},
		{
			name:     "minimum height in meters",
			criteria: domain.FilterCriteria{MinHeightM: floatPtr(1.0)},
			want:     []int{94, 143, 150, 448},
		},
		{
			name:     "maximum weight in kilograms",
			criteria: domain.FilterCriteria{MaxWeightKg: floatPtr(8.0)},
			want:     []int{1, 25, 151, 155, 172},
		},
		{
			name:     "legendary flag matches exactly",
			criteria: domain.FilterCriteria{IsLegendary: boolPtr(true)},
			want:     []int{150},
		},
		{
			name:     "mythical false excludes only mythicals",
			criteria: domain.FilterCriteria{IsMythical: boolPtr(false)},
			want:     []int{1, 4, 7, 25, 94, 143, 150, 155, 172, 448},
		},
		{
			name:     "baby flag",
			criteria: domain.FilterCriteria{IsBaby: boolPtr(true)},
			want:     []int{172},
		},
		{
			name:     "single ability",
			criteria: domain.FilterCriteria{Abilities: []string{"blaze"}},
			want:     []int{4, 155},
		},
		{
			name:     "abilities are match-any",
			criteria: domain.FilterCriteria{Abilities: []string{"blaze", "torrent"}},
			want:     []int{4, 7, 155},
		},
		{
			name:     "unresolvable ability name fails closed",
			criteria: domain.FilterCriteria{Abilities: []string{"no-such-ability"}},
			want:     []int{},
		},
		{
			name: "dimensions narrow conjunctively",
			criteria: domain.FilterCriteria{
				Types:       []string{"fire", "electric"},
				Generations: []int{1},
				MinStats:    map[string]int{domain.StatSpeed: 70},
			},
			want: []int{25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindFiltered(ctx, tt.criteria)
			require.NoError(t, err)
			testutil.AssertPokemonIDs(t, got, tt.want...)

			count, err := repo.CountFiltered(ctx, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, int64(len(got)), count, "count must match materialized length")
		})
	}
}

func TestPokemonRepository_FindFiltered_Idempotent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewPokemonRepository(testDB.DB)
	ctx := context.Background()

	testutil.SeedPokedex(t, testDB.DB)

	criteria := domain.FilterCriteria{Types: []string{"fire", "electric"}}

	first, err := repo.FindFiltered(ctx, criteria)
	require.NoError(t, err)
	second, err := repo.FindFiltered(ctx, criteria)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestPokemonRepository_FindFiltered_MonotonicNarrowing(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewPokemonRepository(testDB.DB)
	ctx := context.Background()

	testutil.SeedPokedex(t, testDB.DB)

	base := domain.FilterCriteria{Types: []string{"fire", "electric", "water"}}
	narrowed := base
	narrowed.MinStats = map[string]int{domain.StatSpeed: 65}

	broad, err := repo.FindFiltered(ctx, base)
	require.NoError(t, err)
	narrow, err := repo.FindFiltered(ctx, narrowed)
	require.NoError(t, err)

	broadIDs := make(map[int]bool, len(broad))
	for _, p := range broad {
		broadIDs[p.ID] = true
	}
	assert.Less(t, len(narrow), len(broad))
	for _, p := range narrow {
		assert.True(t, broadIDs[p.ID], "narrowed result %d missing from broader result", p.ID)
	}
}

func TestPokemonRepository_MeasurementUnitConversion(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewPokemonRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewPokemonBuilder().WithID(9001).WithName("exactly-one-meter").WithHeightDm(10).Build(t, testDB.DB)
	testutil.NewPokemonBuilder().WithID(9002).WithName("just-under").WithHeightDm(9).Build(t, testDB.DB)

	got, err := repo.FindFiltered(ctx, domain.FilterCriteria{MinHeightM: floatPtr(1.0)})
	require.NoError(t, err)
	testutil.AssertPokemonIDs(t, got, 9001)
}

func TestPokemonRepository_Hydration(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewPokemonRepository(testDB.DB)
	ctx := context.Background()

	testutil.SeedPokedex(t, testDB.DB)

	bulbasaur, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "bulbasaur", bulbasaur.Name)
	assert.Equal(t, []string{"grass", "poison"}, bulbasaur.TypeNames())
	assert.Len(t, bulbasaur.Stats, 6)

	speed, ok := bulbasaur.Stat(domain.StatSpeed)
	require.True(t, ok)
	assert.Equal(t, 45, speed)

	require.Len(t, bulbasaur.Abilities, 2)
	assert.Equal(t, "overgrow", bulbasaur.Abilities[0].Ability.Name)

	// Hydration is identical when the row arrives through a filter.
	filtered, err := repo.FindFiltered(ctx, domain.FilterCriteria{SearchText: "bulbasaur"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, bulbasaur.TypeNames(), filtered[0].TypeNames())
	assert.Len(t, filtered[0].Stats, 6)
}

func TestPokemonRepository_GetByID_NotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewPokemonRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 99999)
	assert.Error(t, err)
}

func TestPokemonRepository_FilterOptions(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewPokemonRepository(testDB.DB)
	ctx := context.Background()

	testutil.SeedPokedex(t, testDB.DB)

	opts, err := repo.FilterOptions(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.AllTypeNames(), opts.Types, "types come from the fixed enumeration")
	assert.Equal(t, []int{1, 2, 4}, opts.Generations)

	speedRange, ok := opts.StatRanges[domain.StatSpeed]
	require.True(t, ok)
	assert.Equal(t, 30, speedRange.Min)
	assert.Equal(t, 130, speedRange.Max)

	assert.Contains(t, opts.Abilities, "blaze")
	assert.Contains(t, opts.Abilities, "torrent")
	assert.IsIncreasing(t, opts.Abilities)
}

func TestPokemonRepository_UpsertMany_ReplacesRelations(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewPokemonRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewPokemonBuilder().WithID(133).WithName("eevee").WithTypes("normal").
		WithAbilities("run-away").Build(t, testDB.DB)

	// Re-sync the same pokemon with a changed type set.
	updated := testutil.NewPokemonBuilder().WithID(133).WithName("eevee").WithTypes("fairy")

	got := updated.Build(t, testDB.DB)
	require.Equal(t, 133, got.ID)

	reloaded, err := repo.GetByID(ctx, 133)
	require.NoError(t, err)
	assert.Equal(t, []string{"fairy"}, reloaded.TypeNames(), "stale type rows must not accumulate")
	assert.Len(t, reloaded.Stats, 6)
}
