package domain_test

import (
	"testing"

	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeLookupBijection(t *testing.T) {
	names := domain.AllTypeNames()
	require.Len(t, names, 18)

	seen := make(map[int]bool)
	for _, name := range names {
		id, ok := domain.TypeID(name)
		require.True(t, ok, "type %q must resolve", name)
		assert.False(t, seen[id], "type ID %d assigned twice", id)
		seen[id] = true

		back, ok := domain.TypeName(id)
		require.True(t, ok)
		assert.Equal(t, name, back)
	}

	_, ok := domain.TypeID("shadow")
	assert.False(t, ok)
	_, ok = domain.TypeName(0)
	assert.False(t, ok)
	_, ok = domain.TypeName(19)
	assert.False(t, ok)
}

func TestGenerationForID(t *testing.T) {
	tests := []struct {
		id   int
		want int
	}{
		{1, 1},
		{151, 1},
		{152, 2},
		{251, 2},
		{252, 3},
		{387, 4},
		{494, 5},
		{650, 6},
		{722, 7},
		{810, 8},
		{906, 9},
		{1025, 9},
		{2000, 9}, // beyond the known ranges
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.GenerationForID(tt.id), "id %d", tt.id)
	}
}

func TestEffectiveness(t *testing.T) {
	assert.Equal(t, 2.0, domain.Effectiveness("water", "fire"))
	assert.Equal(t, 0.5, domain.Effectiveness("fire", "water"))
	assert.Equal(t, 0.0, domain.Effectiveness("normal", "ghost"))
	assert.Equal(t, 1.0, domain.Effectiveness("normal", "fire"))
	assert.Equal(t, 1.0, domain.Effectiveness("unknown", "fire"))
}

func TestDefensiveMultiplier(t *testing.T) {
	// grass/poison takes 0.5 * 1 from water
	assert.Equal(t, 0.5, domain.DefensiveMultiplier("water", []string{"grass", "poison"}))
	// fire/flying takes 2 * 2 from rock
	assert.Equal(t, 4.0, domain.DefensiveMultiplier("rock", []string{"fire", "flying"}))
	// ground vs flying is immune
	assert.Equal(t, 0.0, domain.DefensiveMultiplier("ground", []string{"flying"}))
}

func TestSpeedTierFor(t *testing.T) {
	assert.Equal(t, domain.SpeedTierFast, domain.SpeedTierFor(100))
	assert.Equal(t, domain.SpeedTierMedium, domain.SpeedTierFor(99))
	assert.Equal(t, domain.SpeedTierMedium, domain.SpeedTierFor(60))
	assert.Equal(t, domain.SpeedTierSlow, domain.SpeedTierFor(59))
}
