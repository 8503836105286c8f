package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dexkit/pokedex-server/internal/api/handlers"
	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/dexkit/pokedex-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postFilter(t *testing.T, ts *testutil.TestServer, path string, criteria map[string]interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(criteria)
	require.NoError(t, err)

	resp, err := http.Post(ts.APIURL(path), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	return resp
}

func TestPokemonHandler_Filter(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedPokedex(t, ts.DB.DB)

	tests := []struct {
		name     string
		criteria map[string]interface{}
		wantIDs  []int
	}{
		{
			name:     "empty criteria returns the whole dex",
			criteria: map[string]interface{}{},
			wantIDs:  []int{1, 4, 7, 25, 94, 143, 150, 151, 155, 172, 448},
		},
		{
			name: "types and stats combine",
			criteria: map[string]interface{}{
				"types":    []string{"fire", "electric"},
				"minStats": map[string]int{"speed": 70},
			},
			wantIDs: []int{25},
		},
		{
			name: "match-all type mode over the wire",
			criteria: map[string]interface{}{
				"types":    []string{"grass", "poison"},
				"typeMode": "all",
			},
			wantIDs: []int{1},
		},
		{
			name: "measurement bounds in display units",
			criteria: map[string]interface{}{
				"maxWeightKg": 8.0,
			},
			wantIDs: []int{1, 25, 151, 155, 172},
		},
		{
			name: "rarity flag",
			criteria: map[string]interface{}{
				"isLegendary": true,
			},
			wantIDs: []int{150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postFilter(t, ts, "/pokemon/filter", tt.criteria)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, http.StatusOK)

			var result handlers.PokemonListResponse
			testutil.AssertJSONResponse(t, resp, &result)

			gotIDs := make([]int, len(result.Pokemon))
			for i, p := range result.Pokemon {
				gotIDs[i] = p.ID
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
			assert.Equal(t, len(tt.wantIDs), result.Count)

			// The count endpoint agrees with the materialized list.
			countResp := postFilter(t, ts, "/pokemon/filter/count", tt.criteria)
			defer countResp.Body.Close()

			var count handlers.CountResponse
			testutil.AssertJSONResponse(t, countResp, &count)
			assert.Equal(t, int64(len(tt.wantIDs)), count.Count)
		})
	}
}

func TestPokemonHandler_Filter_InvalidBody(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Post(ts.APIURL("/pokemon/filter"), "application/json", bytes.NewBufferString("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestPokemonHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedPokedex(t, ts.DB.DB)

	resp, err := http.Get(ts.APIURL("/pokemon/94"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result handlers.PokemonResponse
	testutil.AssertJSONResponse(t, resp, &result)

	assert.Equal(t, 94, result.ID)
	assert.Equal(t, "gengar", result.Name)
	assert.Equal(t, []string{"ghost", "poison"}, result.Types)
	assert.InDelta(t, 1.5, result.HeightM, 0.001)
	assert.InDelta(t, 40.5, result.WeightKg, 0.001)
	assert.Equal(t, 110, result.Stats["speed"])
	require.Len(t, result.Abilities, 1)
	assert.Equal(t, "cursed-body", result.Abilities[0].Name)
}

func TestPokemonHandler_Get_NotFound(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/pokemon/99999"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Pokemon not found")
}

func TestPokemonHandler_Get_InvalidID(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/pokemon/notanumber"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestPokemonHandler_FilterOptions(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedPokedex(t, ts.DB.DB)

	resp, err := http.Get(ts.APIURL("/pokemon/filter-options"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var options domain.FilterOptions
	testutil.AssertJSONResponse(t, resp, &options)

	assert.Len(t, options.Types, 18)
	assert.Equal(t, []int{1, 2, 4}, options.Generations)
	assert.Contains(t, options.Abilities, "blaze")

	speedRange, ok := options.StatRanges[domain.StatSpeed]
	require.True(t, ok)
	assert.Equal(t, 30, speedRange.Min)
	assert.Equal(t, 130, speedRange.Max)
}

func TestPokemonHandler_GetAll(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedPokedex(t, ts.DB.DB)

	resp, err := http.Get(ts.APIURL("/pokemon/"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result handlers.PokemonListResponse
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, 11, result.Count)
}

func TestHealthEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(fmt.Sprintf("%s/health", ts.BaseURL()))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
}
