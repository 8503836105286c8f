package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dexkit/pokedex-server/internal/config"
	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/dexkit/pokedex-server/internal/repository"
)

type PokemonService struct {
	pokemonRepo repository.PokemonRepository
	abilityRepo repository.AbilityRepository
	cfg         *config.Config
	httpClient  *http.Client
}

func NewPokemonService(pokemonRepo repository.PokemonRepository, abilityRepo repository.AbilityRepository, cfg *config.Config) *PokemonService {
	return &PokemonService{
		pokemonRepo: pokemonRepo,
		abilityRepo: abilityRepo,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *PokemonService) GetAllPokemon(ctx context.Context) ([]*domain.Pokemon, error) {
	return s.pokemonRepo.GetAll(ctx)
}

func (s *PokemonService) GetPokemon(ctx context.Context, id int) (*domain.Pokemon, error) {
	return s.pokemonRepo.GetByID(ctx, id)
}

func (s *PokemonService) FilterPokemon(ctx context.Context, criteria domain.FilterCriteria) ([]*domain.Pokemon, error) {
	return s.pokemonRepo.FindFiltered(ctx, criteria)
}

func (s *PokemonService) CountPokemon(ctx context.Context, criteria domain.FilterCriteria) (int64, error) {
	return s.pokemonRepo.CountFiltered(ctx, criteria)
}

// AvailableFilterOptions returns the selectable filter values. The current
// criteria parameter is accepted for callers that track an active filter, but
// the returned options always reflect the whole store, not the narrowed set.
func (s *PokemonService) AvailableFilterOptions(ctx context.Context, _ domain.FilterCriteria) (*domain.FilterOptions, error) {
	return s.pokemonRepo.FilterOptions(ctx)
}

type pokeAPIPokemon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Abilities []struct {
		IsHidden bool `json:"is_hidden"`
		Slot     int  `json:"slot"`
		Ability  struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"ability"`
	} `json:"abilities"`
}

type pokeAPISpecies struct {
	IsLegendary bool `json:"is_legendary"`
	IsMythical  bool `json:"is_mythical"`
	IsBaby      bool `json:"is_baby"`
	EggGroups   []struct {
		Name string `json:"name"`
	} `json:"egg_groups"`
}

// SyncFromPokeAPI pulls the dex from the configured PokéAPI endpoint and
// upserts it into the local store. Returns the number of pokemon synced.
func (s *PokemonService) SyncFromPokeAPI(ctx context.Context) (int, error) {
	limit := s.cfg.SyncLimit

	pokemon := make([]*domain.Pokemon, 0, limit)
	abilitiesByID := make(map[int]*domain.Ability)

	for id := 1; id <= limit; id++ {
		var mon pokeAPIPokemon
		if err := s.getJSON(ctx, fmt.Sprintf("%s/pokemon/%d", s.cfg.PokeAPIBaseURL, id), &mon); err != nil {
			return 0, fmt.Errorf("failed to fetch pokemon %d: %w", id, err)
		}

		var species pokeAPISpecies
		if err := s.getJSON(ctx, fmt.Sprintf("%s/pokemon-species/%d", s.cfg.PokeAPIBaseURL, id), &species); err != nil {
			return 0, fmt.Errorf("failed to fetch species %d: %w", id, err)
		}

		p, abilities, err := buildPokemon(&mon, &species)
		if err != nil {
			return 0, fmt.Errorf("failed to convert pokemon %d: %w", id, err)
		}

		pokemon = append(pokemon, p)
		for _, a := range abilities {
			abilitiesByID[a.ID] = a
		}
	}

	abilities := make([]*domain.Ability, 0, len(abilitiesByID))
	for _, a := range abilitiesByID {
		abilities = append(abilities, a)
	}

	// Abilities first so membership rows never reference unknown names.
	if err := s.abilityRepo.UpsertMany(ctx, abilities); err != nil {
		return 0, fmt.Errorf("failed to upsert abilities: %w", err)
	}
	if err := s.pokemonRepo.UpsertMany(ctx, pokemon); err != nil {
		return 0, fmt.Errorf("failed to upsert pokemon: %w", err)
	}

	return len(pokemon), nil
}

func buildPokemon(mon *pokeAPIPokemon, species *pokeAPISpecies) (*domain.Pokemon, []*domain.Ability, error) {
	eggGroups := make([]string, 0, len(species.EggGroups))
	for _, g := range species.EggGroups {
		eggGroups = append(eggGroups, g.Name)
	}
	eggGroupsJSON, err := json.Marshal(eggGroups)
	if err != nil {
		return nil, nil, err
	}

	p := &domain.Pokemon{
		ID:           mon.ID,
		Name:         strings.ToLower(mon.Name),
		Generation:   domain.GenerationForID(mon.ID),
		HeightDm:     mon.Height,
		WeightHg:     mon.Weight,
		IsLegendary:  species.IsLegendary,
		IsMythical:   species.IsMythical,
		IsBaby:       species.IsBaby,
		SpriteURL:    mon.Sprites.FrontDefault,
		EggGroups:    eggGroupsJSON,
		LastSyncedAt: time.Now(),
	}

	for _, t := range mon.Types {
		typeID, ok := domain.TypeID(t.Type.Name)
		if !ok {
			return nil, nil, fmt.Errorf("unknown type %q", t.Type.Name)
		}
		p.Types = append(p.Types, domain.PokemonTypeSlot{
			PokemonID: mon.ID,
			TypeID:    typeID,
			Slot:      t.Slot,
		})
	}

	for _, st := range mon.Stats {
		p.Stats = append(p.Stats, domain.PokemonStat{
			PokemonID: mon.ID,
			Name:      st.Stat.Name,
			BaseValue: st.BaseStat,
		})
	}

	var abilities []*domain.Ability
	for _, a := range mon.Abilities {
		abilityID, err := idFromResourceURL(a.Ability.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("ability %q: %w", a.Ability.Name, err)
		}
		abilities = append(abilities, &domain.Ability{ID: abilityID, Name: a.Ability.Name})
		p.Abilities = append(p.Abilities, domain.PokemonAbility{
			PokemonID: mon.ID,
			AbilityID: abilityID,
			Slot:      a.Slot,
			IsHidden:  a.IsHidden,
		})
	}

	return p, abilities, nil
}

// idFromResourceURL extracts the trailing numeric ID from a PokéAPI resource
// URL such as ".../api/v2/ability/65/".
func idFromResourceURL(rawURL string) (int, error) {
	trimmed := strings.TrimRight(rawURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0, fmt.Errorf("malformed resource URL %q", rawURL)
	}
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed resource URL %q", rawURL)
	}
	return id, nil
}

func (s *PokemonService) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
