package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/dexkit/pokedex-server/internal/service"
	"github.com/go-chi/chi/v5"
)

type PokemonHandler struct {
	pokemonService *service.PokemonService
}

func NewPokemonHandler(pokemonService *service.PokemonService) *PokemonHandler {
	return &PokemonHandler{pokemonService: pokemonService}
}

type AbilityResponse struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"isHidden"`
}

type PokemonResponse struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Generation  int               `json:"generation"`
	HeightM     float64           `json:"heightM"`
	WeightKg    float64           `json:"weightKg"`
	IsLegendary bool              `json:"isLegendary"`
	IsMythical  bool              `json:"isMythical"`
	IsBaby      bool              `json:"isBaby"`
	SpriteURL   string            `json:"spriteUrl"`
	Types       []string          `json:"types"`
	Stats       map[string]int    `json:"stats"`
	Abilities   []AbilityResponse `json:"abilities"`
	EggGroups   []string          `json:"eggGroups"`
}

type PokemonListResponse struct {
	Pokemon []PokemonResponse `json:"pokemon"`
	Count   int               `json:"count"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type SyncResponse struct {
	Synced int `json:"synced"`
}

func toPokemonResponse(p *domain.Pokemon) PokemonResponse {
	stats := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		stats[s.Name] = s.BaseValue
	}

	abilities := make([]AbilityResponse, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		abilities = append(abilities, AbilityResponse{
			Name:     a.Ability.Name,
			IsHidden: a.IsHidden,
		})
	}

	var eggGroups []string
	json.Unmarshal(p.EggGroups, &eggGroups)

	return PokemonResponse{
		ID:          p.ID,
		Name:        p.Name,
		Generation:  p.Generation,
		HeightM:     p.HeightMeters(),
		WeightKg:    p.WeightKilograms(),
		IsLegendary: p.IsLegendary,
		IsMythical:  p.IsMythical,
		IsBaby:      p.IsBaby,
		SpriteURL:   p.SpriteURL,
		Types:       p.TypeNames(),
		Stats:       stats,
		Abilities:   abilities,
		EggGroups:   eggGroups,
	}
}

func toPokemonListResponse(pokemon []*domain.Pokemon) PokemonListResponse {
	resp := PokemonListResponse{
		Pokemon: make([]PokemonResponse, len(pokemon)),
		Count:   len(pokemon),
	}
	for i, p := range pokemon {
		resp.Pokemon[i] = toPokemonResponse(p)
	}
	return resp
}

func (h *PokemonHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	pokemon, err := h.pokemonService.GetAllPokemon(r.Context())
	if err != nil {
		log.Printf("ERROR [pokemon.GetAll]: %v", err)
		http.Error(w, "Failed to get pokemon", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPokemonListResponse(pokemon))
}

func (h *PokemonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid pokemon ID", http.StatusBadRequest)
		return
	}

	pokemon, err := h.pokemonService.GetPokemon(r.Context(), id)
	if err != nil {
		log.Printf("ERROR [pokemon.Get] pokemonID=%d: %v", id, err)
		http.Error(w, "Pokemon not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPokemonResponse(pokemon))
}

func (h *PokemonHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var criteria domain.FilterCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pokemon, err := h.pokemonService.FilterPokemon(r.Context(), criteria)
	if err != nil {
		log.Printf("ERROR [pokemon.Filter]: %v", err)
		http.Error(w, "Failed to filter pokemon", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPokemonListResponse(pokemon))
}

func (h *PokemonHandler) FilterCount(w http.ResponseWriter, r *http.Request) {
	var criteria domain.FilterCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	count, err := h.pokemonService.CountPokemon(r.Context(), criteria)
	if err != nil {
		log.Printf("ERROR [pokemon.FilterCount]: %v", err)
		http.Error(w, "Failed to count pokemon", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CountResponse{Count: count})
}

func (h *PokemonHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.pokemonService.AvailableFilterOptions(r.Context(), domain.FilterCriteria{})
	if err != nil {
		log.Printf("ERROR [pokemon.FilterOptions]: %v", err)
		http.Error(w, "Failed to get filter options", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(options)
}

func (h *PokemonHandler) Sync(w http.ResponseWriter, r *http.Request) {
	count, err := h.pokemonService.SyncFromPokeAPI(r.Context())
	if err != nil {
		log.Printf("ERROR [pokemon.Sync]: %v", err)
		http.Error(w, "Failed to sync pokemon", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SyncResponse{Synced: count})
}
