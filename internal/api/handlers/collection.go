package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dexkit/pokedex-server/internal/api/middleware"
	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/dexkit/pokedex-server/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CollectionHandler struct {
	collectionService *service.CollectionService
}

func NewCollectionHandler(collectionService *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

type CollectionListResponse struct {
	Entries []*domain.CollectionEntry `json:"entries"`
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := h.collectionService.List(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [collection.List]: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CollectionListResponse{Entries: entries})
}

func (h *CollectionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.collectionService.Stats(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [collection.Stats]: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (h *CollectionHandler) SetCaught(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, "collection.SetCaught", true, h.collectionService.SetCaught)
}

func (h *CollectionHandler) UnsetCaught(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, "collection.UnsetCaught", false, h.collectionService.SetCaught)
}

func (h *CollectionHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, "collection.SetFavorite", true, h.collectionService.SetFavorite)
}

func (h *CollectionHandler) UnsetFavorite(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, "collection.UnsetFavorite", false, h.collectionService.SetFavorite)
}

type setFlagFunc func(ctx context.Context, userID uuid.UUID, pokemonID int, value bool) (*domain.CollectionEntry, error)

func (h *CollectionHandler) setFlag(w http.ResponseWriter, r *http.Request, op string, value bool, set setFlagFunc) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	pokemonID, err := strconv.Atoi(chi.URLParam(r, "pokemonId"))
	if err != nil {
		http.Error(w, "Invalid pokemon ID", http.StatusBadRequest)
		return
	}

	entry, err := set(r.Context(), userID, pokemonID, value)
	if err != nil {
		if errors.Is(err, domain.ErrPokemonNotFound) {
			http.Error(w, "Pokemon not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [%s]: %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}
