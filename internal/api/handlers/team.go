package handlers

import (
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

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type RenameTeamRequest struct {
	Name string `json:"name"`
}

type AddMemberRequest struct {
	PokemonID int `json:"pokemonId"`
}

type TeamMemberResponse struct {
	PokemonID int              `json:"pokemonId"`
	Position  int              `json:"position"`
	Pokemon   *PokemonResponse `json:"pokemon,omitempty"`
}

type TeamResponse struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Members []TeamMemberResponse `json:"members"`
}

type TeamListResponse struct {
	Teams []TeamResponse `json:"teams"`
}

func toTeamResponse(team *domain.Team) TeamResponse {
	resp := TeamResponse{
		ID:      team.ID.String(),
		Name:    team.Name,
		Members: make([]TeamMemberResponse, len(team.Members)),
	}
	for i, m := range team.Members {
		member := TeamMemberResponse{
			PokemonID: m.PokemonID,
			Position:  m.Position,
		}
		if m.Pokemon != nil {
			p := toPokemonResponse(m.Pokemon)
			member.Pokemon = &p
		}
		resp.Members[i] = member
	}
	return resp
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTeamName) {
			http.Error(w, "Team name is required", http.StatusBadRequest)
			return
		}
		log.Printf("ERROR [team.Create]: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTeamResponse(team))
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	teams, err := h.teamService.ListTeams(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [team.List]: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := TeamListResponse{Teams: make([]TeamResponse, len(teams))}
	for i, team := range teams {
		resp.Teams[i] = toTeamResponse(team)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := h.teamRequest(w, r)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), userID, teamID)
	if err != nil {
		writeTeamError(w, "team.Get", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTeamResponse(team))
}

func (h *TeamHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := h.teamRequest(w, r)
	if !ok {
		return
	}

	var req RenameTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.RenameTeam(r.Context(), userID, teamID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTeamName) {
			http.Error(w, "Team name is required", http.StatusBadRequest)
			return
		}
		writeTeamError(w, "team.Rename", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTeamResponse(team))
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := h.teamRequest(w, r)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), userID, teamID); err != nil {
		writeTeamError(w, "team.Delete", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := h.teamRequest(w, r)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.AddMember(r.Context(), userID, teamID, req.PokemonID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTeamFull):
			http.Error(w, "Team already has six members", http.StatusConflict)
		case errors.Is(err, domain.ErrAlreadyOnTeam):
			http.Error(w, "Pokemon is already on the team", http.StatusConflict)
		case errors.Is(err, domain.ErrPokemonNotFound):
			http.Error(w, "Pokemon not found", http.StatusNotFound)
		default:
			writeTeamError(w, "team.AddMember", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTeamResponse(team))
}

func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := h.teamRequest(w, r)
	if !ok {
		return
	}

	pokemonID, err := strconv.Atoi(chi.URLParam(r, "pokemonId"))
	if err != nil {
		http.Error(w, "Invalid pokemon ID", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.RemoveMember(r.Context(), userID, teamID, pokemonID)
	if err != nil {
		if errors.Is(err, domain.ErrNotOnTeam) {
			http.Error(w, "Pokemon is not on the team", http.StatusNotFound)
			return
		}
		writeTeamError(w, "team.RemoveMember", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTeamResponse(team))
}

func (h *TeamHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := h.teamRequest(w, r)
	if !ok {
		return
	}

	analysis, err := h.teamService.AnalyzeTeam(r.Context(), userID, teamID)
	if err != nil {
		writeTeamError(w, "team.Analyze", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

func (h *TeamHandler) teamRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, teamID, true
}

func writeTeamError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrTeamNotFound):
		http.Error(w, "Team not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrNotTeamOwner):
		http.Error(w, "Team belongs to another user", http.StatusForbidden)
	default:
		log.Printf("ERROR [%s]: %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
