package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/dexkit/pokedex-server/internal/domain"
	"github.com/dexkit/pokedex-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamService struct {
	teamRepo    repository.TeamRepository
	pokemonRepo repository.PokemonRepository
}

func NewTeamService(teamRepo repository.TeamRepository, pokemonRepo repository.PokemonRepository) *TeamService {
	return &TeamService{
		teamRepo:    teamRepo,
		pokemonRepo: pokemonRepo,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, userID uuid.UUID, name string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidTeamName
	}

	now := time.Now()
	team := &domain.Team{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, userID, teamID uuid.UUID) (*domain.Team, error) {
	return s.ownedTeam(ctx, userID, teamID)
}

func (s *TeamService) ListTeams(ctx context.Context, userID uuid.UUID) ([]*domain.Team, error) {
	return s.teamRepo.GetByUserID(ctx, userID)
}

func (s *TeamService) RenameTeam(ctx context.Context, userID, teamID uuid.UUID, name string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidTeamName
	}

	team, err := s.ownedTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	team.Name = name
	team.UpdatedAt = time.Now()
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	if _, err := s.ownedTeam(ctx, userID, teamID); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, teamID)
}

func (s *TeamService) AddMember(ctx context.Context, userID, teamID uuid.UUID, pokemonID int) (*domain.Team, error) {
	team, err := s.ownedTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	if len(team.Members) >= domain.MaxTeamSize {
		return nil, domain.ErrTeamFull
	}
	for _, m := range team.Members {
		if m.PokemonID == pokemonID {
			return nil, domain.ErrAlreadyOnTeam
		}
	}

	if _, err := s.pokemonRepo.GetByID(ctx, pokemonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPokemonNotFound
		}
		return nil, err
	}

	position := 1
	for _, m := range team.Members {
		if m.Position >= position {
			position = m.Position + 1
		}
	}

	member := &domain.TeamMember{
		TeamID:    teamID,
		PokemonID: pokemonID,
		Position:  position,
	}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	team.UpdatedAt = time.Now()
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}

	return s.teamRepo.GetByID(ctx, teamID)
}

func (s *TeamService) RemoveMember(ctx context.Context, userID, teamID uuid.UUID, pokemonID int) (*domain.Team, error) {
	team, err := s.ownedTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, m := range team.Members {
		if m.PokemonID == pokemonID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotOnTeam
	}

	if err := s.teamRepo.RemoveMember(ctx, teamID, pokemonID); err != nil {
		return nil, err
	}

	team.UpdatedAt = time.Now()
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}

	return s.teamRepo.GetByID(ctx, teamID)
}

// AnalyzeTeam aggregates coverage, resistances, and speed placement over the
// team's (at most six) members.
func (s *TeamService) AnalyzeTeam(ctx context.Context, userID, teamID uuid.UUID) (*domain.TeamAnalysis, error) {
	team, err := s.ownedTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}
	return analyzeTeam(team), nil
}

func (s *TeamService) ownedTeam(ctx context.Context, userID, teamID uuid.UUID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	if team.UserID != userID {
		return nil, domain.ErrNotTeamOwner
	}
	return team, nil
}

func analyzeTeam(team *domain.Team) *domain.TeamAnalysis {
	analysis := &domain.TeamAnalysis{TeamID: team.ID}

	memberTypes := make([][]string, 0, len(team.Members))
	attackTypes := make(map[string]bool)
	for _, m := range team.Members {
		if m.Pokemon == nil {
			continue
		}
		types := m.Pokemon.TypeNames()
		memberTypes = append(memberTypes, types)
		for _, t := range types {
			attackTypes[t] = true
		}

		speed, _ := m.Pokemon.Stat(domain.StatSpeed)
		analysis.SpeedTiers = append(analysis.SpeedTiers, domain.SpeedEntry{
			PokemonID: m.PokemonID,
			Name:      m.Pokemon.Name,
			Speed:     speed,
			Tier:      domain.SpeedTierFor(speed),
		})
	}

	sort.Slice(analysis.SpeedTiers, func(i, j int) bool {
		if analysis.SpeedTiers[i].Speed != analysis.SpeedTiers[j].Speed {
			return analysis.SpeedTiers[i].Speed > analysis.SpeedTiers[j].Speed
		}
		return analysis.SpeedTiers[i].PokemonID < analysis.SpeedTiers[j].PokemonID
	})

	if len(memberTypes) == 0 {
		analysis.UncoveredTypes = domain.AllTypeNames()
		return analysis
	}

	for _, defending := range domain.AllTypeNames() {
		covered := false
		for attacking := range attackTypes {
			if domain.Effectiveness(attacking, defending) > 1 {
				covered = true
				break
			}
		}
		if covered {
			analysis.OffensiveCoverage = append(analysis.OffensiveCoverage, defending)
		} else {
			analysis.UncoveredTypes = append(analysis.UncoveredTypes, defending)
		}
	}

	for _, attacking := range domain.AllTypeNames() {
		resisted := false
		weakCount := 0
		for _, types := range memberTypes {
			mult := domain.DefensiveMultiplier(attacking, types)
			if mult < 1 {
				resisted = true
			}
			if mult > 1 {
				weakCount++
			}
		}
		if resisted {
			analysis.ResistedTypes = append(analysis.ResistedTypes, attacking)
		}
		if weakCount*2 > len(memberTypes) {
			analysis.SharedWeaknesses = append(analysis.SharedWeaknesses, attacking)
		}
	}

	analysis.SynergyScore = synergyScore(analysis, len(memberTypes))
	return analysis
}

// synergyScore is a weighted sum over the coverage and resistance fractions
// plus a speed-spread term, scaled to 0..100.
func synergyScore(a *domain.TeamAnalysis, memberCount int) float64 {
	total := float64(len(domain.AllTypeNames()))

	coverage := float64(len(a.OffensiveCoverage)) / total
	resisted := float64(len(a.ResistedTypes)) / total

	tiers := make(map[domain.SpeedTier]bool)
	for _, e := range a.SpeedTiers {
		tiers[e.Tier] = true
	}
	speedSpread := float64(len(tiers)) / 3

	penalty := float64(len(a.SharedWeaknesses)) / total

	score := (coverage*40 + resisted*35 + speedSpread*25) * (1 - penalty/2)
	if memberCount < domain.MaxTeamSize {
		score *= float64(memberCount) / domain.MaxTeamSize
	}
	return score
}
