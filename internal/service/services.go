package service

import (
	"github.com/dexkit/pokedex-server/internal/config"
	"github.com/dexkit/pokedex-server/internal/repository"
)

type Services struct {
	Auth       *AuthService
	Pokemon    *PokemonService
	Team       *TeamService
	Collection *CollectionService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, repos.Session, cfg),
		Pokemon:    NewPokemonService(repos.Pokemon, repos.Ability, cfg),
		Team:       NewTeamService(repos.Team, repos.Pokemon),
		Collection: NewCollectionService(repos.Collection, repos.Pokemon),
	}
}
