package domain

import "errors"

// Dex errors
var (
	ErrPokemonNotFound = errors.New("pokemon not found")
)

// Team errors
var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrNotTeamOwner    = errors.New("team belongs to another user")
	ErrTeamFull        = errors.New("team already has six members")
	ErrAlreadyOnTeam   = errors.New("pokemon is already on the team")
	ErrNotOnTeam       = errors.New("pokemon is not on the team")
	ErrInvalidTeamName = errors.New("team name is required")
)
