package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dexkit/pokedex-server/internal/domain"
	repoSqlite "github.com/dexkit/pokedex-server/internal/repository/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// abilityIDs assigns stable test IDs to ability names.
var abilityIDs = map[string]int{}

func abilityIDFor(name string) int {
	if id, ok := abilityIDs[name]; ok {
		return id
	}
	id := len(abilityIDs) + 1
	abilityIDs[name] = id
	return id
}

// PokemonBuilder creates test pokemon with a builder pattern
type PokemonBuilder struct {
	id        int
	name      string
	types     []string
	stats     map[string]int
	abilities []string
	heightDm  int
	weightHg  int
	legendary bool
	mythical  bool
	baby      bool
}

var nextPokemonID = 0

// NewPokemonBuilder creates a new PokemonBuilder with default values
func NewPokemonBuilder() *PokemonBuilder {
	nextPokemonID++
	return &PokemonBuilder{
		id:       nextPokemonID,
		name:     fmt.Sprintf("testmon-%d", nextPokemonID),
		types:    []string{"normal"},
		stats:    map[string]int{},
		heightDm: 10,
		weightHg: 100,
	}
}

func (b *PokemonBuilder) WithID(id int) *PokemonBuilder {
	b.id = id
	return b
}

func (b *PokemonBuilder) WithName(name string) *PokemonBuilder {
	b.name = name
	return b
}

func (b *PokemonBuilder) WithTypes(types ...string) *PokemonBuilder {
	b.types = types
	return b
}

func (b *PokemonBuilder) WithStat(name string, value int) *PokemonBuilder {
	b.stats[name] = value
	return b
}

func (b *PokemonBuilder) WithAbilities(names ...string) *PokemonBuilder {
	b.abilities = names
	return b
}

func (b *PokemonBuilder) WithHeightDm(dm int) *PokemonBuilder {
	b.heightDm = dm
	return b
}

func (b *PokemonBuilder) WithWeightHg(hg int) *PokemonBuilder {
	b.weightHg = hg
	return b
}

func (b *PokemonBuilder) Legendary() *PokemonBuilder {
	b.legendary = true
	return b
}

func (b *PokemonBuilder) Mythical() *PokemonBuilder {
	b.mythical = true
	return b
}

func (b *PokemonBuilder) Baby() *PokemonBuilder {
	b.baby = true
	return b
}

// Build creates the pokemon (and its ability rows) in the database.
func (b *PokemonBuilder) Build(t *testing.T, db *gorm.DB) *domain.Pokemon {
	t.Helper()
	ctx := context.Background()

	eggGroups, _ := json.Marshal([]string{"field"})
	p := &domain.Pokemon{
		ID:           b.id,
		Name:         b.name,
		Generation:   domain.GenerationForID(b.id),
		HeightDm:     b.heightDm,
		WeightHg:     b.weightHg,
		IsLegendary:  b.legendary,
		IsMythical:   b.mythical,
		IsBaby:       b.baby,
		SpriteURL:    fmt.Sprintf("https://example.com/sprites/%d.png", b.id),
		EggGroups:    eggGroups,
		LastSyncedAt: time.Now(),
	}

	for i, typeName := range b.types {
		typeID, ok := domain.TypeID(typeName)
		if !ok {
			t.Fatalf("unknown type %q", typeName)
		}
		p.Types = append(p.Types, domain.PokemonTypeSlot{
			PokemonID: b.id,
			TypeID:    typeID,
			Slot:      i + 1,
		})
	}

	for _, statName := range domain.StatNames {
		value, ok := b.stats[statName]
		if !ok {
			value = 50
		}
		p.Stats = append(p.Stats, domain.PokemonStat{
			PokemonID: b.id,
			Name:      statName,
			BaseValue: value,
		})
	}

	abilities := make([]*domain.Ability, 0, len(b.abilities))
	for i, name := range b.abilities {
		id := abilityIDFor(name)
		abilities = append(abilities, &domain.Ability{ID: id, Name: name})
		p.Abilities = append(p.Abilities, domain.PokemonAbility{
			PokemonID: b.id,
			AbilityID: id,
			Slot:      i + 1,
		})
	}

	if err := repoSqlite.NewAbilityRepository(db).UpsertMany(ctx, abilities); err != nil {
		t.Fatalf("failed to create abilities: %v", err)
	}
	if err := repoSqlite.NewPokemonRepository(db).UpsertMany(ctx, []*domain.Pokemon{p}); err != nil {
		t.Fatalf("failed to create pokemon: %v", err)
	}

	return p
}

// SeedPokedex populates a small representative dex used by filter tests.
func SeedPokedex(t *testing.T, db *gorm.DB) {
	t.Helper()

	NewPokemonBuilder().WithID(1).WithName("bulbasaur").WithTypes("grass", "poison").
		WithStat(domain.StatSpeed, 45).WithStat(domain.StatAttack, 49).
		WithHeightDm(7).WithWeightHg(69).
		WithAbilities("overgrow", "chlorophyll").Build(t, db)

	NewPokemonBuilder().WithID(4).WithName("charmander").WithTypes("fire").
		WithStat(domain.StatSpeed, 65).WithStat(domain.StatAttack, 52).
		WithHeightDm(6).WithWeightHg(85).
		WithAbilities("blaze", "solar-power").Build(t, db)

	NewPokemonBuilder().WithID(7).WithName("squirtle").WithTypes("water").
		WithStat(domain.StatSpeed, 43).WithStat(domain.StatDefense, 65).
		WithHeightDm(5).WithWeightHg(90).
		WithAbilities("torrent").Build(t, db)

	NewPokemonBuilder().WithID(25).WithName("pikachu").WithTypes("electric").
		WithStat(domain.StatSpeed, 90).
		WithHeightDm(4).WithWeightHg(60).
		WithAbilities("static", "lightning-rod").Build(t, db)

	NewPokemonBuilder().WithID(94).WithName("gengar").WithTypes("ghost", "poison").
		WithStat(domain.StatSpeed, 110).WithStat(domain.StatSpecialAttack, 130).
		WithHeightDm(15).WithWeightHg(405).
		WithAbilities("cursed-body").Build(t, db)

	NewPokemonBuilder().WithID(143).WithName("snorlax").WithTypes("normal").
		WithStat(domain.StatSpeed, 30).WithStat(domain.StatHP, 160).
		WithHeightDm(21).WithWeightHg(4600).
		WithAbilities("immunity", "thick-fat").Build(t, db)

	NewPokemonBuilder().WithID(150).WithName("mewtwo").WithTypes("psychic").
		WithStat(domain.StatSpeed, 130).WithStat(domain.StatSpecialAttack, 154).
		WithHeightDm(20).WithWeightHg(1220).
		WithAbilities("pressure").Legendary().Build(t, db)

	NewPokemonBuilder().WithID(151).WithName("mew").WithTypes("psychic").
		WithStat(domain.StatSpeed, 100).
		WithHeightDm(4).WithWeightHg(40).
		WithAbilities("synchronize").Mythical().Build(t, db)

	NewPokemonBuilder().WithID(155).WithName("cyndaquil").WithTypes("fire").
		WithStat(domain.StatSpeed, 65).
		WithHeightDm(5).WithWeightHg(79).
		WithAbilities("blaze").Build(t, db)

	NewPokemonBuilder().WithID(172).WithName("pichu").WithTypes("electric").
		WithStat(domain.StatSpeed, 60).
		WithHeightDm(3).WithWeightHg(20).
		WithAbilities("static").Baby().Build(t, db)

	NewPokemonBuilder().WithID(448).WithName("lucario").WithTypes("fighting", "steel").
		WithStat(domain.StatSpeed, 90).WithStat(domain.StatAttack, 110).
		WithHeightDm(12).WithWeightHg(540).
		WithAbilities("steadfast", "justified").Build(t, db)
}

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
	}

	return user, authResp.AccessToken
}

// TeamBuilder creates test teams with a builder pattern
type TeamBuilder struct {
	name       string
	owner      *domain.User
	pokemonIDs []int
}

// NewTeamBuilder creates a new TeamBuilder with default values
func NewTeamBuilder() *TeamBuilder {
	return &TeamBuilder{name: "Test Team"}
}

func (b *TeamBuilder) WithName(name string) *TeamBuilder {
	b.name = name
	return b
}

func (b *TeamBuilder) WithOwner(user *domain.User) *TeamBuilder {
	b.owner = user
	return b
}

// WithMembers sets the member pokemon by dex number; the pokemon must
// already exist in the database.
func (b *TeamBuilder) WithMembers(pokemonIDs ...int) *TeamBuilder {
	b.pokemonIDs = pokemonIDs
	return b
}

// Build creates the team and its members in the database.
func (b *TeamBuilder) Build(t *testing.T, db *gorm.DB) *domain.Team {
	t.Helper()
	ctx := context.Background()

	if b.owner == nil {
		owner, _ := NewUserBuilder().Build(t, db)
		b.owner = owner
	}

	repo := repoSqlite.NewTeamRepository(db)
	now := time.Now()
	team := &domain.Team{
		ID:        uuid.New(),
		UserID:    b.owner.ID,
		Name:      b.name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, team); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	for i, pokemonID := range b.pokemonIDs {
		member := &domain.TeamMember{
			TeamID:    team.ID,
			PokemonID: pokemonID,
			Position:  i + 1,
		}
		if err := repo.AddMember(ctx, member); err != nil {
			t.Fatalf("failed to add team member: %v", err)
		}
	}

	created, err := repo.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("failed to reload team: %v", err)
	}
	return created
}
