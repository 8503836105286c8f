package testutil

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/dexkit/pokedex-server/internal/api"
	"github.com/dexkit/pokedex-server/internal/config"
	"github.com/dexkit/pokedex-server/internal/repository"
	repoSqlite "github.com/dexkit/pokedex-server/internal/repository/sqlite"
	"github.com/dexkit/pokedex-server/internal/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestDB wraps a private in-memory SQLite database.
type TestDB struct {
	DB  *gorm.DB
	DSN string
}

// NewTestDB opens a fresh in-memory database with migrations applied. The
// shared-cache DSN keeps the database alive across the connection pool.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := repoSqlite.NewConnection(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// An in-memory database disappears when its last connection closes.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	testDB := &TestDB{DB: db, DSN: dsn}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testDB
}

// Truncate clears all tables for test isolation.
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"collection_stats",
		"collection_entries",
		"team_members",
		"teams",
		"pokemon_abilities",
		"pokemon_stats",
		"pokemon_types",
		"abilities",
		"pokemon",
		"user_sessions",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("warning: failed to clear %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		DatabasePath:       ":memory:",
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 1,
		PokeAPIBaseURL:     "http://localhost:0", // Tests point this at a stub server
		SyncLimit:          3,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := repoSqlite.NewRepositories(testDB.DB)
	services := service.NewServices(repos, cfg)
	router := api.NewRouter(services, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
