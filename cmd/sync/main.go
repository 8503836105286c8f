package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/dexkit/pokedex-server/internal/config"
	"github.com/dexkit/pokedex-server/internal/repository/sqlite"
	"github.com/dexkit/pokedex-server/internal/service"
)

// Syncs the dex from PokéAPI into the local database without starting the
// HTTP server. Useful for seeding a fresh deployment.
func main() {
	limit := flag.Int("limit", 0, "number of pokemon to sync (overrides SYNC_LIMIT)")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall sync timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *limit > 0 {
		cfg.SyncLimit = *limit
	}

	db, err := sqlite.NewConnection(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	repos := sqlite.NewRepositories(db)
	pokemonService := service.NewPokemonService(repos.Pokemon, repos.Ability, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	count, err := pokemonService.SyncFromPokeAPI(ctx)
	if err != nil {
		log.Fatalf("sync failed: %v", err)
	}

	log.Printf("Synced %d pokemon in %s", count, time.Since(start).Round(time.Second))
}
