package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/codequest-rpg/dungeon-engine/internal/config"
	"github.com/codequest-rpg/dungeon-engine/internal/services"
)

func main() {
	// Load .env if present (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "engine",
		Short: "CodeQuest dungeon engine tooling",
	}
	rootCmd.AddCommand(newSeedCommand(), newSimulateCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildProvider connects config and storage the same way for every
// subcommand. A Redis that does not answer a ping drops the engine to
// in-memory repositories.
func buildProvider(ctx context.Context) (*services.Provider, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, falling back to in-memory storage: %v", cfg.Redis.Addr, err)
		return services.NewProvider(&services.ProviderConfig{}), cfg, nil
	}

	log.Printf("Connected to Redis at %s", cfg.Redis.Addr)
	return services.NewProvider(&services.ProviderConfig{RedisClient: client}), cfg, nil
}
