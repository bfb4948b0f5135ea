package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/domain/rulebook"
	"github.com/KirkDiggler/tabletop-engine/internal/repositories/characters"
	"github.com/KirkDiggler/tabletop-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/tabletop-engine/internal/services"
)

// app is the wired engine for one command invocation
type app struct {
	*services.Provider
	source      dice.Source
	redisClient *redis.Client
}

func (a *app) Close() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		logger.Warn("failed to close redis client", zap.Error(err))
	}
}

// newApp wires services against Redis when REDIS_URL is set and reachable, in memory otherwise
func newApp(ctx context.Context, source dice.Source) (*app, error) {
	catalog := rulebook.DefaultCatalog()
	if cfg.Engine.ClassesFile != "" {
		loaded, err := rulebook.LoadCatalogFile(cfg.Engine.ClassesFile)
		if err != nil {
			return nil, err
		}
		catalog = loaded
		logger.Info("loaded class catalog", zap.String("file", cfg.Engine.ClassesFile), zap.Strings("classes", catalog.Keys()))
	}

	a := &app{source: source}
	providerConfig := &services.ProviderConfig{
		Catalog: catalog,
		Source:  source,
		Logger:  logger,
	}

	if cfg.UseRedis() {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Warn("failed to parse redis url, falling back to in-memory repositories", zap.Error(err))
		} else {
			client := redis.NewClient(opts)

			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			pingErr := client.Ping(pingCtx).Err()
			cancel()

			if pingErr != nil {
				_ = client.Close()
				logger.Warn("failed to connect to redis, falling back to in-memory repositories", zap.Error(pingErr))
			} else {
				a.redisClient = client
				providerConfig.CharacterRepository = characters.NewRedisRepository(&characters.RedisRepoConfig{Client: client})
				providerConfig.EncounterRepository = encounters.NewRedisRepository(&encounters.RedisRepoConfig{Client: client})
				logger.Info("using redis for persistence", zap.String("addr", opts.Addr))
			}
		}
	}

	a.Provider = services.NewProvider(providerConfig)
	return a, nil
}

// sourceFor picks a seeded source from --seed or ENGINE_SEED, and a crypto source when both are unset
func sourceFor(cmd *cobra.Command, seed int64) dice.Source {
	if !cmd.Flags().Changed("seed") {
		seed = cfg.Engine.Seed
	}
	if seed == 0 {
		return dice.NewCryptoSource()
	}
	logger.Debug("using seeded dice", zap.Int64("seed", seed))
	return dice.NewSeededSource(seed)
}
