package main

import (
	"context"

	"knkadmin/internal/config"
	"knkadmin/internal/domain"
	"knkadmin/internal/domain/world"
	"knkadmin/internal/dto"
	"knkadmin/internal/infrastructure/cache"
	"knkadmin/internal/infrastructure/fixtures"
	"knkadmin/internal/infrastructure/gateway"
	"knkadmin/internal/infrastructure/http/v1/handlers"
	"knkadmin/internal/metadata"
	"knkadmin/pkg/logger"
)

// setupDataSource picks the in-memory fixtures or the game API client.
func setupDataSource(cfg config.Config, registry *metadata.Registry, log *logger.Logger) (domain.DataSource, map[string]handlers.ReadinessCheck, error) {
	codecs := dto.NewCodecs()

	if cfg.UseTestData {
		store, err := fixtures.New(registry, codecs, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using in-memory test data")
		return store, nil, nil
	}

	listCache := cache.NewListCache(cfg.Cache.Size, cfg.Cache.TTL)
	listCache.OnInvalidate(func(tag string) {
		log.Debugw("list cache invalidated", "type", tag)
	})

	client := gateway.New(gateway.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	},
		gateway.WithCodecs(codecs),
		gateway.WithCache(listCache),
		gateway.WithLogger(log),
	)
	log.Infow("using game API", "base_url", cfg.API.BaseURL, "timeout", cfg.API.Timeout)

	checks := map[string]handlers.ReadinessCheck{
		"game_api": func(ctx context.Context) error {
			_, err := client.FetchList(ctx, world.TypeLocation)
			return err
		},
	}
	return client, checks, nil
}
