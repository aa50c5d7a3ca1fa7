// Package main provides a CLI tool for seeding the game API with the built-in test data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"knkadmin/internal/config"
	"knkadmin/internal/core/record"
	"knkadmin/internal/domain/world"
	"knkadmin/internal/dto"
	"knkadmin/internal/infrastructure/fixtures"
	"knkadmin/internal/infrastructure/gateway"
	"knkadmin/internal/metadata"
	"knkadmin/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	registry := world.MustRegistry()
	codecs := dto.NewCodecs()

	data, err := fixtures.New(registry, codecs, log)
	if err != nil {
		log.Fatalw("failed to load test data", "error", err)
	}

	client := gateway.New(gateway.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		gateway.WithCodecs(codecs),
		gateway.WithLogger(log),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s := newSeeder(registry, data, client, log)
	if err := s.Run(ctx); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}

	log.Infow("seeding completed successfully", "created", s.created)
}

type seeder struct {
	registry *metadata.Registry
	from     *fixtures.Store
	to       *gateway.Client
	log      *logger.Logger

	// ids maps fixture ids to the ids the API assigned, per type.
	ids     map[string]map[string]any
	created int
}

func newSeeder(registry *metadata.Registry, from *fixtures.Store, to *gateway.Client, log *logger.Logger) *seeder {
	return &seeder{
		registry: registry,
		from:     from,
		to:       to,
		log:      log,
		ids:      map[string]map[string]any{},
	}
}

// Run creates every fixture record, referenced types first.
func (s *seeder) Run(ctx context.Context) error {
	for _, cfg := range creationOrder(s.registry) {
		rows, err := s.from.FetchList(ctx, cfg.TypeTag)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := s.create(ctx, cfg, row); err != nil {
				return err
			}
		}
		s.log.Infow("type seeded", "type", cfg.TypeTag, "records", len(rows))
	}
	return nil
}

func (s *seeder) create(ctx context.Context, cfg *metadata.EntityConfig, row record.Record) error {
	oldID := row.Value("id")
	payload := row.Clone()
	payload.Delete("id")
	s.remap(cfg, &payload)

	created, err := s.to.Create(ctx, cfg.TypeTag, payload)
	if err != nil {
		return fmt.Errorf("create %s %v: %w", cfg.TypeTag, oldID, err)
	}
	if newID, ok := record.ID(created); ok {
		if s.ids[cfg.TypeTag] == nil {
			s.ids[cfg.TypeTag] = map[string]any{}
		}
		s.ids[cfg.TypeTag][record.Stringify(oldID)] = newID
	}
	s.created++
	return nil
}

// remap rewrites the ids of referenced records to the ids the API assigned.
func (s *seeder) remap(cfg *metadata.EntityConfig, payload *record.Record) {
	for _, fd := range cfg.FieldList() {
		if !fd.IsReference() {
			continue
		}
		switch v := payload.Value(fd.Name).(type) {
		case record.Record:
			payload.Set(fd.Name, s.remapOne(fd.Reference, v))
		case []any:
			out := make([]any, 0, len(v))
			for _, item := range v {
				if r, ok := item.(record.Record); ok {
					out = append(out, s.remapOne(fd.Reference, r))
					continue
				}
				out = append(out, item)
			}
			payload.Set(fd.Name, out)
		}
	}
}

func (s *seeder) remapOne(tag string, ref record.Record) record.Record {
	id, ok := record.ID(ref)
	if !ok {
		return ref
	}
	newID, ok := s.ids[tag][record.Stringify(id)]
	if !ok {
		return ref
	}
	out := ref.Clone()
	out.Set("id", newID)
	return out
}

// creationOrder sorts configs so types referenced by single reference fields come
// before the types that reference them. Reference lists are back-references and
// do not order creation. Cycles fall back to registry order.
func creationOrder(registry *metadata.Registry) []*metadata.EntityConfig {
	configs := registry.List()
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var out []*metadata.EntityConfig

	var visit func(cfg *metadata.EntityConfig)
	visit = func(cfg *metadata.EntityConfig) {
		if visited[cfg.TypeTag] || onStack[cfg.TypeTag] {
			return
		}
		onStack[cfg.TypeTag] = true
		for _, fd := range cfg.FieldList() {
			if fd.Kind != metadata.KindReference || fd.Reference == cfg.TypeTag {
				continue
			}
			if dep, ok := registry.Get(fd.Reference); ok {
				visit(dep)
			}
		}
		onStack[cfg.TypeTag] = false
		visited[cfg.TypeTag] = true
		out = append(out, cfg)
	}
	for _, cfg := range configs {
		visit(cfg)
	}
	return out
}
