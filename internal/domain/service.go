package domain

import (
	"context"
	"fmt"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/metadata"
	"knkadmin/pkg/logger"
)

// EntityService resolves type tags against the registry before touching the data source
// and normalizes every failure into an AppError.
type EntityService struct {
	registry *metadata.Registry
	source   DataSource
	log      *logger.Logger
}

// NewEntityService creates a new entity service.
func NewEntityService(registry *metadata.Registry, source DataSource, log *logger.Logger) *EntityService {
	if log == nil {
		log = logger.Default()
	}
	return &EntityService{
		registry: registry,
		source:   source,
		log:      log.WithComponent("entity_service"),
	}
}

// Registry returns the entity registry.
func (s *EntityService) Registry() *metadata.Registry { return s.registry }

// Source returns the underlying data source.
func (s *EntityService) Source() DataSource { return s.source }

func (s *EntityService) normalizeErr(ctx context.Context, op, tag string, err error) error {
	if err == nil {
		return nil
	}
	s.log.WithContext(ctx).Warnw("data source call failed", "op", op, "type", tag, "error", err)
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewFetchFailed(tag, err)
}

// Config returns the config for tag or UNKNOWN_ENTITY_TYPE.
func (s *EntityService) Config(tag string) (*metadata.EntityConfig, error) {
	return s.registry.Lookup(tag)
}

// List fetches all records of a type.
func (s *EntityService) List(ctx context.Context, tag string) (*metadata.EntityConfig, []record.Record, error) {
	cfg, err := s.registry.Lookup(tag)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.source.FetchList(ctx, tag)
	if err != nil {
		return cfg, nil, s.normalizeErr(ctx, "list", tag, err)
	}
	return cfg, rows, nil
}

// Get fetches one record.
func (s *EntityService) Get(ctx context.Context, tag string, id any) (*metadata.EntityConfig, record.Record, error) {
	cfg, err := s.registry.Lookup(tag)
	if err != nil {
		return nil, record.Record{}, err
	}
	rec, err := s.source.FetchOne(ctx, tag, id)
	if err != nil {
		return cfg, record.Record{}, s.normalizeErr(ctx, "get", tag, err)
	}
	return cfg, rec, nil
}

// Create stores a new record.
func (s *EntityService) Create(ctx context.Context, tag string, payload record.Record) (record.Record, error) {
	if _, err := s.registry.Lookup(tag); err != nil {
		return record.Record{}, err
	}
	created, err := s.source.Create(ctx, tag, payload)
	if err != nil {
		return record.Record{}, s.normalizeErr(ctx, "create", tag, err)
	}
	s.log.WithContext(ctx).Infow("entity created", "type", tag, "id", created.Value("id"))
	return created, nil
}

// Update replaces an existing record.
func (s *EntityService) Update(ctx context.Context, tag string, id any, payload record.Record) (record.Record, error) {
	if _, err := s.registry.Lookup(tag); err != nil {
		return record.Record{}, err
	}
	updated, err := s.source.Update(ctx, tag, id, payload)
	if err != nil {
		return record.Record{}, s.normalizeErr(ctx, "update", tag, err)
	}
	return updated, nil
}

// Delete removes a record.
func (s *EntityService) Delete(ctx context.Context, tag string, id any) error {
	if _, err := s.registry.Lookup(tag); err != nil {
		return err
	}
	if err := s.source.Delete(ctx, tag, id); err != nil {
		return s.normalizeErr(ctx, "delete", tag, err)
	}
	s.log.WithContext(ctx).Infow("entity deleted", "type", tag, "id", id)
	return nil
}

// Candidates returns the candidate list for a reference field.
func (s *EntityService) Candidates(ctx context.Context, f *metadata.FieldDescriptor) ([]record.Record, error) {
	if !f.IsReference() {
		return nil, fmt.Errorf("field %s is not a reference", f.Name)
	}
	_, rows, err := s.List(ctx, f.Reference)
	return rows, err
}
