// Package fixtures is an in-memory data source seeded with sample game-world data.
// It stands in for the game API during development and tests.
package fixtures

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/domain"
	"knkadmin/internal/dto"
	"knkadmin/internal/metadata"
	"knkadmin/pkg/logger"
)

//go:embed seed.json
var seedJSON []byte

// Compile-time check that Store implements domain.DataSource.
var _ domain.DataSource = (*Store)(nil)

// Store keeps view-shape records per entity type. New ids come from one counter
// starting above the highest loaded id.
type Store struct {
	mu       sync.RWMutex
	registry *metadata.Registry
	tables   map[string][]record.Record
	nextID   int64
	log      *logger.Logger
}

// NewEmpty creates a store without data.
func NewEmpty(reg *metadata.Registry, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	return &Store{
		registry: reg,
		tables:   map[string][]record.Record{},
		nextID:   1,
		log:      log.WithComponent("fixtures"),
	}
}

// New creates a store loaded with the bundled sample data.
func New(reg *metadata.Registry, codecs dto.Codecs, log *logger.Logger) (*Store, error) {
	s := NewEmpty(reg, log)
	if err := s.Load(seedJSON, codecs); err != nil {
		return nil, err
	}
	return s, nil
}

// Load adds wire-shape data keyed by type tag, decoded through codecs.
// Types without a codec keep their keys as delivered.
func (s *Store) Load(data []byte, codecs dto.Codecs) error {
	if !gjson.ValidBytes(data) {
		return record.ErrInvalidJSON
	}
	parsed := map[string][]record.Record{}
	var loadErr error
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		tag := key.String()
		var (
			rows []record.Record
			err  error
		)
		if codec, ok := codecs.Get(tag); ok {
			rows, err = codec.DecodeList([]byte(value.Raw))
		} else {
			rows, err = record.ListFromJSON([]byte(value.Raw))
		}
		if err != nil {
			loadErr = fmt.Errorf("load %s: %w", tag, err)
			return false
		}
		parsed[tag] = rows
		return true
	})
	if loadErr != nil {
		return loadErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for tag, rows := range parsed {
		s.tables[tag] = append(s.tables[tag], rows...)
		for _, r := range rows {
			if n, ok := record.Number(r.Value("id")); ok && int64(n) >= s.nextID {
				s.nextID = int64(n) + 1
			}
		}
	}
	return nil
}

func (s *Store) check(tag string) error {
	if s.registry == nil {
		return nil
	}
	_, err := s.registry.Lookup(tag)
	return err
}

// FetchList returns copies of every record of tag.
func (s *Store) FetchList(_ context.Context, tag string) ([]record.Record, error) {
	if err := s.check(tag); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.tables[tag]
	out := make([]record.Record, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out, nil
}

// FetchOne returns a copy of the record of tag with id.
func (s *Store) FetchOne(_ context.Context, tag string, id any) (record.Record, error) {
	if err := s.check(tag); err != nil {
		return record.Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(tag, id)
	if i < 0 {
		return record.Record{}, apperror.NewNotFound(tag, id)
	}
	return s.tables[tag][i].Clone(), nil
}

// Create stores payload under a new id. Referenced entities with a negative id are
// created first, the way the API handles embedded create payloads.
func (s *Store) Create(ctx context.Context, tag string, payload record.Record) (record.Record, error) {
	if err := s.check(tag); err != nil {
		return record.Record{}, err
	}
	s.mu.Lock()
	created := s.createLocked(tag, payload)
	s.mu.Unlock()

	s.log.WithContext(ctx).Debugw("fixture created", "type", tag, "id", created.Value("id"))
	return created.Clone(), nil
}

// Update replaces the record of tag with id. The id is kept.
func (s *Store) Update(_ context.Context, tag string, id any, payload record.Record) (record.Record, error) {
	if err := s.check(tag); err != nil {
		return record.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(tag, id)
	if i < 0 {
		return record.Record{}, apperror.NewNotFound(tag, id)
	}
	rec := s.materializeLocked(tag, payload)
	rec.Set("id", s.tables[tag][i].Value("id"))
	s.tables[tag][i] = rec
	return rec.Clone(), nil
}

// Delete removes the record of tag with id.
func (s *Store) Delete(_ context.Context, tag string, id any) error {
	if err := s.check(tag); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(tag, id)
	if i < 0 {
		return apperror.NewNotFound(tag, id)
	}
	rows := s.tables[tag]
	s.tables[tag] = append(rows[:i:i], rows[i+1:]...)
	return nil
}

// Len returns the number of records of tag.
func (s *Store) Len(tag string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[tag])
}

func (s *Store) indexLocked(tag string, id any) int {
	for i, r := range s.tables[tag] {
		if record.SameID(r.Value("id"), id) {
			return i
		}
	}
	return -1
}

func (s *Store) createLocked(tag string, payload record.Record) record.Record {
	rec := s.materializeLocked(tag, payload)
	rec.Set("id", s.nextID)
	s.nextID++
	s.tables[tag] = append(s.tables[tag], rec)
	return rec
}

// materializeLocked copies payload and creates every not-yet-stored reference.
func (s *Store) materializeLocked(tag string, payload record.Record) record.Record {
	rec := payload.Clone()
	if s.registry == nil {
		return rec
	}
	cfg, ok := s.registry.Get(tag)
	if !ok {
		return rec
	}
	for _, fd := range cfg.FieldList() {
		if !fd.IsReference() {
			continue
		}
		switch v := rec.Value(fd.Name).(type) {
		case record.Record:
			rec.Set(fd.Name, s.stageLocked(fd.Reference, v))
		case []any:
			items := make([]any, len(v))
			for i, item := range v {
				if r, ok := item.(record.Record); ok {
					items[i] = s.stageLocked(fd.Reference, r)
				} else {
					items[i] = item
				}
			}
			rec.Set(fd.Name, items)
		}
	}
	return rec
}

func (s *Store) stageLocked(tag string, ref record.Record) record.Record {
	if n, ok := record.Number(ref.Value("id")); ok && n < 0 {
		return s.createLocked(tag, ref).Clone()
	}
	return ref
}
