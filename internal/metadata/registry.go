// Package metadata describes entity types: their fields, formatting and the
// reference graph between them.
package metadata

import (
	"errors"
	"fmt"
	"sync"

	"knkadmin/internal/core/apperror"
)

var (
	ErrSealed        = errors.New("registry is sealed")
	ErrDuplicate     = errors.New("entity type already registered")
	ErrUnresolved    = errors.New("reference to unknown entity type")
	ErrPlaceholder   = errors.New("entity type declared but never registered")
	ErrMissingTarget = errors.New("reference field has no target type")
)

// Registry stores entity configs by type tag.
//
// Construction is two-phase: Declare hands out a stable slot for a tag, Register fills it,
// and Seal binds every reference field to its target slot. Mutually recursive types are
// declared up front so both sides can point at each other.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]*EntityConfig
	order    []string
	sealed   bool
}

func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[string]*EntityConfig),
	}
}

// Declare returns the slot for tag, creating an empty placeholder if needed.
func (r *Registry) Declare(tag string) *EntityConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.declare(tag)
}

func (r *Registry) declare(tag string) *EntityConfig {
	if slot, ok := r.entities[tag]; ok {
		return slot
	}
	slot := NewEntity(tag, "", "")
	slot.placeholder = true
	r.entities[tag] = slot
	r.order = append(r.order, tag)
	return slot
}

// Register fills the slot for cfg.TypeTag in place and returns the slot.
func (r *Registry) Register(cfg *EntityConfig) (*EntityConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return nil, ErrSealed
	}
	slot := r.declare(cfg.TypeTag)
	if !slot.placeholder {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, cfg.TypeTag)
	}
	*slot = *cfg
	slot.placeholder = false
	return slot, nil
}

// MustRegister is Register that panics on error. Used while building static graphs.
func (r *Registry) MustRegister(cfg *EntityConfig) *EntityConfig {
	slot, err := r.Register(cfg)
	if err != nil {
		panic(err)
	}
	return slot
}

// Seal binds reference fields and freezes the registry.
// Every unresolvable reference is reported; the registry stays usable for lookups either way.
func (r *Registry) Seal() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, tag := range r.order {
		cfg := r.entities[tag]
		if cfg.placeholder {
			errs = append(errs, fmt.Errorf("%w: %s", ErrPlaceholder, tag))
			continue
		}
		for _, f := range cfg.FieldList() {
			if !f.IsReference() {
				continue
			}
			if f.Reference == "" {
				errs = append(errs, fmt.Errorf("%w: %s.%s", ErrMissingTarget, tag, f.Name))
				continue
			}
			target, ok := r.entities[f.Reference]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s.%s -> %s", ErrUnresolved, tag, f.Name, f.Reference))
				continue
			}
			f.referenceConfig = target
		}
	}
	r.sealed = true
	return errors.Join(errs...)
}

// Get returns the registered config for tag. Placeholders are reported as missing.
func (r *Registry) Get(tag string) (*EntityConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.entities[tag]
	if !ok || cfg.placeholder {
		return nil, false
	}
	return cfg, true
}

// Lookup is Get returning an UNKNOWN_ENTITY_TYPE error for missing tags.
func (r *Registry) Lookup(tag string) (*EntityConfig, error) {
	cfg, ok := r.Get(tag)
	if !ok {
		return nil, apperror.NewUnknownEntity(tag)
	}
	return cfg, nil
}

// List returns registered configs in declaration order.
func (r *Registry) List() []*EntityConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*EntityConfig, 0, len(r.order))
	for _, tag := range r.order {
		if cfg := r.entities[tag]; !cfg.placeholder {
			list = append(list, cfg)
		}
	}
	return list
}

// Resolve returns the usable target config of a reference field.
// Unbound or placeholder targets yield false so callers can render nothing for the field.
func (r *Registry) Resolve(f *FieldDescriptor) (*EntityConfig, bool) {
	if f == nil || !f.IsReference() {
		return nil, false
	}
	if target := f.ReferenceConfig(); target != nil && !target.IsPlaceholder() {
		return target, true
	}
	if r == nil {
		return nil, false
	}
	return r.Get(f.Reference)
}
