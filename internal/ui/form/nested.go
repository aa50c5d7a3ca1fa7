package form

import (
	"context"
	"fmt"
	"sync/atomic"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/metadata"
)

// tempIDs hands out negative ids for entities created in nested forms.
// A parent and all of its nested forms share one.
type tempIDs struct {
	last atomic.Int64
}

func (t *tempIDs) next() int64 {
	return t.last.Add(-1)
}

// OpenNested opens a "create new" form for a reference field, scoped to the referenced
// config. Each field has at most one nested form; opening it again returns the open one.
// Nested forms for different fields are independent.
func (f *Form) OpenNested(name string) (*Form, error) {
	f.mu.Lock()
	if err := f.editable(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	fd, err := f.referenceField(name)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if child, ok := f.children[name]; ok {
		f.mu.Unlock()
		return child, nil
	}
	target := f.resolve(fd)
	if target == nil {
		f.mu.Unlock()
		return nil, apperror.NewUnknownEntity(fd.Reference).WithDetail("field", name)
	}

	opts := []Option{WithSource(f.source), WithRegistry(f.registry), WithLogger(f.log), WithChangeListener(f.onChange)}
	child := New(target, record.New(), nil, func() { f.dropNested(name) }, true, opts...)
	child.temps = f.temps
	child.onSubmit = func(_ context.Context, values record.Record) (record.Record, error) {
		return f.acceptNested(name, values)
	}
	f.children[name] = child
	mounted, ctx := f.mounted, f.mountCtx
	f.mu.Unlock()

	if mounted {
		child.Mount(ctx)
	}
	return child, nil
}

func (f *Form) resolve(fd *metadata.FieldDescriptor) *metadata.EntityConfig {
	if f.registry != nil {
		if cfg, ok := f.registry.Resolve(fd); ok {
			return cfg
		}
		return nil
	}
	if cfg := fd.ReferenceConfig(); cfg != nil && !cfg.IsPlaceholder() {
		return cfg
	}
	return nil
}

// Nested returns the open nested form of a field.
func (f *Form) Nested(name string) (*Form, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	child, ok := f.children[name]
	return child, ok
}

// SubmitNested submits the nested form of a field. On success the created value is
// appended to the field's candidates and selected, and only that nested form closes.
func (f *Form) SubmitNested(ctx context.Context, name string) (record.Record, error) {
	child, ok := f.Nested(name)
	if !ok {
		return record.Record{}, apperror.NewNotFound("nested form", name)
	}
	return child.Submit(ctx)
}

// CancelNested closes the nested form of a field without touching the parent's values.
func (f *Form) CancelNested(name string) error {
	child, ok := f.Nested(name)
	if !ok {
		return apperror.NewNotFound("nested form", name)
	}
	return child.Cancel()
}

func (f *Form) dropNested(name string) {
	f.mu.Lock()
	delete(f.children, name)
	f.mu.Unlock()
	f.notify()
}

// acceptNested takes the values of a submitted nested form. Entities created this way
// are not persisted yet, so they get a negative id that create payloads recognise.
func (f *Form) acceptNested(name string, values record.Record) (record.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return record.Record{}, err
	}
	fd, ok := f.cfg.Field(name)
	if !ok {
		return record.Record{}, fmt.Errorf("field %s disappeared", name)
	}

	created := values.Clone()
	created.Set("id", f.temps.next())
	f.candidates[name] = append(f.candidates[name], created)

	switch fd.Kind {
	case metadata.KindReferenceList:
		list, _ := f.values.Value(name).([]any)
		f.setLocked(fd, append(append([]any{}, list...), created.Clone()))
	default:
		f.setLocked(fd, created.Clone())
	}
	delete(f.children, name)
	f.log.Debugw("nested entity staged", "field", name, "id", created.Value("id"))
	return created, nil
}
