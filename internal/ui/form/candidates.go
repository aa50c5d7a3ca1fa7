package form

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/metadata"
)

// Mount starts loading candidates for every visible reference field. Each field is
// fetched once per mount, concurrently and in no particular order. Results that arrive
// after Unmount, or after a later Mount, are dropped.
func (f *Form) Mount(ctx context.Context) {
	f.mu.Lock()
	if f.mounted {
		f.mu.Unlock()
		return
	}
	f.mounted = true
	f.generation++
	gen := f.generation
	ctx, f.cancel = context.WithCancel(ctx)
	f.mountCtx = ctx
	g := &errgroup.Group{}
	f.group = g

	var fields []*metadata.FieldDescriptor
	if f.source != nil {
		for _, fd := range f.cfg.FieldList() {
			if fd.IsReference() && !fd.Hidden {
				fields = append(fields, fd)
				f.loading[fd.Name] = true
				delete(f.loadErrors, fd.Name)
			}
		}
	}
	src := f.source
	f.mu.Unlock()

	for _, fd := range fields {
		g.Go(func() error {
			rows, err := src.Candidates(ctx, fd)
			f.applyCandidates(gen, fd.Name, rows, err)
			return nil
		})
	}
}

func (f *Form) applyCandidates(gen uint64, field string, rows []record.Record, err error) {
	f.mu.Lock()
	if !f.mounted || f.generation != gen {
		f.mu.Unlock()
		return
	}
	delete(f.loading, field)
	if err != nil {
		f.loadErrors[field] = loadMessage(err)
		f.mu.Unlock()
		f.log.Warnw("candidate fetch failed", "field", field, "error", err)
		f.notify()
		return
	}
	// Entities created through nested forms before the list arrived stay selectable.
	local := f.candidates[field]
	merged := append([]record.Record(nil), rows...)
	for _, c := range local {
		if id, _ := record.ID(c); !containsID(merged, id) {
			merged = append(merged, c)
		}
	}
	f.candidates[field] = merged
	f.mu.Unlock()
	f.notify()
}

func loadMessage(err error) string {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

// WaitCandidates blocks until the fetches started by the last Mount have finished.
func (f *Form) WaitCandidates() {
	f.mu.Lock()
	g := f.group
	f.mu.Unlock()
	if g != nil {
		_ = g.Wait()
	}
}

// Unmount cancels pending fetches and closes any open nested forms. Later fetch
// results are ignored.
func (f *Form) Unmount() {
	f.mu.Lock()
	if !f.mounted {
		f.mu.Unlock()
		return
	}
	f.mounted = false
	if f.cancel != nil {
		f.cancel()
	}
	f.loading = map[string]bool{}
	children := f.children
	f.children = map[string]*Form{}
	f.mu.Unlock()

	for _, child := range children {
		child.Unmount()
	}
}

// Mounted reports whether the form is mounted.
func (f *Form) Mounted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mounted
}

// Candidates returns the loaded candidates of a reference field.
func (f *Form) Candidates(field string) []record.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]record.Record(nil), f.candidates[field]...)
}

// LoadError returns the fetch failure message of a reference field.
func (f *Form) LoadError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadErrors[field]
}

func (f *Form) referenceField(name string) (*metadata.FieldDescriptor, error) {
	fd, err := f.field(name)
	if err != nil {
		return nil, err
	}
	if !fd.IsReference() {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("field %s is not a reference", name)).WithDetail("field", name)
	}
	return fd, nil
}

// SelectReference selects the candidate with id for a single reference field.
// An empty id clears the field. CreateNew opens the field's nested form instead.
func (f *Form) SelectReference(name string, id any) error {
	if s, ok := id.(string); ok && s == CreateNew {
		_, err := f.OpenNested(name)
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	fd, err := f.referenceField(name)
	if err != nil {
		return err
	}
	if fd.Kind != metadata.KindReference {
		return apperror.NewInvalidInput(fmt.Sprintf("field %s takes a list of ids", name)).WithDetail("field", name)
	}
	if record.IsEmpty(id) {
		f.setLocked(fd, nil)
		return nil
	}
	for _, c := range f.candidates[name] {
		if cid, _ := record.ID(c); record.SameID(cid, id) {
			f.setLocked(fd, c.Clone())
			return nil
		}
	}
	return apperror.NewNotFound(fd.Reference, id).WithDetail("field", name)
}

// SelectReferences sets a reference-list field to the candidates whose ids are in ids,
// in candidate order. Unknown ids are ignored.
func (f *Form) SelectReferences(name string, ids []any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	fd, err := f.referenceField(name)
	if err != nil {
		return err
	}
	if fd.Kind != metadata.KindReferenceList {
		return apperror.NewInvalidInput(fmt.Sprintf("field %s takes a single id", name)).WithDetail("field", name)
	}
	selected := []any{}
	for _, c := range f.candidates[name] {
		cid, _ := record.ID(c)
		for _, id := range ids {
			if record.SameID(cid, id) {
				selected = append(selected, c.Clone())
				break
			}
		}
	}
	f.setLocked(fd, selected)
	return nil
}

func containsID(rows []record.Record, id any) bool {
	for _, r := range rows {
		if rid, _ := record.ID(r); record.SameID(rid, id) {
			return true
		}
	}
	return false
}
