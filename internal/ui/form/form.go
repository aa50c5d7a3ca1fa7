// Package form holds the state of a configuration-driven entity form: values,
// dependent-field gating, validation, lazily loaded reference candidates, nested
// "create new" forms and the submit state machine.
package form

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/metadata"
	"knkadmin/pkg/logger"
)

// State is the whole-form lifecycle: editing -> submitting -> closed, or back to
// editing when submission fails.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateClosed     State = "closed"
)

// CreateNew is the reference selection that opens a nested form instead of
// choosing a candidate.
const CreateNew = "__create__"

// SubmitFunc receives validated values and returns the stored entity.
type SubmitFunc func(ctx context.Context, values record.Record) (record.Record, error)

// CandidateSource loads the selectable entities of a reference field.
type CandidateSource interface {
	Candidates(ctx context.Context, f *metadata.FieldDescriptor) ([]record.Record, error)
}

// CandidateFunc adapts a function to CandidateSource.
type CandidateFunc func(ctx context.Context, f *metadata.FieldDescriptor) ([]record.Record, error)

func (fn CandidateFunc) Candidates(ctx context.Context, f *metadata.FieldDescriptor) ([]record.Record, error) {
	return fn(ctx, f)
}

// Option configures a Form.
type Option func(*Form)

// WithSource sets where reference candidates come from.
func WithSource(src CandidateSource) Option {
	return func(f *Form) { f.source = src }
}

// WithRegistry sets the registry used to resolve nested form configs.
func WithRegistry(reg *metadata.Registry) Option {
	return func(f *Form) { f.registry = reg }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(f *Form) { f.log = log }
}

// WithChangeListener registers fn to run after asynchronous state changes, such as
// a candidate list arriving. fn is called without the form lock held.
func WithChangeListener(fn func()) Option {
	return func(f *Form) { f.onChange = fn }
}

// Form is the state of one rendered form. Separate forms never share state.
type Form struct {
	mu sync.Mutex

	cfg      *metadata.EntityConfig
	registry *metadata.Registry
	source   CandidateSource
	log      *logger.Logger
	onChange func()

	values    record.Record
	touched   map[string]bool
	errors    map[string]string
	state     State
	submitErr string
	result    record.Record

	onSubmit SubmitFunc
	onCancel func()
	nested   bool

	candidates map[string][]record.Record
	loading    map[string]bool
	loadErrors map[string]string

	mounted    bool
	generation uint64
	cancel     context.CancelFunc
	group      *errgroup.Group
	mountCtx   context.Context

	children map[string]*Form
	temps    *tempIDs
}

// New creates a form for cfg. Values start from initial, falling back to each field's
// default; keys of initial that are not fields are carried through to submission.
func New(cfg *metadata.EntityConfig, initial record.Record, onSubmit SubmitFunc, onCancel func(), isNested bool, opts ...Option) *Form {
	f := &Form{
		cfg:        cfg,
		values:     record.New(),
		touched:    map[string]bool{},
		errors:     map[string]string{},
		state:      StateEditing,
		onSubmit:   onSubmit,
		onCancel:   onCancel,
		nested:     isNested,
		candidates: map[string][]record.Record{},
		loading:    map[string]bool{},
		loadErrors: map[string]string{},
		children:   map[string]*Form{},
		temps:      &tempIDs{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.log == nil {
		f.log = logger.Default()
	}
	f.log = f.log.WithComponent("form").With("type", cfg.TypeTag, "nested", isNested)

	for _, fd := range cfg.FieldList() {
		if v, ok := initial.Get(fd.Name); ok {
			f.values.Set(fd.Name, v)
		} else if fd.DefaultValue != nil {
			f.values.Set(fd.Name, fd.DefaultValue)
		} else {
			f.values.Set(fd.Name, nil)
		}
	}
	initial.Each(func(k string, v any) bool {
		if !f.values.Has(k) {
			f.values.Set(k, v)
		}
		return true
	})
	return f
}

// Config returns the form's entity config.
func (f *Form) Config() *metadata.EntityConfig { return f.cfg }

// IsNested reports whether the form was opened from another form.
func (f *Form) IsNested() bool { return f.nested }

// State returns the lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Values returns a copy of the current values.
func (f *Form) Values() record.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Clone()
}

// Result returns the record produced by a successful submit.
func (f *Form) Result() (record.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.state == StateClosed && !f.result.IsZero()
}

// Errors returns the current field errors.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// SubmitError returns the message of the last failed submit.
func (f *Form) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitErr
}

func (f *Form) editable() error {
	if f.state != StateEditing {
		return apperror.NewFormClosed(string(f.state))
	}
	return nil
}

func (f *Form) field(name string) (*metadata.FieldDescriptor, error) {
	fd, ok := f.cfg.Field(name)
	if !ok {
		return nil, apperror.NewInvalidInput("unknown field " + name).WithDetail("field", name)
	}
	return fd, nil
}

// visible reports whether fd is rendered and validated with the current values.
func (f *Form) visible(fd *metadata.FieldDescriptor) bool {
	return !fd.Hidden && fd.DependenciesMet(f.values)
}

// VisibleFields returns the fields that are currently rendered.
func (f *Form) VisibleFields() []*metadata.FieldDescriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*metadata.FieldDescriptor
	for _, fd := range f.cfg.FieldList() {
		if f.visible(fd) {
			out = append(out, fd)
		}
	}
	return out
}

// setLocked stores a value, marks the field touched and revalidates every field
// whose visibility may have changed.
func (f *Form) setLocked(fd *metadata.FieldDescriptor, v any) {
	f.values.Set(fd.Name, v)
	f.touched[fd.Name] = true
	f.revalidateLocked()
}

func (f *Form) revalidateLocked() {
	for _, fd := range f.cfg.FieldList() {
		if !f.touched[fd.Name] {
			continue
		}
		if !f.visible(fd) {
			delete(f.errors, fd.Name)
			continue
		}
		if msg := fd.Check(f.values.Value(fd.Name)); msg != "" {
			f.errors[fd.Name] = msg
		} else {
			delete(f.errors, fd.Name)
		}
	}
}

// SetValue sets a scalar field from user input. Input is coerced to the field kind.
func (f *Form) SetValue(name string, raw any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	fd, err := f.field(name)
	if err != nil {
		return err
	}
	f.setLocked(fd, metadata.Coerce(fd.Kind, raw))
	return nil
}

// Validate checks every visible field and returns the errors keyed by field name.
// Fields gated off by dependsOn or hidden are not validated.
func (f *Form) Validate() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() map[string]string {
	errs := map[string]string{}
	for _, fd := range f.cfg.FieldList() {
		f.touched[fd.Name] = true
		if !f.visible(fd) {
			continue
		}
		if msg := fd.Check(f.values.Value(fd.Name)); msg != "" {
			errs[fd.Name] = msg
		}
	}
	f.errors = errs
	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}

// Submit validates the form and hands the values to the submit function. A validation
// failure keeps the form editing and returns VALIDATION_ERROR. A failing submit
// function returns the form to editing with the message as SubmitError.
func (f *Form) Submit(ctx context.Context) (record.Record, error) {
	f.mu.Lock()
	if err := f.editable(); err != nil {
		f.mu.Unlock()
		return record.Record{}, err
	}
	if errs := f.validateLocked(); len(errs) > 0 {
		f.mu.Unlock()
		f.log.WithContext(ctx).Debugw("form validation failed", "fields", len(errs))
		return record.Record{}, apperror.NewFieldErrors(errs)
	}
	f.state = StateSubmitting
	f.submitErr = ""
	values := f.values.Clone()
	submit := f.onSubmit
	f.mu.Unlock()

	var (
		result record.Record
		err    error
	)
	if submit != nil {
		result, err = submit(ctx, values)
	} else {
		result = values
	}

	f.mu.Lock()
	if err != nil {
		f.state = StateEditing
		f.submitErr = loadMessage(err)
		f.mu.Unlock()
		f.log.WithContext(ctx).Warnw("form submit failed", "error", err)
		return record.Record{}, err
	}
	f.state = StateClosed
	f.result = result
	f.mu.Unlock()

	f.Unmount()
	return result, nil
}

// Cancel closes the form without submitting and calls the cancel callback.
func (f *Form) Cancel() error {
	f.mu.Lock()
	if err := f.editable(); err != nil {
		f.mu.Unlock()
		return err
	}
	f.state = StateClosed
	onCancel := f.onCancel
	f.mu.Unlock()

	f.Unmount()
	if onCancel != nil {
		onCancel()
	}
	return nil
}

func (f *Form) notify() {
	if f.onChange != nil {
		f.onChange()
	}
}
