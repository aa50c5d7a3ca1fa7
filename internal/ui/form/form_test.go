package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/metadata"
	"knkadmin/pkg/logger"
)

// testRegistry builds structure -> district/street with streetNumber gated on street.
func testRegistry(t *testing.T) *metadata.Registry {
	t.Helper()
	reg := metadata.NewRegistry()
	reg.Declare("structure")
	reg.Declare("district")
	reg.Declare("street")

	_, err := reg.Register(metadata.NewEntity("district", "District", "map-pin",
		metadata.FieldDescriptor{Name: "id", Label: "ID", Kind: metadata.KindNumber, Hidden: true},
		metadata.FieldDescriptor{Name: "name", Label: "Name", Kind: metadata.KindText, Required: true,
			Validate: metadata.MinLength(3, "Name must be at least 3 characters")},
		metadata.FieldDescriptor{Name: "streets", Label: "Streets", Kind: metadata.KindReferenceList, Reference: "street"},
	))
	require.NoError(t, err)
	_, err = reg.Register(metadata.NewEntity("street", "Street", "map-pin",
		metadata.FieldDescriptor{Name: "id", Label: "ID", Kind: metadata.KindNumber, Hidden: true},
		metadata.FieldDescriptor{Name: "name", Label: "Name", Kind: metadata.KindText, Required: true},
	))
	require.NoError(t, err)
	_, err = reg.Register(metadata.NewEntity("structure", "Structure", "building",
		metadata.FieldDescriptor{Name: "id", Label: "ID", Kind: metadata.KindNumber, Hidden: true},
		metadata.FieldDescriptor{Name: "name", Label: "Name", Kind: metadata.KindText, Required: true},
		metadata.FieldDescriptor{Name: "allowEntry", Label: "Allow Entry", Kind: metadata.KindBoolean, DefaultValue: true},
		metadata.FieldDescriptor{Name: "district", Label: "District", Kind: metadata.KindReference, Reference: "district"},
		metadata.FieldDescriptor{Name: "street", Label: "Street", Kind: metadata.KindReference, Reference: "street"},
		metadata.FieldDescriptor{Name: "streetNumber", Label: "Street Number", Kind: metadata.KindNumber, Required: true, DependsOn: []string{"street"}},
	))
	require.NoError(t, err)
	require.NoError(t, reg.Seal())
	return reg
}

type fakeSource struct {
	mu    sync.Mutex
	rows  map[string][]record.Record
	errs  map[string]error
	calls map[string]int
	// gate, when set, blocks fetches until closed.
	gate chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		rows: map[string][]record.Record{
			"district": {record.Of("id", int64(1), "name", "North"), record.Of("id", int64(2), "name", "South")},
			"street":   {record.Of("id", int64(10), "name", "Main Street"), record.Of("id", int64(11), "name", "High Street")},
		},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (s *fakeSource) Candidates(ctx context.Context, f *metadata.FieldDescriptor) ([]record.Record, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[f.Name]++
	if err := s.errs[f.Reference]; err != nil {
		return nil, err
	}
	return s.rows[f.Reference], nil
}

func newForm(t *testing.T, src CandidateSource, submit SubmitFunc) *Form {
	t.Helper()
	reg := testRegistry(t)
	cfg, ok := reg.Get("structure")
	require.True(t, ok)
	return New(cfg, record.New(), submit, nil, false,
		WithSource(src), WithRegistry(reg), WithLogger(logger.Nop()))
}

func fieldNames(fs []*metadata.FieldDescriptor) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Name)
	}
	return out
}

func TestNewAppliesDefaultsAndCarriesExtraKeys(t *testing.T) {
	reg := testRegistry(t)
	cfg, _ := reg.Get("structure")

	f := New(cfg, record.Of("name", "Hall", "storages", []any{}), nil, nil, false, WithLogger(logger.Nop()))
	values := f.Values()

	assert.Equal(t, "Hall", values.Value("name"))
	assert.Equal(t, true, values.Value("allowEntry"))
	assert.True(t, values.Has("storages"))
	assert.Equal(t, StateEditing, f.State())
}

func TestDependentFieldScenario(t *testing.T) {
	src := newFakeSource()
	var submitted record.Record
	f := newForm(t, src, func(_ context.Context, v record.Record) (record.Record, error) {
		submitted = v
		return v, nil
	})
	f.Mount(context.Background())
	f.WaitCandidates()

	assert.NotContains(t, fieldNames(f.VisibleFields()), "streetNumber")

	require.NoError(t, f.SetValue("name", "Town Hall"))
	errs := f.Validate()
	assert.NotContains(t, errs, "streetNumber")

	require.NoError(t, f.SelectReference("street", int64(10)))
	assert.Contains(t, fieldNames(f.VisibleFields()), "streetNumber")
	assert.Equal(t, "Street Number is required", f.Validate()["streetNumber"])

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
	assert.Equal(t, StateEditing, f.State())

	require.NoError(t, f.SetValue("streetNumber", "12"))
	res, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), submitted.Value("streetNumber"))
	assert.Equal(t, "Main Street", record.Stringify(mustName(t, res.Value("street"))))
	assert.Equal(t, StateClosed, f.State())
	assert.False(t, f.Mounted())
}

func mustName(t *testing.T, v any) any {
	t.Helper()
	n, ok := record.Name(v)
	require.True(t, ok)
	return n
}

func TestNestedCreateScenario(t *testing.T) {
	src := newFakeSource()
	f := newForm(t, src, nil)
	f.Mount(context.Background())
	f.WaitCandidates()

	require.NoError(t, f.SetValue("name", "Market"))
	require.NoError(t, f.SelectReference("street", int64(11)))
	require.NoError(t, f.SetValue("streetNumber", 4))
	before := f.Values()

	require.NoError(t, f.SelectReference("district", CreateNew))
	child, ok := f.Nested("district")
	require.True(t, ok)
	assert.True(t, child.IsNested())

	require.NoError(t, child.SetValue("name", "Harbour"))
	created, err := f.SubmitNested(context.Background(), "district")
	require.NoError(t, err)

	_, open := f.Nested("district")
	assert.False(t, open, "nested form closes")
	assert.Equal(t, StateEditing, f.State(), "parent stays open")

	district, ok := f.Values().Value("district").(record.Record)
	require.True(t, ok)
	assert.Equal(t, "Harbour", district.Value("name"))
	assert.Equal(t, int64(-1), district.Value("id"))
	assert.Equal(t, created.Value("id"), district.Value("id"))

	cands := f.Candidates("district")
	require.Len(t, cands, 3)
	assert.Equal(t, "Harbour", cands[2].Value("name"))

	after := f.Values()
	for _, k := range []string{"name", "street", "streetNumber", "allowEntry"} {
		assert.Equal(t, before.Value(k), after.Value(k), k)
	}
}

func TestTempIDsAreUniqueAcrossNestingLevels(t *testing.T) {
	f := newForm(t, newFakeSource(), nil)
	ctx := context.Background()

	street, err := f.OpenNested("street")
	require.NoError(t, err)
	require.NoError(t, street.SetValue("name", "Elm Street"))
	_, err = f.SubmitNested(ctx, "street")
	require.NoError(t, err)

	district, err := f.OpenNested("district")
	require.NoError(t, err)
	inner, err := district.OpenNested("streets")
	require.NoError(t, err)
	require.NoError(t, inner.SetValue("name", "Pine Street"))
	_, err = district.SubmitNested(ctx, "streets")
	require.NoError(t, err)
	require.NoError(t, district.SetValue("name", "Harbour"))
	_, err = f.SubmitNested(ctx, "district")
	require.NoError(t, err)

	outer := f.Values().Value("street").(record.Record)
	created := f.Values().Value("district").(record.Record)
	streets := created.Value("streets").([]any)
	require.Len(t, streets, 1)
	nested := streets[0].(record.Record)

	assert.Equal(t, int64(-1), outer.Value("id"))
	assert.Equal(t, int64(-2), nested.Value("id"))
	assert.Equal(t, int64(-3), created.Value("id"))
}

func TestNestedFormValidationKeepsItOpen(t *testing.T) {
	f := newForm(t, newFakeSource(), nil)
	f.Mount(context.Background())
	f.WaitCandidates()

	child, err := f.OpenNested("district")
	require.NoError(t, err)
	require.NoError(t, child.SetValue("name", "ab"))

	_, err = f.SubmitNested(context.Background(), "district")
	require.Error(t, err)
	_, open := f.Nested("district")
	assert.True(t, open)
	assert.Equal(t, "Name must be at least 3 characters", child.Errors()["name"])
}

func TestSiblingNestedFormsAreIndependent(t *testing.T) {
	f := newForm(t, newFakeSource(), nil)
	f.Mount(context.Background())
	f.WaitCandidates()
	require.NoError(t, f.SetValue("name", "Library"))

	districtForm, err := f.OpenNested("district")
	require.NoError(t, err)
	streetForm, err := f.OpenNested("street")
	require.NoError(t, err)
	assert.NotSame(t, districtForm, streetForm)

	again, err := f.OpenNested("district")
	require.NoError(t, err)
	assert.Same(t, districtForm, again)

	require.NoError(t, streetForm.SetValue("name", "Elm Street"))
	require.NoError(t, f.CancelNested("district"))

	_, open := f.Nested("district")
	assert.False(t, open)
	still, open := f.Nested("street")
	require.True(t, open)
	assert.Equal(t, "Elm Street", still.Values().Value("name"))
	assert.Equal(t, "Library", f.Values().Value("name"))
	assert.Nil(t, f.Values().Value("district"))

	view := f.View()
	for _, fv := range view.Fields {
		if fv.Name == "street" {
			require.NotNil(t, fv.Creating)
			assert.True(t, fv.Creating.Nested)
		}
		if fv.Name == "district" {
			assert.Nil(t, fv.Creating)
		}
	}
}

func TestLateFetchAfterUnmountIsIgnored(t *testing.T) {
	src := newFakeSource()
	src.gate = make(chan struct{})
	f := newForm(t, src, nil)

	f.Mount(context.Background())
	assert.True(t, f.View().Fields[2].Loading)
	f.Unmount()
	close(src.gate)
	f.WaitCandidates()

	assert.Empty(t, f.Candidates("district"))
	assert.Empty(t, f.Candidates("street"))
	assert.Empty(t, f.LoadError("district"))
}

func TestRemountIgnoresStaleGeneration(t *testing.T) {
	src := newFakeSource()
	f := newForm(t, src, nil)

	f.Mount(context.Background())
	f.WaitCandidates()
	f.Unmount()
	f.Mount(context.Background())
	f.WaitCandidates()

	assert.Len(t, f.Candidates("district"), 2)
	assert.Equal(t, 2, src.calls["district"])
}

func TestCandidateFetchFailureIsFieldLocal(t *testing.T) {
	src := newFakeSource()
	src.errs["street"] = apperror.NewFetchFailed("Streets", errors.New("connection refused"))
	var changes int
	var mu sync.Mutex
	f := newForm(t, src, nil)
	f.onChange = func() { mu.Lock(); changes++; mu.Unlock() }

	f.Mount(context.Background())
	f.WaitCandidates()

	assert.Len(t, f.Candidates("district"), 2)
	assert.Empty(t, f.Candidates("street"))
	assert.NotEmpty(t, f.LoadError("street"))
	assert.Empty(t, f.LoadError("district"))
	mu.Lock()
	assert.Equal(t, 2, changes)
	mu.Unlock()
}

func TestFailedSubmitReenablesEditing(t *testing.T) {
	attempts := 0
	f := newForm(t, newFakeSource(), func(_ context.Context, v record.Record) (record.Record, error) {
		attempts++
		if attempts == 1 {
			return record.Record{}, errors.New("server unavailable")
		}
		return v, nil
	})
	require.NoError(t, f.SetValue("name", "Town Hall"))

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateEditing, f.State())
	assert.Equal(t, "server unavailable", f.SubmitError())
	assert.Equal(t, "server unavailable", f.View().SubmitError)

	require.NoError(t, f.SetValue("name", "Town Hall 2"))
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateClosed, f.State())
	assert.Empty(t, f.SubmitError())
}

func TestClosedFormRejectsChanges(t *testing.T) {
	cancelled := false
	reg := testRegistry(t)
	cfg, _ := reg.Get("street")
	f := New(cfg, record.New(), nil, func() { cancelled = true }, false, WithLogger(logger.Nop()))

	require.NoError(t, f.Cancel())
	assert.True(t, cancelled)

	err := f.SetValue("name", "x")
	assert.True(t, apperror.HasCode(err, apperror.CodeFormClosed))
	_, err = f.Submit(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeFormClosed))
}

func TestSelectReferences(t *testing.T) {
	reg := testRegistry(t)
	cfg, _ := reg.Get("district")
	f := New(cfg, record.New(), nil, nil, false,
		WithSource(newFakeSource()), WithRegistry(reg), WithLogger(logger.Nop()))
	f.Mount(context.Background())
	f.WaitCandidates()

	require.NoError(t, f.SelectReferences("streets", []any{"11", int64(99)}))
	list, ok := f.Values().Value("streets").([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "High Street", list[0].(record.Record).Value("name"))

	err := f.SelectReference("streets", int64(10))
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
}

func TestFieldStatus(t *testing.T) {
	f := newForm(t, newFakeSource(), nil)
	status := func(name string) FieldStatus {
		for _, fv := range f.View().Fields {
			if fv.Name == name {
				return fv.Status
			}
		}
		return ""
	}

	assert.Equal(t, StatusPristine, status("name"))
	require.NoError(t, f.SetValue("name", ""))
	assert.Equal(t, StatusInvalid, status("name"))
	require.NoError(t, f.SetValue("name", "Hall"))
	assert.Equal(t, StatusValid, status("name"))

	err := f.SetValue("nope", 1)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
}

func TestSelectUnknownCandidate(t *testing.T) {
	f := newForm(t, newFakeSource(), nil)
	f.Mount(context.Background())
	f.WaitCandidates()

	err := f.SelectReference("district", int64(42))
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, f.SelectReference("district", "2"))
	require.NoError(t, f.SelectReference("district", ""))
	assert.Nil(t, f.Values().Value("district"))
}
