package form

import (
	"time"

	"knkadmin/internal/core/record"
	"knkadmin/internal/metadata"
)

// FieldStatus is the per-field state: pristine until changed, then valid or invalid.
type FieldStatus string

const (
	StatusPristine FieldStatus = "pristine"
	StatusValid    FieldStatus = "valid"
	StatusInvalid  FieldStatus = "invalid"
)

// View is the render model of a form.
type View struct {
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Icon        string      `json:"icon,omitempty"`
	Nested      bool        `json:"nested"`
	State       State       `json:"state"`
	Fields      []FieldView `json:"fields"`
	SubmitError string      `json:"submitError,omitempty"`
}

// FieldView is one rendered field.
type FieldView struct {
	Name        string             `json:"name"`
	Label       string             `json:"label"`
	Kind        metadata.FieldKind `json:"kind"`
	Required    bool               `json:"required,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
	Value       any                `json:"value"`
	// Input is the value as text for HTML inputs.
	Input     string            `json:"input"`
	Options   []metadata.Option `json:"options,omitempty"`
	Selected  []string          `json:"selected,omitempty"`
	Status    FieldStatus       `json:"status"`
	Error     string            `json:"error,omitempty"`
	Loading   bool              `json:"loading,omitempty"`
	LoadError string            `json:"loadError,omitempty"`
	CanCreate bool              `json:"canCreate,omitempty"`
	Creating  *View             `json:"creating,omitempty"`
}

// View renders the visible fields with their state. Nested forms that are open are
// rendered inside their field.
func (f *Form) View() View {
	f.mu.Lock()
	v := View{
		Type:        f.cfg.TypeTag,
		Title:       f.cfg.Label,
		Icon:        f.cfg.Icon,
		Nested:      f.nested,
		State:       f.state,
		SubmitError: f.submitErr,
	}
	children := make(map[string]*Form, len(f.children))
	for k, c := range f.children {
		children[k] = c
	}
	for _, fd := range f.cfg.FieldList() {
		if !f.visible(fd) {
			continue
		}
		v.Fields = append(v.Fields, f.fieldView(fd))
	}
	f.mu.Unlock()

	for i := range v.Fields {
		if child, ok := children[v.Fields[i].Name]; ok {
			cv := child.View()
			v.Fields[i].Creating = &cv
		}
	}
	return v
}

func (f *Form) fieldView(fd *metadata.FieldDescriptor) FieldView {
	value := f.values.Value(fd.Name)
	fv := FieldView{
		Name:        fd.Name,
		Label:       fd.Label,
		Kind:        fd.Kind,
		Required:    fd.Required,
		Placeholder: fd.Placeholder,
		Value:       value,
		Input:       inputText(fd.Kind, value),
		Options:     fd.Options,
		Status:      StatusPristine,
	}
	if f.touched[fd.Name] {
		fv.Status = StatusValid
		if msg, ok := f.errors[fd.Name]; ok {
			fv.Status, fv.Error = StatusInvalid, msg
		}
	}
	if fd.IsReference() {
		fv.Options = nil
		for _, c := range f.candidates[fd.Name] {
			id, _ := record.ID(c)
			fv.Options = append(fv.Options, metadata.Option{Label: candidateLabel(c), Value: id})
		}
		fv.Selected = selectedIDs(value)
		fv.Loading = f.loading[fd.Name]
		fv.LoadError = f.loadErrors[fd.Name]
		fv.CanCreate = f.resolve(fd) != nil
		fv.Input = ""
		if len(fv.Selected) == 1 && fd.Kind == metadata.KindReference {
			fv.Input = fv.Selected[0]
		}
	}
	return fv
}

func inputText(kind metadata.FieldKind, v any) string {
	if t, ok := v.(time.Time); ok {
		if kind == metadata.KindDate {
			return t.Format("2006-01-02")
		}
	}
	if record.IsEmpty(v) {
		return ""
	}
	return record.Stringify(v)
}

func candidateLabel(c record.Record) string {
	if name, ok := record.Name(c); ok && !record.IsEmpty(name) {
		return record.Stringify(name)
	}
	id, _ := record.ID(c)
	return "#" + record.Stringify(id)
}

func selectedIDs(v any) []string {
	switch t := v.(type) {
	case record.Record:
		if id, ok := record.ID(t); ok {
			return []string{record.Stringify(id)}
		}
	case []any:
		var out []string
		for _, item := range t {
			if id, ok := record.ID(item); ok {
				out = append(out, record.Stringify(id))
			}
		}
		return out
	}
	return nil
}
