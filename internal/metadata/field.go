package metadata

import (
	"fmt"

	"knkadmin/internal/core/record"
)

// FieldKind is the display type of a field.
type FieldKind string

const (
	KindText          FieldKind = "text"
	KindNumber        FieldKind = "number"
	KindBoolean       FieldKind = "boolean"
	KindDate          FieldKind = "date"
	KindSelect        FieldKind = "select"
	KindReference     FieldKind = "reference"
	KindReferenceList FieldKind = "reference-list"
)

// Option is one choice of a select field.
type Option struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Validator returns an error message for an invalid value, or "" when valid.
type Validator func(value any) string

// FieldDescriptor describes one field of an entity.
type FieldDescriptor struct {
	Name         string    `json:"name"`
	Label        string    `json:"label"`
	Kind         FieldKind `json:"kind"`
	Required     bool      `json:"required,omitempty"`
	DefaultValue any       `json:"defaultValue,omitempty"`
	Options      []Option  `json:"options,omitempty"`
	Validate     Validator `json:"-"`
	// Reference is the type tag of the referenced entity for reference kinds.
	Reference   string   `json:"reference,omitempty"`
	Hidden      bool     `json:"hidden,omitempty"`
	DependsOn   []string `json:"dependsOn,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`

	referenceConfig *EntityConfig
}

// IsReference reports whether the field points to another entity.
func (f *FieldDescriptor) IsReference() bool {
	return f.Kind == KindReference || f.Kind == KindReferenceList
}

// ReferenceConfig returns the bound config of the referenced entity.
// It is nil before the registry is sealed or when the field is not a reference.
func (f *FieldDescriptor) ReferenceConfig() *EntityConfig {
	return f.referenceConfig
}

// Check runs the required check, the option check for selects and the custom validator.
// The custom validator only sees non-empty values.
func (f *FieldDescriptor) Check(value any) string {
	if record.IsEmpty(value) {
		if f.Required {
			return fmt.Sprintf("%s is required", f.Label)
		}
		return ""
	}
	if f.Kind == KindSelect && len(f.Options) > 0 && !f.hasOption(value) {
		return fmt.Sprintf("%s has an unknown option", f.Label)
	}
	if f.Validate != nil {
		return f.Validate(value)
	}
	return ""
}

func (f *FieldDescriptor) hasOption(value any) bool {
	for _, opt := range f.Options {
		if record.SameID(opt.Value, value) {
			return true
		}
	}
	return false
}

// DependenciesMet reports whether every dependsOn field is truthy in values.
func (f *FieldDescriptor) DependenciesMet(values record.Record) bool {
	for _, dep := range f.DependsOn {
		if !record.Truthy(values.Value(dep)) {
			return false
		}
	}
	return true
}

// clone returns a copy detached from the original's slices.
func (f *FieldDescriptor) clone() *FieldDescriptor {
	c := *f
	c.Options = append([]Option(nil), f.Options...)
	c.DependsOn = append([]string(nil), f.DependsOn...)
	return &c
}
