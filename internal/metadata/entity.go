package metadata

import (
	"encoding/json"
	"maps"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EntityConfig describes one entity type.
type EntityConfig struct {
	TypeTag            string
	Label              string
	Icon               string
	Fields             *orderedmap.OrderedMap[string, *FieldDescriptor]
	Formatters         map[string]Formatter
	FieldDisplayPolicy map[string]DisplayMode

	placeholder bool
}

// NewEntity creates a config with fields in the given order.
func NewEntity(tag, label, icon string, fields ...FieldDescriptor) *EntityConfig {
	cfg := &EntityConfig{
		TypeTag:            tag,
		Label:              label,
		Icon:               icon,
		Fields:             orderedmap.New[string, *FieldDescriptor](),
		Formatters:         map[string]Formatter{},
		FieldDisplayPolicy: map[string]DisplayMode{},
	}
	for i := range fields {
		f := fields[i]
		cfg.Fields.Set(f.Name, &f)
	}
	return cfg
}

// Extend derives a new config from base. Fields with the same name fully replace the
// base field in place; new fields are appended. Formatters and display policies are
// inherited and may be overridden later with WithFormatter / WithDisplayPolicy.
func (base *EntityConfig) Extend(tag, label, icon string, fields ...FieldDescriptor) *EntityConfig {
	cfg := &EntityConfig{
		TypeTag:            tag,
		Label:              label,
		Icon:               icon,
		Fields:             orderedmap.New[string, *FieldDescriptor](),
		Formatters:         maps.Clone(base.Formatters),
		FieldDisplayPolicy: maps.Clone(base.FieldDisplayPolicy),
	}
	if cfg.Formatters == nil {
		cfg.Formatters = map[string]Formatter{}
	}
	if cfg.FieldDisplayPolicy == nil {
		cfg.FieldDisplayPolicy = map[string]DisplayMode{}
	}
	for p := base.Fields.Oldest(); p != nil; p = p.Next() {
		cfg.Fields.Set(p.Key, p.Value.clone())
	}
	for i := range fields {
		f := fields[i]
		cfg.Fields.Set(f.Name, &f)
	}
	return cfg
}

// WithFormatter registers a cell formatter for field and returns the config.
func (c *EntityConfig) WithFormatter(field string, fn Formatter) *EntityConfig {
	c.Formatters[field] = fn
	return c
}

// WithDisplayPolicy sets the summary mode for a nested reference field.
func (c *EntityConfig) WithDisplayPolicy(field string, mode DisplayMode) *EntityConfig {
	c.FieldDisplayPolicy[field] = mode
	return c
}

// Field returns the descriptor for name.
func (c *EntityConfig) Field(name string) (*FieldDescriptor, bool) {
	if c == nil || c.Fields == nil {
		return nil, false
	}
	return c.Fields.Get(name)
}

// FieldList returns descriptors in display order.
func (c *EntityConfig) FieldList() []*FieldDescriptor {
	if c == nil || c.Fields == nil {
		return nil
	}
	out := make([]*FieldDescriptor, 0, c.Fields.Len())
	for p := c.Fields.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Formatter returns the formatter registered for field, if any.
func (c *EntityConfig) Formatter(field string) Formatter {
	if c == nil {
		return nil
	}
	return c.Formatters[field]
}

// DisplayMode returns the summary mode for field, defaulting to DisplayAll.
func (c *EntityConfig) DisplayMode(field string) DisplayMode {
	if c != nil {
		if m, ok := c.FieldDisplayPolicy[field]; ok {
			return m
		}
	}
	return DisplayAll
}

// IsPlaceholder reports whether the config is a declared slot that was never filled.
func (c *EntityConfig) IsPlaceholder() bool {
	return c == nil || c.placeholder
}

type entityJSON struct {
	Type               string                 `json:"type"`
	Label              string                 `json:"label"`
	Icon               string                 `json:"icon,omitempty"`
	Fields             []*FieldDescriptor     `json:"fields"`
	Formatted          []string               `json:"formatted,omitempty"`
	FieldDisplayPolicy map[string]DisplayMode `json:"fieldDisplayPolicy,omitempty"`
}

// MarshalJSON describes the config for API clients. Functions are omitted; formatted
// field names are listed instead.
func (c *EntityConfig) MarshalJSON() ([]byte, error) {
	out := entityJSON{
		Type:               c.TypeTag,
		Label:              c.Label,
		Icon:               c.Icon,
		Fields:             c.FieldList(),
		FieldDisplayPolicy: c.FieldDisplayPolicy,
	}
	for _, f := range out.Fields {
		if _, ok := c.Formatters[f.Name]; ok {
			out.Formatted = append(out.Formatted, f.Name)
		}
	}
	return json.Marshal(out)
}
