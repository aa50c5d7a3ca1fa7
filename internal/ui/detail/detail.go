// Package detail renders a single entity as a read-only detail view with
// related-entity sections.
package detail

import (
	"fmt"
	"strings"

	"knkadmin/internal/core/record"
	"knkadmin/internal/domain"
	"knkadmin/internal/metadata"
	"knkadmin/internal/ui/cell"
	"knkadmin/internal/ui/locale"
)

// Entry is one labelled value.
type Entry struct {
	Name  string           `json:"name"`
	Label string           `json:"label"`
	Value metadata.Display `json:"value"`
}

// Section summarizes a related entity.
type Section struct {
	Field    string  `json:"field"`
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	Icon     string  `json:"icon,omitempty"`
	ID       any     `json:"id,omitempty"`
	Entries  []Entry `json:"entries"`
	ViewPath string  `json:"viewPath,omitempty"`
}

// View is the render model of a detail page.
type View struct {
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Icon     string    `json:"icon,omitempty"`
	ID       any       `json:"id,omitempty"`
	Entries  []Entry   `json:"entries"`
	Sections []Section `json:"sections"`
}

// Render builds the detail view of rec. Hidden fields are skipped. Reference fields
// become sections rendered with the referenced config and filtered by the field's
// display mode; a reference whose config cannot be resolved is left out.
func Render(rec record.Record, cfg *metadata.EntityConfig, reg *metadata.Registry, loc *locale.Locale) View {
	v := View{
		Type:    cfg.TypeTag,
		Title:   title(rec, cfg),
		Icon:    cfg.Icon,
		ID:      rec.Value("id"),
		Entries: []Entry{},
	}

	for _, fd := range cfg.FieldList() {
		if fd.Hidden {
			continue
		}
		value := rec.Value(fd.Name)
		formatter := cfg.Formatter(fd.Name)

		if fd.IsReference() && formatter == nil {
			target := resolve(reg, fd)
			if target == nil {
				continue
			}
			mode := cfg.DisplayMode(fd.Name)
			switch items := value.(type) {
			case record.Record:
				v.Sections = append(v.Sections, section(fd, fd.Label+" Information", items, target, mode, loc))
			case []any:
				for i, item := range items {
					r, ok := item.(record.Record)
					if !ok {
						continue
					}
					v.Sections = append(v.Sections, section(fd, sectionTitle(fd, r, i), r, target, mode, loc))
				}
			}
			continue
		}

		if formatter == nil && (cell.IsObject(value) || cell.IsList(value)) {
			continue
		}
		v.Entries = append(v.Entries, Entry{
			Name:  fd.Name,
			Label: fd.Label,
			Value: cell.Format(fd.Name, value, formatter, loc),
		})
	}
	return v
}

func title(rec record.Record, cfg *metadata.EntityConfig) string {
	if name, ok := record.Name(rec); ok && !record.IsEmpty(name) {
		return record.Stringify(name) + " Details"
	}
	return cfg.Label + " Details"
}

func sectionTitle(fd *metadata.FieldDescriptor, r record.Record, i int) string {
	if name, ok := record.Name(r); ok && !record.IsEmpty(name) {
		return fmt.Sprintf("%s: %s", fd.Label, record.Stringify(name))
	}
	return fmt.Sprintf("%s #%d", fd.Label, i+1)
}

func resolve(reg *metadata.Registry, fd *metadata.FieldDescriptor) *metadata.EntityConfig {
	if reg != nil {
		cfg, _ := reg.Resolve(fd)
		return cfg
	}
	if cfg := fd.ReferenceConfig(); !cfg.IsPlaceholder() {
		return cfg
	}
	return nil
}

func section(fd *metadata.FieldDescriptor, title string, r record.Record, target *metadata.EntityConfig, mode metadata.DisplayMode, loc *locale.Locale) Section {
	s := Section{
		Field:   fd.Name,
		Title:   title,
		Type:    target.TypeTag,
		Icon:    target.Icon,
		Entries: []Entry{},
	}
	if id, ok := r.Get("id"); ok && id != nil {
		s.ID = id
		s.ViewPath = domain.ViewPath(target.TypeTag, id)
	}
	r.Each(func(key string, value any) bool {
		nested, ok := target.Field(key)
		if !ok || !shown(key, mode) {
			return true
		}
		s.Entries = append(s.Entries, Entry{
			Name:  key,
			Label: nested.Label,
			Value: cell.Format(key, value, nil, loc),
		})
		return true
	})
	return s
}

func shown(key string, mode metadata.DisplayMode) bool {
	switch mode {
	case metadata.DisplayNameOnly:
		return strings.EqualFold(key, "name")
	case metadata.DisplayIDAndName:
		return strings.EqualFold(key, "name") || strings.EqualFold(key, "id")
	}
	return true
}
