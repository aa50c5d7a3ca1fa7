// Package cell formats single values for read-only display. Tables and detail views
// share it so both render a value the same way.
package cell

import (
	"strings"
	"time"

	"knkadmin/internal/core/record"
	"knkadmin/internal/metadata"
	"knkadmin/internal/ui/locale"
)

// Format renders v for the column key. The first matching rule wins: explicit
// formatter, missing value, boolean, date, name-bearing object, other object, primitive.
func Format(key string, v any, formatter metadata.Formatter, loc *locale.Locale) metadata.Display {
	if formatter != nil {
		return formatter(v)
	}
	if loc == nil {
		loc = locale.Default()
	}

	switch t := v.(type) {
	case nil:
		return metadata.Missing()
	case bool:
		if t {
			return metadata.Display{Text: loc.Yes(), Style: metadata.StyleYes}
		}
		return metadata.Display{Text: loc.No(), Style: metadata.StyleNo}
	case time.Time:
		return metadata.Plain(loc.FormatDate(t))
	case *time.Time:
		if t == nil {
			return metadata.Missing()
		}
		return metadata.Plain(loc.FormatDate(*t))
	}

	if IsObject(v) || IsList(v) {
		if name, ok := record.Name(v); ok {
			if name == nil {
				return metadata.Missing()
			}
			return metadata.Plain(record.Stringify(name))
		}
		return metadata.Display{Text: loc.Object(), Style: metadata.StyleMuted}
	}

	text := record.Stringify(v)
	if strings.EqualFold(key, "name") {
		return metadata.Display{Text: text, Style: metadata.StylePill}
	}
	return metadata.Plain(text)
}

// IsObject reports whether v is a structured value. Dates are scalars.
func IsObject(v any) bool {
	return record.IsObject(v)
}

// IsList reports whether v is a list value of any element type.
func IsList(v any) bool {
	return record.IsList(v)
}
