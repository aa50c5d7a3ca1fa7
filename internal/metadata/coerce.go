package metadata

import (
	"strconv"
	"strings"
	"time"

	"knkadmin/internal/core/record"
)

// dateLayouts are accepted for date input, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// Coerce converts raw form input (usually strings from HTML inputs) into the field kind's
// value type. Values that cannot be converted are returned unchanged so validation can report them.
func Coerce(kind FieldKind, v any) any {
	s, isString := v.(string)
	if !isString {
		if kind == KindNumber {
			if n, ok := record.Number(v); ok {
				if n == float64(int64(n)) {
					return int64(n)
				}
				return n
			}
		}
		return v
	}

	s = strings.TrimSpace(s)
	switch kind {
	case KindNumber:
		if s == "" {
			return nil
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	case KindBoolean:
		switch strings.ToLower(s) {
		case "true", "on", "1", "yes":
			return true
		case "false", "off", "0", "no", "":
			return false
		}
		return s
	case KindDate:
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		return s
	}
	return v
}
