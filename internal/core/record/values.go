package record

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Named is implemented by values that expose a human readable name.
type Named interface {
	DisplayName() string
}

// Name returns the name carried by a name-bearing value.
// Records qualify when they contain a "name" key (case-insensitive).
func Name(v any) (any, bool) {
	switch t := v.(type) {
	case Named:
		return t.DisplayName(), true
	case Record:
		if n, ok := t.Get("name"); ok {
			return n, true
		}
		var found any
		ok := false
		t.Each(func(k string, val any) bool {
			if strings.EqualFold(k, "name") {
				found, ok = val, true
				return false
			}
			return true
		})
		return found, ok
	case map[string]any:
		n, ok := t["name"]
		return n, ok
	}
	return nil, false
}

// HasName reports whether v is a name-bearing value.
func HasName(v any) bool {
	_, ok := Name(v)
	return ok
}

// ID returns the "id" key of a record-like value.
func ID(v any) (any, bool) {
	switch t := v.(type) {
	case Record:
		return t.Get("id")
	case map[string]any:
		id, ok := t["id"]
		return id, ok
	}
	return nil, false
}

// SameID reports whether two id values are equal, tolerating numeric type differences.
func SameID(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, aok := Number(a)
	fb, bok := Number(b)
	if aok && bok {
		return fa == fb
	}
	return Stringify(a) == Stringify(b)
}

// Number converts numeric values to float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Truthy mirrors the loose truthiness used by dependsOn gating.
// Empty strings, zero numbers, false, nil, NaN and empty lists are falsy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case Record:
		return true
	case time.Time:
		return !t.IsZero()
	}
	if f, ok := Number(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	if IsList(v) {
		return reflect.ValueOf(v).Len() > 0
	}
	return true
}

// IsEmpty reports whether v counts as "no value" for required checks.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case Record:
		return t.IsZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// IsList reports whether v is a list of any element type. Byte slices are scalars.
func IsList(v any) bool {
	switch v.(type) {
	case nil, []byte:
		return false
	case []any, []Record:
		return true
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// IsObject reports whether v is a structured value: a record, any map or struct.
// Dates and types that render themselves through String are scalars.
func IsObject(v any) bool {
	switch v.(type) {
	case nil, time.Time, *time.Time:
		return false
	case Record, Named, map[string]any:
		return true
	case fmt.Stringer:
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	}
	return false
}

// Stringify renders a value as plain text.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
