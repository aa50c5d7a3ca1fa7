package record

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"
)

var (
	timeType   = reflect.TypeOf(time.Time{})
	recordType = reflect.TypeOf(Record{})
)

// FromStruct converts a struct (or pointer to struct) into a record.
// Keys follow json tags, embedded structs are flattened, and field order is declaration order.
// Nested structs become Records, slices become []any, nil pointers become nil.
func FromStruct(v any) (Record, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Record{}, fmt.Errorf("record.FromStruct: nil %T", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Record{}, fmt.Errorf("record.FromStruct: %T is not a struct", v)
	}
	r := New()
	inspectStruct(rv, &r)
	return r, nil
}

// MustFromStruct is FromStruct that panics on error.
func MustFromStruct(v any) Record {
	r, err := FromStruct(v)
	if err != nil {
		panic(err)
	}
	return r
}

// ListFromStructs converts a slice of structs.
func ListFromStructs[T any](items []T) ([]Record, error) {
	out := make([]Record, 0, len(items))
	for i := range items {
		r, err := FromStruct(items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func inspectStruct(rv reflect.Value, r *Record) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fv := rv.Field(i)
		if field.Anonymous {
			for fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					break
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				inspectStruct(fv, r)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		name, omitEmpty := jsonName(field)
		if name == "-" {
			continue
		}
		if omitEmpty && fv.IsZero() {
			continue
		}
		r.Set(name, plainValue(fv))
	}
}

func plainValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if t := v.Type(); t == timeType || t == recordType {
		if v.CanInterface() {
			return v.Interface()
		}
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return plainValue(v.Elem())
	case reflect.Struct:
		nested := New()
		inspectStruct(v, &nested)
		return nested
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return []any{}
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = plainValue(v.Index(i))
		}
		return out
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		nested := New()
		for _, k := range keys {
			nested.Set(k.String(), plainValue(v.MapIndex(k)))
		}
		return nested
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String()
	default:
		if v.CanInterface() {
			return v.Interface()
		}
		return nil
	}
}

func jsonName(field reflect.StructField) (string, bool) {
	if tag, ok := field.Tag.Lookup("json"); ok {
		parts := strings.Split(tag, ",")
		omit := false
		for _, opt := range parts[1:] {
			if opt == "omitempty" {
				omit = true
			}
		}
		if parts[0] != "" {
			return parts[0], omit
		}
		return lowerFirst(field.Name), omit
	}
	return lowerFirst(field.Name), false
}

func lowerFirst(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
