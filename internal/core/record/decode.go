package record

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("invalid json")
	ErrNotObject   = errors.New("json value is not an object")
	ErrNotArray    = errors.New("json value is not an array")
)

// FromJSON decodes a JSON object into a record.
// Integers become int64, other numbers float64, nested objects Records, arrays []any.
func FromJSON(data []byte) (Record, error) {
	if !gjson.ValidBytes(data) {
		return Record{}, ErrInvalidJSON
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return Record{}, ErrNotObject
	}
	return FromResult(result), nil
}

// ListFromJSON decodes a JSON array of objects.
func ListFromJSON(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	result := gjson.ParseBytes(data)
	if !result.IsArray() {
		return nil, ErrNotArray
	}
	var out []Record
	var err error
	result.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			err = ErrNotObject
			return false
		}
		out = append(out, FromResult(item))
		return true
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}

// FromResult converts an already parsed gjson object.
func FromResult(result gjson.Result) Record {
	r := New()
	result.ForEach(func(key, value gjson.Result) bool {
		r.Set(key.String(), valueOf(value))
		return true
	})
	return r
}

func valueOf(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return v.Str
	case gjson.Number:
		if !strings.ContainsAny(v.Raw, ".eE") {
			return v.Int()
		}
		return v.Float()
	}
	if v.IsObject() {
		return FromResult(v)
	}
	if v.IsArray() {
		items := v.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = valueOf(item)
		}
		return out
	}
	return v.Value()
}
