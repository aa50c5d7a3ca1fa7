// Package record provides the ordered key/value row shared by tables, forms and detail views.
//
// Key order matters: columns are inferred from the first row's keys in
// insertion order, so rows keep the order in which they were built or decoded.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an ordered mapping from field key to value.
// The zero value is an empty record ready to use.
type Record struct {
	m *orderedmap.OrderedMap[string, any]
}

// New returns an empty record.
func New() Record {
	return Record{m: orderedmap.New[string, any]()}
}

// Of builds a record from alternating key/value pairs.
// It panics on an odd argument count or a non-string key.
func Of(pairs ...any) Record {
	if len(pairs)%2 != 0 {
		panic("record.Of: odd number of arguments")
	}
	r := New()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("record.Of: key %v is not a string", pairs[i]))
		}
		r.Set(key, pairs[i+1])
	}
	return r
}

// FromMap builds a record from m, taking keys in the given order.
// Keys missing from order are not copied.
func FromMap(m map[string]any, order ...string) Record {
	r := New()
	for _, k := range order {
		if v, ok := m[k]; ok {
			r.Set(k, v)
		}
	}
	return r
}

// Len returns the number of keys.
func (r Record) Len() int {
	if r.m == nil {
		return 0
	}
	return r.m.Len()
}

// IsZero reports whether the record has no keys.
func (r Record) IsZero() bool {
	return r.Len() == 0
}

// Keys returns the keys in insertion order.
func (r Record) Keys() []string {
	if r.m == nil {
		return nil
	}
	keys := make([]string, 0, r.m.Len())
	for p := r.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Get returns the value for key and whether it was present.
func (r Record) Get(key string) (any, bool) {
	if r.m == nil {
		return nil, false
	}
	return r.m.Get(key)
}

// Value returns the value for key or nil.
func (r Record) Value(key string) any {
	v, _ := r.Get(key)
	return v
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set stores value under key. A new key is appended, an existing key keeps its position.
func (r *Record) Set(key string, value any) {
	if r.m == nil {
		r.m = orderedmap.New[string, any]()
	}
	r.m.Set(key, value)
}

// Delete removes key.
func (r *Record) Delete(key string) {
	if r.m == nil {
		return
	}
	r.m.Delete(key)
}

// Each calls fn for every pair in order until fn returns false.
func (r Record) Each(fn func(key string, value any) bool) {
	if r.m == nil {
		return
	}
	for p := r.m.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Clone returns a shallow copy preserving order.
func (r Record) Clone() Record {
	out := New()
	r.Each(func(k string, v any) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// ToMap returns the record as a plain map. Nested records are converted too.
func (r Record) ToMap() map[string]any {
	out := make(map[string]any, r.Len())
	r.Each(func(k string, v any) bool {
		out[k] = toPlain(v)
		return true
	})
	return out
}

func toPlain(v any) any {
	switch t := v.(type) {
	case Record:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toPlain(e)
		}
		return out
	case []Record:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e.ToMap()
		}
		return out
	default:
		return v
	}
}

// MarshalJSON writes the record as a JSON object in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	r.Each(func(k string, v any) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		var kb, vb []byte
		if kb, err = json.Marshal(k); err != nil {
			return false
		}
		if vb, err = json.Marshal(v); err != nil {
			err = fmt.Errorf("marshal %q: %w", k, err)
			return false
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the document's key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	decoded, err := FromJSON(data)
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

// String implements fmt.Stringer.
func (r Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("record<%v>", err)
	}
	return string(b)
}
