package dto

import (
	"encoding/json"
	"time"
)

// timestampLayouts are tried in order. The API sometimes omits the offset; those
// values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a wire date. Values in no known layout decode as unset
// instead of failing the whole payload.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// TimestampOf wraps an optional view date.
func TimestampOf(t *time.Time) Timestamp {
	if t == nil {
		return Timestamp{}
	}
	return Timestamp{Time: *t, Valid: true}
}

// ParseTimestamp parses s with the first matching layout.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Ptr returns the date, or nil when unset.
func (t Timestamp) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	t.Time, t.Valid = ParseTimestamp(s)
	return nil
}
