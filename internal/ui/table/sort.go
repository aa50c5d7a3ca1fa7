package table

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"

	"knkadmin/internal/core/record"
	"knkadmin/internal/ui/locale"
)

// Direction of a column sort.
type Direction string

const (
	Unsorted   Direction = ""
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState is the active sort of a table. The zero value is unsorted.
type SortState struct {
	Column    string    `json:"column,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Active reports whether rows are sorted.
func (s SortState) Active() bool {
	return s.Column != "" && s.Direction != Unsorted
}

// Click returns the state after clicking column's header. The same column cycles
// ascending, descending, unsorted; another column always starts ascending.
func (s SortState) Click(column string) SortState {
	if s.Column != column {
		return SortState{Column: column, Direction: Ascending}
	}
	switch s.Direction {
	case Ascending:
		return SortState{Column: column, Direction: Descending}
	case Descending:
		return SortState{}
	default:
		return SortState{Column: column, Direction: Ascending}
	}
}

// ParseSort builds a state from query values. Unknown directions mean unsorted.
func ParseSort(column, direction string) SortState {
	d := Direction(strings.ToLower(direction))
	if column == "" || (d != Ascending && d != Descending) {
		return SortState{}
	}
	return SortState{Column: column, Direction: d}
}

// Comparer orders cell values for one sort pass.
type Comparer struct {
	collator *collate.Collator
}

// NewComparer creates a comparer using the locale's collation.
func NewComparer(loc *locale.Locale) *Comparer {
	if loc == nil {
		loc = locale.Default()
	}
	return &Comparer{collator: loc.Collator()}
}

// Compare orders a before b for the given direction. Missing values come first when
// ascending and last when descending. Dates compare by instant and numbers numerically;
// name-bearing objects are reduced to their name; everything else compares as
// lower-cased text using locale collation.
func (c *Comparer) Compare(a, b any, dir Direction) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		if dir == Descending {
			return 1
		}
		return -1
	case b == nil:
		if dir == Descending {
			return -1
		}
		return 1
	}

	result := c.compareAsc(a, b)
	if dir == Descending {
		return -result
	}
	return result
}

func (c *Comparer) compareAsc(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if na, ok := record.Number(a); ok {
		if nb, ok := record.Number(b); ok {
			return cmp.Compare(na, nb)
		}
	}

	if name, ok := record.Name(a); ok {
		a = name
	}
	if name, ok := record.Name(b); ok {
		b = name
	}
	sa := strings.ToLower(record.Stringify(a))
	sb := strings.ToLower(record.Stringify(b))
	return c.collator.CompareString(sa, sb)
}

// CompareValues is a one-off comparison using the default locale.
func CompareValues(a, b any, dir Direction) int {
	return NewComparer(nil).Compare(a, b, dir)
}

// Row is a record together with its position in the unsorted input.
type Row struct {
	Index  int
	Record record.Record
}

// SortRows returns the rows ordered by state. The input slice is never modified;
// an inactive state returns rows in input order.
func SortRows(rows []record.Record, state SortState, loc *locale.Locale) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{Index: i, Record: r}
	}
	if !state.Active() {
		return out
	}
	c := NewComparer(loc)
	slices.SortStableFunc(out, func(x, y Row) int {
		return c.Compare(x.Record.Value(state.Column), y.Record.Value(state.Column), state.Direction)
	})
	return out
}
