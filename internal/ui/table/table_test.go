package table

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/domain"
	"knkadmin/internal/metadata"
)

func names(rows []Row) []any {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record.Value("name"))
	}
	return out
}

func keys(cols []Column) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.Key)
	}
	return out
}

func TestInferColumns(t *testing.T) {
	rows := []record.Record{record.Of("a", 1, "b", []any{1, 2}, "c", record.Of("x", 1), "d", "s")}

	t.Run("drops lists and unformatted objects", func(t *testing.T) {
		assert.Equal(t, []string{"a", "d"}, keys(InferColumns(rows, nil, Options{})))
	})

	t.Run("formatter keeps object column", func(t *testing.T) {
		opts := Options{FormatterOverrides: map[string]metadata.Formatter{
			"c": func(any) metadata.Display { return metadata.Plain("c") },
		}}
		assert.Equal(t, []string{"a", "c", "d"}, keys(InferColumns(rows, nil, opts)))
	})

	t.Run("config formatter keeps object column", func(t *testing.T) {
		cfg := metadata.NewEntity("thing", "Thing", "").
			WithFormatter("c", func(any) metadata.Display { return metadata.Plain("c") })
		assert.Equal(t, []string{"a", "c", "d"}, keys(InferColumns(rows, cfg, Options{})))
	})

	t.Run("exclusions and headers", func(t *testing.T) {
		rows := []record.Record{record.Of("id", 1, "streetNumber", 3, "created", time.Now())}
		cols := InferColumns(rows, nil, Options{
			ExcludeColumns:  []string{"id"},
			HeaderOverrides: map[string]string{"created": "Founded"},
		})
		require.Len(t, cols, 2)
		assert.Equal(t, "Street Number", cols[0].Header)
		assert.Equal(t, "Founded", cols[1].Header)
	})

	t.Run("typed lists and maps", func(t *testing.T) {
		rows := []record.Record{record.Of(
			"a", 1,
			"tags", []string{"x", "y"},
			"meta", map[string]string{"k": "v"},
			"ids", []int64{1},
			"d", "s",
		)}
		assert.Equal(t, []string{"a", "d"}, keys(InferColumns(rows, nil, Options{})))
	})

	t.Run("first row only", func(t *testing.T) {
		rows := []record.Record{record.Of("a", 1), record.Of("a", 2, "z", 3)}
		assert.Equal(t, []string{"a"}, keys(InferColumns(rows, nil, Options{})))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, InferColumns(nil, nil, Options{}))
	})
}

func TestSortCycle(t *testing.T) {
	var s SortState
	s = s.Click("name")
	assert.Equal(t, SortState{"name", Ascending}, s)
	s = s.Click("name")
	assert.Equal(t, SortState{"name", Descending}, s)
	s = s.Click("name")
	assert.Equal(t, SortState{}, s)
	assert.False(t, s.Active())

	s = SortState{"name", Descending}.Click("id")
	assert.Equal(t, SortState{"id", Ascending}, s)
	s = SortState{"name", Ascending}.Click("id")
	assert.Equal(t, SortState{"id", Ascending}, s)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortState{"name", Descending}, ParseSort("name", "DESC"))
	assert.Equal(t, SortState{}, ParseSort("name", "sideways"))
	assert.Equal(t, SortState{}, ParseSort("", "asc"))
}

func TestCompareValues(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	tests := []struct {
		name string
		a, b any
		dir  Direction
		want int
	}{
		{"nil first asc", nil, int64(1), Ascending, -1},
		{"nil last desc", nil, int64(1), Descending, 1},
		{"b nil asc", "x", nil, Ascending, 1},
		{"b nil desc", "x", nil, Descending, -1},
		{"both nil", nil, nil, Ascending, 0},
		{"dates", early, late, Ascending, -1},
		{"dates desc", early, late, Descending, 1},
		{"numbers", int64(10), 9.5, Ascending, 1},
		{"numbers not text", int64(9), int64(10), Ascending, -1},
		{"named", record.Of("name", "B"), record.Of("name", "A"), Ascending, 1},
		{"case insensitive", "apple", "Banana", Ascending, -1},
		{"equal text", "Oak", "oak", Ascending, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareValues(tt.a, tt.b, tt.dir)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestSortRowsScenario(t *testing.T) {
	rows := []record.Record{record.Of("id", 1, "name", "Zeta"), record.Of("id", 2, "name", "Alpha")}

	var s SortState
	s = s.Click("name")
	assert.Equal(t, []any{"Alpha", "Zeta"}, names(SortRows(rows, s, nil)))
	s = s.Click("name")
	assert.Equal(t, []any{"Zeta", "Alpha"}, names(SortRows(rows, s, nil)))
	s = s.Click("name")
	sorted := SortRows(rows, s, nil)
	assert.Equal(t, []any{"Zeta", "Alpha"}, names(sorted))
	assert.Equal(t, 0, sorted[0].Index)

	assert.Equal(t, "Zeta", rows[0].Value("name"), "input is not mutated")
}

func TestSortRowsNullsAndNames(t *testing.T) {
	rows := []record.Record{
		record.Of("name", "b", "town", record.Of("name", "B")),
		record.Of("name", "none", "town", nil),
		record.Of("name", "a", "town", record.Of("name", "A")),
	}

	asc := SortRows(rows, SortState{"town", Ascending}, nil)
	assert.Equal(t, []any{"none", "a", "b"}, names(asc))

	desc := SortRows(rows, SortState{"town", Descending}, nil)
	assert.Equal(t, []any{"b", "a", "none"}, names(desc))
}

func TestSortRowsStableForTies(t *testing.T) {
	rows := []record.Record{
		record.Of("name", "first", "n", 1),
		record.Of("name", "second", "n", 1),
		record.Of("name", "third", "n", 0),
	}
	assert.Equal(t, []any{"third", "first", "second"}, names(SortRows(rows, SortState{"n", Ascending}, nil)))
}

func TestPlace(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 800, ScrollY: 100}

	t.Run("below", func(t *testing.T) {
		pos := Place(Rect{Top: 100, Bottom: 120, Right: 500}, 150, vp)
		assert.False(t, pos.Above)
		assert.Equal(t, 300.0, pos.X)
		assert.Equal(t, 225.0, pos.Y)
		assert.Equal(t, 300.0, pos.MaxHeight)
	})

	t.Run("flips above", func(t *testing.T) {
		pos := Place(Rect{Top: 700, Bottom: 720, Right: 500}, 150, vp)
		assert.True(t, pos.Above)
		assert.Equal(t, 645.0, pos.Y)
		assert.Equal(t, 300.0, pos.MaxHeight)
	})

	t.Run("stays below when above is smaller", func(t *testing.T) {
		pos := Place(Rect{Top: 30, Bottom: 50, Right: 500}, 800, Viewport{Width: 1000, Height: 100})
		assert.False(t, pos.Above)
		assert.Equal(t, 30.0, pos.MaxHeight)
	})

	t.Run("clamps right edge", func(t *testing.T) {
		pos := Place(Rect{Top: 100, Bottom: 120, Right: 990}, 100, vp)
		assert.Equal(t, 780.0, pos.X)
	})
}

func TestMenu(t *testing.T) {
	var m Menu
	assert.True(t, m.Toggle(1))
	assert.True(t, m.Toggle(2), "opening another row replaces the open one")
	row, open := m.OpenRow()
	assert.True(t, open)
	assert.Equal(t, 2, row)

	assert.False(t, m.Toggle(2))
	_, open = m.OpenRow()
	assert.False(t, open)

	vp := Viewport{Width: 1000, Height: 800}
	m.Open(0, Rect{Top: 100, Bottom: 120, Right: 400}, 100, vp)
	m.ClickOutside(true, false)
	_, open = m.OpenRow()
	assert.True(t, open, "click on menu keeps it open")
	m.ClickOutside(false, false)
	_, open = m.OpenRow()
	assert.False(t, open)

	m.Open(0, Rect{Top: 100, Bottom: 120, Right: 400}, 100, vp)
	assert.True(t, m.Scroll(Rect{Top: 50, Bottom: 70}, Viewport{Height: 800, ScrollY: 50}))
	assert.Equal(t, 125.0, m.Position().Y)
	assert.False(t, m.Scroll(Rect{Top: -10, Bottom: 10}, vp))
	_, open = m.OpenRow()
	assert.False(t, open)

	m.Open(0, Rect{}, 0, vp)
	m.Resize()
	_, open = m.OpenRow()
	assert.False(t, open)
}

func TestActionsAndInvoke(t *testing.T) {
	cfg := metadata.NewEntity("district", "District", "")
	rows := []record.Record{record.Of("id", int64(3), "name", "North"), record.Of("id", int64(4), "name", "South")}
	nav := &domain.PathRecorder{}
	var deleted, custom any

	tbl := New(cfg, rows, Options{
		Navigator: nav,
		OnDelete: func(_ context.Context, row record.Record) error {
			deleted = row.Value("id")
			return nil
		},
		RowActions: []RowAction{{ID: "audit", Label: "Audit", Handler: func(_ context.Context, row record.Record) error {
			custom = row.Value("name")
			return nil
		}}},
	})

	v := tbl.View()
	require.Len(t, v.Actions, 4)
	assert.Equal(t, []string{"view", "edit", "delete", "audit"},
		[]string{v.Actions[0].ID, v.Actions[1].ID, v.Actions[2].ID, v.Actions[3].ID})
	assert.Equal(t, ActionItem{ID: ActionView, Label: "View", Icon: "eye"}, v.Actions[0])

	_, err := tbl.ToggleMenu(1)
	require.NoError(t, err)
	require.NoError(t, tbl.Invoke(context.Background(), 1, ActionView))
	assert.Equal(t, "/view/district/4", nav.Path())
	_, open := tbl.OpenRow()
	assert.False(t, open, "invoking an action closes the menu")

	require.NoError(t, tbl.Invoke(context.Background(), 0, ActionEdit))
	assert.Equal(t, "/edit/district/3", nav.Path())

	require.NoError(t, tbl.Invoke(context.Background(), 0, ActionDelete))
	assert.Equal(t, int64(3), deleted)

	require.NoError(t, tbl.Invoke(context.Background(), 1, "audit"))
	assert.Equal(t, "South", custom)

	assert.ErrorIs(t, tbl.Invoke(context.Background(), 9, ActionView), ErrUnknownRow)
	assert.ErrorIs(t, tbl.Invoke(context.Background(), 0, "explode"), ErrUnknownAction)
}

func TestDeleteWithoutHandler(t *testing.T) {
	tbl := New(nil, []record.Record{record.Of("id", 1)}, Options{})
	assert.ErrorIs(t, tbl.Invoke(context.Background(), 0, ActionDelete), ErrNoHandler)
}

func TestTablesDoNotShareMenuState(t *testing.T) {
	rows := []record.Record{record.Of("id", 1), record.Of("id", 2)}
	a := New(nil, rows, Options{})
	b := New(nil, rows, Options{})

	_, err := a.ToggleMenu(0)
	require.NoError(t, err)
	_, err = b.ToggleMenu(1)
	require.NoError(t, err)

	ra, _ := a.OpenRow()
	rb, _ := b.OpenRow()
	assert.Equal(t, 0, ra)
	assert.Equal(t, 1, rb)

	a.ClickHeader("id")
	assert.False(t, b.Sort().Active())
}

func TestViewRendersSortedCellsAndMenu(t *testing.T) {
	cfg := metadata.NewEntity("town", "Town", "").
		WithFormatter("wgRegionId", func(v any) metadata.Display { return metadata.Badge(record.Stringify(v), "purple") })
	rows := []record.Record{
		record.Of("id", int64(1), "name", "Zeta", "allowEntry", true, "wgRegionId", "north", "location", record.Of("x", 1)),
		record.Of("id", int64(2), "name", "Alpha", "allowEntry", false, "wgRegionId", "south", "location", nil),
	}
	tbl := New(cfg, rows, Options{})
	tbl.ClickHeader("name")
	_, err := tbl.ToggleMenu(0)
	require.NoError(t, err)

	v := tbl.View()
	assert.Equal(t, []string{"id", "name", "allowEntry", "wgRegionId"}, keys(v.Columns))
	require.Len(t, v.Rows, 2)
	assert.Equal(t, 1, v.Rows[0].Index)
	assert.Equal(t, metadata.StylePill, v.Rows[0].Cells[1].Style)
	assert.Equal(t, "No", v.Rows[0].Cells[2].Text)
	assert.Equal(t, "south", v.Rows[0].Cells[3].Text)
	assert.Equal(t, metadata.StyleBadge, v.Rows[0].Cells[3].Style)
	assert.True(t, v.Rows[1].MenuOpen)
	require.NotNil(t, v.Menu)
	assert.Equal(t, 0, v.Menu.Row)
}

func TestFailedTable(t *testing.T) {
	v := Failed(nil, errors.New("FETCH_FAILED: Request to Towns failed"), Options{}).View()
	assert.True(t, v.Empty())
	assert.Contains(t, v.Error, "Towns")

	v = Failed(nil, apperror.NewFetchFailed("town", errors.New("connection refused")), Options{}).View()
	assert.NotContains(t, v.Error, "connection refused")
	assert.NotEmpty(t, v.Error)
}
