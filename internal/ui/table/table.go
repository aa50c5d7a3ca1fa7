// Package table renders homogeneous records as a sortable table with per-column
// formatting and a row action menu.
package table

import (
	"context"
	"fmt"
	"sync"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/domain"
	"knkadmin/internal/metadata"
	"knkadmin/internal/ui/cell"
	"knkadmin/internal/ui/locale"
)

// Options customizes rendering of a table.
type Options struct {
	ExcludeColumns     []string
	FormatterOverrides map[string]metadata.Formatter
	HeaderOverrides    map[string]string
	// RowActions are appended after view, edit and delete.
	RowActions []RowAction
	Locale     *locale.Locale
	Navigator  domain.Navigator
	OnEdit     ActionFunc
	OnDelete   ActionFunc
}

// View is the render output of a table.
type View struct {
	Type    string       `json:"type"`
	Title   string       `json:"title"`
	Columns []Column     `json:"columns"`
	Rows    []RowView    `json:"rows"`
	Sort    SortState    `json:"sort"`
	Actions []ActionItem `json:"actions"`
	Menu    *MenuView    `json:"menu,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Empty reports whether there is nothing to draw.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// RowView is one rendered row. Index is the row's position in the unsorted input.
type RowView struct {
	Index    int                `json:"index"`
	ID       any                `json:"id"`
	Cells    []metadata.Display `json:"cells"`
	MenuOpen bool               `json:"menuOpen,omitempty"`
}

// ActionItem describes a menu entry.
type ActionItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// MenuView describes the open action menu.
type MenuView struct {
	Row      int      `json:"row"`
	Position Position `json:"position"`
}

// Render is the pure rendering function: columns come from the first row, rows are
// sorted by state, and cells are formatted per column.
func Render(rows []record.Record, cfg *metadata.EntityConfig, opts Options, state SortState) View {
	v := View{Sort: state}
	if cfg != nil {
		v.Type, v.Title = cfg.TypeTag, cfg.Label
	}
	for _, a := range actions(v.Type, opts) {
		v.Actions = append(v.Actions, ActionItem{ID: a.ID, Label: a.Label, Icon: a.Icon})
	}

	v.Columns = InferColumns(rows, cfg, opts)
	for _, row := range SortRows(rows, state, opts.Locale) {
		rv := RowView{Index: row.Index, ID: row.Record.Value("id"), Cells: make([]metadata.Display, 0, len(v.Columns))}
		for _, col := range v.Columns {
			rv.Cells = append(rv.Cells, cell.Format(col.Key, row.Record.Value(col.Key), col.Formatter, opts.Locale))
		}
		v.Rows = append(v.Rows, rv)
	}
	return v
}

// Table holds the local UI state of one rendered table: sort, open menu and the
// last load error. Separate tables never share state.
type Table struct {
	mu   sync.Mutex
	cfg  *metadata.EntityConfig
	rows []record.Record
	opts Options
	sort SortState
	menu Menu
	err  string
}

// New creates a table over rows. The slice is not modified.
func New(cfg *metadata.EntityConfig, rows []record.Record, opts Options) *Table {
	return &Table{cfg: cfg, rows: rows, opts: opts}
}

// Failed creates a table whose data could not be loaded; it renders the message
// in place of rows.
func Failed(cfg *metadata.EntityConfig, err error, opts Options) *Table {
	t := New(cfg, nil, opts)
	t.err = err.Error()
	if appErr, ok := apperror.AsAppError(err); ok {
		t.err = appErr.Message
	}
	return t
}

// ClickHeader advances the sort cycle for column and returns the new state.
func (t *Table) ClickHeader(column string) SortState {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sort = t.sort.Click(column)
	return t.sort
}

// SetSort replaces the sort state.
func (t *Table) SetSort(s SortState) {
	t.mu.Lock()
	t.sort = s
	t.mu.Unlock()
}

// Sort returns the sort state.
func (t *Table) Sort() SortState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sort
}

// ToggleMenu opens or closes the action menu of the row at input index row.
func (t *Table) ToggleMenu(row int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 0 || row >= len(t.rows) {
		return false, fmt.Errorf("%w: %d", ErrUnknownRow, row)
	}
	return t.menu.Toggle(row), nil
}

// OpenMenu opens row's menu placed next to its trigger.
func (t *Table) OpenMenu(row int, trigger Rect, menuHeight float64, vp Viewport) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 0 || row >= len(t.rows) {
		return Position{}, fmt.Errorf("%w: %d", ErrUnknownRow, row)
	}
	return t.menu.Open(row, trigger, menuHeight, vp), nil
}

// CloseMenu closes the open menu.
func (t *Table) CloseMenu() {
	t.mu.Lock()
	t.menu.Close()
	t.mu.Unlock()
}

// ClickOutside forwards a document click to the menu.
func (t *Table) ClickOutside(onMenu, onTrigger bool) {
	t.mu.Lock()
	t.menu.ClickOutside(onMenu, onTrigger)
	t.mu.Unlock()
}

// Resize closes the menu.
func (t *Table) Resize() {
	t.mu.Lock()
	t.menu.Resize()
	t.mu.Unlock()
}

// Scroll re-anchors the menu to its trigger or closes it.
func (t *Table) Scroll(trigger Rect, vp Viewport) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.menu.Scroll(trigger, vp)
}

// OpenRow returns the row whose menu is open.
func (t *Table) OpenRow() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.menu.OpenRow()
}

// Invoke runs action on the row at input index row and closes the menu.
// The handler runs without the table lock held.
func (t *Table) Invoke(ctx context.Context, row int, action string) error {
	t.mu.Lock()
	if row < 0 || row >= len(t.rows) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownRow, row)
	}
	rec := t.rows[row]
	t.menu.Close()
	tag := ""
	if t.cfg != nil {
		tag = t.cfg.TypeTag
	}
	opts := t.opts
	t.mu.Unlock()

	for _, a := range actions(tag, opts) {
		if a.ID == action {
			if a.Handler == nil {
				return ErrNoHandler
			}
			return a.Handler(ctx, rec)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownAction, action)
}

// View renders the current state.
func (t *Table) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	v := Render(t.rows, t.cfg, t.opts, t.sort)
	v.Error = t.err
	if row, open := t.menu.OpenRow(); open {
		v.Menu = &MenuView{Row: row, Position: t.menu.Position()}
		for i := range v.Rows {
			v.Rows[i].MenuOpen = v.Rows[i].Index == row
		}
	}
	return v
}
