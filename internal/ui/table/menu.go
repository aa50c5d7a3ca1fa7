package table

// Menu geometry, in CSS pixels.
const (
	MenuWidth     = 200
	MenuMaxHeight = 300
	menuRightGap  = 220
	menuPadding   = 20
	menuGap       = 5
)

// Rect is the trigger's bounding box relative to the viewport.
type Rect struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Viewport describes the visible window and its scroll offset.
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	ScrollX float64 `json:"scrollX"`
	ScrollY float64 `json:"scrollY"`
}

// Position is where the floating menu is drawn, in document coordinates.
type Position struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	MaxHeight float64 `json:"maxHeight"`
	Above     bool    `json:"above"`
}

// Place positions a menu of menuHeight next to trigger. The menu flips above the
// trigger when there is not enough room below and more room above, and never
// overflows the right edge.
func Place(trigger Rect, menuHeight float64, vp Viewport) Position {
	spaceAbove := trigger.Top
	spaceBelow := vp.Height - trigger.Bottom
	above := spaceBelow < menuHeight && spaceAbove > spaceBelow

	available := spaceBelow
	if above {
		available = spaceAbove
	}

	pos := Position{
		X:         min(trigger.Right+vp.ScrollX-MenuWidth, vp.Width-menuRightGap),
		MaxHeight: min(available-menuPadding, MenuMaxHeight),
		Above:     above,
	}
	if above {
		pos.Y = trigger.Top + vp.ScrollY - menuHeight - menuGap
	} else {
		pos.Y = trigger.Bottom + vp.ScrollY + menuGap
	}
	return pos
}

// Menu tracks which row's action menu is open. At most one is open at a time.
// A Menu belongs to a single table and is not safe for concurrent use.
type Menu struct {
	row  int
	open bool
	pos  Position
}

// OpenRow returns the row whose menu is open.
func (m *Menu) OpenRow() (int, bool) {
	return m.row, m.open
}

// Position returns the last computed placement.
func (m *Menu) Position() Position {
	return m.pos
}

// Toggle opens row's menu, or closes it when it is already open.
// Opening a row closes any other open menu.
func (m *Menu) Toggle(row int) bool {
	if m.open && m.row == row {
		m.Close()
		return false
	}
	m.row, m.open, m.pos = row, true, Position{}
	return true
}

// Open opens row's menu placed next to trigger.
func (m *Menu) Open(row int, trigger Rect, menuHeight float64, vp Viewport) Position {
	m.row, m.open = row, true
	m.pos = Place(trigger, menuHeight, vp)
	return m.pos
}

// Close closes the open menu.
func (m *Menu) Close() {
	m.open = false
	m.pos = Position{}
}

// ClickOutside closes the menu unless the click landed on the menu or its trigger.
func (m *Menu) ClickOutside(onMenu, onTrigger bool) {
	if m.open && !onMenu && !onTrigger {
		m.Close()
	}
}

// Resize closes the menu.
func (m *Menu) Resize() {
	m.Close()
}

// Scroll keeps the menu attached below the trigger, closing it once the trigger
// leaves the viewport. It reports whether the menu is still open.
func (m *Menu) Scroll(trigger Rect, vp Viewport) bool {
	if !m.open {
		return false
	}
	if trigger.Top < 0 || trigger.Bottom > vp.Height {
		m.Close()
		return false
	}
	m.pos.Y = trigger.Bottom + vp.ScrollY + menuGap
	return true
}
