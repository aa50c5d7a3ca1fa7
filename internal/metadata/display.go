package metadata

// Style selects how a rendered cell is decorated.
type Style string

const (
	StylePlain Style = "plain"
	StylePill  Style = "pill"
	StyleYes   Style = "yes"
	StyleNo    Style = "no"
	StyleMuted Style = "muted"
	StyleBadge Style = "badge"
)

// Display is a renderable cell value.
type Display struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
	// Tone is a colour hint for badges.
	Tone string `json:"tone,omitempty"`
}

// Plain wraps text without decoration.
func Plain(text string) Display {
	return Display{Text: text, Style: StylePlain}
}

// MissingText is shown for absent values.
const MissingText = "-"

// Missing is the placeholder for absent values.
func Missing() Display {
	return Display{Text: MissingText, Style: StyleMuted}
}

// Badge renders text as a coloured badge.
func Badge(text, tone string) Display {
	return Display{Text: text, Style: StyleBadge, Tone: tone}
}

// Formatter overrides default cell formatting for a field.
type Formatter func(value any) Display

// DisplayMode controls how a nested reference is summarized in read-only views.
type DisplayMode string

const (
	DisplayAll       DisplayMode = "all"
	DisplayIDAndName DisplayMode = "id-and-name"
	DisplayNameOnly  DisplayMode = "name-only"
)
