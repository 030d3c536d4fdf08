// Package icons holds the glyph sets of the transport controls.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the transport glyphs of one style.
type Icons struct {
	Previous string // previous chapter
	Backward string // skip back
	Play     string
	Pause    string
	Forward  string // skip forward
	Next     string // next chapter
	Book     string // title prefix
}

var (
	nerdIcons = Icons{
		Previous: "\U000f04ae",  // nf-md-skip_previous
		Backward: "\U000f045f",  // nf-md-rewind
		Play:     "\U000f040a",  // nf-md-play
		Pause:    "\U000f03e4",  // nf-md-pause
		Forward:  "\U000f0211",  // nf-md-fast_forward
		Next:     "\U000f04ad",  // nf-md-skip_next
		Book:     "\U000f00be ", // nf-md-book_open_variant
	}

	unicodeIcons = Icons{
		Previous: "⏮",
		Backward: "⏪",
		Play:     "▶",
		Pause:    "⏸",
		Forward:  "⏩",
		Next:     "⏭",
		Book:     "",
	}

	noneIcons = Icons{
		Previous: "|<",
		Backward: "<<",
		Play:     ">",
		Pause:    "||",
		Forward:  ">>",
		Next:     ">|",
		Book:     "",
	}

	current = unicodeIcons
)

// Init selects the glyph set. Call this once at startup with the config
// value. Unknown styles fall back to unicode.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Current returns the active glyph set.
func Current() Icons {
	return current
}

// FormatTitle prefixes a book title with the book glyph, if the style has one.
func FormatTitle(title string) string {
	return current.Book + title
}
