package emitter

import (
	"charm.land/lipgloss/v2"
)

// Palette holds the styles the colorised emitter mode applies to each
// category of output text. The zero Palette renders plain, unstyled
// text, so colorisation is opt-in.
type Palette struct {
	Key     lipgloss.Style
	String  lipgloss.Style
	Number  lipgloss.Style
	Bool    lipgloss.Style
	Null    lipgloss.Style
	Comment lipgloss.Style
	Anchor  lipgloss.Style
	Tag     lipgloss.Style
}

// DefaultPalette mirrors the color choices common to terminal YAML
// viewers: cyan keys, green strings, orange numbers, magenta booleans,
// grey nulls, dim italic comments.
func DefaultPalette() Palette {
	return Palette{
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00AFFF")),
		String:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
		Number:  lipgloss.NewStyle().Foreground(lipgloss.Color("#D78700")),
		Bool:    lipgloss.NewStyle().Foreground(lipgloss.Color("#D75FD7")),
		Null:    lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
		Comment: lipgloss.NewStyle().Foreground(lipgloss.Color("#5F5F5F")).Italic(true),
		Anchor:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")),
	}
}

// StyleFor returns the style pal applies to a chunk tagged kind, and
// whether kind is styled at all. KindPlain — indentation, indicators,
// and other structural punctuation — never is, so a caller can pass
// those bytes through untouched rather than risk an ANSI escape
// splitting mid-whitespace.
func (pal Palette) StyleFor(kind WriteKind) (lipgloss.Style, bool) {
	switch kind {
	case KindKey:
		return pal.Key, true
	case KindString:
		return pal.String, true
	case KindNumber:
		return pal.Number, true
	case KindBool:
		return pal.Bool, true
	case KindNull:
		return pal.Null, true
	case KindComment:
		return pal.Comment, true
	case KindAnchor:
		return pal.Anchor, true
	case KindTag:
		return pal.Tag, true
	}
	return lipgloss.Style{}, false
}
