package report

import "strings"

// iconEntry pairs a lowercase keyword with its glyph. The table is an
// ordered list, not a map: the first matching keyword wins, so earlier
// entries take priority when a title matches several.
type iconEntry struct {
	keyword string
	glyph   string
}

var iconTable = []iconEntry{
	{"introduction", "📚"},
	{"background", "📖"},
	{"literature review", "📋"},
	{"current evidence", "🔍"},
	{"key findings", "🎯"},
	{"critical analysis", "🧠"},
	{"analysis", "📊"},
	{"synthesis", "🔗"},
	{"comparative", "⚖️"},
	{"perspectives", "👥"},
	{"conclusions", "🎯"},
	{"future", "🚀"},
	{"references", "📚"},
	{"methodology", "🔬"},
	{"results", "📈"},
	{"discussion", "💭"},
}

// defaultIcon is the generic document glyph for titles matching nothing.
const defaultIcon = "📄"

// Icon resolves a display glyph for a section title by case-insensitive
// substring match against the keyword table. Every input, including the
// empty string, returns a defined glyph.
func Icon(title string) string {
	lower := strings.ToLower(title)
	for _, e := range iconTable {
		if strings.Contains(lower, e.keyword) {
			return e.glyph
		}
	}
	return defaultIcon
}
