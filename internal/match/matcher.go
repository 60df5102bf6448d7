package match

import (
	"strings"

	"golang.org/x/text/cases"

	"depsort/internal/document"
)

// Matcher classifies entries and orders their keys.
type Matcher interface {
	// SortKey is the text entries are ordered by.
	SortKey(e *document.Entry) string
	// Class separates groups: neighbours with different classes never share one.
	Class(e *document.Entry) string
	// Sortable reports whether entries of the table at path are sorted.
	Sortable(path []string) bool
	// Compare orders two sort keys like strings.Compare.
	Compare(a, b string) int
}

// InlineOrderer is implemented by matchers with rules for the keys inside
// an inline table value. OrderInline reports whether it changed e.
type InlineOrderer interface {
	OrderInline(e *document.Entry) bool
}

// TieBreak decides the order of keys equal under case folding.
type TieBreak uint8

const (
	// TieOriginal keeps the original relative order.
	TieOriginal TieBreak = iota
	// TieCaseSensitive falls back to byte-wise comparison.
	TieCaseSensitive
)

var tieNames = map[string]TieBreak{
	"original":       TieOriginal,
	"case-sensitive": TieCaseSensitive,
}

// ParseTieBreak maps a flag value to a TieBreak.
func ParseTieBreak(s string) (TieBreak, bool) {
	tb, ok := tieNames[strings.ToLower(strings.TrimSpace(s))]
	return tb, ok
}

func (tb TieBreak) String() string {
	for name, v := range tieNames {
		if v == tb {
			return name
		}
	}
	return "unknown"
}

// DefaultTables are the table names whose entries get sorted.
var DefaultTables = []string{"dependencies", "dev-dependencies", "build-dependencies", "features"}

// Lexical orders entries by key text.
type Lexical struct {
	CaseInsensitive bool
	TieBreak        TieBreak
	// Tables overrides DefaultTables when non-nil.
	Tables []string
}

// SortKey returns the key as written without surrounding quotes.
func (l Lexical) SortKey(e *document.Entry) string {
	return e.Key.Name()
}

// Class puts every entry into the same class.
func (l Lexical) Class(*document.Entry) string {
	return ""
}

// Sortable matches on the last header segment so that workspace.dependencies
// and target.'cfg(unix)'.dependencies qualify too.
func (l Lexical) Sortable(path []string) bool {
	if len(path) == 0 {
		return false
	}
	tables := l.Tables
	if tables == nil {
		tables = DefaultTables
	}
	last := path[len(path)-1]
	for _, t := range tables {
		if t == last {
			return true
		}
	}
	return false
}

func (l Lexical) Compare(a, b string) int {
	if !l.CaseInsensitive {
		return strings.Compare(a, b)
	}
	// Caser хранит состояние, поэтому новый на каждый вызов
	fold := cases.Fold()
	if c := strings.Compare(fold.String(a), fold.String(b)); c != 0 {
		return c
	}
	if l.TieBreak == TieCaseSensitive {
		return strings.Compare(a, b)
	}
	return 0
}
