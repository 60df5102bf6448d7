package sorter

import (
	"slices"

	"depsort/internal/document"
	"depsort/internal/match"
)

type group struct {
	entries []*document.Entry
	key     string
}

func sortEntries(t *document.Table, m match.Matcher, grouped bool) {
	entries := t.Entries()
	if len(entries) < 2 {
		return
	}
	var sorted []*document.Entry
	if grouped {
		groups := splitGroups(entries, m)
		slices.SortStableFunc(groups, func(a, b group) int {
			return m.Compare(a.key, b.key)
		})
		for _, g := range groups {
			sorted = append(sorted, g.entries...)
		}
	} else {
		keys := make(map[*document.Entry]string, len(entries))
		for _, e := range entries {
			keys[e] = m.SortKey(e)
		}
		sorted = slices.Clone(entries)
		slices.SortStableFunc(sorted, func(a, b *document.Entry) int {
			return m.Compare(keys[a], keys[b])
		})
	}
	if slices.Equal(sorted, entries) {
		return
	}
	fixGaps(entries, sorted, grouped)
	t.SetEntries(sorted)
}

// splitGroups cuts entries at blank lines and at class changes.
func splitGroups(entries []*document.Entry, m match.Matcher) []group {
	var (
		groups []group
		cur    group
		class  string
	)
	for i, e := range entries {
		c := m.Class(e)
		if i > 0 && (document.HasBlankLine(entries[i-1].Trailing) || c != class) {
			groups = append(groups, cur)
			cur = group{}
		}
		if len(cur.entries) == 0 {
			cur.key = m.SortKey(e)
		}
		cur.entries = append(cur.entries, e)
		class = c
	}
	return append(groups, cur)
}

// fixGaps keeps blank-line separators where entries moved: the previous
// last entry closes its group with a blank line when groups were
// blank-separated, and the new last entry drops separator-only lines.
func fixGaps(before, after []*document.Entry, grouped bool) {
	oldLast := before[len(before)-1]
	newLast := after[len(after)-1]
	if oldLast == newLast {
		return
	}
	if grouped && !document.HasBlankLine(oldLast.Trailing) && separated(before) {
		oldLast.Trailing = append(oldLast.Trailing, blankLine(oldLast))
	}
	if onlyBlank(newLast.Trailing) {
		newLast.Trailing = nil
	}
}

func separated(entries []*document.Entry) bool {
	for _, e := range entries {
		if document.HasBlankLine(e.Trailing) {
			return true
		}
	}
	return false
}

func onlyBlank(lines []string) bool {
	for _, l := range lines {
		if !document.IsBlankLine(l) {
			return false
		}
	}
	return true
}

// blankLine is an empty line using the entry's own line ending.
func blankLine(e *document.Entry) string {
	if e.Newline == "\r\n" {
		return "\r\n"
	}
	return "\n"
}
