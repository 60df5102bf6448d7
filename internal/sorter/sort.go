package sorter

import (
	"slices"

	"depsort/internal/document"
	"depsort/internal/match"
)

// Sort reorders doc in place.
func Sort(doc *document.Document, m match.Matcher, opts Options) {
	before := slices.Clone(doc.Tables())

	order := orderTables(doc.Headed(), opts.TableOrder)
	sortSubTables(order, m)
	doc.SetTables(order)
	separateTables(doc, before)

	orderer, _ := m.(match.InlineOrderer)
	for _, t := range doc.Tables() {
		if !m.Sortable(t.Path()) {
			continue
		}
		sortEntries(t, m, opts.Grouped)
		if orderer != nil {
			for _, e := range t.Entries() {
				orderer.OrderInline(e)
			}
		}
	}
}

// orderTables stable-partitions tables by their first header segment.
func orderTables(tables []*document.Table, tableOrder []string) []*document.Table {
	if len(tableOrder) == 0 {
		return slices.Clone(tables)
	}
	rank := make(map[string]int, len(tableOrder))
	for i, name := range tableOrder {
		if _, dup := rank[name]; !dup {
			rank[name] = i
		}
	}
	unlisted := len(tableOrder)
	rankOf := func(t *document.Table) int {
		if r, ok := rank[t.Path()[0]]; ok {
			return r
		}
		return unlisted
	}
	out := slices.Clone(tables)
	slices.SortStableFunc(out, func(a, b *document.Table) int {
		return rankOf(a) - rankOf(b)
	})
	return out
}

// sortSubTables orders runs of adjacent [dependencies.<name>] tables by name.
func sortSubTables(tables []*document.Table, m match.Matcher) {
	for i := 0; i < len(tables); {
		prefix := subTablePrefix(tables[i], m)
		if prefix < 0 {
			i++
			continue
		}
		j := i + 1
		for j < len(tables) && subTablePrefix(tables[j], m) == prefix &&
			slices.Equal(tables[j].Path()[:prefix], tables[i].Path()[:prefix]) {
			j++
		}
		run := tables[i:j]
		slices.SortStableFunc(run, func(a, b *document.Table) int {
			return m.Compare(a.Path()[prefix], b.Path()[prefix])
		})
		i = j
	}
}

// subTablePrefix returns the length of the shortest sortable header prefix
// of a plain table, or -1.
func subTablePrefix(t *document.Table, m match.Matcher) int {
	if t.Header == nil || t.Header.Array {
		return -1
	}
	path := t.Path()
	for n := 1; n < len(path); n++ {
		if m.Sortable(path[:n]) {
			return n
		}
	}
	return -1
}
