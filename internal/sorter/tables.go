package sorter

import "depsort/internal/document"

// separateTables puts a blank line between tables that became neighbours
// and trims separator lines left at the end of the document.
func separateTables(doc *document.Document, before []*document.Table) {
	prevOf := make(map[*document.Table]*document.Table, len(before))
	for i := 1; i < len(before); i++ {
		prevOf[before[i]] = before[i-1]
	}
	tables := doc.Tables()
	for i := 1; i < len(tables); i++ {
		prev := tables[i-1]
		if prevOf[tables[i]] == prev || isEmpty(prev) {
			continue
		}
		if !document.EndsWithBlank(prev.Trailer) {
			prev.Trailer = append(prev.Trailer, doc.Newline())
		}
	}
	oldLast, newLast := before[len(before)-1], tables[len(tables)-1]
	if oldLast != newLast {
		for document.EndsWithBlank(newLast.Trailer) {
			newLast.Trailer = newLast.Trailer[:len(newLast.Trailer)-1]
		}
	}
}

func isEmpty(t *document.Table) bool {
	return t.IsRoot() && len(t.Intro) == 0 && len(t.Entries()) == 0 && len(t.Trailer) == 0
}
