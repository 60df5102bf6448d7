// Package testkit holds structural checks shared by package tests.
package testkit

import (
	"fmt"

	"depsort/internal/document"
	"depsort/internal/match"
)

// CheckDocument runs a minimal set of model invariants on a parsed document:
// 1) the first table is the root and no other table is
// 2) every entry has a key and a value
// 3) serialization does not panic and keeps the detected line ending
func CheckDocument(doc *document.Document) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}
	tables := doc.Tables()
	if len(tables) == 0 || !tables[0].IsRoot() {
		return fmt.Errorf("first table is not the root")
	}
	for i, t := range tables[1:] {
		if t.IsRoot() {
			return fmt.Errorf("table #%d has no header", i+1)
		}
	}
	for _, t := range tables {
		for j, e := range t.Entries() {
			if len(e.Key.Parts) == 0 {
				return fmt.Errorf("table %q: entry #%d has no key", t.Name(), j)
			}
			if e.Value == nil {
				return fmt.Errorf("table %q: entry %q has no value", t.Name(), e.Key.Name())
			}
		}
	}
	if !doc.HasCRLF() {
		for _, c := range doc.String() {
			if c == '\r' {
				return fmt.Errorf("carriage return in a LF document")
			}
		}
	}
	return nil
}

// CheckSorted verifies entry order in every table m sorts. Ungrouped, keys
// never decrease. Grouped, the first keys of consecutive groups never
// decrease; groups split at blank lines and class changes.
func CheckSorted(doc *document.Document, m match.Matcher, grouped bool) error {
	for _, t := range doc.Headed() {
		if t.Header.Array || !m.Sortable(t.Path()) {
			continue
		}
		entries := t.Entries()
		prev := ""
		for i, e := range entries {
			if grouped && i > 0 && !document.HasBlankLine(entries[i-1].Trailing) && m.Class(e) == m.Class(entries[i-1]) {
				continue
			}
			key := m.SortKey(e)
			if i > 0 && m.Compare(prev, key) > 0 {
				return fmt.Errorf("table %q: %q sorted after %q", t.Name(), key, prev)
			}
			prev = key
		}
	}
	return nil
}
