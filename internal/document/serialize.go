package document

import "strings"

// String serializes the document. Without edits the result equals the input.
func (d *Document) String() string {
	var b strings.Builder
	b.WriteString(d.bom)
	for _, t := range d.tables {
		t.writeTo(&b)
	}
	s := b.String()
	if d.noEOL {
		s = trimNewline(s)
	}
	return s
}

func (t *Table) writeTo(b *strings.Builder) {
	if h := t.Header; h != nil {
		writeLines(b, h.Leading)
		b.WriteString(h.Indent)
		b.WriteString(h.Raw)
		b.WriteString(h.Pad)
		b.WriteString(h.Comment)
		b.WriteString(h.Newline)
	}
	writeLines(b, t.Intro)
	for _, e := range t.entries {
		e.writeTo(b)
	}
	writeLines(b, t.Trailer)
}

func (e *Entry) writeTo(b *strings.Builder) {
	writeLines(b, e.Leading)
	b.WriteString(e.Indent)
	b.WriteString(e.Key.Raw)
	b.WriteString(e.Eq)
	b.WriteString(e.Value.Raw)
	b.WriteString(e.Pad)
	b.WriteString(e.Comment)
	b.WriteString(e.Newline)
	writeLines(b, e.Trailing)
}

// String renders the single entry with its attached lines.
func (e *Entry) String() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func writeLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString(l)
	}
}
