package format

import (
	"strings"

	"depsort/internal/document"
)

// Format rewrites the presentation of doc in place. Formatting is total:
// every parsed document has a canonical form, and formatting that form
// again leaves it unchanged.
func Format(doc *document.Document, opt Options) {
	opt = opt.withDefaults()
	nl := "\n"
	if opt.ResolveCRLF(doc.HasCRLF()) {
		nl = "\r\n"
	}
	f := &formatter{opt: opt, nl: nl}

	for _, t := range doc.Tables() {
		if h := t.Header; h != nil {
			f.header(h)
		}
		for _, e := range t.Entries() {
			f.entry(e)
		}
	}
	f.layout(doc)
	if opt.TrailingNewline {
		doc.SetFinalNewline(true)
	}
}

type formatter struct {
	opt Options
	nl  string
}

func (f *formatter) header(h *document.Header) {
	name := h.Key.Canonical()
	if h.Array {
		h.Raw = "[[" + name + "]]"
	} else {
		h.Raw = "[" + name + "]"
	}
	h.Indent = ""
	h.Pad, h.Comment = f.comment(h.Comment)
	h.Newline = f.nl
}

func (f *formatter) entry(e *document.Entry) {
	e.Indent = ""
	e.Key.Raw = e.Key.Canonical()
	w := NewWriter(f.opt, f.nl)
	e.Eq = w.eq()
	w.renderValue(e.Value, len(e.Key.Raw)+len(e.Eq))
	e.Value.Raw = w.String()
	e.Pad, e.Comment = f.comment(e.Comment)
	e.Newline = f.nl
}

func (f *formatter) comment(c string) (pad, text string) {
	c = strings.TrimSpace(c)
	if c == "" {
		return "", ""
	}
	return " ", c
}

// slot is either a run of standalone lines or a statement.
type slot struct {
	lines  *[]string
	header bool // lines directly above a table header
}

func slots(doc *document.Document) []slot {
	var out []slot
	stmt := slot{}
	for _, t := range doc.Tables() {
		if h := t.Header; h != nil {
			out = append(out, slot{lines: &h.Leading, header: true}, stmt)
		}
		out = append(out, slot{lines: &t.Intro})
		for _, e := range t.Entries() {
			out = append(out, slot{lines: &e.Leading}, stmt, slot{lines: &e.Trailing})
		}
		out = append(out, slot{lines: &t.Trailer})
	}
	return out
}

// layout normalizes standalone lines: comments lose their indentation,
// blank runs shrink to AllowedBlankLines, and headers get a blank line
// above them. Blank lines at the start and end of the document go away.
func (f *formatter) layout(doc *document.Document) {
	all := slots(doc)
	started := false
	blanks := 0
	for _, s := range all {
		if s.lines == nil {
			started = true
			blanks = 0
			continue
		}
		gap := s.header && started && blanks == 0
		kept := (*s.lines)[:0]
		for _, l := range *s.lines {
			if document.IsBlankLine(l) {
				if !started || blanks >= f.opt.AllowedBlankLines {
					continue
				}
				blanks++
				kept = append(kept, f.nl)
				continue
			}
			started = true
			blanks = 0
			kept = append(kept, strings.TrimSpace(l)+f.nl)
		}
		if gap {
			kept = append([]string{f.nl}, kept...)
		}
		*s.lines = kept
	}

	// хвостовые пустые строки документа
	for i := len(all) - 1; i >= 0; i-- {
		s := all[i]
		if s.lines == nil {
			return
		}
		lines := *s.lines
		for len(lines) > 0 && document.IsBlankLine(lines[len(lines)-1]) {
			lines = lines[:len(lines)-1]
		}
		*s.lines = lines
		if len(lines) > 0 {
			return
		}
	}
}
