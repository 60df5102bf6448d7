package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"depsort/internal/document"
)

// renderValue writes v at the writer's current indentation. width is the
// display width already used on the line, for the array length limit.
func (w *Writer) renderValue(v *document.Value, width int) {
	switch v.Kind {
	case document.KindLiteral:
		w.WriteString(requote(v.Raw))
	case document.KindMultiString, document.KindMultiLiteral:
		w.WriteString(normalizeNewlines(v.Raw, w.nl))
	case document.KindArray:
		w.renderArray(v, width)
	case document.KindInlineTable:
		w.WriteString(w.inlineTable(v))
	default:
		w.WriteString(v.Raw)
	}
}

// requote turns 'text' into "text" when no escaping would be needed.
func requote(raw string) string {
	inner := raw[1 : len(raw)-1]
	if strings.ContainsAny(inner, "\"\\") {
		return raw
	}
	return `"` + inner + `"`
}

func normalizeNewlines(s, nl string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if nl != "\n" {
		s = strings.ReplaceAll(s, "\n", nl)
	}
	return s
}

func (w *Writer) renderArray(v *document.Value, width int) {
	if len(v.Items) == 0 && len(v.Tail) == 0 {
		w.WriteString("[]")
		return
	}
	if !v.Multiline && !v.HasComments() {
		if flat, ok := w.flatArray(v); ok &&
			width+runewidth.StringWidth(flat) <= w.opt.MaxArrayLineLen {
			w.WriteString(flat)
			return
		}
	}

	w.WriteString("[")
	w.Newline()
	w.IndentPush()
	for i, it := range v.Items {
		for _, c := range it.Leading {
			w.WriteString(strings.TrimSpace(c))
			w.Newline()
		}
		w.renderValue(it.Value, w.indentLevel*w.opt.IndentCount)
		if i < len(v.Items)-1 || w.opt.MultilineTrailingComma || w.opt.AlwaysTrailingComma {
			w.WriteString(",")
		}
		if it.Comment != "" {
			w.Space()
			w.WriteString(strings.TrimSpace(it.Comment))
		}
		w.Newline()
	}
	for _, c := range v.Tail {
		w.WriteString(strings.TrimSpace(c))
		w.Newline()
	}
	w.IndentPop()
	w.WriteString("]")
}

// flatArray renders an array on one line; ok is false when an element
// cannot be written without line breaks.
func (w *Writer) flatArray(v *document.Value) (string, bool) {
	sep := ", "
	if w.opt.CompactArrays {
		sep = ","
	}
	parts := make([]string, 0, len(v.Items))
	for _, it := range v.Items {
		s, ok := w.flatValue(it.Value)
		if !ok {
			return "", false
		}
		parts = append(parts, s)
	}
	out := "[" + strings.Join(parts, sep)
	if w.opt.AlwaysTrailingComma {
		out += ","
	}
	return out + "]", true
}

func (w *Writer) flatValue(v *document.Value) (string, bool) {
	switch v.Kind {
	case document.KindMultiString, document.KindMultiLiteral:
		if strings.ContainsAny(v.Raw, "\r\n") {
			return "", false
		}
		return v.Raw, true
	case document.KindLiteral:
		return requote(v.Raw), true
	case document.KindArray:
		if v.Multiline || v.HasComments() {
			return "", false
		}
		if len(v.Items) == 0 {
			return "[]", true
		}
		return w.flatArray(v)
	case document.KindInlineTable:
		return w.inlineTable(v), true
	}
	return v.Raw, true
}

// inlineTable renders { a = 1, b = 2 } on one line. Inline tables cannot
// span lines, so nested values are always flat.
func (w *Writer) inlineTable(v *document.Value) string {
	if len(v.Fields) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.Key.Canonical()+w.eq()+w.inlineValue(f.Value))
	}
	body := strings.Join(parts, ", ")
	if w.opt.CompactInlineTables {
		return "{" + body + "}"
	}
	return "{ " + body + " }"
}

// inlineValue renders a field of an inline table. Arrays without comments are
// flattened even when written across lines; anything else that needs line
// breaks keeps its text with the output line ending.
func (w *Writer) inlineValue(v *document.Value) string {
	if s, ok := w.flatValue(v); ok {
		return s
	}
	if v.Kind == document.KindArray && !v.HasComments() {
		sep := ", "
		if w.opt.CompactArrays {
			sep = ","
		}
		parts := make([]string, 0, len(v.Items))
		for _, it := range v.Items {
			parts = append(parts, w.inlineValue(it.Value))
		}
		out := "[" + strings.Join(parts, sep)
		if w.opt.AlwaysTrailingComma && len(parts) > 0 {
			out += ","
		}
		return out + "]"
	}
	return normalizeNewlines(v.Raw, w.nl)
}

func (w *Writer) eq() string {
	if w.opt.SpaceAroundEq {
		return " = "
	}
	return "="
}
