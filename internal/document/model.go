package document

import (
	"strconv"
	"strings"
)

// Document is the parsed manifest. Tables()[0] is the implicit root table.
type Document struct {
	Path   string
	bom    string
	tables []*Table
	noEOL  bool // input did not end with a line break
	crlf   bool
}

// Tables returns every table in document order, root first.
func (d *Document) Tables() []*Table {
	return d.tables
}

// Root returns the implicit table holding entries before the first header.
func (d *Document) Root() *Table {
	return d.tables[0]
}

// Headed returns the tables introduced by a [header] or [[header]].
func (d *Document) Headed() []*Table {
	return d.tables[1:]
}

// SetTables replaces the order of headed tables. The root table stays first.
func (d *Document) SetTables(order []*Table) {
	tables := make([]*Table, 0, len(order)+1)
	tables = append(tables, d.tables[0])
	tables = append(tables, order...)
	d.tables = tables
}

// Table returns the first table whose header path equals path.
func (d *Document) Table(path ...string) *Table {
	for _, t := range d.Headed() {
		if equalPath(t.Path(), path) {
			return t
		}
	}
	return nil
}

// HasCRLF reports whether the input used "\r\n" anywhere.
func (d *Document) HasCRLF() bool {
	return d.crlf
}

// Newline returns the detected line-ending convention.
func (d *Document) Newline() string {
	if d.crlf {
		return "\r\n"
	}
	return "\n"
}

// FinalNewline reports whether the serialized text ends with a line break.
func (d *Document) FinalNewline() bool {
	return !d.noEOL
}

// SetFinalNewline controls whether the last line break is emitted.
func (d *Document) SetFinalNewline(on bool) {
	d.noEOL = !on
}

// Table is a header (nil for the root) with its direct entries.
type Table struct {
	Header  *Header
	Intro   []string
	entries []*Entry
	Trailer []string
}

// IsRoot reports whether t is the implicit root table.
func (t *Table) IsRoot() bool {
	return t.Header == nil
}

// Path returns the unquoted header key parts; nil for the root table.
func (t *Table) Path() []string {
	if t.Header == nil {
		return nil
	}
	return t.Header.Key.Path()
}

// Name returns the dotted header name; empty for the root table.
func (t *Table) Name() string {
	if t.Header == nil {
		return ""
	}
	return t.Header.Key.Name()
}

// Entries returns the direct key/value entries in order.
func (t *Table) Entries() []*Entry {
	return t.entries
}

// SetEntries replaces the entry order without touching entry content.
func (t *Table) SetEntries(order []*Entry) {
	t.entries = order
}

// Header is a [table] or [[array.of.tables]] line.
type Header struct {
	Leading []string
	Indent  string
	Raw     string // from the opening to the closing bracket
	Key     Key
	Array   bool
	Pad     string
	Comment string
	Newline string
}

// Entry is a key/value line together with its attached surface text.
type Entry struct {
	Leading  []string
	Indent   string
	Key      Key
	Eq       string // raw text between key and value
	Value    *Value
	Pad      string // raw text between value and comment or line end
	Comment  string
	Newline  string
	Trailing []string
}

// BlankLinesAfter counts blank lines in the entry's trailing block.
func (e *Entry) BlankLinesAfter() int {
	n := 0
	for _, l := range e.Trailing {
		if IsBlankLine(l) {
			n++
		}
	}
	return n
}

// Key is a possibly dotted key.
type Key struct {
	Raw   string
	Parts []KeyPart
}

// KeyPart is one dotted segment as written and unquoted.
type KeyPart struct {
	Raw  string
	Name string
}

// Name joins the unquoted parts with '.'.
func (k Key) Name() string {
	return strings.Join(k.Path(), ".")
}

// Path returns the unquoted parts.
func (k Key) Path() []string {
	out := make([]string, len(k.Parts))
	for i, p := range k.Parts {
		out[i] = p.Name
	}
	return out
}

// Canonical joins the raw parts with '.' and no surrounding blanks.
func (k Key) Canonical() string {
	raws := make([]string, len(k.Parts))
	for i, p := range k.Parts {
		raws[i] = p.Raw
	}
	return strings.Join(raws, ".")
}

// ValueKind classifies a value by its surface syntax.
type ValueKind uint8

const (
	KindScalar ValueKind = iota
	KindString
	KindLiteral
	KindMultiString
	KindMultiLiteral
	KindArray
	KindInlineTable
)

// Value is a value as written. Raw is authoritative for serialization;
// Items and Fields are the parsed children of arrays and inline tables.
type Value struct {
	Kind          ValueKind
	Raw           string
	Items         []*Item
	Tail          []string // comments after the last array element
	Fields        []*Field
	Multiline     bool
	TrailingComma bool
}

// Item is an array element with the comments around it.
type Item struct {
	Leading []string
	Value   *Value
	Comment string
}

// Field is one key = value pair of an inline table.
type Field struct {
	Key   Key
	Value *Value
	Raw   string
}

// Field returns the inline-table field with the given unquoted key.
func (v *Value) Field(name string) *Field {
	for _, f := range v.Fields {
		if f.Key.Name() == name {
			return f
		}
	}
	return nil
}

// HasComments reports whether an array or any nested array carries comments.
func (v *Value) HasComments() bool {
	if len(v.Tail) > 0 {
		return true
	}
	for _, it := range v.Items {
		if len(it.Leading) > 0 || it.Comment != "" || it.Value.HasComments() {
			return true
		}
	}
	for _, f := range v.Fields {
		if f.Value.HasComments() {
			return true
		}
	}
	return false
}

// Text returns the content of a single-line string value.
func (v *Value) Text() (string, bool) {
	switch v.Kind {
	case KindLiteral:
		return v.Raw[1 : len(v.Raw)-1], true
	case KindString:
		if s, err := strconv.Unquote(v.Raw); err == nil {
			return s, true
		}
		return v.Raw[1 : len(v.Raw)-1], true
	}
	return "", false
}

// RebuildInline regenerates Raw of an inline table from its fields' raw
// text, keeping the original padding style.
func (v *Value) RebuildInline() {
	if v.Kind != KindInlineTable {
		return
	}
	if len(v.Fields) == 0 {
		v.Raw = "{}"
		return
	}
	open, closing := "{", "}"
	if strings.HasPrefix(v.Raw, "{ ") {
		open, closing = "{ ", " }"
	}
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.Raw
	}
	v.Raw = open + strings.Join(parts, ", ") + closing
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
