package format

// Writer accumulates rendered value text and keeps track of indentation
// for multi-line arrays.
type Writer struct {
	opt         Options
	nl          string
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a writer emitting nl as the line ending.
func NewWriter(opt Options, nl string) *Writer {
	return &Writer{opt: opt.withDefaults(), nl: nl}
}

// String returns the accumulated output.
func (w *Writer) String() string {
	return string(w.buf)
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for range w.indentLevel * w.opt.IndentCount {
		w.buf = append(w.buf, ' ')
	}
	w.atLineStart = false
}

// WriteString writes s, indenting first when at the start of a line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
}

// Space writes a single space unless the output already ends with one.
func (w *Writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.buf = append(w.buf, w.nl...)
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}
