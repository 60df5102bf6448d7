package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"depsort/internal/source"
)

// Diagnostic is a single located finding about one manifest.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
	Pos      source.LineCol // zero when the finding is not located
	Source   string         // text of the located line, may be empty
}

// Located reports whether the diagnostic carries a position.
func (d *Diagnostic) Located() bool {
	return d.Pos.Line > 0
}

// Short renders "path:line:col: message" with missing parts omitted.
func (d *Diagnostic) Short() string {
	var b strings.Builder
	if d.Path != "" {
		b.WriteString(d.Path)
		if d.Located() {
			fmt.Fprintf(&b, ":%d:%d", d.Pos.Line, d.Pos.Col)
		}
		b.WriteString(": ")
	} else if d.Located() {
		fmt.Fprintf(&b, "%d:%d: ", d.Pos.Line, d.Pos.Col)
	}
	b.WriteString(d.Message)
	return b.String()
}

// Golden renders a stable single-line form used by tests and machine output.
func (d *Diagnostic) Golden() string {
	msg := strings.ReplaceAll(d.Message, "\n", " ")
	return fmt.Sprintf("%s %s %s", strings.ToLower(d.Severity.String()), d.Code.ID(), (&Diagnostic{Path: d.Path, Pos: d.Pos, Message: msg}).Short())
}

// Snippet renders the located line with a caret under Pos.Col:
//
//	 3 | name x
//	   |      ^
//
// Empty when the diagnostic has no position or source text.
func (d *Diagnostic) Snippet() string {
	if !d.Located() || d.Source == "" {
		return ""
	}
	gutter := strconv.FormatUint(uint64(d.Pos.Line), 10)
	pad := strings.Repeat(" ", len(gutter))

	col := int(d.Pos.Col)
	if col < 1 {
		col = 1
	}
	prefix := d.Source
	if col-1 < len(prefix) {
		prefix = prefix[:col-1]
	}
	// табы сохраняем, остальное заменяем пробелами по ширине руны
	var marker strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			marker.WriteByte('\t')
			continue
		}
		marker.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	marker.WriteByte('^')
	return fmt.Sprintf(" %s | %s\n %s | %s\n", gutter, d.Source, pad, marker.String())
}
