package lexer

import (
	"depsort/internal/diag"
	"depsort/internal/source"
)

// SkipSpaces съедает пробелы и табы и возвращает покрытый фрагмент.
func (c *Cursor) SkipSpaces() source.Span {
	start := c.Mark()
	for {
		b := c.Peek()
		if b != ' ' && b != '\t' {
			break
		}
		c.Bump()
	}
	return c.SpanFrom(start)
}

// AtNewline reports whether the cursor sits on "\n" or "\r\n".
func (c *Cursor) AtNewline() bool {
	return c.Peek() == '\n' || c.HasPrefix("\r\n")
}

// ScanNewline consumes "\n" or "\r\n". A lone '\r' is an error.
// ok is false when the cursor is not at a line break.
func (c *Cursor) ScanNewline() (sp source.Span, ok bool, err *Error) {
	start := c.Mark()
	switch {
	case c.Peek() == '\n':
		c.Bump()
	case c.HasPrefix("\r\n"):
		c.BumpN(2)
	case c.Peek() == '\r':
		return c.SpanFrom(start), false, c.errAt(diag.LexBareCarriageReturn, "bare carriage return")
	default:
		return c.SpanFrom(start), false, nil
	}
	return c.SpanFrom(start), true, nil
}

// ScanComment reads '#' up to (not including) the line break.
func (c *Cursor) ScanComment() (source.Span, *Error) {
	start := c.Mark()
	if !c.Eat('#') {
		return c.SpanFrom(start), nil
	}
	for !c.EOF() {
		b := c.Peek()
		if b == '\n' || c.HasPrefix("\r\n") {
			break
		}
		if isControl(b) {
			return c.SpanFrom(start), c.errAt(diag.LexControlChar, "control character in comment")
		}
		c.Bump()
	}
	return c.SpanFrom(start), nil
}

// isControl: управляющие символы, запрещённые в комментариях и строках (таб разрешён).
func isControl(b byte) bool {
	return (b < 0x20 && b != '\t') || b == 0x7f
}
