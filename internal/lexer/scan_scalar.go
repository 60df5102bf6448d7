package lexer

import (
	"depsort/internal/source"
)

// ScanScalar reads a bare value (number, bool, date-time) up to a value
// terminator. Trailing blanks are left unread so "1979-05-27 07:32:00"
// keeps its inner space while "1  # c" stops before the padding.
func (c *Cursor) ScanScalar() source.Span {
	start := c.Mark()
	end := c.Off
	for !c.EOF() {
		b := c.Peek()
		if isScalarStop(b) {
			break
		}
		c.Bump()
		if b != ' ' && b != '\t' {
			end = c.Off
		}
	}
	c.Off = end
	return c.SpanFrom(start)
}

func isScalarStop(b byte) bool {
	switch b {
	case ',', ']', '}', '#', '\n', '\r', '=', '[', '{', '"', '\'':
		return true
	}
	return false
}
