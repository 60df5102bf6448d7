package lexer

import (
	"depsort/internal/source"
)

// IsBareKeyByte reports whether b may appear in an unquoted key.
func IsBareKeyByte(b byte) bool {
	return b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' ||
		b == '_' || b == '-'
}

// ScanBareKey reads [A-Za-z0-9_-]*; the span is empty when nothing matched.
func (c *Cursor) ScanBareKey() source.Span {
	start := c.Mark()
	for !c.EOF() && IsBareKeyByte(c.Peek()) {
		c.Bump()
	}
	return c.SpanFrom(start)
}
