package lexer

import (
	"depsort/internal/diag"
	"depsort/internal/source"
)

// StringKind distinguishes the four TOML string forms.
type StringKind uint8

const (
	StrNone StringKind = iota
	StrBasic
	StrLiteral
	StrMultiBasic
	StrMultiLiteral
)

// AtString reports which string form starts at the cursor.
func (c *Cursor) AtString() StringKind {
	switch {
	case c.HasPrefix(`"""`):
		return StrMultiBasic
	case c.HasPrefix(`'''`):
		return StrMultiLiteral
	case c.Peek() == '"':
		return StrBasic
	case c.Peek() == '\'':
		return StrLiteral
	}
	return StrNone
}

// ScanString reads a string of any form including its delimiters.
// Escapes are skipped, not decoded: the document keeps raw text.
func (c *Cursor) ScanString() (source.Span, StringKind, *Error) {
	kind := c.AtString()
	start := c.Mark()
	var err *Error
	switch kind {
	case StrBasic:
		err = c.scanSingleLine('"', true)
	case StrLiteral:
		err = c.scanSingleLine('\'', false)
	case StrMultiBasic:
		err = c.scanMultiLine('"', true)
	case StrMultiLiteral:
		err = c.scanMultiLine('\'', false)
	}
	return c.SpanFrom(start), kind, err
}

func (c *Cursor) scanSingleLine(quote byte, escapes bool) *Error {
	c.Bump() // opening quote
	for !c.EOF() {
		b := c.Peek()
		switch {
		case b == quote:
			c.Bump()
			return nil
		case b == '\\' && escapes:
			c.Bump()
			if c.EOF() || c.Peek() == '\n' || c.Peek() == '\r' {
				return c.errAt(diag.LexUnterminatedString, "unterminated string")
			}
			c.Bump()
		case b == '\n' || b == '\r':
			return c.errAt(diag.LexUnterminatedString, "newline in string")
		case isControl(b):
			return c.errAt(diag.LexControlChar, "control character in string")
		default:
			c.Bump()
		}
	}
	return c.errAt(diag.LexUnterminatedString, "unterminated string")
}

func (c *Cursor) scanMultiLine(quote byte, escapes bool) *Error {
	delim := string([]byte{quote, quote, quote})
	c.BumpN(3)
	for !c.EOF() {
		if c.HasPrefix(delim) {
			c.BumpN(3)
			// до двух кавычек сразу перед закрывающим разделителем входят в строку
			for extra := 0; extra < 2 && c.Peek() == quote; extra++ {
				c.Bump()
			}
			return nil
		}
		if escapes && c.Peek() == '\\' {
			c.Bump()
			if c.EOF() {
				break
			}
			c.Bump()
			continue
		}
		c.Bump()
	}
	return c.errAt(diag.LexUnterminatedString, "unterminated multi-line string")
}
