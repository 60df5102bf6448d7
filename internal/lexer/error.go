package lexer

import (
	"fmt"

	"depsort/internal/diag"
)

// Error is a lexical failure at a byte offset of the scanned file.
type Error struct {
	Off  uint32
	Code diag.Code
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Off, e.Msg)
}

func (c *Cursor) errAt(code diag.Code, msg string) *Error {
	return &Error{Off: c.Off, Code: code, Msg: msg}
}
