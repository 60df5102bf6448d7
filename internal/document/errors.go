package document

import (
	"fmt"

	"depsort/internal/diag"
	"depsort/internal/source"
)

// ParseError rejects the whole input. Pos is 1-based.
type ParseError struct {
	Path   string
	Pos    source.LineCol
	Offset int
	Code   diag.Code
	Msg    string
	Line   string // text of line Pos.Line, without the newline
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Pos.Line, e.Pos.Col, e.Msg)
}

// Diagnostic converts the error into the shared diagnostic record.
func (e *ParseError) Diagnostic() *diag.Diagnostic {
	return &diag.Diagnostic{
		Severity: diag.SevError,
		Code:     e.Code,
		Message:  e.Msg,
		Path:     e.Path,
		Pos:      e.Pos,
		Source:   e.Line,
	}
}
