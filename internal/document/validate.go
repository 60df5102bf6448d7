package document

import (
	"errors"

	"github.com/BurntSushi/toml"

	"depsort/internal/diag"
	"depsort/internal/source"
)

// validate runs the full TOML decoder over the input. The structural parser
// accepts some documents TOML forbids (duplicate keys, redefined tables,
// malformed numbers); the decoder catches those.
func validate(f *source.File, bom int) error {
	var data map[string]any
	_, err := toml.Decode(string(f.Content[bom:]), &data)
	if err == nil {
		return nil
	}

	var perr toml.ParseError
	if !errors.As(err, &perr) {
		return &ParseError{Path: f.Path, Pos: source.LineCol{Line: 1, Col: 1}, Code: diag.SemInvalidDocument, Msg: err.Error()}
	}
	line := perr.Position.Line
	if line <= 0 {
		line = 1
	}
	off := lineStart(f, line)
	if start := perr.Position.Start + bom; start >= off && start <= len(f.Content) {
		off = start
	}
	pos := f.Position(off)
	if int(pos.Line) != line {
		// смещение декодера не совпало со строкой, доверяем номеру строки
		off = lineStart(f, line)
	}
	return newParseError(f, off, diag.SemInvalidDocument, perr.Message)
}

func lineStart(f *source.File, line int) int {
	if line <= 1 || len(f.LineIdx) == 0 {
		return 0
	}
	if line-2 >= len(f.LineIdx) {
		return len(f.Content)
	}
	return int(f.LineIdx[line-2]) + 1
}
