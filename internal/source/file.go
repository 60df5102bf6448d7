package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// NewFile wraps in-memory content. The content slice is kept as is.
func NewFile(path string, content []byte) *File {
	return &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   detectFlags(content) | FileVirtual,
	}
}

// Load reads a manifest from disk without any normalization.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := NewFile(path, content)
	f.Flags &^= FileVirtual
	return f, nil
}

// HasCRLF reports whether any "\r\n" sequence occurs in the content.
func (f *File) HasCRLF() bool {
	return f.Flags&FileHasCRLF != 0
}

// Position converts a byte offset into a 1-based line and column.
// Offsets past the end are clamped to the end of the content.
func (f *File) Position(off int) LineCol {
	if off < 0 {
		off = 0
	}
	if off > len(f.Content) {
		off = len(f.Content)
	}
	u, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return toLineCol(f.LineIdx, u)
}

// GetLine возвращает строку с заданным номером (1-based) без перевода строки.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}

	var start int
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = int(f.LineIdx[lineNum-2]) + 1
	default:
		return ""
	}
	end := len(f.Content)
	if lineNum-1 < lenLineIdx {
		end = int(f.LineIdx[lineNum-1])
	}
	if start > end {
		return ""
	}
	line := f.Content[start:end]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line)
}
