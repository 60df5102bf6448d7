package source

// FileFlags encodes metadata detected while loading a manifest.
type FileFlags uint8 // метаданные

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHasBOM
	FileHasCRLF
)

// File captures the content of a single manifest. Content is never
// normalized: the document model needs the exact bytes back.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
