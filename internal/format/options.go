package format

// Options mirror the keys of the tomlfmt.toml sidecar file.
type Options struct {
	IndentCount            int
	SpaceAroundEq          bool
	CompactArrays          bool
	CompactInlineTables    bool
	TrailingNewline        bool
	AllowedBlankLines      int
	AlwaysTrailingComma    bool
	MultilineTrailingComma bool
	MaxArrayLineLen        int
	// CRLF forces the line ending; nil keeps the convention of the input.
	CRLF *bool
}

// DefaultOptions returns the settings used without a sidecar file.
func DefaultOptions() Options {
	return Options{
		IndentCount:            4,
		SpaceAroundEq:          true,
		TrailingNewline:        true,
		AllowedBlankLines:      1,
		MultilineTrailingComma: true,
		MaxArrayLineLen:        80,
	}
}

func (o Options) withDefaults() Options {
	if o.IndentCount <= 0 {
		o.IndentCount = 4
	}
	if o.AllowedBlankLines < 0 {
		o.AllowedBlankLines = 0
	}
	if o.MaxArrayLineLen <= 0 {
		o.MaxArrayLineLen = 80
	}
	return o
}

// ResolveCRLF decides the output line ending for an input.
func (o Options) ResolveCRLF(inputHasCRLF bool) bool {
	if o.CRLF != nil {
		return *o.CRLF
	}
	return inputHasCRLF
}
