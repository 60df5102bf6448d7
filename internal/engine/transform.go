package engine

import (
	"strings"

	"depsort/internal/config"
	"depsort/internal/document"
	"depsort/internal/format"
	"depsort/internal/match"
	"depsort/internal/sorter"
)

// Result is the outcome of one transform.
type Result struct {
	Final []byte
	// AlreadySorted: the input equals the sorted, unformatted serialization.
	AlreadySorted bool
	// AlreadyFormatted: formatting the sorted document changed nothing.
	// Always true when formatting is disabled.
	AlreadyFormatted bool
}

// Transform parses src, sorts it with m and formats it per cfg.
// The only error is a *document.ParseError.
func Transform(path string, src []byte, m match.Matcher, cfg config.Config) (Result, error) {
	doc, err := document.Parse(path, src)
	if err != nil {
		return Result{}, err
	}

	sorter.Sort(doc, m, cfg.SortOptions())
	sorted := doc.String()

	res := Result{
		AlreadySorted:    sorted == string(src),
		AlreadyFormatted: true,
	}
	final := sorted
	if cfg.FormatEnabled() {
		format.Format(doc, cfg.FormatOptions())
		final = doc.String()
		res.AlreadyFormatted = final == sorted
	} else if cfg.CRLF != nil && *cfg.CRLF && !strings.Contains(final, "\r\n") {
		final = strings.ReplaceAll(final, "\n", "\r\n")
	}
	res.Final = []byte(final)
	return res, nil
}

// Changed reports whether the final text differs from the input.
func (r Result) Changed(src []byte) bool {
	return string(r.Final) != string(src)
}
