package document

import "strings"

// IsBlankLine reports whether a raw line holds only whitespace.
func IsBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// HasBlankLine reports whether any of lines is blank.
func HasBlankLine(lines []string) bool {
	for _, l := range lines {
		if IsBlankLine(l) {
			return true
		}
	}
	return false
}

// EndsWithBlank reports whether the last line is blank.
func EndsWithBlank(lines []string) bool {
	return len(lines) > 0 && IsBlankLine(lines[len(lines)-1])
}

// splitPending cuts lines after the last blank one: the head stays with the
// previous statement, the tail is the comment block of the next one.
func splitPending(lines []string) (before, adjacent []string) {
	cut := 0
	for i, l := range lines {
		if IsBlankLine(l) {
			cut = i + 1
		}
	}
	return lines[:cut], lines[cut:]
}

// trimNewline cuts exactly one trailing line break.
func trimNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
