package pysource

import (
	"strings"
	"unicode/utf8"
)

// SourceUnit holds the raw text of one file and its line statistics.
// It is read-only after construction.
type SourceUnit struct {
	Text         string
	Lines        []string
	BlankLines   int
	CommentLines int
}

// NewSourceUnit splits text on newlines and counts blank and
// comment-only lines. CRLF and CR endings count as LF. A trailing
// newline yields a final empty line, so "a\n" has two lines.
func NewSourceUnit(text string) *SourceUnit {
	text = string(NormalizeNewlines([]byte(text)))
	lines := strings.Split(text, "\n")
	u := &SourceUnit{Text: text, Lines: lines}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			u.BlankLines++
		case strings.HasPrefix(trimmed, "#"):
			u.CommentLines++
		}
	}
	return u
}

// LineCount returns the number of lines.
func (u *SourceUnit) LineCount() int {
	return len(u.Lines)
}

// LineWidth returns the length of a 1-based line in characters
// (code points, not bytes).
func (u *SourceUnit) LineWidth(line int) int {
	if line < 1 || line > len(u.Lines) {
		return 0
	}
	return utf8.RuneCountInString(u.Lines[line-1])
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF, the
// way Python reads source in text mode.
func NormalizeNewlines(source []byte) []byte {
	if !strings.ContainsRune(string(source), '\r') {
		return source
	}
	s := strings.ReplaceAll(string(source), "\r\n", "\n")
	return []byte(strings.ReplaceAll(s, "\r", "\n"))
}
