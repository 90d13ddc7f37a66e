package pysource

import (
	"fmt"
	"strings"
)

// tabSize is the tab stop Python's tokenizer uses for indentation.
const tabSize = 8

// lineScanner tracks the tokenizer state that carries across
// physical lines: open brackets, an open string, and backslash
// continuation.
type lineScanner struct {
	depth     int
	quote     string
	continued bool

	// last is the final significant character of the current logical
	// line, outside strings and comments.
	last byte
}

// inLogicalLine reports whether the next physical line continues the
// current logical line.
func (s *lineScanner) inLogicalLine() bool {
	return s.depth > 0 || s.quote != "" || s.continued
}

// scan consumes one physical line.
func (s *lineScanner) scan(line string) {
	s.continued = false
	escapedEOL := false
	for j := 0; j < len(line); j++ {
		c := line[j]
		if s.quote != "" {
			switch {
			case c == '\\':
				if j == len(line)-1 {
					escapedEOL = true
				}
				j++
			case strings.HasPrefix(line[j:], s.quote):
				j += len(s.quote) - 1
				s.quote = ""
				s.last = c
			}
			continue
		}

		switch c {
		case ' ', '\t', '\f':
			continue
		case '#':
			j = len(line)
			continue
		case '"', '\'':
			q := string(c)
			if triple := strings.Repeat(q, 3); strings.HasPrefix(line[j:], triple) {
				q = triple
			}
			j += len(q) - 1
			s.quote = q
		case '(', '[', '{':
			s.depth++
		case ')', ']', '}':
			if s.depth > 0 {
				s.depth--
			}
		case '\\':
			if j == len(line)-1 {
				s.continued = true
				continue
			}
		}
		s.last = c
	}

	// A single-quoted string ends at the newline unless escaped.
	if len(s.quote) == 1 && !escapedEOL {
		s.quote = ""
	}
}

// indentWidth returns the indentation column of line and the text
// after it.
func indentWidth(line string) (col int, rest string) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col = (col/tabSize + 1) * tabSize
		case '\f':
			col = 0
		default:
			return col, line[i:]
		}
	}
	return col, ""
}

// checkIndentation reports the indentation errors Python's tokenizer
// raises and tree-sitter silently recovers from: a block opener with
// no indented body, an unexpected indent, and a dedent to a column no
// enclosing block uses. Blank lines, comment-only lines and
// continuation lines carry no indentation.
func checkIndentation(source []byte) *SyntaxError {
	lines := strings.Split(string(source), "\n")
	levels := []int{0}

	var (
		s           lineScanner
		expectBlock bool
		opener      int
	)
	for i, line := range lines {
		if s.inLogicalLine() {
			s.scan(line)
			expectBlock = !s.inLogicalLine() && s.last == ':'
			continue
		}

		col, rest := indentWidth(line)
		if rest == "" || rest[0] == '#' || rest == "\\" {
			continue
		}

		lineNo := i + 1
		column := len(line) - len(rest) + 1
		top := levels[len(levels)-1]
		switch {
		case expectBlock:
			if col <= top {
				return &SyntaxError{
					Message: fmt.Sprintf("expected an indented block after line %d", opener),
					Line:    lineNo,
					Column:  column,
				}
			}
			levels = append(levels, col)
		case col > top:
			return &SyntaxError{Message: "unexpected indent", Line: lineNo, Column: column}
		case col < top:
			for len(levels) > 1 && col < levels[len(levels)-1] {
				levels = levels[:len(levels)-1]
			}
			if col != levels[len(levels)-1] {
				return &SyntaxError{
					Message: "unindent does not match any outer indentation level",
					Line:    lineNo,
					Column:  column,
				}
			}
		}

		opener = lineNo
		s.last = 0
		s.scan(line)
		expectBlock = !s.inLogicalLine() && s.last == ':'
	}

	if expectBlock {
		return &SyntaxError{
			Message: fmt.Sprintf("expected an indented block after line %d", opener),
			Line:    len(lines),
			Column:  1,
		}
	}
	return nil
}
