// Package pysource parses Python source text into a tree-sitter
// syntax tree and exposes the node classification the metrics engine
// dispatches on.
package pysource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrParseTimeout is returned when parsing exceeds the configured
// time bound.
var ErrParseTimeout = errors.New("parse timed out")

// SyntaxError reports source that does not parse. Analysis of the
// file must stop; partial trees are never analyzed.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Tree is a successfully parsed file.
type Tree struct {
	Root   *sitter.Node
	Source []byte
}

// Text returns the source text spanned by n.
func (t *Tree) Text(n *sitter.Node) string {
	return n.Content(t.Source)
}

// Parser wraps a tree-sitter parser configured for Python. A Parser
// is not safe for concurrent use.
type Parser struct {
	parser  *sitter.Parser
	timeout time.Duration
}

// NewParser creates a Python parser. A zero timeout disables the
// per-parse time bound.
func NewParser(timeout time.Duration) *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p, timeout: timeout}
}

// Parse parses source and validates the result. It returns a
// *SyntaxError for an indentation error, when the tree contains error
// or missing nodes or an empty block, or for a Python-2-only
// statement. Line endings are normalized to LF first; Tree.Source
// holds the normalized text.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Tree, error) {
	source = NormalizeNewlines(source)
	if serr := checkIndentation(source); serr != nil {
		return nil, serr
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrParseTimeout, p.timeout)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("parse error: %w", err)
	}

	root := tree.RootNode()
	if serr := findSyntaxError(root, source); serr != nil {
		return nil, serr
	}

	return &Tree{Root: root, Source: source}, nil
}

// legacyStatements are grammar productions the Python 3 compiler
// rejects.
var legacyStatements = map[string]string{
	"print_statement": "print",
	"exec_statement":  "exec",
}

// findSyntaxError returns the first syntax problem in source order,
// or nil when the tree is clean.
func findSyntaxError(n *sitter.Node, source []byte) *SyntaxError {
	if n == nil {
		return nil
	}

	switch {
	case n.IsMissing():
		return newSyntaxError(n, fmt.Sprintf("expected %q", n.Type()))
	case n.Type() == "ERROR":
		return newSyntaxError(n, errorMessage(n, source))
	case n.Type() == "block" && !hasStatement(n):
		return newSyntaxError(n, "expected an indented block")
	}
	if name, ok := legacyStatements[n.Type()]; ok {
		return newSyntaxError(n, fmt.Sprintf(
			"Missing parentheses in call to '%s'. Did you mean %s(...)?", name, name))
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if serr := findSyntaxError(n.Child(i), source); serr != nil {
			return serr
		}
	}
	return nil
}

// hasStatement reports whether a block holds anything but comments.
func hasStatement(block *sitter.Node) bool {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		if block.NamedChild(i).Type() != "comment" {
			return true
		}
	}
	return false
}

func newSyntaxError(n *sitter.Node, msg string) *SyntaxError {
	pt := n.StartPoint()
	return &SyntaxError{
		Message: msg,
		Line:    int(pt.Row) + 1,
		Column:  int(pt.Column) + 1,
	}
}

// errorMessage describes an ERROR node using the first token it
// swallowed.
func errorMessage(n *sitter.Node, source []byte) string {
	tok, _, _ := strings.Cut(n.Content(source), "\n")
	tok = strings.TrimSpace(tok)
	if r := []rune(tok); len(r) > 20 {
		tok = string(r[:20]) + "..."
	}
	if tok == "" {
		return "invalid syntax"
	}
	return fmt.Sprintf("invalid syntax near %q", tok)
}

// StartLine returns the 1-based line n starts on.
func StartLine(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// EndLine returns the 1-based line of the last character n spans.
// A node whose extent stops at column 0 ended with the previous
// line's newline.
func EndLine(n *sitter.Node) int {
	start, end := n.StartPoint(), n.EndPoint()
	if end.Column == 0 && end.Row > start.Row {
		return int(end.Row)
	}
	return int(end.Row) + 1
}
