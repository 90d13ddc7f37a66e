package metrics

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// namedParams are the parameter node types that declare a name.
// Splat collectors (*args, **kwargs) and the bare * and /
// separators are not counted.
var namedParams = map[string]bool{
	"identifier":              true,
	"default_parameter":       true,
	"typed_parameter":         true,
	"typed_default_parameter": true,
}

func countParams(params *sitter.Node) int {
	if params == nil {
		return 0
	}
	count := 0
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if !namedParams[p.Type()] {
			continue
		}
		// "*args: int" parses as a typed_parameter around a splat.
		if p.Type() == "typed_parameter" && isSplat(p.NamedChild(0)) {
			continue
		}
		count++
	}
	return count
}

func isSplat(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "list_splat_pattern", "dictionary_splat_pattern":
		return true
	}
	return false
}

// countMethods counts function definitions directly in a class body,
// decorated ones included. Nested classes and attributes are not
// methods.
func countMethods(body *sitter.Node) int {
	if body == nil {
		return 0
	}
	count := 0
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() == "decorated_definition" {
			stmt = stmt.ChildByFieldName("definition")
		}
		if stmt != nil && stmt.Type() == "function_definition" {
			count++
		}
	}
	return count
}

// hasDocstring reports whether the first statement of body is a
// string literal with non-blank content, parentheses allowed. Byte
// strings and f-strings are not docstrings.
func hasDocstring(body *sitter.Node, source []byte) bool {
	stmt := firstStatement(body)
	if stmt == nil || stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return false
	}

	expr := stmt.NamedChild(0)
	for expr.Type() == "parenthesized_expression" && expr.NamedChildCount() == 1 {
		expr = expr.NamedChild(0)
	}
	switch expr.Type() {
	case "string":
		text, ok := literalText(expr.Content(source))
		return ok && strings.TrimSpace(text) != ""
	case "concatenated_string":
		var sb strings.Builder
		for i := 0; i < int(expr.NamedChildCount()); i++ {
			part := expr.NamedChild(i)
			if part.Type() != "string" {
				continue
			}
			text, ok := literalText(part.Content(source))
			if !ok {
				return false
			}
			sb.WriteString(text)
		}
		return strings.TrimSpace(sb.String()) != ""
	default:
		return false
	}
}

// firstStatement returns the first named child of body that is not
// a comment.
func firstStatement(body *sitter.Node) *sitter.Node {
	if body == nil {
		return nil
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() != "comment" {
			return child
		}
	}
	return nil
}

// literalText strips the prefix and quotes from a string literal.
// ok is false for bytes and formatted literals.
func literalText(lit string) (text string, ok bool) {
	quote := strings.IndexAny(lit, `"'`)
	if quote < 0 {
		return "", false
	}
	prefix := strings.ToLower(lit[:quote])
	if strings.ContainsAny(prefix, "bf") {
		return "", false
	}

	body := lit[quote:]
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(body) >= 2*len(q) && strings.HasPrefix(body, q) && strings.HasSuffix(body, q) {
			return body[len(q) : len(body)-len(q)], true
		}
	}
	return "", false
}
