package pysource

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind is the closed set of node categories the metrics engine
// distinguishes. Every tree-sitter node maps to exactly one Kind.
type Kind int

const (
	// KindOther is every node with no metric meaning.
	KindOther Kind = iota

	// KindFunctionDef is a def or async def.
	KindFunctionDef

	// KindTypeDef is a class definition.
	KindTypeDef

	// KindCallExpr is a call expression.
	KindCallExpr

	// KindConditional is a branch point: if, elif, while, for,
	// except and except*.
	KindConditional

	// KindBoolOp is one binary and/or operator. A chain of N
	// operands parses into N-1 nested operators.
	KindBoolOp
)

var kindNames = [...]string{
	KindOther:       "other",
	KindFunctionDef: "function-def",
	KindTypeDef:     "type-def",
	KindCallExpr:    "call-expr",
	KindConditional: "conditional",
	KindBoolOp:      "boolean-op",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var nodeKinds = map[string]Kind{
	"function_definition": KindFunctionDef,
	"class_definition":    KindTypeDef,
	"call":                KindCallExpr,

	"if_statement":        KindConditional,
	"elif_clause":         KindConditional,
	"while_statement":     KindConditional,
	"for_statement":       KindConditional,
	"except_clause":       KindConditional,
	"except_group_clause": KindConditional,

	"boolean_operator": KindBoolOp,
}

// Classify returns the Kind of a node.
func Classify(n *sitter.Node) Kind {
	if n == nil {
		return KindOther
	}
	if k, ok := nodeKinds[n.Type()]; ok {
		return k
	}
	return KindOther
}
