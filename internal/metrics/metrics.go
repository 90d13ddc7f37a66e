// Package metrics walks a parsed Python tree once and computes the
// per-definition measurements codecheck reports on: cyclomatic
// complexity, length, parameter count, documentation presence and
// method count, plus calls to dynamic-evaluation primitives.
package metrics

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unbound-force/codecheck/internal/pysource"
)

// FindingKind distinguishes function and type findings.
type FindingKind string

// Finding kinds.
const (
	FindingFunction FindingKind = "function"
	FindingType     FindingKind = "type"
)

// Finding is one function or class definition and its metrics.
// Fields that do not apply to the kind are zero.
type Finding struct {
	Kind FindingKind
	Name string

	// Line is the line of the def/class keyword.
	Line int

	// EndLine is the last line of the function body (functions only).
	EndLine int

	// Complexity is 1 plus one per branch point and per extra
	// boolean operand anywhere in the body, nested definitions
	// included (functions only).
	Complexity int

	// Params is the number of named parameters (functions only).
	Params int

	// Documented reports a non-empty leading docstring.
	Documented bool

	// Methods is the number of functions defined directly in the
	// class body (types only).
	Methods int
}

// Length returns EndLine - Line, the number of lines the function
// spans past its first.
func (f Finding) Length() int {
	return f.EndLine - f.Line
}

// CallSite is a call to a dynamic-evaluation primitive.
type CallSite struct {
	Name   string
	Line   int
	Column int
}

// Result is everything one traversal produced.
type Result struct {
	// Findings are in source order of their def/class keyword.
	Findings []Finding

	// Calls are in source order.
	Calls []CallSite

	Functions  int
	Classes    int
	Complexity int
}

// DefaultDangerousCalls are the built-ins that interpret a string as
// code.
var DefaultDangerousCalls = []string{"eval", "exec"}

// Options configures a traversal.
type Options struct {
	// DangerousCalls lists bare callee names to flag. Nil means
	// DefaultDangerousCalls.
	DangerousCalls []string
}

// Walk traverses tree once and returns its metrics.
func Walk(tree *pysource.Tree, opts Options) *Result {
	names := opts.DangerousCalls
	if names == nil {
		names = DefaultDangerousCalls
	}
	w := &walker{
		tree:      tree,
		dangerous: make(map[string]bool, len(names)),
		res:       &Result{},
	}
	for _, n := range names {
		w.dangerous[n] = true
	}
	w.visit(tree.Root)
	return w.res
}

// frame tracks an enclosing function whose complexity is still
// accumulating.
type frame struct {
	index      int
	complexity int
}

type walker struct {
	tree      *pysource.Tree
	dangerous map[string]bool
	frames    []*frame
	res       *Result
}

func (w *walker) visit(n *sitter.Node) {
	if n == nil {
		return
	}

	kind := pysource.Classify(n)
	switch kind {
	case pysource.KindFunctionDef:
		w.enterFunction(n)
	case pysource.KindTypeDef:
		w.typeDef(n)
	case pysource.KindCallExpr:
		w.call(n)
	case pysource.KindConditional, pysource.KindBoolOp:
		w.branch()
	case pysource.KindOther:
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		w.visit(n.Child(i))
	}

	if kind == pysource.KindFunctionDef {
		w.exitFunction()
	}
}

func (w *walker) enterFunction(n *sitter.Node) {
	w.res.Findings = append(w.res.Findings, Finding{
		Kind:       FindingFunction,
		Name:       w.name(n),
		Line:       pysource.StartLine(n),
		EndLine:    pysource.EndLine(n),
		Params:     countParams(n.ChildByFieldName("parameters")),
		Documented: hasDocstring(n.ChildByFieldName("body"), w.tree.Source),
	})
	w.frames = append(w.frames, &frame{
		index:      len(w.res.Findings) - 1,
		complexity: 1,
	})
}

func (w *walker) exitFunction() {
	top := w.frames[len(w.frames)-1]
	w.frames = w.frames[:len(w.frames)-1]

	w.res.Findings[top.index].Complexity = top.complexity
	w.res.Functions++
	w.res.Complexity += top.complexity
}

// branch adds one path to every enclosing function.
func (w *walker) branch() {
	for _, f := range w.frames {
		f.complexity++
	}
}

func (w *walker) typeDef(n *sitter.Node) {
	body := n.ChildByFieldName("body")
	w.res.Findings = append(w.res.Findings, Finding{
		Kind:       FindingType,
		Name:       w.name(n),
		Line:       pysource.StartLine(n),
		Documented: hasDocstring(body, w.tree.Source),
		Methods:    countMethods(body),
	})
	w.res.Classes++
}

func (w *walker) call(n *sitter.Node) {
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" {
		return
	}
	name := w.tree.Text(fn)
	if !w.dangerous[name] {
		return
	}
	pt := n.StartPoint()
	w.res.Calls = append(w.res.Calls, CallSite{
		Name:   name,
		Line:   int(pt.Row) + 1,
		Column: int(pt.Column) + 1,
	})
}

func (w *walker) name(n *sitter.Node) string {
	if id := n.ChildByFieldName("name"); id != nil {
		return w.tree.Text(id)
	}
	return "<unknown>"
}
