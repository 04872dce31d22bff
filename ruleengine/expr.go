// SPDX-License-Identifier: MIT
//
// expr.go — Expr: the one concrete exec.Executable this package ships,
// wrapping a parsed guarded-expression AST.
package ruleengine

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ncube/exec"
)

// Expr is a compiled guarded expression: a parsed AST plus its original
// source text (exposed via Cmd). Expr implements exec.Executable,
// exec.CmdProvider, and exec.Cacheable (pure expressions never depend on
// anything but their own input, so they are always cacheable).
type Expr struct {
	src  string
	root node
}

// New parses src per the grammar in doc.go and returns a ready-to-execute
// Expr, or ErrSyntax (wrapped with the source text) if src is malformed.
func New(src string) (*Expr, error) {
	root, err := parse(src)
	if err != nil {
		return nil, fmt.Errorf("ruleengine: parsing %q: %w", src, err)
	}
	return &Expr{src: src, root: root}, nil
}

// MustNew is New, panicking on a syntax error. Intended for compile-time
// literal expressions (tests, fixtures), never for untrusted input.
func MustNew(src string) *Expr {
	e, err := New(src)
	if err != nil {
		panic(err)
	}
	return e
}

// String renders the original source text, satisfying value.Expression.
func (e *Expr) String() string { return e.src }

// Cmd returns the original source text, satisfying exec.CmdProvider.
func (e *Expr) Cmd() (string, bool) { return e.src, true }

// IsCacheable always reports true: a guarded expression's result depends
// only on the input coordinate passed to Execute, never on hidden state.
func (e *Expr) IsCacheable() bool { return true }

// Execute evaluates the expression against ctx.Input and returns the
// resulting Go value: float64, string or bool from literals and operators,
// an identifier's input value as is, or nil for an unresolved identifier.
// It never raises RuleStop/RuleJump itself — see Stop and
// Redirect in cells.go for cells that do.
func (e *Expr) Execute(ctx *exec.Ctx) (interface{}, error) {
	return evalNode(e.root, ctx.Input)
}

// ReferencedCubeNames is a no-op: this minimal runtime has no call syntax
// for invoking another cube by name (a richer runtime could extend the
// grammar with a call form and populate out here).
func (e *Expr) ReferencedCubeNames(out map[string]struct{}) {}

// ScopeKeys appends "input.<name>" for every identifier referenced by the
// expression, the optional-scope contribution the cube harvests from
// executable cells.
func (e *Expr) ScopeKeys(out map[string]struct{}) {
	idents := make(map[string]struct{})
	walkIdents(e.root, idents)
	for name := range idents {
		out["input."+name] = struct{}{}
	}
}

var _ exec.Executable = (*Expr)(nil)
var _ exec.CmdProvider = (*Expr)(nil)
var _ exec.Cacheable = (*Expr)(nil)

// evalNode walks n, resolving identNode against input. Arithmetic operators
// require numeric operands (via toNumber); ordering operators accept two
// strings or two numbers; == and != compare operands of any kind; &&, ||, and
// unary ! coerce their operands through exec.IsTruthy so a guarded
// expression can freely mix booleans with numeric/string conditions.
func evalNode(n node, input map[string]interface{}) (interface{}, error) {
	switch t := n.(type) {
	case numberNode:
		return t.value, nil
	case stringNode:
		return t.value, nil
	case boolNode:
		return t.value, nil
	case identNode:
		return lookupField(input, t.name), nil
	case unaryNode:
		v, err := evalNode(t.expr, input)
		if err != nil {
			return nil, err
		}
		switch t.op {
		case tokNot:
			return !exec.IsTruthy(v), nil
		case tokMinus:
			f, err := toNumber(v)
			if err != nil {
				return nil, err
			}
			return -f, nil
		}
		return nil, fmt.Errorf("%w: unary operator", ErrUnknownOperator)
	case binaryNode:
		return evalBinary(t, input)
	default:
		return nil, fmt.Errorf("%w: unknown AST node %T", ErrSyntax, n)
	}
}

func evalBinary(b binaryNode, input map[string]interface{}) (interface{}, error) {
	switch b.op {
	case tokAnd:
		l, err := evalNode(b.left, input)
		if err != nil {
			return nil, err
		}
		if !exec.IsTruthy(l) {
			return false, nil // short-circuit
		}
		r, err := evalNode(b.right, input)
		if err != nil {
			return nil, err
		}
		return exec.IsTruthy(r), nil
	case tokOr:
		l, err := evalNode(b.left, input)
		if err != nil {
			return nil, err
		}
		if exec.IsTruthy(l) {
			return true, nil // short-circuit
		}
		r, err := evalNode(b.right, input)
		if err != nil {
			return nil, err
		}
		return exec.IsTruthy(r), nil
	}

	l, err := evalNode(b.left, input)
	if err != nil {
		return nil, err
	}
	r, err := evalNode(b.right, input)
	if err != nil {
		return nil, err
	}

	switch b.op {
	case tokEq:
		return valuesEqual(l, r), nil
	case tokNeq:
		return !valuesEqual(l, r), nil
	case tokGt, tokGte, tokLt, tokLte:
		return compareValues(b.op, l, r)
	case tokPlus, tokMinus, tokStar, tokSlash:
		lf, err := toNumber(l)
		if err != nil {
			return nil, err
		}
		rf, err := toNumber(r)
		if err != nil {
			return nil, err
		}
		switch b.op {
		case tokPlus:
			return lf + rf, nil
		case tokMinus:
			return lf - rf, nil
		case tokStar:
			return lf * rf, nil
		case tokSlash:
			if rf == 0 {
				return nil, fmt.Errorf("ruleengine: division by zero")
			}
			return lf / rf, nil
		}
	}
	return nil, fmt.Errorf("%w: binary operator", ErrUnknownOperator)
}

func compareValues(op tokenKind, l, r interface{}) (bool, error) {
	ls, lok := l.(string)
	rs, rok := r.(string)
	if lok && rok {
		c := strings.Compare(ls, rs)
		return applyCmp(op, c), nil
	}
	lf, err := toNumber(l)
	if err != nil {
		return false, err
	}
	rf, err := toNumber(r)
	if err != nil {
		return false, err
	}
	switch {
	case lf < rf:
		return applyCmp(op, -1), nil
	case lf > rf:
		return applyCmp(op, 1), nil
	default:
		return applyCmp(op, 0), nil
	}
}

func applyCmp(op tokenKind, c int) bool {
	switch op {
	case tokGt:
		return c > 0
	case tokGte:
		return c >= 0
	case tokLt:
		return c < 0
	case tokLte:
		return c <= 0
	default:
		return false
	}
}

func valuesEqual(l, r interface{}) bool {
	lf, lerr := toNumber(l)
	rf, rerr := toNumber(r)
	if lerr == nil && rerr == nil {
		return lf == rf
	}
	ls, lok := l.(string)
	rs, rok := r.(string)
	if lok && rok {
		return ls == rs
	}
	lb, lok := l.(bool)
	rb, rok := r.(bool)
	if lok && rok {
		return lb == rb
	}
	return l == r
}

// toNumber coerces v to float64 for arithmetic/comparison, accepting any
// of the numeric kinds a caller-supplied input map realistically carries.
func toNumber(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %T is not numeric", ErrTypeMismatch, v)
	}
}

// lookupField resolves name against input directly, then with an "input."
// prefix stripped, so both "amount" and "input.amount" refer to the same
// coordinate entry — the latter form matches the scope-key naming.
func lookupField(input map[string]interface{}, name string) interface{} {
	if v, ok := input[name]; ok {
		return v
	}
	if strings.HasPrefix(name, "input.") {
		if v, ok := input[strings.TrimPrefix(name, "input.")]; ok {
			return v
		}
	}
	return nil
}
