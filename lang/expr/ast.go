package expr

import (
	"strconv"
	"strings"

	"github.com/dhamidi/syntree/tree"
)

// Node kinds.
const (
	KindLiteral = "Literal"
	KindName    = "Name"
	KindUnary   = "Unary"
	KindBinary  = "Binary"
	KindRange   = "Range"
	KindGroup   = "Group"
	KindList    = "List"
	KindRecord  = "Record"
	KindField   = "Field"
	KindCall    = "Call"
	KindArgs    = "Args"
	KindIndex   = "Index"
	KindMember  = "Member"
)

// Slot aliases naming the role of a child.
const (
	SlotLhs      = "Lhs"
	SlotRhs      = "Rhs"
	SlotOperand  = "Operand"
	SlotInner    = "Inner"
	SlotCallee   = "Callee"
	SlotObject   = "Object"
	SlotKey      = "Key"
	SlotProperty = "Property"
	SlotValue    = "Value"
)

// Expr is any expression node.
type Expr interface {
	Red() *tree.Red
}

// unwrap returns the node under r's aliases if it has the given kind.
func unwrap(r *tree.Red, kind string) *tree.Red {
	if r == nil {
		return nil
	}
	inner := r.Unwrap()
	if inner == nil || inner.Kind() != kind {
		return nil
	}
	return inner
}

// CastExpr returns the typed view of r, false when r is not an expression.
func CastExpr(r *tree.Red) (Expr, bool) {
	if r == nil || r.Unwrap() == nil {
		return nil, false
	}
	switch r.Unwrap().Kind() {
	case KindLiteral:
		return CastLiteral(r)
	case KindName:
		return CastName(r)
	case KindUnary:
		return CastUnary(r)
	case KindBinary, KindRange:
		return CastBinary(r)
	case KindGroup:
		return CastGroup(r)
	case KindList:
		return CastList(r)
	case KindRecord:
		return CastRecord(r)
	case KindCall:
		return CastCall(r)
	case KindIndex:
		return CastIndex(r)
	case KindMember:
		return CastMember(r)
	}
	return nil, false
}

// slot returns the expression in the child aliased as slot.
func slot(r *tree.Red, name string) Expr {
	child := r.FirstChild(name)
	if child == nil {
		return nil
	}
	e, _ := CastExpr(child)
	return e
}

// exprs returns the expression children of r.
func exprs(r *tree.Red) []Expr {
	var result []Expr
	for child := range r.Children() {
		if e, ok := CastExpr(child); ok {
			result = append(result, e)
		}
	}
	return result
}

// token returns the first token child of r with the given kind.
func token(r *tree.Red, kind string) *tree.Red {
	for child := range r.Children() {
		if g := child.Green(); g.IsToken() && g.Kind() == kind {
			return child
		}
	}
	return nil
}

type Literal struct{ red *tree.Red }

func CastLiteral(r *tree.Red) (Literal, bool) {
	inner := unwrap(r, KindLiteral)
	return Literal{inner}, inner != nil
}

func (n Literal) Red() *tree.Red { return n.red }

// Token returns the literal's token, nil if the literal is malformed.
func (n Literal) Token() *tree.Red {
	return n.red.Child(0)
}

// Kind returns the token kind: Number, String, True, False or Null.
func (n Literal) Kind() string {
	if tok := n.Token(); tok != nil {
		return tok.Kind()
	}
	return ""
}

// Value returns the token text without trivia.
func (n Literal) Value() string {
	if tok := n.Token(); tok != nil {
		return tok.Green().Value()
	}
	return ""
}

// Unquote returns the decoded value of a string literal. Raw strings are
// returned verbatim between their delimiters.
func (n Literal) Unquote() (string, bool) {
	if n.Kind() != names[String] {
		return "", false
	}
	text := n.Value()
	if strings.HasPrefix(text, "#") {
		hashes := len(text) - len(strings.TrimLeft(text, "#"))
		delim := strings.Repeat("#", hashes)
		body, ok := strings.CutPrefix(text, delim+`"`)
		if !ok {
			return "", false
		}
		body, ok = strings.CutSuffix(body, `"`+delim)
		return body, ok
	}
	s, err := strconv.Unquote(text)
	return s, err == nil
}

type Name struct{ red *tree.Red }

func CastName(r *tree.Red) (Name, bool) {
	inner := unwrap(r, KindName)
	return Name{inner}, inner != nil
}

func (n Name) Red() *tree.Red { return n.red }

func (n Name) Ident() string {
	if tok := token(n.red, names[Ident]); tok != nil {
		return tok.Green().Value()
	}
	return ""
}

type Unary struct{ red *tree.Red }

func CastUnary(r *tree.Red) (Unary, bool) {
	inner := unwrap(r, KindUnary)
	return Unary{inner}, inner != nil
}

func (n Unary) Red() *tree.Red { return n.red }

func (n Unary) Op() string {
	return n.red.Child(0).Green().Value()
}

func (n Unary) Operand() Expr {
	return slot(n.red, SlotOperand)
}

// Binary is an infix operation. Ranges share its shape.
type Binary struct{ red *tree.Red }

func CastBinary(r *tree.Red) (Binary, bool) {
	inner := unwrap(r, KindBinary)
	if inner == nil {
		inner = unwrap(r, KindRange)
	}
	return Binary{inner}, inner != nil
}

func (n Binary) Red() *tree.Red { return n.red }

func (n Binary) IsRange() bool {
	return n.red.Kind() == KindRange
}

func (n Binary) Lhs() Expr {
	return slot(n.red, SlotLhs)
}

// Op returns the operator token.
func (n Binary) Op() *tree.Red {
	for child := range n.red.Children() {
		if child.Green().IsToken() {
			return child
		}
	}
	return nil
}

func (n Binary) Rhs() Expr {
	return slot(n.red, SlotRhs)
}

type Group struct{ red *tree.Red }

func CastGroup(r *tree.Red) (Group, bool) {
	inner := unwrap(r, KindGroup)
	return Group{inner}, inner != nil
}

func (n Group) Red() *tree.Red { return n.red }

func (n Group) Inner() Expr {
	return slot(n.red, SlotInner)
}

type List struct{ red *tree.Red }

func CastList(r *tree.Red) (List, bool) {
	inner := unwrap(r, KindList)
	return List{inner}, inner != nil
}

func (n List) Red() *tree.Red { return n.red }

func (n List) Items() []Expr {
	return exprs(n.red)
}

type Record struct{ red *tree.Red }

func CastRecord(r *tree.Red) (Record, bool) {
	inner := unwrap(r, KindRecord)
	return Record{inner}, inner != nil
}

func (n Record) Red() *tree.Red { return n.red }

func (n Record) Fields() []Field {
	var fields []Field
	for _, child := range n.red.ChildrenOf(KindField) {
		fields = append(fields, Field{child})
	}
	return fields
}

type Field struct{ red *tree.Red }

func (n Field) Red() *tree.Red { return n.red }

// Key returns the field name, decoding string keys.
func (n Field) Key() string {
	key := n.red.FirstChild(SlotKey)
	if name, ok := CastName(key); ok {
		return name.Ident()
	}
	if lit, ok := CastLiteral(key); ok {
		s, _ := lit.Unquote()
		return s
	}
	return ""
}

func (n Field) Value() Expr {
	return slot(n.red, SlotValue)
}

type Call struct{ red *tree.Red }

func CastCall(r *tree.Red) (Call, bool) {
	inner := unwrap(r, KindCall)
	return Call{inner}, inner != nil
}

func (n Call) Red() *tree.Red { return n.red }

func (n Call) Callee() Expr {
	return slot(n.red, SlotCallee)
}

func (n Call) Args() []Expr {
	args := n.red.FirstChild(KindArgs)
	if args == nil {
		return nil
	}
	return exprs(args)
}

type Index struct{ red *tree.Red }

func CastIndex(r *tree.Red) (Index, bool) {
	inner := unwrap(r, KindIndex)
	return Index{inner}, inner != nil
}

func (n Index) Red() *tree.Red { return n.red }

func (n Index) Object() Expr {
	return slot(n.red, SlotObject)
}

func (n Index) Key() Expr {
	return slot(n.red, SlotKey)
}

type Member struct{ red *tree.Red }

func CastMember(r *tree.Red) (Member, bool) {
	inner := unwrap(r, KindMember)
	return Member{inner}, inner != nil
}

func (n Member) Red() *tree.Red { return n.red }

func (n Member) Object() Expr {
	return slot(n.red, SlotObject)
}

// Property returns the member name, empty when it is malformed.
func (n Member) Property() string {
	p := n.red.FirstChild(SlotProperty)
	if p == nil {
		return ""
	}
	g := p.Green().Unwrap()
	if g == nil || !g.IsToken() {
		return ""
	}
	return g.Value()
}
