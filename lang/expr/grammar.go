// Package expr is a small expression language built on the parser engine:
// literals, names, lists, records, calls, indexing, member access, unary
// and binary operators, and ranges.
//
// It is used on its own and embedded in markdown documents.
package expr

import (
	"github.com/dhamidi/syntree/event"
	"github.com/dhamidi/syntree/lexer"
	"github.com/dhamidi/syntree/parser"
)

type binding struct {
	assoc parser.Assoc
	prec  int
}

var bindings = map[lexer.Kind]binding{
	OrOr:    {parser.Left, 1},
	AndAnd:  {parser.Left, 2},
	EqEq:    {parser.Left, 3},
	NotEq:   {parser.Left, 3},
	Lt:      {parser.Left, 4},
	LtEq:    {parser.Left, 4},
	Gt:      {parser.Left, 4},
	GtEq:    {parser.Left, 4},
	DotDot:  {parser.Left, 5},
	Plus:    {parser.Left, 6},
	Minus:   {parser.Left, 6},
	Star:    {parser.Left, 7},
	Slash:   {parser.Left, 7},
	Percent: {parser.Left, 7},
	Caret:   {parser.Right, 8},
}

func power(k lexer.Kind) (parser.Assoc, int, bool) {
	b, ok := bindings[k]
	return b.assoc, b.prec, ok
}

func combine(b *parser.Builder, lhs *event.Buffer, rhs parser.Func) {
	kind := KindBinary
	if b.At(DotDot) {
		kind = KindRange
	}
	parser.Binary(kind)(b, lhs, rhs)
}

var infix parser.Infix

func init() {
	infix = parser.Infix{
		Operand: unary,
		Power:   power,
		Combine: combine,
	}
}

// Expression parses one expression. It is the root rule of the language
// and the rule other languages call to embed an expression.
func Expression(b *parser.Builder) {
	infix.Parse(b)
}

// Parse parses src as a single expression.
func Parse(src string, opts ...parser.Option) parser.Result {
	return parser.Parse(Language, src, Expression, opts...)
}

func unary(b *parser.Builder) {
	if !b.At(Minus, Bang) {
		postfix(b)
		return
	}
	b.Start(KindUnary)
	b.Token()
	b.Alias(SlotOperand)
	unary(b)
	b.End()
}

// postfix parses a primary expression followed by calls, index and member
// accesses. Each suffix wraps everything parsed so far, which is held in a
// buffer until the next token shows whether another suffix follows.
func postfix(b *parser.Builder) {
	lhs := b.Detach(primary)
	for {
		var suffix func(*parser.Builder, *event.Buffer)
		switch {
		case b.At(LParen):
			suffix = call
		case b.At(LBracket):
			suffix = index
		case b.At(Dot):
			suffix = member
		default:
			b.Splice(lhs)
			return
		}
		prev := lhs
		lhs = b.Detach(func(b *parser.Builder) { suffix(b, prev) })
	}
}

func call(b *parser.Builder, callee *event.Buffer) {
	b.Start(KindCall)
	b.Alias(SlotCallee)
	b.Splice(callee)
	b.Start(KindArgs)
	b.Token()
	b.Separated(Expression, Comma, RParen, true)
	b.Expect(RParen)
	b.End()
	b.End()
}

func index(b *parser.Builder, object *event.Buffer) {
	b.Start(KindIndex)
	b.Alias(SlotObject)
	b.Splice(object)
	b.Token()
	b.Alias(SlotKey)
	Expression(b)
	b.Expect(RBracket)
	b.End()
}

func member(b *parser.Builder, object *event.Buffer) {
	b.Start(KindMember)
	b.Alias(SlotObject)
	b.Splice(object)
	b.Token()
	b.Alias(SlotProperty)
	b.Expect(Ident)
	b.End()
}

func primary(b *parser.Builder) {
	b.Peek().
		At(Number, String, True, False, Null).Parse(literal).
		At(Ident).Parse(name).
		At(LParen).Parse(group).
		At(LBracket).Parse(list).
		At(LBrace).Parse(record).
		Expect()
}

func literal(b *parser.Builder) {
	b.Start(KindLiteral)
	b.Token()
	b.End()
}

func name(b *parser.Builder) {
	b.Start(KindName)
	b.Token()
	b.End()
}

func group(b *parser.Builder) {
	b.Start(KindGroup)
	b.Token()
	b.Alias(SlotInner)
	Expression(b)
	b.Expect(RParen)
	b.End()
}

func list(b *parser.Builder) {
	b.Start(KindList)
	b.Token()
	b.Separated(Expression, Comma, RBracket, true)
	b.Expect(RBracket)
	b.End()
}

func record(b *parser.Builder) {
	b.Start(KindRecord)
	b.Token()
	b.Separated(field, Comma, RBrace, true)
	b.Expect(RBrace)
	b.End()
}

func field(b *parser.Builder) {
	b.Start(KindField)
	b.Alias(SlotKey)
	b.Peek().
		At(Ident).Parse(name).
		At(String).Parse(literal).
		Expect()
	if b.Expect(Colon) {
		b.Alias(SlotValue)
		Expression(b)
	} else {
		b.Missing(SlotValue)
	}
	b.End()
}
