package parser

import (
	"github.com/dhamidi/syntree/event"
	"github.com/dhamidi/syntree/lexer"
)

type Assoc uint8

const (
	Left Assoc = iota
	Right
)

// Combiner builds an operator node from a buffered left operand. It must
// splice lhs, consume the operator and call rhs exactly once.
type Combiner func(b *Builder, lhs *event.Buffer, rhs Func)

// Infix parses operator expressions by precedence climbing.
type Infix struct {
	// Operand parses one operand, including any prefix or postfix forms.
	Operand Func
	// Power returns the binding power of an operator kind, false for kinds
	// that are not infix operators. Higher precedence binds tighter; a
	// precedence must be positive.
	Power func(k lexer.Kind) (Assoc, int, bool)
	// Combine defaults to Binary("Binary").
	Combine Combiner
}

// Parse parses a full expression.
func (p *Infix) Parse(b *Builder) {
	p.ParseAbove(b, 0)
}

// ParseAbove parses an expression whose operators all bind tighter than
// min. The left operand is held in a buffer until the next operator
// decides whether it becomes part of a larger node.
func (p *Infix) ParseAbove(b *Builder, min int) {
	combine := p.Combine
	if combine == nil {
		combine = Binary("Binary")
	}

	lhs := b.Detach(p.Operand)
	for {
		assoc, prec, ok := p.Power(b.PeekKind())
		if !ok || prec <= min || b.AtEOF() {
			break
		}
		next := prec
		if assoc == Right {
			next = prec - 1
		}
		left := lhs
		lhs = b.Detach(func(b *Builder) {
			combine(b, left, func(b *Builder) {
				p.ParseAbove(b, next)
			})
		})
	}
	b.Splice(lhs)
}

// Func returns p.Parse as a grammar rule.
func (p *Infix) Func() Func {
	return p.Parse
}

// Binary returns a Combiner producing kind[Lhs:left, operator, Rhs:right].
func Binary(kind string) Combiner {
	return func(b *Builder, lhs *event.Buffer, rhs Func) {
		b.Start(kind)
		b.Alias("Lhs")
		b.Splice(lhs)
		b.Token()
		b.Alias("Rhs")
		rhs(b)
		b.End()
	}
}
