package parser

import (
	"slices"

	"github.com/dhamidi/syntree/lexer"
)

// Dispatch branches on the next token:
//
//	b.Peek().
//		At(Number).Parse(literal).
//		At(LParen).Parse(group).
//		Expect()
//
// The first At that matches selects the Parse following it; later
// branches are skipped.
type Dispatch struct {
	b     *Builder
	kind  lexer.Kind
	eof   bool
	tried []lexer.Kind

	matched bool
	done    bool
}

// Peek starts a dispatch on the next token.
func (b *Builder) Peek() *Dispatch {
	tok, ok := b.peek(0)
	return &Dispatch{b: b, kind: tok.Kind, eof: !ok}
}

func (d *Dispatch) At(kinds ...lexer.Kind) *Dispatch {
	d.tried = append(d.tried, kinds...)
	if !d.done && !d.eof && slices.Contains(kinds, d.kind) {
		d.matched = true
	}
	return d
}

// AtEOF selects the next Parse when the input is exhausted.
func (d *Dispatch) AtEOF() *Dispatch {
	if !d.done && d.eof {
		d.matched = true
	}
	return d
}

// Parse runs f if the preceding At matched and no branch has run yet.
func (d *Dispatch) Parse(f Func) *Dispatch {
	if d.matched && !d.done {
		d.done = true
		f(d.b)
	}
	return d
}

// Else runs f if no branch ran.
func (d *Dispatch) Else(f Func) {
	if !d.done {
		d.done = true
		f(d.b)
	}
}

// Expect reports a diagnostic listing every kind tried when no branch ran,
// consuming the offending token into an error node.
func (d *Dispatch) Expect() bool {
	if d.done {
		return true
	}
	d.done = true
	d.b.Error(d.b.names(d.tried)...)
	return false
}

// Done reports whether a branch ran.
func (d *Dispatch) Done() bool {
	return d.done
}
