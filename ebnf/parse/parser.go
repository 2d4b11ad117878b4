// Package parse runs EBNF grammars as parsers. Every non-lexical
// production becomes a node of the same name, and the terminals are the
// tokens of the language ebnflex derives from the grammar.
//
// Productions are matched top-down with ordered choice: the first
// alternative that matches wins, options and repetitions are greedy, and
// a production that recurses into itself without consuming input fails
// instead of looping.
package parse

import (
	"slices"
	"strconv"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/syntree/ebnflex"
	"github.com/dhamidi/syntree/lexer"
	"github.com/dhamidi/syntree/parser"
)

// Parser parses input with a grammar. It is safe for concurrent use.
type Parser struct {
	grammar ebnf.Grammar
	start   string
	lang    *lexer.Language
	kinds   map[string]lexer.Kind
}

// New returns a parser for g starting at the production start. The
// grammar should have been verified from start.
func New(name string, g ebnf.Grammar, start string) *Parser {
	kinds := map[string]lexer.Kind{}
	for _, t := range ebnflex.Terminals(g) {
		kinds[t.Name] = t.Kind
	}
	return &Parser{
		grammar: g,
		start:   start,
		lang:    ebnflex.Language(name, g),
		kinds:   kinds,
	}
}

// Language returns the token language derived from the grammar.
func (p *Parser) Language() *lexer.Language {
	return p.lang
}

// Parse parses src from the start production.
func (p *Parser) Parse(src string, opts ...parser.Option) parser.Result {
	return parser.Parse(p.lang, src, p.Rule(), opts...)
}

// Rule returns the start production as a parser rule. When the input does
// not match, the tree keeps what did and an error names the terminals
// tried where matching stopped.
func (p *Parser) Rule() parser.Func {
	return func(b *parser.Builder) {
		r := &run{
			Parser:   p,
			active:   map[call]bool{},
			expected: map[int][]string{},
		}
		if r.match(b, &ebnf.Name{String: p.start}) {
			return
		}
		b.Error(r.expected[b.PeekToken().Start]...)
	}
}

type call struct {
	name   string
	offset int
}

// run holds the state of one parse.
type run struct {
	*Parser
	active   map[call]bool
	expected map[int][]string
}

func (r *run) match(b *parser.Builder, x ebnf.Expression) bool {
	switch x := x.(type) {
	case nil:
		return true
	case *ebnf.Token:
		return r.terminal(b, strconv.Quote(x.String))
	case *ebnf.Name:
		if _, ok := r.kinds[x.String]; ok {
			return r.terminal(b, x.String)
		}
		return r.production(b, x.String)
	case ebnf.Sequence:
		for _, e := range x {
			if !r.match(b, e) {
				return false
			}
		}
		return true
	case ebnf.Alternative:
		for _, e := range x {
			if r.try(b, e) {
				return true
			}
		}
		return false
	case *ebnf.Group:
		return r.match(b, x.Body)
	case *ebnf.Option:
		r.try(b, x.Body)
		return true
	case *ebnf.Repetition:
		for {
			offset := b.Offset()
			if !r.try(b, x.Body) || b.Offset() == offset {
				return true
			}
		}
	}
	// Ranges only occur inside lexical productions.
	return false
}

func (r *run) try(b *parser.Builder, x ebnf.Expression) bool {
	return b.Try(func(b *parser.Builder) bool { return r.match(b, x) })
}

func (r *run) terminal(b *parser.Builder, name string) bool {
	if b.At(r.kinds[name]) {
		b.Token()
		return true
	}
	at := b.PeekToken().Start
	if !slices.Contains(r.expected[at], name) {
		r.expected[at] = append(r.expected[at], name)
	}
	return false
}

func (r *run) production(b *parser.Builder, name string) bool {
	prod, ok := r.grammar[name]
	if !ok {
		return false
	}
	key := call{name, b.Offset()}
	if r.active[key] {
		return false
	}
	r.active[key] = true
	defer delete(r.active, key)

	b.Start(name)
	ok = r.match(b, prod.Expr)
	b.End()
	return ok
}
