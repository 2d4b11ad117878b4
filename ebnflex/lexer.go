// Package ebnflex derives token universes from EBNF grammars.
//
// The terminals of a grammar are the literal tokens and the lexical
// productions (lower-case names) referenced from its non-lexical
// productions. The derived scanner matches every terminal at the cursor and
// keeps the longest match; on a tie a literal beats a lexical production,
// so keywords win over identifiers. White space between terminals is
// trivia, as the EBNF notation itself treats it.
package ebnflex

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/syntree/lexer"
)

// Fixed kinds of every derived language. Terminal kinds follow, in the
// order of Terminals.
const (
	Error lexer.Kind = iota
	Whitespace
	Newline
	EOF
	firstTerminal
)

// Terminal is a token of a derived language.
type Terminal struct {
	Kind    lexer.Kind
	Name    string
	Literal bool
	expr    ebnf.Expression
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// matcher matches grammar expressions against the input of one scan.
type matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int // match length, -1 for no match
	visiting map[memoKey]bool
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

// Terminals returns the terminals of g in kind order.
func Terminals(g ebnf.Grammar) []Terminal {
	seen := map[string]bool{}
	var found []Terminal
	add := func(t Terminal) {
		key := strconv.FormatBool(t.Literal) + t.Name
		if !seen[key] {
			seen[key] = true
			found = append(found, t)
		}
	}

	var walk func(ebnf.Expression)
	walk = func(expr ebnf.Expression) {
		switch x := expr.(type) {
		case ebnf.Alternative:
			for _, e := range x {
				walk(e)
			}
		case ebnf.Sequence:
			for _, e := range x {
				walk(e)
			}
		case *ebnf.Group:
			walk(x.Body)
		case *ebnf.Option:
			walk(x.Body)
		case *ebnf.Repetition:
			walk(x.Body)
		case *ebnf.Token:
			add(Terminal{Name: strconv.Quote(x.String), Literal: true, expr: x})
		case *ebnf.Name:
			if isLexical(x.String) {
				add(Terminal{Name: x.String, expr: x})
			}
		}
	}

	syntactic := false
	for name, prod := range g {
		if !isLexical(name) {
			syntactic = true
			walk(prod.Expr)
		}
	}
	if !syntactic {
		for name := range g {
			add(Terminal{Name: name, expr: &ebnf.Name{String: name}})
		}
	}

	slices.SortFunc(found, func(a, b Terminal) int {
		return strings.Compare(a.Name, b.Name)
	})
	for i := range found {
		found[i].Kind = firstTerminal + lexer.Kind(i)
	}
	return found
}

// Language derives a token universe from g.
func Language(name string, g ebnf.Grammar) *lexer.Language {
	terminals := Terminals(g)
	names := map[lexer.Kind]string{
		Error:      "Error",
		Whitespace: "Whitespace",
		Newline:    "Newline",
		EOF:        "EOF",
	}
	for _, t := range terminals {
		names[t.Kind] = t.Name
	}
	return &lexer.Language{
		Name:    name,
		Scan:    scanner(g, terminals),
		Names:   names,
		Trivia:  []lexer.Kind{Whitespace, Newline},
		Merge:   []lexer.Kind{Error, Newline},
		Newline: Newline,
		Error:   Error,
		EOF:     EOF,
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func scanner(g ebnf.Grammar, terminals []Terminal) lexer.Scanner {
	return func(c *lexer.Cursor) lexer.Kind {
		m := &matcher{
			grammar:  g,
			input:    c.Rest(),
			memo:     make(map[memoKey]int),
			visiting: make(map[memoKey]bool),
		}

		best, bestLen, bestLiteral := Error, 0, false
		for _, t := range terminals {
			n, ok := m.match(t.expr, 0)
			if !ok || n == 0 {
				continue
			}
			if n > bestLen || (n == bestLen && t.Literal && !bestLiteral) {
				best, bestLen, bestLiteral = t.Kind, n, t.Literal
			}
		}
		if bestLen > 0 {
			c.Eat(m.input[:bestLen])
			return best
		}

		switch r := c.Next(); {
		case r == '\n':
			return Newline
		case isSpace(r):
			c.EatWhile(isSpace)
			return Whitespace
		}
		return Error
	}
}

// match attempts to match expr at offset and returns the length of the
// match. An expression can match the empty string, so success is reported
// separately from the length.
func (m *matcher) match(expr ebnf.Expression, offset int) (int, bool) {
	switch e := expr.(type) {
	case nil:
		return 0, true

	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return len(e.String), true
		}
		return 0, false

	case *ebnf.Range:
		r, size := utf8.DecodeRuneInString(m.input[offset:])
		if size == 0 {
			return 0, false
		}
		begin, _ := utf8.DecodeRuneInString(e.Begin.String)
		end, _ := utf8.DecodeRuneInString(e.End.String)
		if r >= begin && r <= end {
			return size, true
		}
		return 0, false

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n, ok := m.match(item, offset+total)
			if !ok {
				return 0, false
			}
			total += n
		}
		return total, true

	case ebnf.Alternative:
		best, matched := 0, false
		for _, alt := range e {
			if n, ok := m.match(alt, offset); ok && (!matched || n > best) {
				best, matched = n, true
			}
		}
		return best, matched

	case *ebnf.Repetition:
		total := 0
		for {
			n, ok := m.match(e.Body, offset+total)
			if !ok || n == 0 {
				return total, true
			}
			total += n
		}

	case *ebnf.Option:
		if n, ok := m.match(e.Body, offset); ok {
			return n, true
		}
		return 0, true

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return 0, false
}

// matchName matches a named production with memoization and cycle
// detection.
func (m *matcher) matchName(name string, offset int) (int, bool) {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n, n >= 0
	}

	// A production already being matched at this offset is left recursive;
	// fail this path to break the cycle.
	if m.visiting[key] {
		return 0, false
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return 0, false
	}

	m.visiting[key] = true
	n, ok := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	if !ok {
		n = -1
	}
	m.memo[key] = n
	return n, ok
}
