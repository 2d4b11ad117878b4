package expr

import (
	"strings"
	"unicode"

	"github.com/dhamidi/syntree/lexer"
)

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdent(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func scan(c *lexer.Cursor) lexer.Kind {
	r := c.Next()
	switch {
	case r == '\n':
		return Newline
	case isSpace(r):
		c.EatWhile(isSpace)
		return Whitespace
	case r == '/' && c.Peek() == '/':
		c.EatWhile(func(r rune) bool { return r != '\n' })
		return LineComment
	case r == '/' && c.Peek() == '*':
		c.Bump(1)
		blockComment(c)
		return BlockComment
	case isDigit(r):
		return number(c)
	case r == '"':
		quoted(c)
		return String
	case r == '#':
		return rawString(c)
	case isIdentStart(r):
		c.EatWhile(isIdent)
		if kind, ok := keywords[c.Text()]; ok {
			return kind
		}
		return Ident
	}
	return operator(c, r)
}

// blockComment consumes the rest of a comment whose opening "/*" has been
// read. Comments nest.
func blockComment(c *lexer.Cursor) {
	depth := 1
	for depth > 0 && !c.AtEnd() {
		switch {
		case c.Eat("/*"):
			depth++
		case c.Eat("*/"):
			depth--
		default:
			c.Next()
		}
	}
}

// number reads digits with an optional fraction. A dot not followed by a
// digit is left alone, so that 1..2 lexes as a range and 1.f as a member.
func number(c *lexer.Cursor) lexer.Kind {
	c.EatWhile(isDigit)
	if c.Peek() == '.' {
		c.Bump(1)
		if !isDigit(c.Peek()) {
			c.Rewind(1)
			return Number
		}
		c.EatWhile(isDigit)
	}
	return Number
}

func quoted(c *lexer.Cursor) {
	for {
		switch c.Next() {
		case lexer.EOF, '"':
			return
		case '\\':
			c.Next()
		}
	}
}

// rawString reads #"..."#. The closing quote must be followed by as many
// hashes as the opening one. A lone run of hashes is an error token of one
// rune.
func rawString(c *lexer.Cursor) lexer.Kind {
	hashes := 1 + c.EatWhile(func(r rune) bool { return r == '#' })
	if c.Peek() != '"' {
		c.Rewind(hashes - 1)
		return Error
	}
	c.Next()
	closing := "\"" + strings.Repeat("#", hashes)
	if !c.EatUntil(closing) {
		return String
	}
	c.Eat(closing)
	return String
}

var twoRune = map[string]lexer.Kind{
	"==": EqEq,
	"!=": NotEq,
	"<=": LtEq,
	">=": GtEq,
	"&&": AndAnd,
	"||": OrOr,
	"..": DotDot,
}

var oneRune = map[rune]lexer.Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'%': Percent,
	'^': Caret,
	'<': Lt,
	'>': Gt,
	'!': Bang,
	'.': Dot,
	',': Comma,
	':': Colon,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	'{': LBrace,
	'}': RBrace,
}

func operator(c *lexer.Cursor, r rune) lexer.Kind {
	if kind, ok := twoRune[string(r)+string(c.Peek())]; ok {
		c.Next()
		return kind
	}
	if kind, ok := oneRune[r]; ok {
		return kind
	}
	return Error
}
