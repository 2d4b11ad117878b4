package markdown

import (
	"strings"
	"unicode"

	"github.com/dhamidi/syntree/lexer"
)

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func is(want rune) func(rune) bool {
	return func(r rune) bool { return r == want }
}

func isText(r rune) bool {
	return r != '\n' && !isSpace(r) && !strings.ContainsRune("*`\\{}", r)
}

func scan(c *lexer.Cursor) lexer.Kind {
	state, _ := c.Extras.(Extras)
	if state.Fence > 0 {
		return scanFenced(c, state.Fence)
	}

	r := c.Peek()
	switch {
	case r == '\n':
		c.Next()
		return Newline
	case isSpace(r):
		c.EatWhile(isSpace)
		return Whitespace
	case r == '`' && c.AtLineStart() && c.HasPrefix("```"):
		c.Extras = Extras{Fence: c.EatWhile(is('`'))}
		return Fence
	case r == '#' && c.AtLineStart() && headingMarker(c):
		return Hashes
	case r == '*':
		c.EatWhile(is('*'))
		return Stars
	case r == '`':
		c.EatWhile(is('`'))
		return Backticks
	case r == '\\':
		c.Next()
		if next := c.Peek(); next != lexer.EOF && next != '\n' {
			c.Next()
		}
		return Escape
	case r == '{':
		c.Next()
		return LBrace
	case r == '}':
		c.Next()
		return RBrace
	case r == '@' && isIdentStart(c.PeekN(1)):
		c.Next()
		return At
	}
	c.Next()
	c.EatWhile(isText)
	return Text
}

// headingMarker consumes the hashes of an ATX heading marker: one to six hashes
// followed by a space or the end of the line.
func headingMarker(c *lexer.Cursor) bool {
	n := c.EatWhile(is('#'))
	if next := c.Peek(); n <= 6 && (isSpace(next) || next == '\n' || next == lexer.EOF) {
		return true
	}
	c.Rewind(n)
	return false
}

// scanFenced scans inside a fenced block that was opened with a run of
// fence backticks. Whole lines are code; the rest of the opening line is
// the info string.
func scanFenced(c *lexer.Cursor, fence int) lexer.Kind {
	r := c.Peek()
	switch {
	case r == '\n':
		c.Next()
		return Newline
	case !c.AtLineStart() && isSpace(r):
		c.EatWhile(isSpace)
		return Whitespace
	case !c.AtLineStart():
		c.EatWhile(func(r rune) bool { return r != '\n' })
		return Info
	case closingFence(c, fence):
		c.Extras = Extras{}
		return Fence
	}
	c.EatWhile(func(r rune) bool { return r != '\n' })
	return Code
}

func closingFence(c *lexer.Cursor, fence int) bool {
	n := c.EatWhile(is('`'))
	line, _, _ := strings.Cut(c.Rest(), "\n")
	if n >= fence && strings.TrimLeft(line, " \t\r") == "" {
		return true
	}
	c.Rewind(n)
	return false
}
