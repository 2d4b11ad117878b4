package lexer

import (
	"strings"
	"unicode/utf8"
)

// EOF is returned by Cursor.Peek when the cursor reached its limit.
const EOF rune = -1

// Cursor is the byte-range view a Scanner lexes through. It starts at the
// beginning of the token being scanned and never reads past its limit.
type Cursor struct {
	src   string
	start int
	pos   int
	limit int

	// Extras is per-language scanner state threaded through every call.
	// It is copied with the cursor on checkpoints, so it should be a value.
	Extras any
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() int {
	return c.pos
}

// Start returns the byte offset where the current token began.
func (c *Cursor) Start() int {
	return c.start
}

// Text returns the text scanned so far for the current token.
func (c *Cursor) Text() string {
	return c.src[c.start:c.pos]
}

// Rest returns the unscanned input up to the limit.
func (c *Cursor) Rest() string {
	return c.src[c.pos:c.limit]
}

func (c *Cursor) AtEnd() bool {
	return c.pos >= c.limit
}

// AtLineStart reports whether the current token starts a line.
func (c *Cursor) AtLineStart() bool {
	return c.start == 0 || c.src[c.start-1] == '\n'
}

func (c *Cursor) Peek() rune {
	return c.PeekN(0)
}

// PeekN returns the n-th rune after the cursor without consuming anything.
func (c *Cursor) PeekN(n int) rune {
	p := c.pos
	for {
		if p >= c.limit {
			return EOF
		}
		r, size := utf8.DecodeRuneInString(c.src[p:c.limit])
		if n == 0 {
			return r
		}
		p += size
		n--
	}
}

// Next consumes and returns one rune.
func (c *Cursor) Next() rune {
	if c.pos >= c.limit {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:c.limit])
	c.pos += size
	return r
}

// Bump advances the cursor by n runes and returns the new offset.
func (c *Cursor) Bump(n int) int {
	for ; n > 0 && c.pos < c.limit; n-- {
		_, size := utf8.DecodeRuneInString(c.src[c.pos:c.limit])
		c.pos += size
	}
	return c.pos
}

// Rewind moves the cursor back by n runes, never before the token start,
// and returns the new offset.
func (c *Cursor) Rewind(n int) int {
	for ; n > 0 && c.pos > c.start; n-- {
		_, size := utf8.DecodeLastRuneInString(c.src[c.start:c.pos])
		c.pos -= size
	}
	return c.pos
}

// HasPrefix reports whether the unscanned input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Rest(), s)
}

// Eat consumes s if the input starts with it.
func (c *Cursor) Eat(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	c.pos += len(s)
	return true
}

// EatWhile consumes runes while f holds and returns how many were consumed.
func (c *Cursor) EatWhile(f func(rune) bool) int {
	n := 0
	for {
		r := c.Peek()
		if r == EOF || !f(r) {
			return n
		}
		c.Next()
		n++
	}
}

// EatUntil consumes input up to, but not including, the next occurrence of
// s. It returns false and consumes everything when s does not occur.
func (c *Cursor) EatUntil(s string) bool {
	i := strings.Index(c.Rest(), s)
	if i < 0 {
		c.pos = c.limit
		return false
	}
	c.pos += i
	return true
}
