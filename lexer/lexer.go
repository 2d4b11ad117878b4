// Package lexer turns source text into a lazy sequence of typed tokens.
//
// A Language supplies the token universe and a Scanner; the Lexer drives the
// scanner over a byte range of the source, coalesces adjacent tokens of merge
// kinds, and can be morphed into another Language mid-stream or restricted
// to a sub-range of the source.
package lexer

import "iter"

type Lexer struct {
	lang *Language
	cur  Cursor
}

// Checkpoint is a saved lexer state.
type Checkpoint struct {
	lang *Language
	cur  Cursor
}

func New(lang *Language, src string) *Lexer {
	return &Lexer{
		lang: lang,
		cur: Cursor{
			src:   src,
			limit: len(src),
		},
	}
}

func (l *Lexer) Language() *Language {
	return l.lang
}

func (l *Lexer) Source() string {
	return l.cur.src
}

// Offset returns the byte offset of the next token.
func (l *Lexer) Offset() int {
	return l.cur.pos
}

// Limit returns the end of the range currently being lexed.
func (l *Lexer) Limit() int {
	return l.cur.limit
}

func (l *Lexer) Extras() any {
	return l.cur.Extras
}

func (l *Lexer) SetExtras(extras any) {
	l.cur.Extras = extras
}

func (l *Lexer) AtEnd() bool {
	return l.cur.pos >= l.cur.limit
}

// Next returns the next token, or false when the range is exhausted. Runs of
// merge kinds come back as a single token.
func (l *Lexer) Next() (Token, bool) {
	tok, ok := l.scan()
	if !ok || !l.lang.Merges(tok.Kind) {
		return tok, ok
	}
	for {
		cp := l.Checkpoint()
		next, ok := l.scan()
		if !ok || next.Kind != tok.Kind {
			l.Restore(cp)
			break
		}
		tok.End = next.End
	}
	tok.Text = l.cur.src[tok.Start:tok.End]
	return tok, true
}

func (l *Lexer) scan() (Token, bool) {
	c := &l.cur
	if c.pos >= c.limit {
		return Token{Kind: l.lang.EOF, Start: c.pos, End: c.pos}, false
	}
	c.start = c.pos
	kind := l.lang.Scan(c)
	if c.pos <= c.start {
		c.pos = c.start
		c.Bump(1)
		kind = l.lang.Error
	}
	return Token{
		Kind:  kind,
		Text:  c.src[c.start:c.pos],
		Start: c.start,
		End:   c.pos,
	}, true
}

// All lexes the rest of the range.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

func (l *Lexer) Checkpoint() Checkpoint {
	return Checkpoint{lang: l.lang, cur: l.cur}
}

func (l *Lexer) Restore(cp Checkpoint) {
	l.lang = cp.lang
	l.cur = cp.cur
}

// Rewind moves the lexer back by n runes and returns the new offset.
func (l *Lexer) Rewind(n int) int {
	l.cur.start = 0
	return l.cur.Rewind(n)
}

// Bump moves the lexer forward by n runes and returns the new offset.
func (l *Lexer) Bump(n int) int {
	return l.cur.Bump(n)
}

// Morph switches the lexer to another token universe, converting the extras,
// and returns the language it replaced.
func (l *Lexer) Morph(to *Language) *Language {
	prev := l.lang
	if to.Extras != nil {
		l.cur.Extras = to.Extras(l.cur.Extras)
	}
	l.lang = to
	return prev
}

// Restrict limits lexing to [start, end) and returns the state needed to
// undo it with Unrestrict.
func (l *Lexer) Restrict(start, end int) Checkpoint {
	cp := l.Checkpoint()
	end = min(max(end, 0), len(l.cur.src))
	start = min(max(start, 0), end)
	l.cur.pos = start
	l.cur.start = start
	l.cur.limit = end
	return cp
}

// Unrestrict restores the limit saved by Restrict. The lexer keeps its
// current position.
func (l *Lexer) Unrestrict(cp Checkpoint) {
	l.cur.limit = cp.cur.limit
}
