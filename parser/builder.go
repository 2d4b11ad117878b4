package parser

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/syntree/event"
	"github.com/dhamidi/syntree/lexer"
	"github.com/dhamidi/syntree/tree"
)

// Func is a grammar rule.
type Func func(b *Builder)

// Builder is the parsing cursor threaded through every Func. It owns the
// lexer and emits events into a sink; it never builds nodes itself.
type Builder struct {
	lexer *lexer.Lexer
	sink  event.Sink
	log   commonlog.Logger

	// trailing counts the runes of trailing trivia committed after the
	// last token.
	trailing int
}

func newBuilder(lx *lexer.Lexer, sink event.Sink, log commonlog.Logger) *Builder {
	return &Builder{
		lexer: lx,
		sink:  sink,
		log:   log,
	}
}

func (b *Builder) Lexer() *lexer.Lexer {
	return b.lexer
}

func (b *Builder) Language() *lexer.Language {
	return b.lexer.Language()
}

// Offset returns the position of the lexer, after any committed trivia.
func (b *Builder) Offset() int {
	return b.lexer.Offset()
}

func (b *Builder) name(k lexer.Kind) string {
	return b.lexer.Language().KindName(k)
}

func (b *Builder) names(kinds []lexer.Kind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = b.name(k)
	}
	return names
}

// peek returns the n-th upcoming non-trivia token and false when it lies
// beyond the end of input. The lexer is left untouched.
func (b *Builder) peek(n int) (lexer.Token, bool) {
	cp := b.lexer.Checkpoint()
	defer b.lexer.Restore(cp)
	lang := b.lexer.Language()
	for {
		tok, ok := b.lexer.Next()
		if !ok {
			return tok, false
		}
		if lang.IsTrivia(tok.Kind) {
			continue
		}
		if n == 0 {
			return tok, true
		}
		n--
	}
}

// PeekToken returns the next non-trivia token without consuming anything.
// At end of input it returns an empty token of the language's EOF kind.
func (b *Builder) PeekToken() lexer.Token {
	tok, _ := b.peek(0)
	return tok
}

// PeekAhead is PeekToken for the n-th token after the next one.
func (b *Builder) PeekAhead(n int) lexer.Token {
	tok, _ := b.peek(n)
	return tok
}

func (b *Builder) PeekKind() lexer.Kind {
	return b.PeekToken().Kind
}

// At reports whether the next token is one of kinds.
func (b *Builder) At(kinds ...lexer.Kind) bool {
	tok, ok := b.peek(0)
	return ok && slices.Contains(kinds, tok.Kind)
}

func (b *Builder) AtEOF() bool {
	_, ok := b.peek(0)
	return !ok
}

// leading commits the trivia before the next token.
func (b *Builder) leading() {
	lang := b.lexer.Language()
	for {
		cp := b.lexer.Checkpoint()
		tok, ok := b.lexer.Next()
		if !ok || !lang.IsTrivia(tok.Kind) {
			b.lexer.Restore(cp)
			return
		}
		b.sink.Event(event.Trivia(event.Leading, lang.KindName(tok.Kind), tok.Text))
		b.trailing = 0
	}
}

// trailingTrivia commits the trivia following a token up to the end of
// its line.
func (b *Builder) trailingTrivia() {
	lang := b.lexer.Language()
	for {
		cp := b.lexer.Checkpoint()
		tok, ok := b.lexer.Next()
		if !ok || !lang.IsTrivia(tok.Kind) || tok.Kind == lang.Newline {
			b.lexer.Restore(cp)
			return
		}
		b.sink.Event(event.Trivia(event.Trailing, lang.KindName(tok.Kind), tok.Text))
		b.trailing += utf8.RuneCountInString(tok.Text)
	}
}

// Token consumes the next token together with its trivia and returns it.
// A token ending a line takes no trailing trivia. At end of input nothing is
// emitted.
func (b *Builder) Token() lexer.Token {
	b.leading()
	tok, ok := b.lexer.Next()
	if !ok {
		return tok
	}
	b.sink.Event(event.Token(b.name(tok.Kind), tok.Text))
	b.trailing = 0
	if !strings.HasSuffix(tok.Text, "\n") {
		b.trailingTrivia()
	}
	return tok
}

// Expect consumes the next token if it is one of kinds. Otherwise it emits
// an error node and a diagnostic naming kinds.
func (b *Builder) Expect(kinds ...lexer.Kind) bool {
	if b.At(kinds...) {
		b.Token()
		return true
	}
	b.Error(b.names(kinds)...)
	return false
}

func (b *Builder) Start(kind string) {
	b.sink.Event(event.Start(kind))
}

// End closes the innermost open node.
func (b *Builder) End() {
	b.sink.Event(event.End())
}

func (b *Builder) Finish(kind string) {
	b.sink.Event(event.Finish(kind))
}

// Unfinished opens a node whose kind is given later by Finish, or taken
// from the aliases pending when it was opened.
func (b *Builder) Unfinished() {
	b.sink.Event(event.Unfinished())
}

// Abort drops the innermost open node and keeps its children.
func (b *Builder) Abort() {
	b.sink.Event(event.Abort())
}

// Alias tags the next node or token with kinds, outermost first.
func (b *Builder) Alias(kinds ...string) {
	for _, kind := range kinds {
		b.sink.Event(event.Alias(kind))
	}
}

// Missing marks an absent optional element of the given kind.
func (b *Builder) Missing(kind string) {
	b.Alias(kind)
	b.Unfinished()
	b.End()
}

// Node wraps whatever f emits in a node of kind.
func (b *Builder) Node(kind string, f Func) {
	b.Start(kind)
	f(b)
	b.End()
}

func (b *Builder) diagnostic(expected []string) event.Diagnostic {
	tok, ok := b.peek(0)
	d := event.Diagnostic{
		Expected: expected,
		Range:    tree.Range{Start: tok.Start, End: tok.End},
	}
	if ok {
		d.Found = b.name(tok.Kind)
		d.Text = tok.Text
	} else {
		d.Found = tree.KindEOF
	}
	return d
}

// Error reports that none of expected was found. The offending token is
// consumed into an error node; at end of input the error node is empty.
func (b *Builder) Error(expected ...string) {
	d := b.diagnostic(expected)
	b.Start(tree.KindError)
	if !d.AtEOF() {
		b.Token()
	}
	b.sink.Error(d)
	b.End()
}

// Unexpected consumes the next token into an error node.
func (b *Builder) Unexpected() {
	b.Error()
}

// Report records that one of expected is missing before the next token.
// Unlike Error it consumes nothing, which suits closers that may be absent
// at the end of a line.
func (b *Builder) Report(expected ...string) {
	d := b.diagnostic(expected)
	b.Start(tree.KindError)
	b.sink.Error(d)
	b.End()
}

// RecoverTo skips tokens into one error node until one of kinds or the end
// of input is reached.
func (b *Builder) RecoverTo(kinds ...lexer.Kind) {
	if b.AtEOF() || b.At(kinds...) {
		return
	}
	b.skip(false, kinds)
}

// skip consumes tokens into an error node until one of stop or the end of
// input.
func (b *Builder) skip(trailing bool, stop []lexer.Kind) {
	d := b.diagnostic(nil)
	d.Trailing = trailing
	b.Start(tree.KindError)
	for !b.AtEOF() && !b.At(stop...) {
		d.Range.End = b.Token().End
	}
	b.sink.Error(d)
	b.End()
}

// mustProgress returns a function that checks whether the lexer has moved
// since the call. When it has not, the next token is consumed as an error
// so that the caller's loop advances.
func (b *Builder) mustProgress() func() bool {
	saved := b.lexer.Offset()
	return func() bool {
		if b.lexer.Offset() != saved {
			return true
		}
		if !b.AtEOF() {
			b.Unexpected()
		}
		return false
	}
}

func (b *Builder) run(root Func, kind string) {
	b.Start(kind)
	root(b)
	if !b.AtEOF() {
		b.skip(true, nil)
	}
	b.leading()
	lang := b.lexer.Language()
	b.sink.Event(event.EOF(lang.KindName(lang.EOF)))
	b.End()
}
