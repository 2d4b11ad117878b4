package parser

import (
	"github.com/dhamidi/syntree/event"
	"github.com/dhamidi/syntree/lexer"
	"github.com/dhamidi/syntree/tree"
)

// WithMode runs f with the lexer morphed into lang. Trailing trivia that f
// took after its last token is handed back to the enclosing language, which
// lexes it again under its own rules.
func (b *Builder) WithMode(lang *lexer.Language, f Func) {
	prev := b.lexer.Morph(lang)
	b.log.Debugf("mode %s -> %s at %d", prev.Name, lang.Name, b.lexer.Offset())

	offset, trailing := b.lexer.Offset(), b.trailing
	b.trailing = 0
	f(b)
	if b.lexer.Offset() == offset {
		b.trailing = trailing
	} else {
		b.giveBack()
	}

	b.lexer.Morph(prev)
	b.log.Debugf("mode %s -> %s at %d", lang.Name, prev.Name, b.lexer.Offset())
}

func (b *Builder) giveBack() {
	if b.trailing == 0 {
		return
	}
	b.log.Debugf("give back %d runes of trailing trivia", b.trailing)
	b.sink.Event(event.IgnoreTrivia())
	b.lexer.Rewind(b.trailing)
	b.trailing = 0
}

// WithRange runs f with the lexer restricted to r. The range starts at the
// current lexer position; r.Start is only checked against it. Tokens f
// leaves inside the range end up in an error node.
func (b *Builder) WithRange(r tree.Range, f Func) {
	start := b.lexer.Offset()
	if r.Start != start {
		b.log.Debugf("range %s starts at %d instead", r, start)
	}
	cp := b.lexer.Restrict(start, max(r.End, start))
	b.log.Debugf("restrict to %d..%d", start, b.lexer.Limit())

	f(b)
	if !b.AtEOF() {
		b.skip(true, nil)
	}

	b.lexer.Unrestrict(cp)
}

// Repeated runs body until one of close or the end of input is next.
func (b *Builder) Repeated(body Func, close ...lexer.Kind) {
	for !b.AtEOF() && !b.At(close...) {
		progress := b.mustProgress()
		body(b)
		progress()
	}
}

// Separated parses items divided by sep until close or the end of input is
// next. A missing separator is reported and the next token starts a new
// item. A separator directly before close is an error unless allowTrailing;
// one at the end of input leaves the missing close to the caller.
func (b *Builder) Separated(item Func, sep, close lexer.Kind, allowTrailing bool) {
	first := true
	for !b.AtEOF() && !b.At(close) {
		if !first {
			switch {
			case !b.At(sep):
				b.Report(b.name(sep))
			case !allowTrailing && b.PeekAhead(1).Kind == close:
				b.Unexpected()
				return
			default:
				b.Token()
				if b.At(close) || b.AtEOF() {
					return
				}
			}
		}
		progress := b.mustProgress()
		item(b)
		progress()
		first = false
	}
}

// Detach runs f with its events collected in a buffer instead of the sink.
func (b *Builder) Detach(f Func) *event.Buffer {
	buf := &event.Buffer{}
	saved := b.sink
	b.sink = buf
	f(b)
	b.sink = saved
	return buf
}

// Splice replays buf into the sink.
func (b *Builder) Splice(buf *event.Buffer) {
	buf.Finish(b.sink)
}

// Try runs f speculatively. When f reports failure its events are dropped
// and the lexer is put back where it was; otherwise they are replayed into
// the sink.
func (b *Builder) Try(f func(b *Builder) bool) bool {
	cp, trailing := b.lexer.Checkpoint(), b.trailing
	var ok bool
	buf := b.Detach(func(b *Builder) { ok = f(b) })
	if !ok {
		b.lexer.Restore(cp)
		b.trailing = trailing
		return false
	}
	b.Splice(buf)
	return true
}
