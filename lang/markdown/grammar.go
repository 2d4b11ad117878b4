// Package markdown parses a small markdown dialect with embedded
// expressions.
//
// Besides headings, paragraphs, emphasis, code spans and fenced blocks, a
// document may contain expressions from package expr: inline as {1 + x},
// as mentions like @name, or as whole fenced blocks tagged expr. The
// embedded parts are lexed by switching the lexer into the expression
// language, so the resulting tree mixes both languages losslessly.
package markdown

import (
	"slices"
	"strings"

	"github.com/dhamidi/syntree/lang/expr"
	"github.com/dhamidi/syntree/lexer"
	"github.com/dhamidi/syntree/parser"
	"github.com/dhamidi/syntree/tree"
)

// Parse parses src as a document. The root node has kind Document unless
// opts choose another.
func Parse(src string, opts ...parser.Option) parser.Result {
	opts = append([]parser.Option{parser.WithRootKind(KindDocument)}, opts...)
	return parser.Parse(Language, src, Document, opts...)
}

// Document parses blocks until the end of input.
func Document(b *parser.Builder) {
	b.Repeated(block)
}

func block(b *parser.Builder) {
	b.Peek().
		At(Newline).Parse(blank).
		At(Hashes).Parse(heading).
		At(Fence).Parse(codeBlock).
		Else(paragraph)
}

func blank(b *parser.Builder) {
	b.Token()
}

var inlineKinds = []lexer.Kind{Error, Text, Escape, Stars, Backticks, LBrace, RBrace, At, Info, Code}

func heading(b *parser.Builder) {
	b.Start(KindHeading)
	b.Token()
	b.Repeated(inline, Newline)
	b.End()
}

// paragraph runs over consecutive lines. A blank line, a heading or a fence
// ends it.
func paragraph(b *parser.Builder) {
	b.Start(KindParagraph)
	for {
		b.Repeated(inline, Newline)
		nl := b.PeekToken()
		if nl.Kind != Newline || strings.Count(nl.Text, "\n") > 1 {
			break
		}
		if !slices.Contains(inlineKinds, b.PeekAhead(1).Kind) {
			break
		}
		b.Token()
	}
	b.End()
}

func inline(b *parser.Builder) {
	b.Peek().
		At(Stars).Parse(emphasis).
		At(Backticks).Parse(codeSpan).
		At(LBrace).Parse(embed).
		At(At).Parse(mention).
		At(Error, Text, Escape, RBrace, Info, Code).Parse(plain).
		Expect()
}

func plain(b *parser.Builder) {
	b.Token()
}

// closes reports whether the next token is a delimiter run equal to open.
func closes(b *parser.Builder, kind lexer.Kind, open string) bool {
	return b.At(kind) && b.PeekToken().Text == open
}

func emphasis(b *parser.Builder) {
	b.Unfinished()
	open := b.Token()
	kind := KindEmphasis
	if len(open.Text) > 1 {
		kind = KindStrong
	}
	for !b.AtEOF() && !b.At(Newline) && !closes(b, Stars, open.Text) {
		inline(b)
	}
	if closes(b, Stars, open.Text) {
		b.Token()
	} else {
		b.Report(names[Stars])
	}
	b.Finish(kind)
}

// codeSpan keeps its content as the tokens the scanner produced; only the
// closing run of the same length ends it.
func codeSpan(b *parser.Builder) {
	b.Start(KindCodeSpan)
	open := b.Token()
	for !b.AtEOF() && !b.At(Newline) && !closes(b, Backticks, open.Text) {
		b.Token()
	}
	if closes(b, Backticks, open.Text) {
		b.Token()
	} else {
		b.Report(names[Backticks])
	}
	b.End()
}

func embed(b *parser.Builder) {
	b.Start(KindEmbed)
	b.Token()
	if b.At(RBrace) {
		b.Report(SlotExpr)
	} else {
		b.Alias(SlotExpr)
		b.WithMode(expr.Language, expr.Expression)
	}
	b.Expect(RBrace)
	b.End()
}

func mention(b *parser.Builder) {
	b.Start(KindMention)
	b.Token()
	b.Alias(SlotExpr)
	b.WithMode(expr.Language, func(b *parser.Builder) {
		b.Start(expr.KindName)
		b.Expect(expr.Ident)
		b.End()
	})
	b.End()
}

// codeBlock parses a fenced block. Blocks tagged expr hold one expression,
// parsed in a range that ends at the closing fence.
func codeBlock(b *parser.Builder) {
	b.Start(KindCodeBlock)
	b.Token()
	info := ""
	if b.At(Info) {
		info = strings.TrimSpace(b.Token().Text)
	}
	if b.At(Newline) {
		b.Token()
	}

	if info == "expr" && !b.AtEOF() && !b.At(Fence) {
		r := tree.Range{Start: b.Offset(), End: closingOffset(b.Lexer())}
		b.Alias(SlotExpr)
		b.WithMode(expr.Language, func(b *parser.Builder) {
			b.WithRange(r, expr.Expression)
		})
	}

	for !b.AtEOF() && !b.At(Fence) {
		b.Token()
	}
	if b.At(Fence) {
		b.Token()
	} else {
		b.Report(names[Fence])
	}
	b.End()
}

// closingOffset returns where the closing fence of the block being lexed
// starts, or the end of input when the block is never closed.
func closingOffset(lx *lexer.Lexer) int {
	cp := lx.Checkpoint()
	defer lx.Restore(cp)
	for tok := range lx.All() {
		if tok.Kind == Fence {
			return tok.Start
		}
	}
	return lx.Limit()
}
