package markdown

import (
	"iter"
	"strings"

	"github.com/dhamidi/syntree/lang/expr"
	"github.com/dhamidi/syntree/tree"
)

const (
	KindDocument  = "Document"
	KindHeading   = "Heading"
	KindParagraph = "Paragraph"
	KindEmphasis  = "Emphasis"
	KindStrong    = "Strong"
	KindCodeSpan  = "CodeSpan"
	KindCodeBlock = "CodeBlock"
	KindEmbed     = "Embed"
	KindMention   = "Mention"
)

// SlotExpr aliases an embedded expression.
const SlotExpr = "Expr"

type Heading struct{ red *tree.Red }

func CastHeading(r *tree.Red) (Heading, bool) {
	if r == nil || r.Kind() != KindHeading {
		return Heading{}, false
	}
	return Heading{r}, true
}

func (h Heading) Red() *tree.Red { return h.red }

// Level is the number of hashes in the heading marker.
func (h Heading) Level() int {
	if first := h.red.Child(0); first != nil && first.Kind() == names[Hashes] {
		return len(first.Green().Value())
	}
	return 0
}

// Title returns the heading text after the marker, without surrounding
// white space.
func (h Heading) Title() string {
	var sb strings.Builder
	for child := range h.red.Children() {
		if child.Index() > 0 {
			sb.WriteString(child.Text())
		}
	}
	return strings.TrimSpace(sb.String())
}

type CodeBlock struct{ red *tree.Red }

func CastCodeBlock(r *tree.Red) (CodeBlock, bool) {
	if r == nil || r.Kind() != KindCodeBlock {
		return CodeBlock{}, false
	}
	return CodeBlock{r}, true
}

func (c CodeBlock) Red() *tree.Red { return c.red }

// Info returns the info string after the opening fence.
func (c CodeBlock) Info() string {
	info := c.red.FirstChild(names[Info])
	if info == nil {
		return ""
	}
	return strings.TrimSpace(info.Green().Value())
}

// Code returns the text between the fences.
func (c CodeBlock) Code() string {
	var sb strings.Builder
	started := false
	for child := range c.red.Children() {
		switch {
		case child.Index() == 0 || child.Kind() == names[Info]:
		case !started && child.Kind() == names[Newline]:
			started = true
		case child.Kind() == names[Fence]:
			return sb.String()
		default:
			started = true
			sb.WriteString(child.Text())
		}
	}
	return sb.String()
}

// Expr returns the expression of a block tagged expr.
func (c CodeBlock) Expr() (expr.Expr, bool) {
	return expr.CastExpr(c.red.FirstChild(SlotExpr))
}

// Expressions yields every expression embedded under r, in document order:
// inline embeds, mentions and expr blocks.
func Expressions(r *tree.Red) iter.Seq[expr.Expr] {
	return func(yield func(expr.Expr) bool) {
		for n := range r.PreOrder() {
			switch n.Kind() {
			case KindEmbed, KindMention, KindCodeBlock:
			default:
				continue
			}
			e, ok := expr.CastExpr(n.FirstChild(SlotExpr))
			if ok && !yield(e) {
				return
			}
		}
	}
}
