package format

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/dhamidi/syntree/parser"
	"github.com/dhamidi/syntree/tree"
)

// LineEncoder lists tokens one per line, tab separated: position, kinds
// (aliases first), quoted text, and the path of enclosing node kinds.
type LineEncoder struct {
	w   io.Writer
	res parser.Result
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(res parser.Result) error {
	e.res = res
	return encode(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	ix := newLineIndex(e.res.Root.Text())
	for tok := range e.res.Red().Tokens() {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n",
			ix.position(tok.TextRange().Start),
			kinds(tok),
			strconv.Quote(tok.Green().Value()),
			e.path(tok),
		)
	}
	return []byte(sb.String()), nil
}

// kinds joins the aliases around tok with its own kind.
func kinds(tok *tree.Red) string {
	names := []string{tok.Kind()}
	for p := tok.Parent(); p != nil && p.Green().IsAlias(); p = p.Parent() {
		names = append(names, p.Kind())
	}
	slices.Reverse(names)
	return strings.Join(names, ":")
}

func (e *LineEncoder) path(r *tree.Red) string {
	var names []string
	for a := range r.Ancestors() {
		if !a.Green().IsAlias() {
			names = append(names, a.Kind())
		}
	}
	slices.Reverse(names)
	return strings.Join(names, "/")
}
