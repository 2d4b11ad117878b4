// Package format renders parse results: an indented tree dump, JSON, YAML
// and a tab separated token listing.
package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/syntree/event"
	"github.com/dhamidi/syntree/parser"
	"github.com/dhamidi/syntree/tree"
)

// Encoder writes parse results to an output. MarshalText renders the most
// recently encoded result.
type Encoder interface {
	encoding.TextMarshaler
	Encode(res parser.Result) error
}

// Names lists the formats New accepts.
func Names() []string {
	return []string{"text", "json", "yaml", "tokens"}
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text":
		return NewTextEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "tokens":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q, want one of %s", name, strings.Join(Names(), ", "))
}

// encode marshals with m and writes the result to w.
func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}

// Position is a 1-based line and column. Columns count runes.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// lineIndex maps byte offsets of one source text to positions.
type lineIndex struct {
	src    string
	starts []int
}

func newLineIndex(src string) *lineIndex {
	starts := []int{0}
	for i := range len(src) {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

func (ix *lineIndex) position(offset int) Position {
	offset = min(max(offset, 0), len(ix.src))
	i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset }) - 1
	return Position{
		Line:   i + 1,
		Column: utf8.RuneCountInString(ix.src[ix.starts[i]:offset]) + 1,
	}
}

type span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

func (ix *lineIndex) span(r tree.Range) span {
	return span{Start: ix.position(r.Start), End: ix.position(r.End)}
}

// node mirrors a green element for the structured encoders.
type node struct {
	Kind     string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Aliases  []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Missing  bool     `json:"missing,omitempty" yaml:"missing,omitempty"`
	Span     span     `json:"span" yaml:"span"`
	Token    *string  `json:"token,omitempty" yaml:"token,omitempty"`
	Leading  string   `json:"leading,omitempty" yaml:"leading,omitempty"`
	Trailing string   `json:"trailing,omitempty" yaml:"trailing,omitempty"`
	Children []*node  `json:"children,omitempty" yaml:"children,omitempty"`
}

type diagnostic struct {
	Message  string   `json:"message" yaml:"message"`
	Expected []string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Found    string   `json:"found" yaml:"found"`
	Span     span     `json:"span" yaml:"span"`
}

type document struct {
	Root        *node        `json:"root" yaml:"root"`
	Diagnostics []diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func newDocument(res parser.Result) document {
	ix := newLineIndex(res.Root.Text())
	doc := document{Root: newNode(ix, res.Red())}
	for _, d := range res.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, newDiagnostic(ix, d))
	}
	return doc
}

func newNode(ix *lineIndex, r *tree.Red) *node {
	kinds := r.Green().Kinds()
	n := &node{Span: ix.span(r.TextRange())}
	content := r.Unwrap()
	if content == nil {
		n.Missing = true
		n.Aliases = kinds
		return n
	}
	n.Kind = kinds[len(kinds)-1]
	if len(kinds) > 1 {
		n.Aliases = kinds[:len(kinds)-1]
	}

	g := content.Green()
	if g.IsToken() {
		value := g.Value()
		n.Token = &value
		n.Leading = g.Leading()
		n.Trailing = g.Trailing()
		return n
	}
	for child := range content.Children() {
		n.Children = append(n.Children, newNode(ix, child))
	}
	return n
}

func newDiagnostic(ix *lineIndex, d event.Diagnostic) diagnostic {
	return diagnostic{
		Message:  d.Message(),
		Expected: d.Expected,
		Found:    d.Found,
		Span:     ix.span(d.Range),
	}
}
