// Package tree implements immutable, structurally shared syntax trees.
//
// Green nodes are the durable data: immutable values without positions or
// parent links, deduplicated through a Cache. Red nodes are cheap positioned
// views over a green tree, created on demand while walking and never stored.
//
//	Root 0..4
//	  Binary 0..3
//	    Lhs:Literal 0..1
//	      Number 0..1 "2"
//	    Plus 1..2 "+"
//	    Rhs:Literal 2..3
//	      Number 2..3 "3"
//	  EOF 3..4 "" leading="\n"
//
// Editing never touches green data in place: Replace and the list operations
// rebuild the path from the edited node to the root and reuse every untouched
// subtree by reference.
//
// # Thread Safety
//
// Green and Red values are immutable and may be shared across goroutines. A
// Cache is not safe for concurrent use; give each parse its own.
package tree

import (
	"strconv"
	"strings"
)

// Kinds used by the engine itself.
const (
	KindRoot  = "Root"
	KindError = "Error"
	KindEOF   = "EOF"
)

type variant uint8

const (
	variantNode variant = iota
	variantToken
	variantAlias
)

// Green is an immutable syntax node: an interior node, a token leaf, or an
// alias wrapping zero or one node. Construct them through a Cache.
type Green struct {
	id       uint64
	kind     string
	variant  variant
	children []*Green
	leading  string
	value    string
	trailing string
	width    int
}

func (g *Green) Kind() string {
	return g.kind
}

func (g *Green) IsNode() bool {
	return g.variant == variantNode
}

func (g *Green) IsToken() bool {
	return g.variant == variantToken
}

func (g *Green) IsAlias() bool {
	return g.variant == variantAlias
}

// IsMissing reports whether g is an alias chain that ends without content.
func (g *Green) IsMissing() bool {
	return g.Unwrap() == nil
}

// Width returns the total text length of g, trivia included.
func (g *Green) Width() int {
	return g.width
}

// Children returns the children of an interior node, or the wrapped node of
// an alias. The slice must not be modified.
func (g *Green) Children() []*Green {
	return g.children
}

// Child returns the node wrapped by an alias, nil when missing.
func (g *Green) Child() *Green {
	if g.variant != variantAlias || len(g.children) == 0 {
		return nil
	}
	return g.children[0]
}

func (g *Green) Leading() string {
	return g.leading
}

func (g *Green) Value() string {
	return g.value
}

func (g *Green) Trailing() string {
	return g.trailing
}

// Unwrap walks through aliases to the node carrying content.
func (g *Green) Unwrap() *Green {
	for g != nil && g.variant == variantAlias {
		g = g.Child()
	}
	return g
}

// Kinds returns every kind g answers to, outermost alias first.
func (g *Green) Kinds() []string {
	var kinds []string
	for n := g; n != nil; n = n.Child() {
		kinds = append(kinds, n.kind)
		if n.variant != variantAlias {
			break
		}
	}
	return kinds
}

// Is reports whether g or any alias around its content has the given kind.
func (g *Green) Is(kind string) bool {
	for n := g; n != nil; n = n.Child() {
		if n.kind == kind {
			return true
		}
		if n.variant != variantAlias {
			break
		}
	}
	return false
}

// Text reconstructs the source text covered by g.
func (g *Green) Text() string {
	var sb strings.Builder
	sb.Grow(g.width)
	g.writeText(&sb)
	return sb.String()
}

func (g *Green) writeText(sb *strings.Builder) {
	if g.variant == variantToken {
		sb.WriteString(g.leading)
		sb.WriteString(g.value)
		sb.WriteString(g.trailing)
		return
	}
	for _, child := range g.children {
		child.writeText(sb)
	}
}

func (g *Green) String() string {
	return Root(g).Dump()
}

// kindLabel renders the alias chain of g, e.g. "Lhs:Literal".
func (g *Green) kindLabel() string {
	label := strings.Join(g.Kinds(), ":")
	if g.IsMissing() {
		label += ":<missing>"
	}
	return label
}

// tokenLabel renders the value and trivia of a token, empty otherwise.
func (g *Green) tokenLabel() string {
	inner := g.Unwrap()
	if inner == nil || inner.variant != variantToken {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strconv.Quote(inner.value))
	if inner.leading != "" {
		sb.WriteString(" leading=")
		sb.WriteString(strconv.Quote(inner.leading))
	}
	if inner.trailing != "" {
		sb.WriteString(" trailing=")
		sb.WriteString(strconv.Quote(inner.trailing))
	}
	return sb.String()
}
