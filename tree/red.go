package tree

import (
	"fmt"
	"iter"
	"strings"
)

// Range is a half-open byte range.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset lies within r. An empty range contains
// its own start.
func (r Range) Contains(offset int) bool {
	if r.Start == r.End {
		return offset == r.Start
	}
	return offset >= r.Start && offset < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Red is a positioned view of a green node. The parent link is navigation
// only; Red values own nothing but the green node they wrap.
type Red struct {
	green  *Green
	parent *Red
	index  int
	offset int
}

// Root creates the view of a tree root.
func Root(g *Green) *Red {
	return &Red{green: g}
}

func (r *Red) Green() *Green {
	return r.green
}

func (r *Red) Kind() string {
	return r.green.kind
}

func (r *Red) Is(kind string) bool {
	return r.green.Is(kind)
}

// Parent returns the enclosing node, nil at the root.
func (r *Red) Parent() *Red {
	return r.parent
}

// Index returns the position of r among its parent's children.
func (r *Red) Index() int {
	return r.index
}

func (r *Red) Offset() int {
	return r.offset
}

// Range returns the absolute range covered by r, trivia included.
func (r *Red) Range() Range {
	return Range{Start: r.offset, End: r.offset + r.green.width}
}

// TextRange returns the range without the leading and trailing trivia of a
// token. For other nodes it equals Range.
func (r *Red) TextRange() Range {
	g := r.green.Unwrap()
	if g == nil || g.variant != variantToken {
		return r.Range()
	}
	start := r.offset + len(g.leading)
	return Range{Start: start, End: start + len(g.value)}
}

func (r *Red) Text() string {
	return r.green.Text()
}

func (r *Red) ChildCount() int {
	return len(r.green.children)
}

// Child returns the i-th child, nil when out of range.
func (r *Red) Child(i int) *Red {
	if i < 0 || i >= len(r.green.children) {
		return nil
	}
	offset := r.offset
	for _, sibling := range r.green.children[:i] {
		offset += sibling.width
	}
	return &Red{green: r.green.children[i], parent: r, index: i, offset: offset}
}

// Children yields the children of r with their absolute offsets.
func (r *Red) Children() iter.Seq[*Red] {
	return func(yield func(*Red) bool) {
		offset := r.offset
		for i, child := range r.green.children {
			if !yield(&Red{green: child, parent: r, index: i, offset: offset}) {
				return
			}
			offset += child.width
		}
	}
}

// Unwrap follows aliases down to the node carrying content. It returns nil
// for a missing element.
func (r *Red) Unwrap() *Red {
	n := r
	for n.green.variant == variantAlias {
		if len(n.green.children) == 0 {
			return nil
		}
		n = n.Child(0)
	}
	return n
}

// FirstChild returns the first child answering to kind.
func (r *Red) FirstChild(kind string) *Red {
	for child := range r.Children() {
		if child.Is(kind) {
			return child
		}
	}
	return nil
}

// ChildrenOf returns every child answering to kind.
func (r *Red) ChildrenOf(kind string) []*Red {
	var result []*Red
	for child := range r.Children() {
		if child.Is(kind) {
			result = append(result, child)
		}
	}
	return result
}

// Ancestors yields the parent chain up to the root.
func (r *Red) Ancestors() iter.Seq[*Red] {
	return func(yield func(*Red) bool) {
		for p := r.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// PreOrder yields r and its descendants, parents before children.
func (r *Red) PreOrder() iter.Seq[*Red] {
	return func(yield func(*Red) bool) {
		r.preOrder(yield)
	}
}

func (r *Red) preOrder(yield func(*Red) bool) bool {
	if !yield(r) {
		return false
	}
	for child := range r.Children() {
		if !child.preOrder(yield) {
			return false
		}
	}
	return true
}

// PostOrder yields r and its descendants, children before parents.
func (r *Red) PostOrder() iter.Seq[*Red] {
	return func(yield func(*Red) bool) {
		r.postOrder(yield)
	}
}

func (r *Red) postOrder(yield func(*Red) bool) bool {
	for child := range r.Children() {
		if !child.postOrder(yield) {
			return false
		}
	}
	return yield(r)
}

// Tokens yields the token leaves under r in document order.
func (r *Red) Tokens() iter.Seq[*Red] {
	return func(yield func(*Red) bool) {
		for n := range r.PreOrder() {
			if n.green.variant == variantToken && !yield(n) {
				return
			}
		}
	}
}

// TokenAt returns the token whose range covers offset.
func (r *Red) TokenAt(offset int) *Red {
	if !r.Range().Contains(offset) {
		return nil
	}
	n := r
	for n.green.variant != variantToken {
		var next *Red
		for child := range n.Children() {
			if child.Range().Contains(offset) && child.green.width > 0 {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		n = next
	}
	return n
}

// Errors yields every error node under r.
func (r *Red) Errors() iter.Seq[*Red] {
	return func(yield func(*Red) bool) {
		for n := range r.PreOrder() {
			if n.green.kind == KindError && !yield(n) {
				return
			}
		}
	}
}

// Dump renders r and its descendants one node per line, with aliases folded
// into the line of the node they wrap.
func (r *Red) Dump() string {
	var sb strings.Builder
	r.dump(&sb, 0)
	return sb.String()
}

func (r *Red) dump(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(r.green.kindLabel())
	sb.WriteString(" ")
	sb.WriteString(r.Range().String())
	if label := r.green.tokenLabel(); label != "" {
		sb.WriteString(" ")
		sb.WriteString(label)
	}
	sb.WriteString("\n")

	inner := r.Unwrap()
	if inner == nil {
		return
	}
	for child := range inner.Children() {
		child.dump(sb, depth+1)
	}
}
