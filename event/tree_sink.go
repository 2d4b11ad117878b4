package event

import (
	"strings"

	"github.com/dhamidi/syntree/tree"
)

type frame struct {
	kind     string
	aliases  []string
	children []*tree.Green
}

// tokenPath locates the most recent token: a child index into an open
// frame followed by child indices inside that subtree.
type tokenPath struct {
	frame *frame
	path  []int
}

// TreeSink builds green nodes from events.
type TreeSink struct {
	cache   *tree.Cache
	stack   []*frame
	aliases []string
	leading strings.Builder
	last    tokenPath
	diags   []Diagnostic
}

func NewTreeSink(cache *tree.Cache) *TreeSink {
	return &TreeSink{
		cache: cache,
		stack: []*frame{{}},
	}
}

func (s *TreeSink) top() *frame {
	return s.stack[len(s.stack)-1]
}

func (s *TreeSink) takeAliases() []string {
	aliases := s.aliases
	s.aliases = nil
	return aliases
}

func (s *TreeSink) wrap(g *tree.Green, aliases []string) *tree.Green {
	for i := len(aliases) - 1; i >= 0; i-- {
		g = s.cache.Alias(aliases[i], g)
	}
	return g
}

func (s *TreeSink) Event(e Event) {
	switch e.Op {
	case OpStart:
		s.stack = append(s.stack, &frame{kind: e.Kind, aliases: s.takeAliases()})
	case OpUnfinished:
		s.stack = append(s.stack, &frame{aliases: s.takeAliases()})
	case OpAlias:
		s.aliases = append(s.aliases, e.Kind)
	case OpToken:
		s.token(e.Kind, e.Text)
	case OpTrivia:
		if e.Placement == Trailing && s.last.frame != nil {
			s.editLastToken(func(tok *tree.Green) *tree.Green {
				return s.cache.WithTrivia(tok.Kind(), tok.Leading(), tok.Value(), tok.Trailing()+e.Text)
			})
			return
		}
		s.leading.WriteString(e.Text)
	case OpIgnoreTrivia:
		if s.last.frame != nil {
			s.editLastToken(func(tok *tree.Green) *tree.Green {
				return s.cache.WithTrivia(tok.Kind(), tok.Leading(), tok.Value(), "")
			})
		}
	case OpFinish:
		s.close(e.Kind)
	case OpEnd:
		s.close("")
	case OpAbort:
		s.abort()
	case OpEOF:
		kind := e.Kind
		if kind == "" {
			kind = tree.KindEOF
		}
		s.token(kind, "")
	}
}

func (s *TreeSink) Error(d Diagnostic) {
	s.diags = append(s.diags, d)
}

func (s *TreeSink) token(kind, text string) {
	leading := s.leading.String()
	s.leading.Reset()
	aliases := s.takeAliases()
	g := s.wrap(s.cache.WithTrivia(kind, leading, text, ""), aliases)

	f := s.top()
	f.children = append(f.children, g)
	path := []int{len(f.children) - 1}
	for range aliases {
		path = append(path, 0)
	}
	s.last = tokenPath{frame: f, path: path}
}

// editLastToken rebuilds the most recent token, and the subtree holding it,
// with edit applied.
func (s *TreeSink) editLastToken(edit func(*tree.Green) *tree.Green) {
	f := s.last.frame
	path := s.last.path
	red := tree.Root(f.children[path[0]])
	for _, i := range path[1:] {
		red = red.Child(i)
	}
	updated, err := tree.Replace(s.cache, red, edit(red.Green()))
	if err != nil {
		return
	}
	f.children[path[0]] = updated
}

// attach adds g to the new top frame. When g was built from the frame that
// held the last token, the token path is re-rooted in the new top frame.
func (s *TreeSink) attach(closed *frame, g *tree.Green, aliases int) {
	parent := s.top()
	parent.children = append(parent.children, g)
	if s.last.frame != closed {
		return
	}
	path := []int{len(parent.children) - 1}
	for range aliases {
		path = append(path, 0)
	}
	s.last = tokenPath{frame: parent, path: append(path, s.last.path...)}
}

func (s *TreeSink) pop() *frame {
	f := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	return f
}

func (s *TreeSink) close(kind string) {
	if len(s.stack) == 1 {
		return
	}
	f := s.top()
	aliases := append(f.aliases, s.takeAliases()...)
	if kind == "" {
		kind = f.kind
	}
	if kind == "" {
		if len(aliases) == 0 {
			s.abort()
			return
		}
		if len(f.children) == 0 {
			s.pop()
			s.attach(f, s.wrap(s.cache.Missing(aliases[len(aliases)-1]), aliases[:len(aliases)-1]), 0)
			return
		}
		kind = aliases[len(aliases)-1]
		aliases = aliases[:len(aliases)-1]
	}
	s.pop()
	g := s.wrap(s.cache.Node(kind, f.children), aliases)
	s.attach(f, g, len(aliases))
}

func (s *TreeSink) abort() {
	if len(s.stack) == 1 {
		return
	}
	f := s.pop()
	aliases := append(f.aliases, s.takeAliases()...)
	parent := s.top()
	base := len(parent.children)
	for _, child := range f.children {
		parent.children = append(parent.children, s.wrap(child, aliases))
	}
	if s.last.frame == f {
		path := []int{base + s.last.path[0]}
		for range aliases {
			path = append(path, 0)
		}
		s.last = tokenPath{frame: parent, path: append(path, s.last.path[1:]...)}
	}
}

// Finish closes any frames left open and returns the root node together
// with the collected diagnostics. A stream that produced several top-level
// nodes is wrapped in a tree.KindRoot node.
func (s *TreeSink) Finish() (*tree.Green, []Diagnostic) {
	for len(s.stack) > 1 {
		s.close("")
	}
	if s.leading.Len() > 0 {
		s.token(tree.KindEOF, "")
	}
	roots := s.stack[0].children
	if len(roots) == 1 {
		return roots[0], s.diags
	}
	return s.cache.Node(tree.KindRoot, roots), s.diags
}
