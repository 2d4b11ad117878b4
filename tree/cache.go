package tree

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"
)

var ErrNotNode = errors.New("not an interior node")

// nextID numbers green elements across all caches, so node keys built from
// child ids never collide between caches.
var nextID atomic.Uint64

const (
	// DefaultNodeLimit is the largest child count of an interned node.
	DefaultNodeLimit = 8
	// DefaultTokenLimit is the largest text length of an interned token.
	DefaultTokenLimit = 256
)

type Option func(*Cache)

// WithNodeLimit sets the largest child count for which interior nodes are
// deduplicated. Larger nodes are always built fresh.
func WithNodeLimit(n int) Option {
	return func(c *Cache) {
		c.nodeLimit = n
	}
}

// WithTokenLimit sets the largest text length for which tokens are
// deduplicated.
func WithTokenLimit(n int) Option {
	return func(c *Cache) {
		c.tokenLimit = n
	}
}

// Stats counts cache activity.
type Stats struct {
	Hits     int
	Misses   int
	Uncached int
}

func (s Stats) String() string {
	return fmt.Sprintf("hits=%d misses=%d uncached=%d", s.Hits, s.Misses, s.Uncached)
}

type tokenKey struct {
	kind, leading, value, trailing string
}

type aliasKey struct {
	kind  string
	child *Green
}

// Cache builds green nodes, returning the same node for structurally
// identical small inputs. It lives for one parse or one batch of edits.
type Cache struct {
	nodeLimit  int
	tokenLimit int
	nodes      map[string]*Green
	tokens     map[tokenKey]*Green
	aliases    map[aliasKey]*Green
	keyBuf     []byte
	stats      Stats
}

func NewCache(opts ...Option) *Cache {
	c := &Cache{
		nodeLimit:  DefaultNodeLimit,
		tokenLimit: DefaultTokenLimit,
		nodes:      make(map[string]*Green),
		tokens:     make(map[tokenKey]*Green),
		aliases:    make(map[aliasKey]*Green),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Stats() Stats {
	return c.stats
}

// Len returns the number of interned nodes.
func (c *Cache) Len() int {
	return len(c.nodes) + len(c.tokens) + len(c.aliases)
}

func (c *Cache) newGreen(g *Green) *Green {
	g.id = nextID.Add(1)
	return g
}

// Node builds an interior node. Nil children are skipped.
func (c *Cache) Node(kind string, children []*Green) *Green {
	kids := make([]*Green, 0, len(children))
	width := 0
	for _, child := range children {
		if child == nil {
			continue
		}
		kids = append(kids, child)
		width += child.width
	}

	if len(kids) > c.nodeLimit {
		c.stats.Uncached++
		return c.newGreen(&Green{kind: kind, variant: variantNode, children: kids, width: width})
	}

	key := c.nodeKey(kind, kids)
	if g, ok := c.nodes[key]; ok {
		c.stats.Hits++
		return g
	}
	c.stats.Misses++
	g := c.newGreen(&Green{kind: kind, variant: variantNode, children: kids, width: width})
	c.nodes[key] = g
	return g
}

func (c *Cache) nodeKey(kind string, children []*Green) string {
	buf := append(c.keyBuf[:0], kind...)
	buf = append(buf, 0)
	for _, child := range children {
		buf = binary.AppendUvarint(buf, child.id)
	}
	c.keyBuf = buf
	return string(buf)
}

// Token builds a token leaf without trivia.
func (c *Cache) Token(kind, value string) *Green {
	return c.WithTrivia(kind, "", value, "")
}

// WithTrivia builds a token leaf with leading and trailing trivia.
func (c *Cache) WithTrivia(kind, leading, value, trailing string) *Green {
	width := len(leading) + len(value) + len(trailing)
	build := func() *Green {
		return c.newGreen(&Green{
			kind:     kind,
			variant:  variantToken,
			leading:  leading,
			value:    value,
			trailing: trailing,
			width:    width,
		})
	}
	if width > c.tokenLimit {
		c.stats.Uncached++
		return build()
	}

	key := tokenKey{kind, leading, value, trailing}
	if g, ok := c.tokens[key]; ok {
		c.stats.Hits++
		return g
	}
	c.stats.Misses++
	g := build()
	c.tokens[key] = g
	return g
}

// Alias wraps child so that it also answers to kind. A nil child marks a
// missing optional element.
func (c *Cache) Alias(kind string, child *Green) *Green {
	key := aliasKey{kind, child}
	if g, ok := c.aliases[key]; ok {
		c.stats.Hits++
		return g
	}
	c.stats.Misses++
	g := &Green{kind: kind, variant: variantAlias}
	if child != nil {
		g.children = []*Green{child}
		g.width = child.width
	}
	g = c.newGreen(g)
	c.aliases[key] = g
	return g
}

// Missing builds an alias without content.
func (c *Cache) Missing(kind string) *Green {
	return c.Alias(kind, nil)
}

// ReplaceChildren rebuilds the interior node under g's aliases with new
// children, keeping the alias wrapping intact.
func (c *Cache) ReplaceChildren(g *Green, children []*Green) (*Green, error) {
	switch g.variant {
	case variantNode:
		return c.Node(g.kind, children), nil
	case variantAlias:
		child := g.Child()
		if child == nil {
			return nil, fmt.Errorf("replace children of %s: %w", g.kind, ErrNotNode)
		}
		inner, err := c.ReplaceChildren(child, children)
		if err != nil {
			return nil, err
		}
		return c.Alias(g.kind, inner), nil
	default:
		return nil, fmt.Errorf("replace children of token %s: %w", g.kind, ErrNotNode)
	}
}
