// Package parser provides a combinator framework that drives tree
// construction through the event stream of package event.
//
// A grammar is a set of Func values calling each other through a Builder:
//
//	func literal(b *parser.Builder) {
//		b.Start("Literal")
//		b.Expect(Number)
//		b.End()
//	}
//
// Parse runs a root Func over a source text and returns the green tree and
// the diagnostics. Parsing never fails: malformed input becomes error nodes
// plus diagnostics, and the tree always covers the whole input.
package parser

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/syntree/event"
	"github.com/dhamidi/syntree/lexer"
	"github.com/dhamidi/syntree/tree"
)

var log = commonlog.GetLogger("syntree.parser")

type Option func(*config)

type config struct {
	cache    *tree.Cache
	log      commonlog.Logger
	rootKind string
	sink     event.Sink
}

// WithCache builds the tree through c instead of a fresh cache. Reusing a
// cache across parses shares identical subtrees between them.
func WithCache(c *tree.Cache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

func WithLogger(l commonlog.Logger) Option {
	return func(cfg *config) {
		cfg.log = l
	}
}

// WithRootKind names the node wrapping the whole parse. The default is
// tree.KindRoot.
func WithRootKind(kind string) Option {
	return func(cfg *config) {
		cfg.rootKind = kind
	}
}

// WithSink also sends the raw event stream to s.
func WithSink(s event.Sink) Option {
	return func(cfg *config) {
		cfg.sink = s
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		log:      log,
		rootKind: tree.KindRoot,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Result is a finished parse.
type Result struct {
	Root        *tree.Green
	Diagnostics []event.Diagnostic
}

// Red returns a positioned view of the root.
func (r Result) Red() *tree.Red {
	return tree.Root(r.Root)
}

func (r Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// Incomplete reports whether the input ended while the grammar still
// expected more, so that appending text could complete it.
func (r Result) Incomplete() bool {
	for _, d := range r.Diagnostics {
		if d.AtEOF() {
			return true
		}
	}
	return false
}

// Parse lexes src with lang, runs root over it and builds the tree.
func Parse(lang *lexer.Language, src string, root Func, opts ...Option) Result {
	cfg := newConfig(opts)
	if cfg.cache == nil {
		cfg.cache = tree.NewCache()
	}
	treeSink := event.NewTreeSink(cfg.cache)
	var sink event.Sink = treeSink
	if cfg.sink != nil {
		sink = event.Tee(treeSink, cfg.sink)
	}

	cfg.log.Debugf("parse %s: %d bytes", lang.Name, len(src))
	b := newBuilder(lexer.New(lang, src), sink, cfg.log)
	b.run(root, cfg.rootKind)

	g, diags := treeSink.Finish()
	cfg.log.Debugf("parse %s: %d diagnostics, cache %s", lang.Name, len(diags), cfg.cache.Stats())
	return Result{Root: g, Diagnostics: diags}
}

// Run drives root over lx and sends the events to sink without building a
// tree. Only WithRootKind and WithLogger apply.
func Run(lx *lexer.Lexer, sink event.Sink, root Func, opts ...Option) {
	cfg := newConfig(opts)
	b := newBuilder(lx, sink, cfg.log)
	b.run(root, cfg.rootKind)
}
