package markdown

import (
	"slices"
	"strings"
	"testing"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/syntree/event"
	"github.com/dhamidi/syntree/lang/expr"
	"github.com/dhamidi/syntree/parser"
	"github.com/dhamidi/syntree/tree"
)

// render prints nodes as Kind[children], aliases as Slot:child and tokens
// as their text without trivia.
func render(r *tree.Red) string {
	g := r.Green()
	switch {
	case g.IsAlias():
		if inner := r.Unwrap(); inner != nil {
			return r.Kind() + ":" + render(r.Child(0))
		}
		return r.Kind() + ":_"
	case g.IsToken():
		if g.Value() == "" {
			return g.Kind()
		}
		return strings.ReplaceAll(g.Value(), "\n", `\n`)
	}
	var parts []string
	for child := range r.Children() {
		parts = append(parts, render(child))
	}
	return r.Kind() + "[" + strings.Join(parts, " ") + "]"
}

func parse(src string, opts ...parser.Option) parser.Result {
	opts = append(opts, parser.WithLogger(commonlog.MOCK_LOGGER))
	return Parse(src, opts...)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"heading and paragraph",
			"# Title {x}\n\nHello *world* and @bob.\n",
			`Document[Heading[# Title Embed[{ Expr:Name[x] }]] \n\n Paragraph[Hello Emphasis[* world *] and Mention[@ Expr:Name[bob]] .] \n EOF]`,
		},
		{
			"embedded binary",
			"Say {a + 1 } now",
			"Document[Paragraph[Say Embed[{ Expr:Binary[Lhs:Name[a] + Rhs:Literal[1]] }] now] EOF]",
		},
		{
			"expr fence",
			"```expr\n1 +\n  2\n```\n",
			`Document[CodeBlock[` + "```" + ` expr \n Expr:Binary[Lhs:Literal[1] + Rhs:Literal[2]] \n ` + "```" + `] \n EOF]`,
		},
		{
			"plain fence",
			"```go\nx := 1\n```",
			`Document[CodeBlock[` + "```" + ` go \n x := 1 \n ` + "```" + `] EOF]`,
		},
		{
			"heading after paragraph",
			"#tag\n## Two",
			`Document[Paragraph[#tag] \n Heading[## Two] EOF]`,
		},
		{
			"paragraph over lines",
			"one\ntwo\n\nthree",
			`Document[Paragraph[one \n two] \n\n Paragraph[three] EOF]`,
		},
		{
			"code span",
			"use `a*b` here",
			"Document[Paragraph[use CodeSpan[` a * b `] here] EOF]",
		},
		{
			"strong with nested emphasis",
			"**a *b* c**",
			"Document[Paragraph[Strong[** a Emphasis[* b *] c **]] EOF]",
		},
		{
			"no mention inside a word",
			"mail a@b.com",
			"Document[Paragraph[mail a@b.com] EOF]",
		},
		{
			"escape",
			`\*x\*`,
			`Document[Paragraph[\* x \*] EOF]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(tt.src)
			if len(res.Diagnostics) != 0 {
				t.Errorf("Diagnostics = %v, want none", res.Diagnostics)
			}
			if got := render(res.Red()); got != tt.want {
				t.Errorf("tree =\n%s\nwant\n%s", got, tt.want)
			}
			if got := res.Root.Text(); got != tt.src {
				t.Errorf("Text() = %q, want %q", got, tt.src)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src        string
		diags      []string
		incomplete bool
	}{
		{"```\ncode", []string{"8..8: expected Fence but found EOF"}, true},
		{"{}", []string{`1..2: expected Expr but found RBrace "}"`}, false},
		{"x {1 +", []string{
			"6..6: expected one of {Number, String, True, False, Null, Ident, LParen, LBracket, LBrace} but found EOF",
			"6..6: expected RBrace but found EOF",
		}, true},
		{"a *b\nc", []string{`4..5: expected Stars but found Newline "\n"`}, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parse(tt.src)
			var got []string
			for _, d := range res.Diagnostics {
				got = append(got, d.String())
			}
			if !slices.Equal(got, tt.diags) {
				t.Errorf("Diagnostics = %q, want %q", got, tt.diags)
			}
			if res.Incomplete() != tt.incomplete {
				t.Errorf("Incomplete() = %v, want %v", res.Incomplete(), tt.incomplete)
			}
			if got := res.Root.Text(); got != tt.src {
				t.Errorf("Text() = %q, want %q", got, tt.src)
			}
		})
	}
}

func TestEmbedGivesBackTrivia(t *testing.T) {
	log := event.NewLogSink()
	res := parse("Say {a + 1 } now", parser.WithSink(log))

	ignored := 0
	for _, line := range log.Lines() {
		if line == "IgnoreTrivia" {
			ignored++
		}
	}
	if ignored != 1 {
		t.Errorf("IgnoreTrivia events = %d, want 1", ignored)
	}

	trivia := map[string][2]string{}
	for tok := range res.Red().Tokens() {
		g := tok.Green().Unwrap()
		trivia[g.Value()] = [2]string{g.Leading(), g.Trailing()}
	}
	if got := trivia["1"]; got != [2]string{"", ""} {
		t.Errorf("trivia of 1 = %q, want none", got)
	}
	if got := trivia["}"]; got != [2]string{" ", " "} {
		t.Errorf("trivia of } = %q, want one space each side", got)
	}
}

func TestAccessors(t *testing.T) {
	src := "## Totals for {year}\n\nSee @alice.\n\n```expr\nsum(items) * 2\n```\n"
	res := parse(src)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("Diagnostics = %v", res.Diagnostics)
	}
	doc := res.Red()

	h, ok := CastHeading(doc.FirstChild(KindHeading))
	if !ok {
		t.Fatal("no heading")
	}
	if h.Level() != 2 {
		t.Errorf("Level() = %d, want 2", h.Level())
	}
	if h.Title() != "Totals for {year}" {
		t.Errorf("Title() = %q", h.Title())
	}

	block, ok := CastCodeBlock(doc.FirstChild(KindCodeBlock))
	if !ok {
		t.Fatal("no code block")
	}
	if block.Info() != "expr" {
		t.Errorf("Info() = %q, want expr", block.Info())
	}
	if block.Code() != "sum(items) * 2\n" {
		t.Errorf("Code() = %q", block.Code())
	}
	if _, ok := block.Expr(); !ok {
		t.Error("Expr() found no expression")
	}

	var kinds []string
	for e := range Expressions(doc) {
		kinds = append(kinds, e.Red().Kind())
	}
	want := []string{expr.KindName, expr.KindName, expr.KindBinary}
	if !slices.Equal(kinds, want) {
		t.Errorf("Expressions() kinds = %q, want %q", kinds, want)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		"",
		"\n\n\n",
		"  indented *text* with `code`\n",
		"# {\n",
		"```expr\n```\n",
		"```expr\n1 + // comment\n2\n```",
		"```\n```` not closing\n````\n",
		"@@ {[1, {a: 2}]} }{ \\",
		"*a **b\n\n`x",
	}
	for _, src := range docs {
		log := event.NewLogSink()
		buf := &event.Buffer{}
		res := parse(src, parser.WithSink(event.Tee(log, buf)))
		if got := res.Root.Text(); got != src {
			t.Errorf("Text() = %q, want %q", got, src)
		}
		if err := event.Balanced(buf.Events()); err != nil {
			t.Errorf("%q: %v\n%s", src, err, log)
		}
	}
}

func TestGrammar(t *testing.T) {
	g, err := Grammar()
	if err != nil {
		t.Fatalf("Grammar() error = %v", err)
	}
	for _, name := range []string{GrammarStart, "Embed", expr.GrammarStart} {
		if _, ok := g[name]; !ok {
			t.Errorf("no %s production", name)
		}
	}
}
