package expr

import (
	"slices"
	"strings"
	"testing"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/syntree/ebnflex"
	"github.com/dhamidi/syntree/lexer"
	"github.com/dhamidi/syntree/parser"
	"github.com/dhamidi/syntree/tree"
)

func tokens(lang *lexer.Language, src string) []string {
	var result []string
	for tok := range lexer.New(lang, src).All() {
		result = append(result, lang.KindName(tok.Kind)+" "+tok.Text)
	}
	return result
}

func TestScan(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"1..2", []string{"Number 1", "DotDot ..", "Number 2"}},
		{"1.5", []string{"Number 1.5"}},
		{"a.b", []string{"Ident a", "Dot .", "Ident b"}},
		{`#"say "hi""#`, []string{`String #"say "hi""#`}},
		{`##"a"#b"##`, []string{`String ##"a"#b"##`}},
		{"#x", []string{"Error #", "Ident x"}},
		{"/* a /* b */ c */x", []string{"BlockComment /* a /* b */ c */", "Ident x"}},
		{"// c\nx", []string{"LineComment // c", "Newline \n", "Ident x"}},
		{"true truex", []string{"True true", "Whitespace  ", "Ident truex"}},
		{"a<=b", []string{"Ident a", "LtEq <=", "Ident b"}},
		{"\n\n", []string{"Newline \n\n"}},
		{"@@", []string{"Error @@"}},
		{`"a\"b"`, []string{`String "a\"b"`}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := tokens(Language, tt.src); !slices.Equal(got, tt.want) {
				t.Errorf("tokens = %q, want %q", got, tt.want)
			}
		})
	}
}

// render prints r compactly: literals and names as their text, other nodes
// as Kind[children].
func render(r *tree.Red) string {
	n := r.Unwrap()
	if n == nil {
		return "_"
	}
	if g := n.Green(); g.IsToken() {
		return g.Value()
	}
	if (n.Kind() == KindLiteral || n.Kind() == KindName) && n.ChildCount() == 1 {
		return render(n.Child(0))
	}
	var parts []string
	for child := range n.Children() {
		parts = append(parts, render(child))
	}
	return n.Kind() + "[" + strings.Join(parts, " ") + "]"
}

func parse(src string) parser.Result {
	return Parse(src, parser.WithLogger(commonlog.MOCK_LOGGER))
}

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "Binary[1 + Binary[2 * 3]]"},
		{"1..n+1", "Range[1 .. Binary[n + 1]]"},
		{"-x^2", "Binary[Unary[- x] ^ 2]"},
		{"2^3^4", "Binary[2 ^ Binary[3 ^ 4]]"},
		{"!a && b || c", "Binary[Binary[Unary[! a] && b] || c]"},
		{"f(1, 2,)", "Call[f Args[( 1 , 2 , )]]"},
		{"a.b[0](x)", "Call[Index[Member[a . b] [ 0 ]] Args[( x )]]"},
		{"[1, [2]]", "List[[ 1 , List[[ 2 ]] ]]"},
		{`{a: 1, "b": true}`, `Record[{ Field[a : 1] , Field["b" : true] }]`},
		{"(1 + 2) * 3", "Binary[Group[( Binary[1 + 2] )] * 3]"},
		{"a /* c */ + // end\n b", "Binary[a + b]"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parse(tt.src)
			if len(res.Diagnostics) != 0 {
				t.Errorf("Diagnostics = %v, want none", res.Diagnostics)
			}
			if got := render(res.Red().Child(0)); got != tt.want {
				t.Errorf("tree = %s, want %s", got, tt.want)
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
		{"1 +", []string{"3..3: expected one of {Number, String, True, False, Null, Ident, LParen, LBracket, LBrace} but found EOF"}, true},
		{"f(1", []string{"3..3: expected RParen but found EOF"}, true},
		{"(1 2)", []string{`3..4: expected RParen but found Number "2"`, `4..5: unexpected trailing input RParen ")"`}, false},
		{"{a 1}", []string{`3..4: expected Colon but found Number "1"`}, false},
		{"a.", []string{"2..2: expected Ident but found EOF"}, true},
		{"", []string{"0..0: expected one of {Number, String, True, False, Null, Ident, LParen, LBracket, LBrace} but found EOF"}, true},
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

func TestAccessors(t *testing.T) {
	res := parse(`f(1, "two", #"th"ree"#).size + -n[0]`)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("Diagnostics = %v", res.Diagnostics)
	}

	bin, ok := CastBinary(res.Red().Child(0))
	if !ok {
		t.Fatalf("root expression is %s, want Binary", res.Red().Child(0).Kind())
	}
	if op := bin.Op().Green().Value(); op != "+" {
		t.Errorf("Op = %q, want +", op)
	}

	member, ok := bin.Lhs().(Member)
	if !ok {
		t.Fatalf("Lhs = %T, want Member", bin.Lhs())
	}
	if member.Property() != "size" {
		t.Errorf("Property() = %q, want size", member.Property())
	}

	call, ok := member.Object().(Call)
	if !ok {
		t.Fatalf("Object = %T, want Call", member.Object())
	}
	if name, ok := call.Callee().(Name); !ok || name.Ident() != "f" {
		t.Errorf("Callee = %v, want Name f", call.Callee())
	}
	args := call.Args()
	if len(args) != 3 {
		t.Fatalf("len(Args) = %d, want 3", len(args))
	}
	if lit := args[0].(Literal); lit.Kind() != "Number" || lit.Value() != "1" {
		t.Errorf("Args[0] = %s %q, want Number 1", lit.Kind(), lit.Value())
	}
	for i, want := range map[int]string{1: "two", 2: `th"ree`} {
		s, ok := args[i].(Literal).Unquote()
		if !ok || s != want {
			t.Errorf("Args[%d].Unquote() = %q, %v, want %q", i, s, ok, want)
		}
	}

	unary, ok := bin.Rhs().(Unary)
	if !ok || unary.Op() != "-" {
		t.Fatalf("Rhs = %v, want Unary -", bin.Rhs())
	}
	idx, ok := unary.Operand().(Index)
	if !ok {
		t.Fatalf("Operand = %T, want Index", unary.Operand())
	}
	if key, ok := idx.Key().(Literal); !ok || key.Value() != "0" {
		t.Errorf("Key = %v, want 0", idx.Key())
	}
	if obj, ok := idx.Object().(Name); !ok || obj.Ident() != "n" {
		t.Errorf("Object = %v, want n", idx.Object())
	}
}

func TestAccessorsCompound(t *testing.T) {
	res := parse(`({x: [1, 2], "y z": 0..9})`)
	group, ok := CastGroup(res.Red().Child(0))
	if !ok {
		t.Fatal("expected a Group")
	}
	rec, ok := group.Inner().(Record)
	if !ok {
		t.Fatalf("Inner = %T, want Record", group.Inner())
	}
	fields := rec.Fields()
	if len(fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(fields))
	}
	if fields[0].Key() != "x" || fields[1].Key() != "y z" {
		t.Errorf("keys = %q, %q", fields[0].Key(), fields[1].Key())
	}
	if items := fields[0].Value().(List).Items(); len(items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(items))
	}
	if r, ok := fields[1].Value().(Binary); !ok || !r.IsRange() {
		t.Errorf("Value = %v, want a range", fields[1].Value())
	}

	if _, ok := CastExpr(res.Red()); ok {
		t.Error("CastExpr(Root) succeeded")
	}
	if _, ok := CastCall(res.Red().Child(0)); ok {
		t.Error("CastCall(Group) succeeded")
	}
}

func TestGrammar(t *testing.T) {
	g, err := Grammar()
	if err != nil {
		t.Fatalf("Grammar() error = %v", err)
	}
	if _, ok := g[GrammarStart]; !ok {
		t.Fatalf("no %s production", GrammarStart)
	}

	// The scanner and the lexer derived from the grammar must split
	// expressions into the same tokens.
	derived := ebnflex.Language("expr-ebnf", g)
	significant := func(lang *lexer.Language, src string) []string {
		var texts []string
		for tok := range lexer.New(lang, src).All() {
			if !lang.IsTrivia(tok.Kind) {
				texts = append(texts, tok.Text)
			}
		}
		return texts
	}
	samples := []string{
		"1 + foo(2, 3)",
		"a.b[1..2]",
		"!true && null != x",
		`{a: 1, "b c": [1, 2,]}`,
		"x <= 10 || y >= 2.5",
		"-n ^ 2 % 3",
	}
	for _, src := range samples {
		want := significant(Language, src)
		got := significant(derived, src)
		if !slices.Equal(got, want) {
			t.Errorf("derived tokens of %q = %q, want %q", src, got, want)
		}
	}
}
