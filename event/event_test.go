package event

import (
	"strings"
	"testing"

	"github.com/dhamidi/syntree/tree"
)

func build(events ...Event) (*tree.Green, []Diagnostic) {
	sink := NewTreeSink(tree.NewCache())
	for _, e := range events {
		sink.Event(e)
	}
	return sink.Finish()
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Start("Binary"), "Start(Binary)"},
		{Alias("Lhs"), "Alias(Lhs)"},
		{Token("Number", "2"), `Token(Number, "2")`},
		{Trivia(Leading, "Whitespace", " "), `Trivia(leading, Whitespace, " ")`},
		{Trivia(Trailing, "Comment", "// x"), `Trivia(trailing, Comment, "// x")`},
		{Unfinished(), "Unfinished"},
		{Finish("Call"), "Finish(Call)"},
		{End(), "End"},
		{Abort(), "Abort"},
		{IgnoreTrivia(), "IgnoreTrivia"},
		{EOF("EOF"), "Eof(EOF)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.event.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnosticMessage(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "single expected",
			diag: Diagnostic{Expected: []string{"RParen"}, Found: "Number", Text: "4", Range: tree.Range{Start: 3, End: 4}},
			want: `3..4: expected RParen but found Number "4"`,
		},
		{
			name: "several expected at EOF",
			diag: Diagnostic{Expected: []string{"Number", "Ident"}, Found: tree.KindEOF, Range: tree.Range{Start: 6, End: 6}},
			want: "6..6: expected one of {Number, Ident} but found EOF",
		},
		{
			name: "unexpected",
			diag: Diagnostic{Found: "Star", Text: "*", Range: tree.Range{Start: 0, End: 1}},
			want: `0..1: unexpected Star "*"`,
		},
		{
			name: "trailing",
			diag: Diagnostic{Found: "RParen", Text: ")", Range: tree.Range{Start: 1, End: 2}, Trailing: true},
			want: `1..2: unexpected trailing input RParen ")"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diag.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
	if !(Diagnostic{Found: tree.KindEOF}).AtEOF() {
		t.Error("AtEOF() = false for a diagnostic found at EOF")
	}
}

func TestTreeSinkBuildsNodes(t *testing.T) {
	root, diags := build(
		Start(tree.KindRoot),
		Start("Binary"),
		Alias("Lhs"),
		Token("Number", "2"),
		Trivia(Trailing, "Whitespace", " "),
		Token("Plus", "+"),
		Trivia(Trailing, "Whitespace", " "),
		Alias("Rhs"),
		Start("Literal"),
		Token("Number", "3"),
		End(),
		End(),
		Trivia(Leading, "Newline", "\n"),
		EOF(tree.KindEOF),
		End(),
	)
	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", diags)
	}
	want := `Root 0..6
  Binary 0..5
    Lhs:Number 0..2 "2" trailing=" "
    Plus 2..4 "+" trailing=" "
    Rhs:Literal 4..5
      Number 4..5 "3"
  EOF 5..6 "" leading="\n"
`
	if got := root.String(); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
	if got := root.Text(); got != "2 + 3\n" {
		t.Errorf("Text() = %q, want %q", got, "2 + 3\n")
	}
}

func TestTreeSinkUnfinished(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   string
	}{
		{
			name:   "explicit kind",
			events: []Event{Unfinished(), Token("Ident", "f"), Token("LParen", "("), Finish("Call")},
			want:   "Call 0..2\n  Ident 0..1 \"f\"\n  LParen 1..2 \"(\"\n",
		},
		{
			name:   "kind from alias",
			events: []Event{Alias("Expr"), Alias("Call"), Unfinished(), Token("Ident", "f"), Token("LParen", "("), End()},
			want:   "Expr:Call 0..2\n  Ident 0..1 \"f\"\n  LParen 1..2 \"(\"\n",
		},
		{
			name:   "no children makes a missing element",
			events: []Event{Start("Binary"), Token("Number", "1"), Alias("Rhs"), Unfinished(), End(), End()},
			want:   "Binary 0..1\n  Number 0..1 \"1\"\n  Rhs:<missing> 1..1\n",
		},
		{
			name:   "nameless frame is transparent",
			events: []Event{Start("List"), Unfinished(), Token("A", "a"), Token("B", "b"), End(), End()},
			want:   "List 0..2\n  A 0..1 \"a\"\n  B 1..2 \"b\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _ := build(tt.events...)
			if got := root.String(); got != tt.want {
				t.Errorf("tree =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestTreeSinkAbort(t *testing.T) {
	root, _ := build(
		Start("List"),
		Alias("Item"),
		Start("Pair"),
		Token("A", "a"),
		Token("B", "b"),
		Abort(),
		End(),
	)
	want := "List 0..2\n  Item:A 0..1 \"a\"\n  Item:B 1..2 \"b\"\n"
	if got := root.String(); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeSinkIgnoreTrivia(t *testing.T) {
	// The closed Inner node held the token whose trailing trivia is given
	// back; the sink must rebuild it after the fact.
	root, _ := build(
		Start("Outer"),
		Start("Inner"),
		Alias("Value"),
		Token("Ident", "x"),
		Trivia(Trailing, "Whitespace", "  "),
		End(),
		IgnoreTrivia(),
		Token("Text", "  tail"),
		End(),
	)
	want := "Outer 0..7\n  Inner 0..1\n    Value:Ident 0..1 \"x\"\n  Text 1..7 \"  tail\"\n"
	if got := root.String(); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeSinkCollectsDiagnostics(t *testing.T) {
	sink := NewTreeSink(tree.NewCache())
	sink.Event(Start(tree.KindError))
	sink.Event(Token("Star", "*"))
	sink.Error(Diagnostic{Found: "Star", Text: "*", Range: tree.Range{Start: 0, End: 1}})
	sink.Event(End())
	root, diags := sink.Finish()
	if len(diags) != 1 {
		t.Fatalf("len(diagnostics) = %d, want 1", len(diags))
	}
	count := 0
	for range tree.Root(root).Errors() {
		count++
	}
	if count != 1 {
		t.Errorf("error nodes = %d, want 1", count)
	}
}

func TestTreeSinkClosesOpenFrames(t *testing.T) {
	root, _ := build(Start("A"), Start("B"), Token("X", "x"))
	want := "A 0..1\n  B 0..1\n    X 0..1 \"x\"\n"
	if got := root.String(); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestLogSink(t *testing.T) {
	sink := NewLogSink()
	sink.Event(Start("Binary"))
	sink.Event(Token("Number", "2"))
	sink.Error(Diagnostic{Expected: []string{"Number"}, Found: tree.KindEOF, Range: tree.Range{Start: 1, End: 1}})
	sink.Event(End())

	want := strings.Join([]string{
		"Start(Binary)",
		`Token(Number, "2")`,
		"Error(1..1: expected Number but found EOF)",
		"End",
	}, "\n")
	if got := sink.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestBufferReplay(t *testing.T) {
	var lhs, rest Buffer
	lhs.Event(Start("Literal"))
	lhs.Event(Token("Number", "2"))
	lhs.Event(End())
	rest.Event(Token("Plus", "+"))
	rest.Error(Diagnostic{Expected: []string{"Number"}, Found: tree.KindEOF})

	lhs.Append(&rest)
	if rest.Len() != 0 {
		t.Errorf("appended buffer Len() = %d, want 0", rest.Len())
	}
	if lhs.Len() != 5 {
		t.Errorf("Len() = %d, want 5", lhs.Len())
	}
	if got := len(lhs.Events()); got != 4 {
		t.Errorf("len(Events()) = %d, want 4", got)
	}
	if got := len(lhs.Diagnostics()); got != 1 {
		t.Errorf("len(Diagnostics()) = %d, want 1", got)
	}

	log := NewLogSink()
	log.Event(Start("Binary"))
	lhs.Finish(log)
	log.Event(End())
	want := []string{
		"Start(Binary)",
		"Start(Literal)",
		`Token(Number, "2")`,
		"End",
		`Token(Plus, "+")`,
		"Error(0..0: expected Number but found EOF)",
		"End",
	}
	if got := log.Lines(); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
	if lhs.Len() != 0 {
		t.Errorf("Len() after Finish = %d, want 0", lhs.Len())
	}
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		name    string
		events  []Event
		wantErr bool
	}{
		{"empty", nil, false},
		{"nested", []Event{Start("A"), Unfinished(), Abort(), Finish("A")}, false},
		{"left open", []Event{Start("A"), Start("B"), End()}, true},
		{"extra close", []Event{Start("A"), End(), End()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Balanced(tt.events)
			if (err != nil) != tt.wantErr {
				t.Errorf("Balanced() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
