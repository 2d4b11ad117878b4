package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/syntree/lang/expr"
	"github.com/dhamidi/syntree/parser"
)

func parse(src string) parser.Result {
	return expr.Parse(src, parser.WithLogger(commonlog.MOCK_LOGGER))
}

func TestPosition(t *testing.T) {
	ix := newLineIndex("ab\nçd\n")
	tests := []struct {
		offset int
		want   string
	}{
		{0, "1:1"},
		{2, "1:3"},
		{3, "2:1"},
		{5, "2:2"},
		{7, "3:1"},
		{99, "3:1"},
	}
	for _, tt := range tests {
		if got := ix.position(tt.offset).String(); got != tt.want {
			t.Errorf("position(%d) = %s, want %s", tt.offset, got, tt.want)
		}
	}
}

func TestTextEncoder(t *testing.T) {
	res := parse("1 +")
	var buf bytes.Buffer
	enc := NewTextEncoder(&buf)
	enc.SetColor(false)
	if err := enc.Encode(res); err != nil {
		t.Fatal(err)
	}
	want := res.Red().Dump() +
		"1:4: error: expected one of {Number, String, True, False, Null, Ident, LParen, LBracket, LBrace} but found EOF\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(parse("f(x)")); err != nil {
		t.Fatal(err)
	}
	var doc document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, buf.String())
	}
	if doc.Root.Kind != "Root" {
		t.Errorf("root kind = %q, want Root", doc.Root.Kind)
	}
	call := doc.Root.Children[0]
	if call.Kind != expr.KindCall {
		t.Fatalf("first child kind = %q, want Call", call.Kind)
	}
	callee := call.Children[0]
	if callee.Kind != expr.KindName || len(callee.Aliases) != 1 || callee.Aliases[0] != expr.SlotCallee {
		t.Errorf("callee = %s %v, want Name with alias Callee", callee.Kind, callee.Aliases)
	}
	tok := callee.Children[0]
	if tok.Token == nil || *tok.Token != "f" {
		t.Errorf("callee token = %v, want f", tok.Token)
	}
	if tok.Span.Start != (Position{1, 1}) || tok.Span.End != (Position{1, 2}) {
		t.Errorf("callee span = %+v", tok.Span)
	}
	if len(doc.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", doc.Diagnostics)
	}
}

func TestJSONEncoderMissing(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(parse("{a}")); err != nil {
		t.Fatal(err)
	}
	var doc document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}

	var missing []*node
	var walk func(n *node)
	walk = func(n *node) {
		if n.Missing {
			missing = append(missing, n)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(doc.Root)
	if len(missing) != 1 || missing[0].Aliases[0] != expr.SlotValue {
		t.Errorf("missing nodes = %+v, want the field value", missing)
	}
	if len(doc.Diagnostics) == 0 {
		t.Error("no diagnostics")
	}
}

func TestYAMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLEncoder(&buf).Encode(parse("[1,")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "kind: List") {
		t.Errorf("output has no List node:\n%s", buf.String())
	}
	var doc document
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Root.Kind != "Root" {
		t.Errorf("root kind = %q, want Root", doc.Root.Kind)
	}
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Found != "EOF" {
		t.Errorf("Diagnostics = %+v, want one at EOF", doc.Diagnostics)
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(parse("a.b")); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"1:1\tIdent\t\"a\"\tRoot/Member/Name",
		"1:2\tDot\t\".\"\tRoot/Member",
		"1:3\tProperty:Ident\t\"b\"\tRoot/Member",
		"1:4\tEOF\t\"\"\tRoot",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		if enc, err := New(name, &bytes.Buffer{}); err != nil || enc == nil {
			t.Errorf("New(%q) = %v, %v", name, enc, err)
		}
	}
	if _, err := New("xml", &bytes.Buffer{}); err == nil {
		t.Error("New(xml) succeeded")
	}
}
