package markdown

import (
	"github.com/dhamidi/syntree/lang/expr"
	"github.com/dhamidi/syntree/lexer"
)

const (
	Error lexer.Kind = iota
	Whitespace
	Newline
	Hashes
	Stars
	Backticks
	Fence
	Info
	Code
	Text
	Escape
	LBrace
	RBrace
	At
	EOF
)

var names = map[lexer.Kind]string{
	Error:      "Error",
	Whitespace: "Whitespace",
	Newline:    "Newline",
	Hashes:     "Hashes",
	Stars:      "Stars",
	Backticks:  "Backticks",
	Fence:      "Fence",
	Info:       "Info",
	Code:       "Code",
	Text:       "Text",
	Escape:     "Escape",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	At:         "At",
	EOF:        "EOF",
}

// Extras is the scanner state of markdown. Fence is the length of the
// backtick run that opened the current fenced block, zero outside one.
type Extras struct {
	Fence int
}

func extras(prev any) any {
	switch e := prev.(type) {
	case Extras:
		return e
	case expr.Extras:
		if outer, ok := e.Outer.(Extras); ok {
			return outer
		}
	}
	return Extras{}
}

// Language is the markdown token universe. Only spaces and tabs are
// trivia; line breaks separate paragraphs and are tokens.
var Language = &lexer.Language{
	Name:    "markdown",
	Scan:    scan,
	Names:   names,
	Trivia:  []lexer.Kind{Whitespace},
	Merge:   []lexer.Kind{Error, Newline},
	Newline: Newline,
	Error:   Error,
	EOF:     EOF,
	Extras:  extras,
}
