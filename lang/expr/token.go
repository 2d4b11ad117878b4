package expr

import "github.com/dhamidi/syntree/lexer"

const (
	Error lexer.Kind = iota
	Whitespace
	Newline
	LineComment
	BlockComment
	Number
	String
	Ident
	True
	False
	Null
	Plus
	Minus
	Star
	Slash
	Percent
	Caret
	EqEq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Bang
	Dot
	DotDot
	Comma
	Colon
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	EOF
)

var names = map[lexer.Kind]string{
	Error:        "Error",
	Whitespace:   "Whitespace",
	Newline:      "Newline",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	Number:       "Number",
	String:       "String",
	Ident:        "Ident",
	True:         "True",
	False:        "False",
	Null:         "Null",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Percent:      "Percent",
	Caret:        "Caret",
	EqEq:         "EqEq",
	NotEq:        "NotEq",
	Lt:           "Lt",
	LtEq:         "LtEq",
	Gt:           "Gt",
	GtEq:         "GtEq",
	AndAnd:       "AndAnd",
	OrOr:         "OrOr",
	Bang:         "Bang",
	Dot:          "Dot",
	DotDot:       "DotDot",
	Comma:        "Comma",
	Colon:        "Colon",
	LParen:       "LParen",
	RParen:       "RParen",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	EOF:          "EOF",
}

var keywords = map[string]lexer.Kind{
	"true":  True,
	"false": False,
	"null":  Null,
}

// Extras is the scanner state of the expression language. Morphing into
// the language keeps the previous language's extras in Outer so that
// morphing back can restore them.
type Extras struct {
	Outer any
}

// Language is the token universe of expressions.
var Language = &lexer.Language{
	Name:    "expr",
	Scan:    scan,
	Names:   names,
	Trivia:  []lexer.Kind{Whitespace, Newline, LineComment, BlockComment},
	Merge:   []lexer.Kind{Error, Newline},
	Newline: Newline,
	Error:   Error,
	EOF:     EOF,
	Extras: func(prev any) any {
		if e, ok := prev.(Extras); ok {
			return e
		}
		return Extras{Outer: prev}
	},
}
