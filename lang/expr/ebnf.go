package expr

import (
	_ "embed"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/syntree/ebnflex"
)

//go:embed expr.ebnf
var grammarSource string

// GrammarStart is the start production of the EBNF description.
const GrammarStart = "Expr"

// GrammarSource returns the EBNF description of the language.
func GrammarSource() string {
	return grammarSource
}

// Grammar parses the EBNF description and verifies it from GrammarStart.
func Grammar() (ebnf.Grammar, error) {
	return ebnflex.ParseString("expr.ebnf", grammarSource, GrammarStart)
}
