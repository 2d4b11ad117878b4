package markdown

import (
	_ "embed"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/syntree/ebnflex"
	"github.com/dhamidi/syntree/lang/expr"
)

//go:embed markdown.ebnf
var grammarSource string

const GrammarStart = "Document"

func GrammarSource() string {
	return grammarSource
}

// Grammar returns the description of the dialect together with the
// expression productions it refers to, verified from Document.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnflex.ParseString("markdown.ebnf", grammarSource, "")
	if err != nil {
		return nil, err
	}
	exprs, err := expr.Grammar()
	if err != nil {
		return nil, err
	}
	for name, prod := range exprs {
		if _, ok := g[name]; !ok {
			g[name] = prod
		}
	}
	return g, ebnflex.Verify(g, GrammarStart)
}
