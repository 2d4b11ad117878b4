package lexer

import (
	"fmt"
	"slices"
)

// Kind identifies a token within one Language. Kinds of different languages
// share the numeric space, so they only make sense next to their Language.
type Kind uint16

// Token is a lexed token. Start and End are byte offsets into the source.
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
}

func (t Token) String() string {
	return fmt.Sprintf("%d..%d %d %q", t.Start, t.End, t.Kind, t.Text)
}

// Scanner recognises one token starting at the cursor. It must consume at
// least one rune; a scanner that consumes nothing produces an error token.
type Scanner func(c *Cursor) Kind

// Language is a token universe: a scanner plus the metadata the parser needs
// to treat its kinds uniformly.
type Language struct {
	Name string
	Scan Scanner

	// Names maps kinds to the names used for tree nodes and diagnostics.
	Names map[Kind]string

	// Trivia kinds are attached to neighbouring tokens instead of being
	// seen by the grammar.
	Trivia []Kind

	// Merge kinds are coalesced when adjacent.
	Merge []Kind

	// Newline is the trivia kind that ends a token's trailing trivia.
	Newline Kind

	Error Kind
	EOF   Kind

	// Extras converts the extras of the language being morphed away from
	// into this language's extras. Nil keeps them unchanged.
	Extras func(prev any) any
}

// KindName returns the display name of k.
func (l *Language) KindName(k Kind) string {
	if name, ok := l.Names[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (l *Language) IsTrivia(k Kind) bool {
	return slices.Contains(l.Trivia, k)
}

func (l *Language) Merges(k Kind) bool {
	return slices.Contains(l.Merge, k)
}
