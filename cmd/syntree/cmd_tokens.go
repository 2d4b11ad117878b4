package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/syntree/ebnflex"
	"github.com/dhamidi/syntree/lexer"
	"github.com/dhamidi/syntree/tree"
)

func newTokensCmd() *cobra.Command {
	var lang langFlag
	var grammarFile string
	var startProduction string
	var skipTrivia bool

	cmd := &cobra.Command{
		Use:          "tokens [file]",
		Short:        "Print the tokens of a file",
		Long:         "Print the tokens of a file, lexed by a built-in language or by a lexer derived from an EBNF grammar.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(args)
			if err != nil {
				return err
			}

			var ll *lexer.Language
			if grammarFile != "" {
				g, err := loadGrammar(cmd, grammarFile, startProduction)
				if err != nil {
					return err
				}
				ll = ebnflex.Language(grammarFile, g)
			} else {
				ll = lang.resolve(name).lexer
			}

			out := cmd.OutOrStdout()
			for tok := range lexer.New(ll, src).All() {
				if skipTrivia && ll.IsTrivia(tok.Kind) {
					continue
				}
				r := tree.Range{Start: tok.Start, End: tok.End}
				fmt.Fprintf(out, "%s\t%s\t%s\n", r, ll.KindName(tok.Kind), strconv.Quote(tok.Text))
			}
			return nil
		},
	}

	cmd.Flags().VarP(&lang, "lang", "l", lang.usage())
	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "derive the lexer from this EBNF grammar")
	cmd.Flags().StringVar(&startProduction, "start", "", "start production used to verify --grammar")
	cmd.Flags().BoolVar(&skipTrivia, "skip-trivia", false, "omit trivia tokens")

	return cmd
}
