package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dhamidi/syntree/ebnflex"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarShowCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:          "check <file>",
		Short:        "Parse and verify an EBNF grammar file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := ebnflex.Load(args[0], startProduction)
			if err != nil {
				for _, e := range ebnflex.Errors(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), e)
				}
				return fmt.Errorf("%s: invalid grammar", args[0])
			}

			terminals := ebnflex.Terminals(g)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d productions, %d terminals\n", args[0], len(g), len(terminals))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarShowCmd() *cobra.Command {
	var listProductions bool

	cmd := &cobra.Command{
		Use:          "show <language>",
		Short:        "Print the EBNF description of a built-in language",
		Args:         cobra.ExactArgs(1),
		ValidArgs:    languageNames(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := findLanguage(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !listProductions {
				fmt.Fprint(out, l.source())
				return nil
			}

			g, err := l.grammar()
			if err != nil {
				return fmt.Errorf("grammar of %s: %w", l.name, err)
			}
			names := make([]string, 0, len(g))
			for name := range g {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listProductions, "productions", false, "list the verified productions instead of the source")

	return cmd
}
