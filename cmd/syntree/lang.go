package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/syntree/ebnflex"
	"github.com/dhamidi/syntree/lang/expr"
	"github.com/dhamidi/syntree/lang/markdown"
	"github.com/dhamidi/syntree/lexer"
	"github.com/dhamidi/syntree/parser"
)

type language struct {
	name       string
	extensions []string
	lexer      *lexer.Language
	parse      func(src string, opts ...parser.Option) parser.Result
	grammar    func() (ebnf.Grammar, error)
	source     func() string
}

var languages = []*language{
	{
		name:       "expr",
		extensions: []string{".expr"},
		lexer:      expr.Language,
		parse:      expr.Parse,
		grammar:    expr.Grammar,
		source:     expr.GrammarSource,
	},
	{
		name:       "markdown",
		extensions: []string{".md", ".markdown"},
		lexer:      markdown.Language,
		parse:      markdown.Parse,
		grammar:    markdown.Grammar,
		source:     markdown.GrammarSource,
	},
}

func languageNames() []string {
	names := make([]string, len(languages))
	for i, l := range languages {
		names[i] = l.name
	}
	return names
}

func findLanguage(name string) (*language, error) {
	for _, l := range languages {
		if l.name == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("unknown language %q, want one of %s", name, strings.Join(languageNames(), ", "))
}

// langFlag selects a language by name. When unset, the language is guessed
// from the file extension.
type langFlag struct {
	lang *language
}

var _ pflag.Value = (*langFlag)(nil)

func (f *langFlag) String() string {
	if f.lang == nil {
		return ""
	}
	return f.lang.name
}

func (f *langFlag) Set(name string) error {
	l, err := findLanguage(name)
	if err != nil {
		return err
	}
	f.lang = l
	return nil
}

func (f *langFlag) Type() string {
	return "language"
}

func (f *langFlag) usage() string {
	return "language (" + strings.Join(languageNames(), ", ") + "); guessed from the file extension when omitted"
}

// resolve returns the chosen language, or the one registered for filename's
// extension, or expr.
func (f *langFlag) resolve(filename string) *language {
	if f.lang != nil {
		return f.lang
	}
	ext := filepath.Ext(filename)
	for _, l := range languages {
		if slices.Contains(l.extensions, ext) {
			return l
		}
	}
	return languages[0]
}

// readSource reads the file named by args, or standard input when args is
// empty or names "-".
func readSource(args []string) (name, src string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	return args[0], string(data), nil
}

// loadGrammar loads an EBNF grammar, printing each problem the ebnf
// package found on stderr.
func loadGrammar(cmd *cobra.Command, filename, start string) (ebnf.Grammar, error) {
	g, err := ebnflex.Load(filename, start)
	if err != nil {
		for _, e := range ebnflex.Errors(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		return nil, fmt.Errorf("load grammar %s: %w", filename, err)
	}
	return g, nil
}
