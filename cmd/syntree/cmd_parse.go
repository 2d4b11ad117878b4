package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/syntree/ebnf/parse"
	"github.com/dhamidi/syntree/event"
	"github.com/dhamidi/syntree/format"
	"github.com/dhamidi/syntree/parser"
)

func newParseCmd() *cobra.Command {
	var lang langFlag
	var outputFormat string
	var showEvents bool
	var grammarFile string
	var startProduction string

	cmd := &cobra.Command{
		Use:          "parse [file]",
		Short:        "Parse a file and dump its syntax tree",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(args)
			if err != nil {
				return err
			}
			var opts []parser.Option
			events := event.NewLogSink()
			if showEvents {
				opts = append(opts, parser.WithSink(events))
			}

			var res parser.Result
			if grammarFile != "" {
				if startProduction == "" {
					return fmt.Errorf("--grammar needs --start")
				}
				g, err := loadGrammar(cmd, grammarFile, startProduction)
				if err != nil {
					return err
				}
				log.Infof("parsing %s with %s from %s", name, grammarFile, startProduction)
				res = parse.New(grammarFile, g, startProduction).Parse(src, opts...)
			} else {
				l := lang.resolve(name)
				log.Infof("parsing %s as %s", name, l.name)
				res = l.parse(src, opts...)
			}

			if showEvents {
				fmt.Fprintln(cmd.OutOrStdout(), events.String())
			} else {
				enc, err := format.New(outputFormat, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if err := enc.Encode(res); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}

			if n := len(res.Diagnostics); n > 0 {
				return fmt.Errorf("%s: %d syntax errors", name, n)
			}
			return nil
		},
	}

	cmd.Flags().VarP(&lang, "lang", "l", lang.usage())
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml, tokens)")
	cmd.Flags().BoolVar(&showEvents, "events", false, "print the event stream instead of the tree")
	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "parse with this EBNF grammar instead of a built-in language")
	cmd.Flags().StringVar(&startProduction, "start", "", "start production of --grammar")

	return cmd
}
