package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/syntree/format"
	"github.com/dhamidi/syntree/parser"
)

const historyFile = ".syntree_history"

func newReplCmd() *cobra.Command {
	var lang langFlag
	var outputFormat string

	cmd := &cobra.Command{
		Use:          "repl",
		Short:        "Parse input interactively",
		Long:         "Read input line by line and print its tree. Input that ends before it is complete prompts for a continuation line.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := lang.resolve("")
			enc, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runREPL(l, enc)
		},
	}

	cmd.Flags().VarP(&lang, "lang", "l", lang.usage())
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml, tokens)")

	return cmd
}

func runREPL(l *language, enc format.Encoder) error {
	prompt := l.name + "> "
	cont := strings.Repeat(".", len(l.name)) + "> "
	fmt.Printf("%s: enter input, Ctrl+D to quit\n", color.New(color.Bold).Sprint("syntree "+l.name))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		src, res, ok := readByParseProbe(ln, l, prompt, cont)
		if !ok {
			fmt.Println()
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// readByParseProbe reads lines until the accumulated input parses without a
// diagnostic at the end of input. A blank continuation line gives up and
// returns the input as it is.
func readByParseProbe(ln *liner.State, l *language, prompt, cont string) (string, parser.Result, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", parser.Result{}, false
		}
		if err != nil {
			return "", parser.Result{}, true
		}

		more := b.Len() > 0
		if more {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, parser.Result{}, true
		}
		res := l.parse(src)
		if !res.Incomplete() || (more && strings.TrimSpace(line) == "") {
			return src, res, true
		}
		log.Debugf("input incomplete after %d bytes", len(src))
	}
}
