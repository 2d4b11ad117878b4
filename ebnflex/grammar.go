package ebnflex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Load parses an EBNF grammar from a file. When start is not empty the
// grammar is also verified from that production.
func Load(filename, start string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(filename, f, start)
}

// ParseString is Parse for grammars held in memory.
func ParseString(filename, src, start string) (ebnf.Grammar, error) {
	return Parse(filename, strings.NewReader(src), start)
}

// Parse reads an EBNF grammar and verifies it from start unless start is
// empty.
func Parse(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start == "" {
		return grammar, nil
	}
	return grammar, Verify(grammar, start)
}

// Verify checks that every production of g is defined and reachable from
// start.
func Verify(g ebnf.Grammar, start string) error {
	if err := ebnf.Verify(g, start); err != nil {
		return fmt.Errorf("verify grammar from %s: %w", start, err)
	}
	return nil
}

// Errors splits an error returned by Parse into the individual problems
// the ebnf package reported.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	inner := err
	for {
		next := errors.Unwrap(inner)
		if next == nil {
			break
		}
		inner = next
	}
	v := reflect.ValueOf(inner)
	if v.Kind() != reflect.Slice {
		return []error{inner}
	}
	errs := make([]error, 0, v.Len())
	for i := range v.Len() {
		if e, ok := v.Index(i).Interface().(error); ok {
			errs = append(errs, e)
		}
	}
	return errs
}
