// Package event defines the flat event stream a parser emits and the sinks
// that interpret it.
//
// A parse never builds nodes directly. It emits Start/Token/End style events
// into a Sink; a TreeSink turns them into green nodes, a LogSink records
// them as text, and a Buffer holds them so they can be inspected and
// replayed later.
package event

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/syntree/tree"
)

type Op uint8

const (
	OpStart Op = iota
	OpAlias
	OpToken
	OpTrivia
	OpUnfinished
	OpFinish
	OpEnd
	OpAbort
	OpIgnoreTrivia
	OpEOF
)

var opNames = map[Op]string{
	OpStart:        "Start",
	OpAlias:        "Alias",
	OpToken:        "Token",
	OpTrivia:       "Trivia",
	OpUnfinished:   "Unfinished",
	OpFinish:       "Finish",
	OpEnd:          "End",
	OpAbort:        "Abort",
	OpIgnoreTrivia: "IgnoreTrivia",
	OpEOF:          "Eof",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "Unknown"
}

// Placement says which token a piece of trivia belongs to.
type Placement uint8

const (
	// Leading trivia precedes the next token.
	Leading Placement = iota
	// Trailing trivia follows the previous token on the same line.
	Trailing
)

func (p Placement) String() string {
	if p == Trailing {
		return "trailing"
	}
	return "leading"
}

// Event is one step of tree construction.
type Event struct {
	Op   Op
	Kind string
	Text string

	// Placement is only meaningful for OpTrivia.
	Placement Placement
}

func Start(kind string) Event {
	return Event{Op: OpStart, Kind: kind}
}

// Alias tags the next node produced with an extra kind.
func Alias(kind string) Event {
	return Event{Op: OpAlias, Kind: kind}
}

func Token(kind, text string) Event {
	return Event{Op: OpToken, Kind: kind, Text: text}
}

func Trivia(placement Placement, kind, text string) Event {
	return Event{Op: OpTrivia, Kind: kind, Text: text, Placement: placement}
}

// Unfinished opens a node whose kind is decided when it closes.
func Unfinished() Event {
	return Event{Op: OpUnfinished}
}

// Finish closes the open node with an explicit kind.
func Finish(kind string) Event {
	return Event{Op: OpFinish, Kind: kind}
}

// End closes the open node with the kind it was started with.
func End() Event {
	return Event{Op: OpEnd}
}

// Abort discards the open node and hands its children to the enclosing one.
func Abort() Event {
	return Event{Op: OpAbort}
}

// IgnoreTrivia drops the trailing trivia emitted since the last token.
func IgnoreTrivia() Event {
	return Event{Op: OpIgnoreTrivia}
}

// EOF marks the end of input. Pending leading trivia goes to an EOF token
// of the given kind.
func EOF(kind string) Event {
	return Event{Op: OpEOF, Kind: kind}
}

func (e Event) String() string {
	switch e.Op {
	case OpStart, OpAlias, OpFinish:
		return fmt.Sprintf("%s(%s)", e.Op, e.Kind)
	case OpToken:
		return fmt.Sprintf("Token(%s, %s)", e.Kind, strconv.Quote(e.Text))
	case OpTrivia:
		return fmt.Sprintf("Trivia(%s, %s, %s)", e.Placement, e.Kind, strconv.Quote(e.Text))
	case OpEOF:
		return fmt.Sprintf("Eof(%s)", e.Kind)
	default:
		return e.Op.String()
	}
}

// Diagnostic records an expected-token mismatch or unexpected input.
type Diagnostic struct {
	// Expected lists the acceptable kinds; nil when anything else was
	// unexpected.
	Expected []string
	// Found is the kind of the offending token, tree.KindEOF at end of input.
	Found string
	Text  string
	Range tree.Range
	// Trailing is set for input left over after the grammar finished.
	Trailing bool
}

// AtEOF reports whether the diagnostic was raised at end of input.
func (d Diagnostic) AtEOF() bool {
	return d.Found == tree.KindEOF
}

func (d Diagnostic) Message() string {
	found := d.Found
	if !d.AtEOF() && d.Text != "" {
		found = fmt.Sprintf("%s %s", d.Found, strconv.Quote(d.Text))
	}
	switch {
	case d.Trailing:
		return "unexpected trailing input " + found
	case len(d.Expected) == 0:
		return "unexpected " + found
	case len(d.Expected) == 1:
		return fmt.Sprintf("expected %s but found %s", d.Expected[0], found)
	default:
		return fmt.Sprintf("expected one of {%s} but found %s", strings.Join(d.Expected, ", "), found)
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Range, d.Message())
}

// Sink consumes a parse.
type Sink interface {
	Event(e Event)
	Error(d Diagnostic)
}

type tee []Sink

func (t tee) Event(e Event) {
	for _, s := range t {
		s.Event(e)
	}
}

func (t tee) Error(d Diagnostic) {
	for _, s := range t {
		s.Error(d)
	}
}

// Tee returns a sink that forwards everything to each of sinks in order.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}
