package event

import "fmt"

type entry struct {
	event Event
	diag  *Diagnostic
}

// Buffer holds events and diagnostics in order without interpreting them.
// A buffered sub-parse can be inspected, combined with other buffers and
// replayed into another sink later.
type Buffer struct {
	entries []entry
}

func (b *Buffer) Event(e Event) {
	b.entries = append(b.entries, entry{event: e})
}

func (b *Buffer) Error(d Diagnostic) {
	b.entries = append(b.entries, entry{diag: &d})
}

// Append moves the contents of other to the end of b and empties other.
func (b *Buffer) Append(other *Buffer) {
	b.entries = append(b.entries, other.entries...)
	other.entries = nil
}

// Finish replays the buffered entries into sink and empties b.
func (b *Buffer) Finish(sink Sink) {
	for _, e := range b.entries {
		if e.diag != nil {
			sink.Error(*e.diag)
		} else {
			sink.Event(e.event)
		}
	}
	b.entries = nil
}

func (b *Buffer) Len() int {
	return len(b.entries)
}

// Events returns the buffered events, diagnostics excluded.
func (b *Buffer) Events() []Event {
	events := make([]Event, 0, len(b.entries))
	for _, e := range b.entries {
		if e.diag == nil {
			events = append(events, e.event)
		}
	}
	return events
}

func (b *Buffer) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, e := range b.entries {
		if e.diag != nil {
			diags = append(diags, *e.diag)
		}
	}
	return diags
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%d entries)", len(b.entries))
}

// Balanced reports an error when a Start or Unfinished event is not closed
// by exactly one End, Finish or Abort.
func Balanced(events []Event) error {
	depth := 0
	for i, e := range events {
		switch e.Op {
		case OpStart, OpUnfinished:
			depth++
		case OpEnd, OpFinish, OpAbort:
			depth--
			if depth < 0 {
				return fmt.Errorf("event %d: %s closes no open node", i, e)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%d nodes left open", depth)
	}
	return nil
}
