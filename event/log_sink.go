package event

import "strings"

// LogSink records events and diagnostics as text, one entry per line.
type LogSink struct {
	lines []string
}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Event(e Event) {
	s.lines = append(s.lines, e.String())
}

func (s *LogSink) Error(d Diagnostic) {
	s.lines = append(s.lines, "Error("+d.String()+")")
}

func (s *LogSink) Lines() []string {
	return s.lines
}

func (s *LogSink) String() string {
	return strings.Join(s.lines, "\n")
}
