package format

import (
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/syntree/parser"
)

// TextEncoder writes the indented tree dump followed by one line per
// diagnostic.
type TextEncoder struct {
	w     io.Writer
	res   parser.Result
	color bool
}

// NewTextEncoder colours diagnostics unless color.NoColor is set, which
// fatih/color does when the output is not a terminal.
func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w, color: !color.NoColor}
}

// SetColor overrides the terminal detection.
func (e *TextEncoder) SetColor(on bool) {
	e.color = on
}

func (e *TextEncoder) Encode(res parser.Result) error {
	e.res = res
	return encode(e.w, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(e.res.Red().Dump())

	ix := newLineIndex(e.res.Root.Text())
	label := color.New(color.FgRed, color.Bold)
	where := color.New(color.Faint)
	if e.color {
		label.EnableColor()
		where.EnableColor()
	} else {
		label.DisableColor()
		where.DisableColor()
	}
	for _, d := range e.res.Diagnostics {
		sb.WriteString(where.Sprint(ix.position(d.Range.Start)))
		sb.WriteString(": ")
		sb.WriteString(label.Sprint("error"))
		sb.WriteString(": ")
		sb.WriteString(d.Message())
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}
