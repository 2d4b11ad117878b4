package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/syntree/parser"
)

type JSONEncoder struct {
	w   io.Writer
	res parser.Result
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(res parser.Result) error {
	e.res = res
	return encode(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(newDocument(e.res), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}
