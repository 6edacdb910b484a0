// Package json is the JSON side of the interchange-text boundary. It decodes
// text into the primitive tree the core consumes (mappings, sequences,
// strings, numbers, booleans, null) and encodes such trees back; the core
// never touches text directly.
package json

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"
)

// Decode parses JSON text into a primitive tree. Numbers decode as
// json.Number so integer precision survives the boundary.
func Decode(data []byte) (any, error) { return DecodeReader(bytes.NewReader(data)) }

// DecodeReader is Decode over an io.Reader.
func DecodeReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode renders a primitive tree as JSON text. Map keys are emitted in
// sorted order, which makes the output canonical.
func Encode(v any) ([]byte, error) { return j.Marshal(v) }

// EncodeIndent is Encode with two-space indentation, for human-facing output.
func EncodeIndent(v any) ([]byte, error) { return j.MarshalIndent(v, "", "  ") }
