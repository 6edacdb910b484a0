// Package yaml is the YAML side of the interchange-text boundary. Decoded
// documents are normalized to the same primitive tree shape the JSON side
// produces before the core sees them.
package yaml

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// Decode parses a single YAML document into a primitive tree. map[any]any
// nodes are normalized to map[string]any; non-string keys are dropped
// (non-string-keyed mappings are unsupported).
func Decode(data []byte) (any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return normalizeValue(node), nil
}

// DecodeAll parses a multi-document YAML stream into one tree per document.
func DecodeAll(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []any
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		out = append(out, normalizeValue(node))
	}
	return out, nil
}

// Encode renders a primitive tree as YAML text.
func Encode(v any) ([]byte, error) { return yaml.Marshal(v) }

// normalizeMap converts YAML-decoded mappings (which may arrive as
// map[any]any) into JSON-like map[string]any recursively. Non-map inputs
// return nil.
func normalizeMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return normalizeMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
