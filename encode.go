package entwire

import (
	"github.com/entwire/entwire/i18n"
	jsonsrc "github.com/entwire/entwire/source/json"
	yamlsrc "github.com/entwire/entwire/source/yaml"
)

// Convenience wrappers over the interchange-text drivers. The core operates
// purely on decoded trees; these move whole trees across the boundary.

// EncodeJSON renders an entity graph as canonical JSON text.
func EncodeJSON(e Entity) ([]byte, error) {
	c, err := ToCanonical(e)
	if err != nil {
		return nil, err
	}
	return jsonsrc.Encode(c)
}

// DecodeJSON constructs an entity of the given type from JSON text.
func DecodeJSON(spec *TypeSpec, data []byte) (Entity, error) {
	v, err := jsonsrc.Decode(data)
	if err != nil {
		return nil, issuesFromErr("/", err)
	}
	return constructFromTree(spec, v)
}

// EncodeYAML renders an entity graph as YAML text.
func EncodeYAML(e Entity) ([]byte, error) {
	c, err := ToCanonical(e)
	if err != nil {
		return nil, err
	}
	return yamlsrc.Encode(c)
}

// DecodeYAML constructs an entity of the given type from a YAML document.
func DecodeYAML(spec *TypeSpec, data []byte) (Entity, error) {
	v, err := yamlsrc.Decode(data)
	if err != nil {
		return nil, issuesFromErr("/", err)
	}
	return constructFromTree(spec, v)
}

func constructFromTree(spec *TypeSpec, v any) (Entity, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{Issue{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected a record at the document root"}}
	}
	return Construct(spec, m)
}
