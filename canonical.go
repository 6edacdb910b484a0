package entwire

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/entwire/entwire/i18n"
)

// EncodeOpt bundles canonicalization options.
type EncodeOpt struct {
	// MaxDepth bounds the recursive walk. Zero means unlimited.
	MaxDepth int
}

// ToCanonical returns the canonical mapping of an entity graph: every
// non-null field (null fields are omitted), nested entities and lists
// canonicalized by delegation, enumeration values written as their names,
// plus the reserved type tag. The result is exactly the shape Construct
// accepts, so Construct(spec, ToCanonical(e)) equals e.
func ToCanonical(e Entity) (map[string]any, error) {
	return ToCanonicalWith(e, EncodeOpt{})
}

// ToCanonicalWith is ToCanonical with explicit options.
func ToCanonicalWith(e Entity, opt EncodeOpt) (map[string]any, error) {
	return toCanonical(e, opt, 0)
}

func toCanonical(e Entity, opt EncodeOpt, depth int) (map[string]any, error) {
	if opt.MaxDepth > 0 && depth > opt.MaxDepth {
		return nil, Issues{Issue{Path: "/", Code: CodeTruncated, Message: i18n.T(CodeTruncated, nil), Hint: "max depth exceeded"}}
	}

	spec := e.Spec()
	out := make(map[string]any, len(spec.fields)+1)
	out[TypeTagKey] = TypeTag(e)

	var iss Issues
	for i := range spec.fields {
		f := &spec.fields[i]
		v := f.Get(e)
		if isNil(v) {
			continue
		}
		cv, err := canonicalValue(v, f.Type, opt, depth+1)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+f.Name, err)...)
			continue
		}
		out[f.Name] = cv
	}

	// extras in name-sorted order for deterministic error selection
	m := e.entityMeta()
	if len(m.extras) > 0 {
		names := make([]string, 0, len(m.extras))
		for k := range m.extras {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			v := m.extras[k]
			if isNil(v) {
				continue
			}
			cv, err := canonicalValue(v, Any(), opt, depth+1)
			if err != nil {
				iss = AppendIssues(iss, rebaseIssues("/"+k, err)...)
				continue
			}
			out[k] = cv
		}
	}

	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func canonicalValue(v any, d Descriptor, opt EncodeOpt, depth int) (any, error) {
	if opt.MaxDepth > 0 && depth > opt.MaxDepth {
		return nil, Issues{Issue{Path: "/", Code: CodeTruncated, Message: i18n.T(CodeTruncated, nil), Hint: "max depth exceeded"}}
	}

	switch d.k {
	case kindOptional:
		return canonicalValue(v, *d.inner, opt, depth)

	case kindRef, kindOneOf:
		if ent, ok := v.(Entity); ok {
			return toCanonical(ent, opt, depth+1)
		}
		if rec, ok := v.(map[string]any); ok {
			// untagged payloads survive reconstruction as raw records
			return rec, nil
		}
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeMalformedNested,
			Message: i18n.T(CodeMalformedNested, nil),
			Hint:    fmt.Sprintf("expected an entity, got %T", v),
		}}

	case kindList:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeMalformedNested,
				Message: i18n.T(CodeMalformedNested, nil),
				Hint:    fmt.Sprintf("expected a sequence, got %T", v),
			}}
		}
		out := make([]any, rv.Len())
		for i := range out {
			cv, err := canonicalValue(rv.Index(i).Interface(), *d.inner, opt, depth+1)
			if err != nil {
				return nil, rebaseIssues("/"+strconv.Itoa(i), err)
			}
			out[i] = cv
		}
		return out, nil

	case kindEnum:
		if name, ok := d.enum.NameOf(v); ok {
			return name, nil
		}
		if s, ok := v.(string); ok {
			if _, known := d.enum.Member(s); known {
				return s, nil
			}
		}
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeUnknownEnum,
			Message: i18n.T(CodeUnknownEnum, nil),
			Hint:    fmt.Sprintf("value %v is not a member of %s", v, d.enum.name),
		}}

	default:
		// Any and typed scalars; opaque payloads may still hold live entities
		if ent, ok := v.(Entity); ok {
			return toCanonical(ent, opt, depth+1)
		}
		return v, nil
	}
}

// Equal reports structural equality of two entity graphs: their canonical
// forms are serialized with normalized key order and compared. Presence
// diagnostics do not participate. Comparing with a non-entity is an error,
// not a false result.
func Equal(a Entity, b any) (bool, error) {
	be, ok := b.(Entity)
	if !ok {
		return false, Issues{Issue{
			Path:    "/",
			Code:    CodeIncomparable,
			Message: i18n.T(CodeIncomparable, nil),
			Hint:    fmt.Sprintf("cannot compare entity with %T", b),
		}}
	}
	ca, err := ToCanonical(a)
	if err != nil {
		return false, err
	}
	cb, err := ToCanonical(be)
	if err != nil {
		return false, err
	}
	ab, err := json.Marshal(ca)
	if err != nil {
		return false, issuesFromErr("/", err)
	}
	bb, err := json.Marshal(cb)
	if err != nil {
		return false, issuesFromErr("/", err)
	}
	return bytes.Equal(ab, bb), nil
}

// DeepCopy clones an entity graph via a canonical round trip. Not the
// fastest clone, but the copy is indistinguishable from the original under
// Equal by construction.
func DeepCopy(e Entity) (Entity, error) {
	c, err := ToCanonical(e)
	if err != nil {
		return nil, err
	}
	return Construct(e.Spec(), c)
}
