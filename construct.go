package entwire

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/entwire/entwire/i18n"
)

// ConstructOpt bundles construction options.
type ConstructOpt struct {
	// MaxDepth bounds recursive reconstruction. Zero means unlimited. Object
	// graphs must be acyclic; the bound is a guard for inputs that are not.
	MaxDepth int
}

// Refiner is an optional hook run after reconstruction completes, once
// nested entities are live (they are still raw records while the fields are
// being assigned). Use it for cross-field checks.
type Refiner interface {
	Refine() error
}

// Construct builds an entity of the given type from a raw field mapping.
// Missing and extra fields are diagnostics, never failures; inspect
// MissingFields/ExtraFields afterwards when a strict schema is wanted.
func Construct(spec *TypeSpec, fields map[string]any) (Entity, error) {
	return ConstructWith(spec, fields, ConstructOpt{})
}

// ConstructWith is Construct with explicit options.
func ConstructWith(spec *TypeSpec, fields map[string]any, opt ConstructOpt) (Entity, error) {
	return construct(spec, fields, opt, 0)
}

func construct(spec *TypeSpec, fields map[string]any, opt ConstructOpt, depth int) (Entity, error) {
	if opt.MaxDepth > 0 && depth > opt.MaxDepth {
		return nil, Issues{Issue{Path: "/", Code: CodeTruncated, Message: i18n.T(CodeTruncated, nil), Hint: "max depth exceeded"}}
	}

	e := spec.New()
	m := e.entityMeta()
	m.init(spec.name)

	// Presence snapshot: declared fields come from the descriptor table;
	// factory defaults count as present, as do non-null input keys. The
	// reserved type tag never participates.
	declared := make(map[string]struct{}, len(spec.fields))
	present := make(map[string]struct{}, len(fields))
	for i := range spec.fields {
		f := &spec.fields[i]
		declared[f.Name] = struct{}{}
		if !isNil(f.Get(e)) {
			present[f.Name] = struct{}{}
		}
	}
	for k, v := range fields {
		if k == TypeTagKey || v == nil {
			continue
		}
		present[k] = struct{}{}
	}
	for k := range present {
		if _, ok := declared[k]; !ok {
			m.extra = append(m.extra, k)
		}
	}
	for k := range declared {
		if _, ok := present[k]; !ok {
			m.missing = append(m.missing, k)
		}
	}
	sort.Strings(m.extra)
	sort.Strings(m.missing)

	// Assign in sorted key order for deterministic error selection.
	// Overwriting a factory default is always legal. Construction-time
	// assignment leaves the presence lists untouched; only SetField clears
	// entries later.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != TypeTagKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var iss Issues
	for _, k := range keys {
		v := fields[k]
		f := spec.field(k)
		if f == nil {
			m.setExtra(k, v)
			continue
		}
		rv, err := reconstructValue(v, f.Type, opt, depth+1)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+k, err)...)
			continue
		}
		if err := f.Set(e, rv); err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+k, err)...)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}

	if r, ok := e.(Refiner); ok {
		if err := r.Refine(); err != nil {
			return nil, issuesFromErr("/", err)
		}
	}
	return e, nil
}

// reconstructValue resolves a descriptor against a raw decoded value and
// produces the reconstructed form. It is idempotent on already-live values:
// entities built programmatically hold live nested entities, not raw
// records, and must pass through unchanged.
func reconstructValue(v any, d Descriptor, opt ConstructOpt, depth int) (any, error) {
	if opt.MaxDepth > 0 && depth > opt.MaxDepth {
		return nil, Issues{Issue{Path: "/", Code: CodeTruncated, Message: i18n.T(CodeTruncated, nil), Hint: "max depth exceeded"}}
	}
	if v == nil {
		return nil, nil
	}

	switch d.k {
	case kindAny:
		return v, nil

	case kindOptional:
		return reconstructValue(v, *d.inner, opt, depth)

	case kindString:
		s, ok := asString(v)
		if !ok {
			return nil, scalarMismatch("string", v)
		}
		return s, nil

	case kindInt:
		i, ok := asInt64(v)
		if !ok {
			return nil, scalarMismatch("integer", v)
		}
		return i, nil

	case kindFloat:
		f, ok := asFloat64(v)
		if !ok {
			return nil, scalarMismatch("number", v)
		}
		return f, nil

	case kindBool:
		b, ok := asBool(v)
		if !ok {
			return nil, scalarMismatch("bool", v)
		}
		return b, nil

	case kindRef:
		switch t := v.(type) {
		case map[string]any:
			return construct(d.ref, t, opt, depth+1)
		case Entity:
			return t, nil
		default:
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeMalformedNested,
				Message: i18n.T(CodeMalformedNested, nil),
				Hint:    fmt.Sprintf("expected a %s record or instance, got %T", d.ref.name, v),
			}}
		}

	case kindOneOf:
		rec, ok := v.(map[string]any)
		if !ok {
			// live entity or opaque primitive; pass through
			return v, nil
		}
		tag, _ := rec[TypeTagKey].(string)
		if tag == "" {
			// untagged records may legitimately be plain payloads; never guess
			return v, nil
		}
		for _, s := range d.oneOf {
			if s.name == tag {
				return construct(s, rec, opt, depth+1)
			}
		}
		return nil, Issues{Issue{
			Path:    "/" + TypeTagKey,
			Code:    CodeTypeMismatch,
			Message: i18n.T(CodeTypeMismatch, nil),
			Hint:    "unknown variant: '" + tag + "'",
		}}

	case kindList:
		seq, ok := v.([]any)
		if !ok {
			// already a typed slice from a live graph
			return v, nil
		}
		if len(seq) == 0 {
			return seq, nil
		}
		out := make([]any, len(seq))
		for i, el := range seq {
			rv, err := reconstructValue(el, *d.inner, opt, depth+1)
			if err != nil {
				return nil, rebaseIssues("/"+strconv.Itoa(i), err)
			}
			out[i] = rv
		}
		return out, nil

	case kindEnum:
		name, ok := v.(string)
		if !ok {
			// already a member value
			return v, nil
		}
		mv, ok := d.enum.Member(name)
		if !ok {
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeUnknownEnum,
				Message: i18n.T(CodeUnknownEnum, nil),
				Hint:    "no member named '" + name + "' in " + d.enum.name,
			}}
		}
		return mv, nil
	}
	return v, nil
}

func scalarMismatch(want string, v any) Issues {
	return Issues{Issue{
		Path:    "/",
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, nil),
		Hint:    fmt.Sprintf("expected %s, got %T", want, v),
	}}
}
