package entwire

type descKind int

const (
	kindAny descKind = iota
	kindString
	kindInt
	kindFloat
	kindBool
	kindRef
	kindOptional
	kindList
	kindOneOf
	kindEnum
)

// Descriptor declares the wire shape of one field. Descriptors are static
// (declared once per entity type); resolution against an actual value
// happens per instance during reconstruction. The zero Descriptor behaves
// like Any.
type Descriptor struct {
	k     descKind
	inner *Descriptor
	ref   *TypeSpec
	oneOf []*TypeSpec
	enum  *EnumSpec
}

// Any passes the decoded value through unchanged.
func Any() Descriptor { return Descriptor{k: kindAny} }

// String expects a string value.
func String() Descriptor { return Descriptor{k: kindString} }

// Int expects an integer; decoded json.Number and integral floats coerce.
func Int() Descriptor { return Descriptor{k: kindInt} }

// Float expects a floating point number; integers coerce.
func Float() Descriptor { return Descriptor{k: kindFloat} }

// Bool expects a boolean value.
func Bool() Descriptor { return Descriptor{k: kindBool} }

// Ref expects a nested entity of the given type: raw records are
// constructed, live instances pass through unchanged.
func Ref(spec *TypeSpec) Descriptor { return Descriptor{k: kindRef, ref: spec} }

// OptionalOf wraps a descriptor whose value may be null.
func OptionalOf(d Descriptor) Descriptor { return Descriptor{k: kindOptional, inner: &d} }

// ListOf expects a homogeneous sequence of the inner shape.
func ListOf(d Descriptor) Descriptor { return Descriptor{k: kindList, inner: &d} }

// OneOf is a closed union over entity types, resolved at runtime by matching
// the record's type tag against the candidates' names. Untagged records pass
// through unreconstructed: loosely typed payloads are legitimate here.
func OneOf(specs ...*TypeSpec) Descriptor { return Descriptor{k: kindOneOf, oneOf: specs} }

// EnumOf expects an enumeration member, written on the wire as its name.
func EnumOf(e *EnumSpec) Descriptor { return Descriptor{k: kindEnum, enum: e} }

// EnumMember pairs a wire name with its in-memory value.
type EnumMember struct {
	Name  string
	Value any
}

// EnumSpec declares an enumeration: ordered members with name<->value lookup
// both ways. Member values must be comparable.
type EnumSpec struct {
	name    string
	members []EnumMember
	byName  map[string]any
}

// NewEnum declares an enumeration type.
func NewEnum(name string, members ...EnumMember) *EnumSpec {
	e := &EnumSpec{name: name, members: members, byName: make(map[string]any, len(members))}
	for _, m := range members {
		e.byName[m.Name] = m.Value
	}
	return e
}

// Name returns the enumeration's declared name.
func (e *EnumSpec) Name() string { return e.name }

// Member resolves a wire name to its value.
func (e *EnumSpec) Member(name string) (any, bool) {
	v, ok := e.byName[name]
	return v, ok
}

// NameOf resolves a member value back to its wire name.
func (e *EnumSpec) NameOf(v any) (string, bool) {
	for _, m := range e.members {
		if m.Value == v {
			return m.Name, true
		}
	}
	return "", false
}
