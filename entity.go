package entwire

import "slices"

// TypeTagKey is the reserved key that carries an entity's declared type tag
// in canonical form. Construction strips it; it never counts as a field in
// missing/extra computation.
const TypeTagKey = "$type"

// Entity is implemented by every marshallable type: embed Meta and declare a
// TypeSpec returned from Spec. Entities own their fields and metadata
// exclusively; nested entities are owned by the containing field.
type Entity interface {
	Spec() *TypeSpec
	entityMeta() *Meta
}

// Meta holds per-instance marshalling metadata: the declared type tag, the
// missing/extra field diagnostics and the values of undeclared input keys.
// The zero value is ready to use; embed it in entity structs.
type Meta struct {
	typeTag string
	missing []string
	extra   []string
	extras  map[string]any
}

func (m *Meta) entityMeta() *Meta { return m }

func (m *Meta) init(tag string) {
	m.typeTag = tag
	m.missing = nil
	m.extra = nil
	m.extras = nil
}

// markAssigned drops name from both presence lists; an assigned field is
// defined either way.
func (m *Meta) markAssigned(name string) {
	m.missing = slices.DeleteFunc(m.missing, func(s string) bool { return s == name })
	m.extra = slices.DeleteFunc(m.extra, func(s string) bool { return s == name })
}

func (m *Meta) setExtra(name string, v any) {
	if m.extras == nil {
		m.extras = map[string]any{}
	}
	m.extras[name] = v
}

// TypeTag returns the concrete type name fixed at construction. Entities
// built directly in Go report their TypeSpec name.
func TypeTag(e Entity) string {
	if t := e.entityMeta().typeTag; t != "" {
		return t
	}
	return e.Spec().Name()
}

// MissingFields returns the declared fields that were null or absent at
// construction and have not been assigned since, in sorted order.
func MissingFields(e Entity) []string { return slices.Clone(e.entityMeta().missing) }

// ExtraFields returns the input fields that were not declared and have not
// been assigned since, in sorted order.
func ExtraFields(e Entity) []string { return slices.Clone(e.entityMeta().extra) }

// ExtraValue reads the value of an undeclared input field.
func ExtraValue(e Entity, name string) (any, bool) {
	v, ok := e.entityMeta().extras[name]
	return v, ok
}

// SetField assigns a field after construction. Declared fields go through
// descriptor reconstruction, so a raw record assigned to an entity-typed
// field is rebuilt; undeclared names land in the extras bag. Either way the
// name leaves both presence lists.
func SetField(e Entity, name string, v any) error {
	m := e.entityMeta()
	if f := e.Spec().field(name); f != nil {
		rv, err := reconstructValue(v, f.Type, ConstructOpt{}, 0)
		if err != nil {
			return rebaseIssues("/"+name, err)
		}
		if err := f.Set(e, rv); err != nil {
			return rebaseIssues("/"+name, err)
		}
	} else if name != TypeTagKey {
		m.setExtra(name, v)
	}
	m.markAssigned(name)
	return nil
}
