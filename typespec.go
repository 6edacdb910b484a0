package entwire

import (
	"fmt"

	"github.com/entwire/entwire/i18n"
)

// GetFunc reads a field value from its entity. A nil (or typed-nil) result
// means the field is absent.
type GetFunc func(Entity) any

// SetFunc writes a reconstructed value back onto the entity.
type SetFunc func(Entity, any) error

// FieldSpec declares one field: its wire name, its type descriptor and the
// accessor pair binding it to the concrete struct.
type FieldSpec struct {
	Name string
	Type Descriptor
	Get  GetFunc
	Set  SetFunc
}

// TypeSpec is the static descriptor table for one entity type. Declare it
// once per type and return it from the type's Spec method.
type TypeSpec struct {
	name    string
	factory func() Entity
	fields  []FieldSpec
	byName  map[string]*FieldSpec
}

// Name returns the declared type name, used as the polymorphic type tag.
func (s *TypeSpec) Name() string { return s.name }

// New returns a fresh entity with factory defaults applied.
func (s *TypeSpec) New() Entity { return s.factory() }

// Fields returns the declared field specs in declaration order.
func (s *TypeSpec) Fields() []FieldSpec { return s.fields }

func (s *TypeSpec) field(name string) *FieldSpec { return s.byName[name] }

// TypeBuilder assembles a TypeSpec.
type TypeBuilder struct {
	spec TypeSpec
	iss  Issues
}

// NewType starts a TypeSpec for the named entity type. The factory returns a
// fresh instance carrying any declared defaults.
func NewType(name string, factory func() Entity) *TypeBuilder {
	b := &TypeBuilder{}
	b.spec = TypeSpec{name: name, factory: factory, byName: map[string]*FieldSpec{}}
	return b
}

// Field declares one field with its descriptor and accessor pair.
func (b *TypeBuilder) Field(name string, d Descriptor, get GetFunc, set SetFunc) *TypeBuilder {
	if _, dup := b.spec.byName[name]; dup {
		b.iss = AppendIssues(b.iss, Issue{Path: "/" + name, Code: CodeDuplicateField, Message: i18n.T(CodeDuplicateField, nil), Hint: "field declared twice on " + b.spec.name})
		return b
	}
	b.spec.fields = append(b.spec.fields, FieldSpec{Name: name, Type: d, Get: get, Set: set})
	b.spec.byName[name] = &b.spec.fields[len(b.spec.fields)-1]
	return b
}

// Build finalizes the TypeSpec.
func (b *TypeBuilder) Build() (*TypeSpec, error) {
	if len(b.iss) > 0 {
		return nil, b.iss
	}
	// fields slice may have been reallocated by appends; rebuild the index
	spec := b.spec
	spec.byName = make(map[string]*FieldSpec, len(spec.fields))
	for i := range spec.fields {
		spec.byName[spec.fields[i].Name] = &spec.fields[i]
	}
	return &spec, nil
}

// MustBuild is like Build but panics on error.
func (b *TypeBuilder) MustBuild() *TypeSpec {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Bind adapts a typed field accessor into a Get/Set pair for fields whose
// reconstructed value already has type V: plain scalars, entity pointers and
// opaque any payloads.
func Bind[T Entity, V any](access func(T) *V) (GetFunc, SetFunc) {
	get := func(e Entity) any {
		return *access(e.(T))
	}
	set := func(e Entity, v any) error {
		p := access(e.(T))
		if v == nil {
			var zero V
			*p = zero
			return nil
		}
		vv, ok := v.(V)
		if !ok {
			return bindMismatch[V](v)
		}
		*p = vv
		return nil
	}
	return get, set
}

// BindPtr adapts a pointer-valued accessor for optional scalar and enum
// fields: a reconstructed V is boxed, null clears the pointer.
func BindPtr[T Entity, V any](access func(T) **V) (GetFunc, SetFunc) {
	get := func(e Entity) any {
		if p := *access(e.(T)); p != nil {
			return *p
		}
		return nil
	}
	set := func(e Entity, v any) error {
		p := access(e.(T))
		switch vv := v.(type) {
		case nil:
			*p = nil
		case V:
			*p = &vv
		case *V:
			*p = vv
		default:
			return bindMismatch[V](v)
		}
		return nil
	}
	return get, set
}

// BindList adapts a slice-valued accessor. Reconstructed sequences arrive as
// []any and are converted element-wise; already-typed slices pass through.
func BindList[T Entity, E any](access func(T) *[]E) (GetFunc, SetFunc) {
	get := func(e Entity) any {
		return *access(e.(T))
	}
	set := func(e Entity, v any) error {
		p := access(e.(T))
		switch vv := v.(type) {
		case nil:
			*p = nil
		case []E:
			*p = vv
		case []any:
			out := make([]E, 0, len(vv))
			for _, el := range vv {
				ev, ok := el.(E)
				if !ok {
					return bindMismatch[E](el)
				}
				out = append(out, ev)
			}
			*p = out
		default:
			return bindMismatch[E](v)
		}
		return nil
	}
	return get, set
}

func bindMismatch[V any](v any) error {
	var want V
	return Issues{Issue{
		Path:    "/",
		Code:    CodeMalformedNested,
		Message: i18n.T(CodeMalformedNested, nil),
		Hint:    fmt.Sprintf("cannot assign %T where %T is declared", v, want),
	}}
}
