package entwire_test

import (
	"errors"

	entwire "github.com/entwire/entwire"
)

// Inner / Note / Outer mirror a typical nested document: entities, lists,
// optionals, a tagged union and an enum.

type Inner struct {
	entwire.Meta
	Value int64
}

func (in *Inner) Spec() *entwire.TypeSpec { return innerType }

var innerType = func() *entwire.TypeSpec {
	get, set := entwire.Bind(func(in *Inner) *int64 { return &in.Value })
	return entwire.NewType("Inner", func() entwire.Entity { return &Inner{} }).
		Field("value", entwire.Int(), get, set).
		MustBuild()
}()

type Note struct {
	entwire.Meta
	Text string
}

func (n *Note) Spec() *entwire.TypeSpec { return noteType }

var noteType = func() *entwire.TypeSpec {
	get, set := entwire.Bind(func(n *Note) *string { return &n.Text })
	return entwire.NewType("Note", func() entwire.Entity { return &Note{} }).
		Field("text", entwire.String(), get, set).
		MustBuild()
}()

type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityHigh
)

var priorityEnum = entwire.NewEnum("Priority",
	entwire.EnumMember{Name: "low", Value: PriorityLow},
	entwire.EnumMember{Name: "high", Value: PriorityHigh},
)

type Outer struct {
	entwire.Meta
	Inner1   *Inner
	Inner2   *Inner
	Inners   []*Inner
	Value    int64
	Value2   *float64
	Priority *Priority
	Payload  any
}

func (o *Outer) Spec() *entwire.TypeSpec { return outerType }

var outerType = func() *entwire.TypeSpec {
	inner1Get, inner1Set := entwire.Bind(func(o *Outer) **Inner { return &o.Inner1 })
	inner2Get, inner2Set := entwire.Bind(func(o *Outer) **Inner { return &o.Inner2 })
	innersGet, innersSet := entwire.BindList(func(o *Outer) *[]*Inner { return &o.Inners })
	valueGet, valueSet := entwire.Bind(func(o *Outer) *int64 { return &o.Value })
	value2Get, value2Set := entwire.BindPtr(func(o *Outer) **float64 { return &o.Value2 })
	prioGet, prioSet := entwire.BindPtr(func(o *Outer) **Priority { return &o.Priority })
	payloadGet, payloadSet := entwire.Bind(func(o *Outer) *any { return &o.Payload })

	return entwire.NewType("Outer", func() entwire.Entity { return &Outer{} }).
		Field("inner1", entwire.Ref(innerType), inner1Get, inner1Set).
		Field("inner2", entwire.OptionalOf(entwire.Ref(innerType)), inner2Get, inner2Set).
		Field("inners", entwire.ListOf(entwire.Ref(innerType)), innersGet, innersSet).
		Field("value", entwire.Int(), valueGet, valueSet).
		Field("value2", entwire.OptionalOf(entwire.Float()), value2Get, value2Set).
		Field("priority", entwire.OptionalOf(entwire.EnumOf(priorityEnum)), prioGet, prioSet).
		Field("payload", entwire.OneOf(innerType, noteType), payloadGet, payloadSet).
		MustBuild()
}()

// Span exercises the cross-field Refine hook.

type Span struct {
	entwire.Meta
	Lo int64
	Hi int64
}

func (s *Span) Spec() *entwire.TypeSpec { return spanType }

func (s *Span) Refine() error {
	if s.Lo > s.Hi {
		return errors.New("lo exceeds hi")
	}
	return nil
}

var spanType = func() *entwire.TypeSpec {
	loGet, loSet := entwire.Bind(func(s *Span) *int64 { return &s.Lo })
	hiGet, hiSet := entwire.Bind(func(s *Span) *int64 { return &s.Hi })
	return entwire.NewType("Span", func() entwire.Entity { return &Span{} }).
		Field("lo", entwire.Int(), loGet, loSet).
		Field("hi", entwire.Int(), hiGet, hiSet).
		MustBuild()
}()

// Config exercises factory defaults.

type Config struct {
	entwire.Meta
	Mode *string
}

func (c *Config) Spec() *entwire.TypeSpec { return configType }

var configType = func() *entwire.TypeSpec {
	get, set := entwire.BindPtr(func(c *Config) **string { return &c.Mode })
	return entwire.NewType("Config", func() entwire.Entity {
		mode := "auto"
		return &Config{Mode: &mode}
	}).
		Field("mode", entwire.OptionalOf(entwire.String()), get, set).
		MustBuild()
}()

func ptr[T any](v T) *T { return &v }

func fullOuter() *Outer {
	i1 := &Inner{Value: 1}
	i2 := &Inner{Value: 2}
	return &Outer{
		Inner1:   i1,
		Inner2:   i2,
		Inners:   []*Inner{i1, i2},
		Value:    3,
		Value2:   ptr(3.2),
		Priority: ptr(PriorityHigh),
		Payload:  &Note{Text: "attached"},
	}
}
