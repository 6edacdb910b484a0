// Package entwire converts hierarchies of domain entities to and from
// tree-structured interchange data (records, sequences, primitives) while
// preserving enough type information to rebuild the original object graph.
//
// It provides:
//
//   - Type-directed reconstruction driven by a static per-type descriptor
//     table (nested entities, lists, optionals, tagged unions, enumerations)
//   - Presence diagnostics: declared fields absent from input and input
//     fields that were never declared (missing/extra; data, never failures)
//   - Canonical serialization (omit-null), structural equality and deep copy
//   - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
//   - Keep only public APIs in the root package.
//   - Place interchange-text drivers under source/ (JSON, YAML); the core
//     only ever sees decoded primitive trees, never text.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	e, err := entwire.Construct(orderType, tree)
//	missing := entwire.MissingFields(e)
//
//	raw, err := entwire.ToCanonical(e)
//	same, err := entwire.Equal(e, other)
//	cp, err := entwire.DeepCopy(e)
package entwire
