// Package preset models slicer filament presets: flat documents mapping
// setting names to values of ambiguous shape (scalar, sequence, or object),
// plus the embedded Notes identity record that links a preset to a catalog
// entry on the printer.
package preset

import (
	"bytes"
	"encoding/json"

	"github.com/agentstation/filasync/pkg/errors"
)

// Kind classifies the shape of a preset value.
type Kind int

// Value kinds. Slicer exports mix bare scalars and single-element sequences
// for the same setting depending on which code path wrote the file, so the
// shape is modeled explicitly instead of being re-inspected at every use.
const (
	KindScalar Kind = iota
	KindSequence
	KindObject
)

// Value is a tagged preset value: a scalar, a sequence, or a nested object.
type Value struct {
	kind Kind
	v    any
}

// Scalar creates a scalar Value.
func Scalar(v any) Value {
	return Value{kind: KindScalar, v: v}
}

// Sequence creates a sequence Value.
func Sequence(items ...any) Value {
	return Value{kind: KindSequence, v: items}
}

// Object creates an object Value.
func Object(m map[string]any) Value {
	return Value{kind: KindObject, v: m}
}

// Of classifies an arbitrary decoded JSON value into a tagged Value.
func Of(v any) Value {
	switch t := v.(type) {
	case []any:
		return Value{kind: KindSequence, v: t}
	case map[string]any:
		return Value{kind: KindObject, v: t}
	default:
		return Value{kind: KindScalar, v: v}
	}
}

// Kind returns the value's shape tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Items returns the underlying sequence, or nil for non-sequences.
func (v Value) Items() []any {
	if v.kind != KindSequence {
		return nil
	}
	items, _ := v.v.([]any)
	return items
}

// First returns the scalar itself, or the first element of a sequence.
// The second return is false for objects and empty sequences.
func (v Value) First() (any, bool) {
	switch v.kind {
	case KindScalar:
		return v.v, true
	case KindSequence:
		items := v.Items()
		if len(items) == 0 {
			return nil, false
		}
		return items[0], true
	default:
		return nil, false
	}
}

// String returns the value's scalar (or first sequence element) rendered as a
// string. Non-string scalars such as numbers keep their JSON text form.
func (v Value) String() string {
	first, ok := v.First()
	if !ok {
		return ""
	}
	switch t := first.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Canonical returns the value in canonical shape: scalars become
// single-element sequences, sequences and objects pass through unchanged.
func (v Value) Canonical() Value {
	if v.kind == KindScalar {
		return Sequence(v.v)
	}
	return v
}

// MarshalJSON emits the underlying value in its tagged shape.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

// UnmarshalJSON decodes arbitrary JSON into a tagged Value. Numbers are kept
// as json.Number so re-encoding never changes their textual form.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return errors.WrapParse("json", "", err)
	}
	*v = Of(raw)
	return nil
}

// Interface returns the untagged underlying value.
func (v Value) Interface() any {
	return v.v
}
