// Package catalog models the printer-resident persisted documents this
// system maintains: the material database ({result:{list, count, version}})
// and the material options mapping (vendor -> type -> name). Both are JSON
// documents with a bit-exact tab-indented output contract.
package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
)

// Material is a catalog entry: a preset-shaped record where every value
// follows the single-element-sequence convention, plus the catalog-required
// identity fields.
type Material map[string]any

// ID returns the entry's id, unwrapping the sequence convention.
func (m Material) ID() string {
	return firstString(m["id"])
}

// firstString unwraps a possibly sequence-wrapped value to its string form.
func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) == 0 {
			return ""
		}
		s, _ := t[0].(string)
		return s
	default:
		return ""
	}
}

// Database is the material database document. The baseline is externally
// owned: parse it, copy it, reconcile the copy, and write a new document.
// The original is never mutated in place.
type Database struct {
	root map[string]any
}

// ParseDatabase decodes a database document and validates its structure.
// A document whose result.list is not a list cannot be reconciled against;
// that is a structural precondition, not a recoverable condition.
func ParseDatabase(data []byte) (*Database, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}

	d := &Database{root: root}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) validate() error {
	result, ok := d.root["result"].(map[string]any)
	if !ok {
		return errors.NewStructureError("database", "result", "an object", "missing or wrong type")
	}
	if _, ok := result["list"].([]any); !ok {
		return errors.NewStructureError("database", "result.list", "a list", "missing or wrong type")
	}
	return nil
}

func (d *Database) result() map[string]any {
	result, _ := d.root["result"].(map[string]any)
	return result
}

// List returns the document's materials.
func (d *Database) List() []Material {
	raw, _ := d.result()["list"].([]any)
	list := make([]Material, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			list = append(list, Material(m))
		}
	}
	return list
}

// SetList replaces the document's materials.
func (d *Database) SetList(list []Material) {
	raw := make([]any, len(list))
	for i, m := range list {
		raw[i] = map[string]any(m)
	}
	d.result()["list"] = raw
}

// Stamp sets the document-level count and version. The version is a
// change-sequence marker for the consuming firmware, not a clock the
// correctness depends on.
func (d *Database) Stamp(count int, version string) {
	result := d.result()
	result["count"] = count
	result["version"] = version
}

// Count returns the document-level count field.
func (d *Database) Count() int {
	switch t := d.result()["count"].(type) {
	case json.Number:
		n, _ := t.Int64()
		return int(n)
	case float64:
		return int(t)
	case int:
		return t
	default:
		return 0
	}
}

// Version returns the document-level version field.
func (d *Database) Version() string {
	return firstString(d.result()["version"])
}

// Clone deep-copies the document so reconciliation never mutates the
// baseline.
func (d *Database) Clone() (*Database, error) {
	data, err := d.MarshalIndent()
	if err != nil {
		return nil, err
	}
	return ParseDatabase(data)
}

// MarshalIndent renders the document with the tab-indented layout the
// printer firmware expects.
func (d *Database) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(d.root, "", constants.JSONIndent)
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return append(data, '\n'), nil
}
