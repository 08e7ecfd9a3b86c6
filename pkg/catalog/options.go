package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
)

// Options is the material options document: a mapping of vendor -> type ->
// name. Unlike the database it has no insert/update distinction; setting a
// (vendor, type) pair is a pure key overwrite.
type Options struct {
	root map[string]any
}

// NewOptions creates an empty options document.
func NewOptions() *Options {
	return &Options{root: make(map[string]any)}
}

// ParseOptions decodes an options document.
func ParseOptions(data []byte) (*Options, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	if root == nil {
		root = make(map[string]any)
	}
	return &Options{root: root}, nil
}

// Set records name under vendor and type, creating the vendor mapping when
// absent and overwriting any prior value for the pair.
func (o *Options) Set(vendor, typ, name string) {
	types, ok := o.root[vendor].(map[string]any)
	if !ok {
		types = make(map[string]any)
		o.root[vendor] = types
	}
	types[typ] = name
}

// Get returns the name stored for a (vendor, type) pair, or "".
func (o *Options) Get(vendor, typ string) string {
	types, ok := o.root[vendor].(map[string]any)
	if !ok {
		return ""
	}
	return firstString(types[typ])
}

// Vendors returns the number of vendors in the document.
func (o *Options) Vendors() int {
	return len(o.root)
}

// Clone deep-copies the document.
func (o *Options) Clone() (*Options, error) {
	data, err := o.MarshalIndent()
	if err != nil {
		return nil, err
	}
	return ParseOptions(data)
}

// MarshalIndent renders the document with the tab-indented layout the
// printer firmware expects.
func (o *Options) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(o.root, "", constants.JSONIndent)
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return append(data, '\n'), nil
}
