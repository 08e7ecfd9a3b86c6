package preset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/logging"
)

// Well-known preset field names, matching the slicer's export format.
const (
	FieldName       = "name"
	FieldInherits   = "inherits"
	FieldFrom       = "from"
	FieldBaseID     = "base_id"
	FieldVendor     = "filament_vendor"
	FieldType       = "filament_type"
	FieldNotes      = "filament_notes"
	FieldSettingsID = "filament_settings_id"
)

// FromUser is the value of the "from" field for user-authored presets.
const FromUser = "User"

// metadataKeys are preserved as scalars during canonicalization. Everything
// else is wrapped per the single-element-sequence convention the printer's
// material database uses.
var metadataKeys = map[string]bool{
	FieldName:       true,
	FieldInherits:   true,
	FieldFrom:       true,
	FieldBaseID:     true,
	"type":          true,
	"setting_id":    true,
	"filament_id":   true,
	"instantiation": true,
	"version":       true,
}

// IsMetadataKey reports whether a field stays scalar during canonicalization.
func IsMetadataKey(key string) bool {
	return metadataKeys[key]
}

// Preset is a flat mapping of setting name to value, loaded from a single
// slicer preset file.
type Preset struct {
	// Path is the source file the preset was loaded from, empty for
	// presets constructed in memory.
	Path string

	Fields map[string]Value
}

// New creates an empty preset.
func New() *Preset {
	return &Preset{Fields: make(map[string]Value)}
}

// Parse decodes a preset document from JSON bytes. Each field goes through
// Value's decoder, which keeps numbers in their textual form.
func Parse(data []byte) (*Preset, error) {
	var fields map[string]Value
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	if fields == nil {
		fields = make(map[string]Value)
	}
	return &Preset{Fields: fields}, nil
}

// LoadFile reads and parses a single preset file.
func LoadFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.NewParseError("json", path, err.Error(), err)
	}
	p.Path = path
	return p, nil
}

// LoadDir loads every .json preset in a directory. Malformed files are
// skipped and reported, never fatal to the batch; the skipped count is
// returned alongside the presets.
func LoadDir(dir string) ([]*Preset, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, errors.WrapIO("read", dir, err)
	}

	var presets []*Preset
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		p, err := LoadFile(path)
		if err != nil {
			logging.Warn().Err(err).Str("file", path).Msg("Skipping malformed preset file")
			skipped++
			continue
		}
		presets = append(presets, p)
	}
	return presets, skipped, nil
}

// Name returns the preset's name field, falling back to the source filename
// without extension when the field is absent.
func (p *Preset) Name() string {
	if v, ok := p.Fields[FieldName]; ok {
		if s := v.String(); s != "" {
			return s
		}
	}
	return p.baseName()
}

// baseName is the source filename without extension.
func (p *Preset) baseName() string {
	if p.Path == "" {
		return ""
	}
	base := filepath.Base(p.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Get returns the string form of a field, or "" when absent.
func (p *Preset) Get(key string) string {
	if v, ok := p.Fields[key]; ok {
		return v.String()
	}
	return ""
}

// Set stores a scalar field.
func (p *Preset) Set(key string, value any) {
	p.Fields[key] = Scalar(value)
}

// Has reports whether a field is present, regardless of its value.
func (p *Preset) Has(key string) bool {
	_, ok := p.Fields[key]
	return ok
}

// Len returns the preset's key count.
func (p *Preset) Len() int {
	return len(p.Fields)
}

// Inherits returns the declared inheritance reference, or "".
func (p *Preset) Inherits() string {
	return p.Get(FieldInherits)
}

// IsUserAuthored reports whether the originating field marks user authorship.
func (p *Preset) IsUserAuthored() bool {
	return p.Get(FieldFrom) == FromUser
}

// Canonical returns a copy with every non-metadata field in canonical shape
// (scalar values wrapped into single-element sequences).
func (p *Preset) Canonical() *Preset {
	out := New()
	out.Path = p.Path
	for k, v := range p.Fields {
		if IsMetadataKey(k) {
			out.Fields[k] = v
			continue
		}
		out.Fields[k] = v.Canonical()
	}
	return out
}

// Keys returns the preset's field names, sorted.
func (p *Preset) Keys() []string {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalIndent renders the preset as tab-indented JSON with sorted keys.
func (p *Preset) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(p.Fields, "", constants.JSONIndent)
	if err != nil {
		return nil, errors.WrapParse("json", p.Path, err)
	}
	return append(data, '\n'), nil
}
