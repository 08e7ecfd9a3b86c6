// Package resolve reconstructs fully-populated filament presets from
// truncated user overrides by composing the template-inheritance chain:
// root template, then system template, then the user's sparse edits.
package resolve

import (
	"os"
	"path/filepath"

	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/logging"
	"github.com/agentstation/filasync/pkg/preset"
)

// Lookup locates a template preset by its declared name. A nil preset with a
// nil error means the template simply does not exist.
type Lookup func(name string) (*preset.Preset, error)

// Resolver expands truncated user presets against system and root templates.
type Resolver struct {
	// System locates the intermediate vendor/hardware template named by the
	// user preset's inheritance reference.
	System Lookup

	// Root locates the base material class named by the system template's
	// own inheritance reference.
	Root Lookup

	// Threshold is the key count separating truncated presets from complete
	// ones. Zero means constants.TruncationKeyThreshold.
	Threshold int
}

// New creates a Resolver over the given template lookups.
func New(system, root Lookup) *Resolver {
	return &Resolver{System: system, Root: root}
}

func (r *Resolver) threshold() int {
	if r.Threshold > 0 {
		return r.Threshold
	}
	return constants.TruncationKeyThreshold
}

// Truncated reports whether a preset is eligible for expansion: it declares
// an inheritance reference and a base-template reference, it is
// user-authored, and its key count is below the completeness threshold.
// The exact field combination matches the slicer's export format and is
// deliberately not generalized.
func (r *Resolver) Truncated(p *preset.Preset) bool {
	return p.Inherits() != "" &&
		p.Has(preset.FieldBaseID) &&
		p.IsUserAuthored() &&
		p.Len() < r.threshold()
}

// Resolve reconstructs a full preset from a truncated user override.
// Presets that fail the truncation classification are passed through
// unresolved with skipped=true. A missing system template is a per-preset
// failure; a missing root template degrades to an empty root layer with a
// warning.
func (r *Resolver) Resolve(p *preset.Preset) (resolved *preset.Preset, skipped bool, err error) {
	if !r.Truncated(p) {
		return p, true, nil
	}

	systemName := p.Inherits()
	system, err := r.System(systemName)
	if err != nil {
		return nil, false, errors.NewResolveError(p.Name(), systemName, "system template lookup failed", err)
	}
	if system == nil {
		return nil, false, errors.NewResolveError(p.Name(), systemName, "system template not found", nil)
	}

	rootName := system.Inherits()
	var root *preset.Preset
	if rootName != "" {
		root, err = r.Root(rootName)
		if err != nil || root == nil {
			logging.Warn().
				Str("preset", p.Name()).
				Str("template", rootName).
				Msg("Root template unavailable; expanding without root layer")
			root = nil
		}
	}

	merged := merge(root, system, p)

	// A complete preset references its base material class directly, not
	// the intermediate system template.
	if rootName != "" {
		merged.Set(preset.FieldInherits, rootName)
	}
	if !merged.Has(preset.FieldName) || merged.Get(preset.FieldName) == "" {
		merged.Set(preset.FieldName, p.Name())
	}

	if merged.Len() < r.threshold() {
		logging.Warn().
			Str("preset", merged.Name()).
			Int("key_count", merged.Len()).
			Msg("Expanded preset is still small; expansion likely incomplete")
	}

	return merged, false, nil
}

// merge composes the canonicalized layers in strict priority order: root
// fields first, then system fields overwrite same keys, then user fields
// overwrite same keys.
func merge(root, system, user *preset.Preset) *preset.Preset {
	out := preset.New()
	out.Path = user.Path

	for _, layer := range []*preset.Preset{root, system, user} {
		if layer == nil {
			continue
		}
		for k, v := range layer.Canonical().Fields {
			out.Fields[k] = v
		}
	}
	return out
}

// Write persists a resolved preset under dir as <name>.json. An existing
// destination is left untouched unless force is set; the return reports
// whether the file was written.
func Write(p *preset.Preset, dir string, force bool) (bool, error) {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return false, errors.WrapIO("create", dir, err)
	}

	path := filepath.Join(dir, p.Name()+".json")
	if _, err := os.Stat(path); err == nil && !force {
		logging.Debug().Str("file", path).Msg("Destination exists; not overwriting without force")
		return false, nil
	}

	data, err := p.MarshalIndent()
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return false, errors.WrapIO("write", path, err)
	}
	return true, nil
}
