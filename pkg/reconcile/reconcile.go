// Package reconcile merges resolved filament presets into the printer's
// catalog documents. Each preset either updates the existing catalog entry
// matching its derived id or is appended as a new entry; entries not matched
// by any preset are left untouched. The operation is idempotent: running it
// twice with the same inputs produces the same list contents.
package reconcile

import (
	"strconv"
	"time"

	"github.com/agentstation/filasync/pkg/catalog"
	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/logging"
	"github.com/agentstation/filasync/pkg/preset"
)

// now is swapped out by tests that pin the version stamp.
var now = time.Now

// Database reconciles presets into a copy of the baseline material database.
// Presets without a usable identity are skipped and counted; the baseline
// itself is never mutated.
func Database(baseline *catalog.Database, presets []*preset.Preset) (*catalog.Database, *Stats, error) {
	updated, err := baseline.Clone()
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{}
	list := updated.List()

	for _, p := range presets {
		notes, err := identity(p)
		if err != nil {
			logging.Warn().Err(err).Str("preset", p.Name()).Msg("Skipping preset without identity")
			stats.Skipped++
			continue
		}

		m, err := buildMaterial(p, notes)
		if err != nil {
			logging.Warn().Err(err).Str("preset", p.Name()).Msg("Skipping preset")
			stats.Skipped++
			continue
		}

		if i := indexByID(list, notes.ID); i >= 0 {
			list[i] = m
			stats.Updated++
		} else {
			list = append(list, m)
			stats.Inserted++
		}
		stats.Built++
	}

	updated.SetList(list)
	updated.Stamp(len(list), strconv.FormatInt(now().Unix(), 10))
	return updated, stats, nil
}

// Options reconciles presets into a copy of the baseline options document:
// a pure key overwrite of vendor[type] = name per preset.
func Options(baseline *catalog.Options, presets []*preset.Preset) (*catalog.Options, *Stats, error) {
	updated, err := baseline.Clone()
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{}
	for _, p := range presets {
		notes, err := identity(p)
		if err != nil {
			logging.Warn().Err(err).Str("preset", p.Name()).Msg("Skipping preset without identity")
			stats.Skipped++
			continue
		}
		updated.Set(notes.Vendor, notes.Type, notes.Name)
		stats.Built++
	}
	return updated, stats, nil
}

// identity returns the preset's Notes, requiring them to already be present
// and valid. Synthesis happens earlier in the pipeline; by the time a preset
// reaches reconciliation a missing identity is a per-item defect.
func identity(p *preset.Preset) (preset.Notes, error) {
	v, ok := p.Fields[preset.FieldNotes]
	if !ok {
		return preset.Notes{}, errors.NewIdentityError(p.Name(), "missing notes", nil)
	}
	n, err := preset.ParseNotes(v.String())
	if err != nil {
		return preset.Notes{}, errors.NewIdentityError(p.Name(), "unparseable notes", err)
	}
	if !n.Valid() {
		return preset.Notes{}, errors.NewIdentityError(p.Name(), "incomplete notes", nil)
	}
	return n, nil
}

// buildMaterial clones the fixed record template, overlays every preset
// field in canonical shape, then forcibly overwrites the identity-bearing
// fields so the derived identity is authoritative regardless of what the raw
// preset contained.
func buildMaterial(p *preset.Preset, notes preset.Notes) (catalog.Material, error) {
	m := catalog.NewMaterial()

	// Unlike preset files, the database wraps every field, metadata included.
	for k, v := range p.Fields {
		m[k] = v.Canonical().Interface()
	}

	embedded, err := notes.Marshal()
	if err != nil {
		return nil, errors.NewIdentityError(p.Name(), "cannot serialize notes", err)
	}

	m["id"] = wrap(notes.ID)
	m[preset.FieldName] = wrap(notes.Name)
	m["filament_id"] = wrap(notes.ID)
	m[preset.FieldVendor] = wrap(notes.Vendor)
	m[preset.FieldType] = wrap(notes.Type)
	m[preset.FieldSettingsID] = wrap(notes.Name)
	m[preset.FieldFrom] = wrap(preset.FromUser)
	m["is_custom_defined"] = wrap("0")
	m[preset.FieldNotes] = wrap(embedded)

	return m, nil
}

// wrap applies the single-element-sequence value convention.
func wrap(s string) []any {
	return []any{s}
}

// indexByID finds the first entry with the given id, or -1. The list is not
// assumed sorted; exact string equality, first match wins.
func indexByID(list []catalog.Material, id string) int {
	for i, m := range list {
		if m.ID() == id {
			return i
		}
	}
	return -1
}
