// Package pipeline wires the sync stages together: discover local presets,
// expand truncated ones through their template chain, derive identities,
// reconcile both catalog documents against the printer's baseline, and
// deliver the regenerated files. The cobra commands are thin wrappers over
// these stages.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/filasync/internal/slicer"
	"github.com/agentstation/filasync/pkg/catalog"
	"github.com/agentstation/filasync/pkg/catalog/embedded"
	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/logging"
	"github.com/agentstation/filasync/pkg/preset"
	"github.com/agentstation/filasync/pkg/reconcile"
	"github.com/agentstation/filasync/pkg/remote"
	"github.com/agentstation/filasync/pkg/resolve"
)

// Options configure a pipeline run. Zero values mean "discover/default".
type Options struct {
	// InputDir overrides the discovered user preset directory.
	InputDir string

	// ProfileDir overrides the discovered system profile root.
	ProfileDir string

	// OutputDir is where expanded presets and the regenerated documents are
	// written locally.
	OutputDir string

	// Force overwrites existing expanded preset files.
	Force bool

	// NoBackup skips the remote backup before delivery.
	NoBackup bool
}

// Summary aggregates per-stage counts for the end-of-run report.
type Summary struct {
	Loaded    int
	Malformed int
	Expanded  int
	Passed    int // complete presets passed through unresolved
	Failed    int // per-preset resolution failures
	Written   int // expanded files written to disk
	Existing  int // expanded files skipped because the destination exists
	NoID      int // presets excluded for unrecoverable identity
	Database  reconcile.Stats
	Options   reconcile.Stats
}

// Log emits the run summary.
func (s *Summary) Log(ctx context.Context) {
	total := s.Database
	total.Add(&s.Options)

	logging.Ctx(ctx).Info().
		Int("loaded", s.Loaded).
		Int("malformed", s.Malformed).
		Int("expanded", s.Expanded).
		Int("passed", s.Passed).
		Int("failed", s.Failed).
		Int("no_identity", s.NoID).
		Object("database", &s.Database).
		Object("options", &s.Options).
		Object("total", &total).
		Msg("Sync summary")
}

// Discover resolves the local directories, honoring overrides.
func Discover(opts Options) (slicer.Paths, error) {
	if opts.InputDir != "" {
		return slicer.Paths{
			UserPresetDir:    opts.InputDir,
			SystemProfileDir: opts.ProfileDir,
		}, nil
	}
	paths, err := slicer.Discover()
	if err != nil {
		return slicer.Paths{}, err
	}
	if opts.ProfileDir != "" {
		paths.SystemProfileDir = opts.ProfileDir
	}
	return paths, nil
}

// Load reads every preset in the user preset directory. Discovering zero
// presets is fatal: there is nothing to synchronize and proceeding would
// stamp a new document version for no reason.
func Load(dir string, summary *Summary) ([]*preset.Preset, error) {
	presets, malformed, err := preset.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	summary.Loaded = len(presets)
	summary.Malformed = malformed
	if len(presets) == 0 {
		return nil, errors.ErrNoPresets
	}
	return presets, nil
}

// Expand resolves truncated presets through their template chain and writes
// the expanded documents. Per-preset failures are reported and skipped; the
// failing preset is excluded from the returned set.
func Expand(ctx context.Context, presets []*preset.Preset, profileDir, outDir string, force bool, summary *Summary) []*preset.Preset {
	resolver := resolve.New(
		resolve.FileLookup(profileDir),
		resolve.FileLookup(profileDir),
	)

	out := make([]*preset.Preset, 0, len(presets))
	for _, p := range presets {
		log := logging.Ctx(logging.WithPreset(ctx, p.Name()))

		resolved, skipped, err := resolver.Resolve(p)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping unresolvable preset")
			summary.Failed++
			continue
		}
		if skipped {
			summary.Passed++
			out = append(out, resolved)
			continue
		}
		summary.Expanded++

		written, err := resolve.Write(resolved, outDir, force)
		if err != nil {
			log.Warn().Err(err).Msg("Could not write expanded preset")
		} else if written {
			summary.Written++
		} else {
			summary.Existing++
		}
		out = append(out, resolved)
	}
	return out
}

// EnsureIdentities guarantees every preset entering reconciliation carries a
// valid Notes record, synthesizing where needed and excluding presets whose
// identity cannot be recovered.
func EnsureIdentities(ctx context.Context, presets []*preset.Preset, summary *Summary) []*preset.Preset {
	out := make([]*preset.Preset, 0, len(presets))
	for _, p := range presets {
		if _, err := preset.EnsureNotes(p); err != nil {
			logging.Ctx(logging.WithPreset(ctx, p.Name())).Warn().Err(err).Msg("Excluding preset without identity")
			summary.NoID++
			continue
		}
		out = append(out, p)
	}
	return out
}

// BuildDocuments reconciles both catalog documents and writes them to the
// output directory, database first, then options. Each baseline fetch opens
// its own connection; a nil dialer forces the bundled snapshots.
func BuildDocuments(ctx context.Context, dial remote.Dialer, printer slicer.Printer, presets []*preset.Preset, outDir string, summary *Summary) error {
	snapshots := embedded.New()

	dbCtx := logging.WithDocument(ctx, constants.DatabaseFileName)
	db, err := catalog.BaselineDatabase(dbCtx, dial, printer.DatabasePath(), snapshots)
	if err != nil {
		return err
	}
	updatedDB, dbStats, err := reconcile.Database(db, presets)
	if err != nil {
		return err
	}
	summary.Database = *dbStats
	if err := writeDocument(dbCtx, outDir, constants.DatabaseFileName, updatedDB.MarshalIndent); err != nil {
		return err
	}

	optCtx := logging.WithDocument(ctx, constants.OptionsFileName)
	opts, err := catalog.BaselineOptions(optCtx, dial, printer.OptionsPath(), snapshots)
	if err != nil {
		return err
	}
	updatedOpts, optStats, err := reconcile.Options(opts, presets)
	if err != nil {
		return err
	}
	summary.Options = *optStats
	return writeDocument(optCtx, outDir, constants.OptionsFileName, updatedOpts.MarshalIndent)
}

// Push delivers the regenerated documents to the printer, backing up the
// existing remote files first unless backups are disabled. Missing local
// outputs are fatal: there is nothing to deliver.
func Push(ctx context.Context, dial remote.Dialer, printer slicer.Printer, outDir string, noBackup bool) error {
	files := []struct {
		local  string
		remote string
	}{
		{filepath.Join(outDir, constants.DatabaseFileName), printer.DatabasePath()},
		{filepath.Join(outDir, constants.OptionsFileName), printer.OptionsPath()},
	}

	for _, f := range files {
		if _, err := os.Stat(f.local); err != nil {
			return errors.NewNotFoundError("local output", f.local)
		}
	}

	t, err := dial(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := t.Close(); err != nil {
			logging.Ctx(ctx).Debug().Err(err).Msg("Closing printer connection failed")
		}
	}()

	if !noBackup {
		backupDir := filepath.Join(outDir, "backup")
		for _, f := range files {
			if err := remote.Backup(ctx, t, f.remote, backupDir); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("path", f.remote).Msg("Backup failed; continuing")
			}
		}
	}

	for _, f := range files {
		data, err := os.ReadFile(f.local)
		if err != nil {
			return errors.WrapIO("read", f.local, err)
		}
		if err := t.WriteAtomic(ctx, f.remote, data); err != nil {
			return err
		}
		logging.Ctx(ctx).Info().Str("local", f.local).Str("remote", f.remote).Msg("Delivered document")
	}
	return nil
}

// writeDocument renders and writes one catalog document locally.
func writeDocument(ctx context.Context, dir, name string, marshal func() ([]byte, error)) error {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	data, err := marshal()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	logging.Ctx(ctx).Info().Str("file", path).Msg("Wrote catalog document")
	return nil
}
