package catalog

import (
	"context"

	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/logging"
	"github.com/agentstation/filasync/pkg/remote"
)

// Snapshots supplies the bundled fallback documents used when the printer's
// live copies cannot be read. The embedded subpackage provides the standard
// implementation.
type Snapshots interface {
	Database() (*Database, error)
	Options() (*Options, error)
}

// BaselineDatabase fetches the printer's live material database, falling
// back to the bundled snapshot on any failure (connection, missing file,
// parse). The operation degrades to offline-capable but potentially stale.
func BaselineDatabase(ctx context.Context, dial remote.Dialer, path string, fallback Snapshots) (*Database, error) {
	if data, ok := readRemote(ctx, dial, path); ok {
		db, err := ParseDatabase(data)
		if err == nil {
			logging.Ctx(ctx).Info().Str("path", path).Msg("Using printer's live material database as baseline")
			return db, nil
		}
		logging.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("Remote material database unusable; falling back to bundled snapshot")
	}
	return fallback.Database()
}

// BaselineOptions is BaselineDatabase's counterpart for the options document.
func BaselineOptions(ctx context.Context, dial remote.Dialer, path string, fallback Snapshots) (*Options, error) {
	if data, ok := readRemote(ctx, dial, path); ok {
		opts, err := ParseOptions(data)
		if err == nil {
			logging.Ctx(ctx).Info().Str("path", path).Msg("Using printer's live material options as baseline")
			return opts, nil
		}
		logging.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("Remote material options unusable; falling back to bundled snapshot")
	}
	return fallback.Options()
}

// readRemote performs one connect-read-close cycle against the printer.
func readRemote(ctx context.Context, dial remote.Dialer, path string) ([]byte, bool) {
	if dial == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RemoteOpTimeout)
	defer cancel()

	log := logging.Ctx(ctx)

	t, err := dial(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Printer unreachable; falling back to bundled snapshot")
		return nil, false
	}
	defer func() {
		if err := t.Close(); err != nil {
			log.Debug().Err(err).Msg("Closing printer connection failed")
		}
	}()

	data, err := t.Read(ctx, path)
	if err != nil {
		if errors.IsTimeout(err) {
			log.Warn().Str("path", path).Msg("Remote read timed out; falling back to bundled snapshot")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("Remote read failed; falling back to bundled snapshot")
		}
		return nil, false
	}
	return data, true
}
