// Package embedded bundles reference snapshots of both catalog documents.
// They are the offline fallback baseline used whenever the printer's live
// copies cannot be read, and may be stale relative to the device.
package embedded

import (
	_ "embed"

	"github.com/agentstation/filasync/pkg/catalog"
	"github.com/agentstation/filasync/pkg/logging"
)

//go:embed material_database.json
var databaseSnapshot []byte

//go:embed material_option.json
var optionsSnapshot []byte

// Snapshots serves the compiled-in fallback documents.
type Snapshots struct{}

// New creates the embedded snapshot source.
func New() Snapshots {
	return Snapshots{}
}

// Database parses the bundled material database snapshot.
func (Snapshots) Database() (*catalog.Database, error) {
	logging.Warn().Msg("Using bundled material database snapshot as baseline")
	return catalog.ParseDatabase(databaseSnapshot)
}

// Options parses the bundled material options snapshot.
func (Snapshots) Options() (*catalog.Options, error) {
	logging.Warn().Msg("Using bundled material options snapshot as baseline")
	return catalog.ParseOptions(optionsSnapshot)
}
