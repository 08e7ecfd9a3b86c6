// Package constants provides shared constants used throughout the filasync codebase.
// This includes the preset classification thresholds, identity hash parameters,
// printer file locations, timeouts, and file permissions that must stay consistent
// across the application.
package constants

import "time"

// Preset classification and resolution constants.
const (
	// TruncationKeyThreshold is the key count below which a user preset that
	// declares an inheritance chain is considered truncated and eligible for
	// expansion. Full presets exported by the slicer carry several hundred
	// keys; truncated user overrides carry a few dozen. The threshold matches
	// the slicer's observed export format and must not be "improved".
	TruncationKeyThreshold = 120

	// TemplateSearchMaxDepth bounds the directory walk used to locate system
	// and root template files under the slicer's profile root. Profile trees
	// are at most vendor/family/file deep in every supported slicer layout.
	TemplateSearchMaxDepth = 3
)

// Identity hash parameters. A material id is FNV-1a over "vendor|type|name"
// reduced into [IDOffset, IDOffset+IDRange), rendered as a 5-digit string.
const (
	// IDRange is the modulus applied to the identity hash.
	IDRange = 90000

	// IDOffset is added after reduction so ids never collide with the
	// printer's reserved low id space.
	IDOffset = 10000
)

// Printer file locations and output names.
const (
	// DatabaseFileName is the material database document name, on device and locally.
	DatabaseFileName = "material_database.json"

	// OptionsFileName is the material options document name, on device and locally.
	OptionsFileName = "material_option.json"

	// DefaultRemoteMaterialDir is where the printer firmware keeps both documents.
	DefaultRemoteMaterialDir = "/useremain/app/gk"
)

// Timeout constants define various timeout durations used in the application.
const (
	// SSHDialTimeout is the timeout for establishing a printer connection.
	SSHDialTimeout = 10 * time.Second

	// RemoteOpTimeout is the timeout for a single remote read or write.
	RemoteOpTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x).
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--).
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like printer credentials (rw-------).
	SecureFilePermissions = 0600
)

// Formatting constants.
const (
	// JSONIndent is the indentation used for both output documents. The
	// printer firmware parses tab-indented JSON; this is a bit-exact contract.
	JSONIndent = "\t"

	// BackupTimeFormat is the timestamp layout appended to backup file names.
	BackupTimeFormat = "20060102-150405"

	// DefaultSSHPort is the SSH port used when the printer registry omits one.
	DefaultSSHPort = 22
)
