// Package remote provides the printer file transport: reading the live
// catalog documents off the device and delivering regenerated ones, over an
// SSH/SFTP channel. Writes are atomic (write-to-temp then rename) so a crash
// mid-write never leaves a corrupt target file on the printer.
package remote

import "context"

// Transport is the remote-document capability the pipeline depends on.
// Implementations open one connection per logical operation; a transport is
// closed before the next one is opened, no pooling.
type Transport interface {
	// Read fetches a remote file. Missing files surface as
	// errors.ErrNotFound; unreachable hosts as errors.ErrPrinterUnavailable.
	Read(ctx context.Context, path string) ([]byte, error)

	// WriteAtomic writes a remote file via a temporary name and rename.
	WriteAtomic(ctx context.Context, path string, data []byte) error

	// Close releases the underlying connection.
	Close() error
}

// Dialer opens a Transport. The sync pipeline takes a Dialer rather than a
// Transport so each remote step gets a fresh connection.
type Dialer func(ctx context.Context) (Transport, error)
