package batch

import "context"

// Store port (interface for the per-batch file log)
type Store interface {
	// Save persists one encoded batch under the given filename and
	// returns the path it was written to. An existing file with the
	// same name is overwritten.
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// Archiver port (interface for mirroring batch files to object storage)
type Archiver interface {
	// Archive uploads one encoded batch and returns its location.
	Archive(ctx context.Context, name string, data []byte) (string, error)
}
