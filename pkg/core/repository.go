package core

import "context"

// RecordSource loads the records held in an input file.
// Implementations return an error matching ErrNotFound when the path is missing
// and one matching ErrRead for anything else that goes wrong while reading.
type RecordSource interface {
	Load(ctx context.Context, path string) ([]Record, error)
}

// RecordSink persists a record sequence to an output path and returns the path written.
type RecordSink interface {
	Write(ctx context.Context, records []Record, path string) (string, error)
}
