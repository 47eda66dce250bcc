package loader

import "context"

// File handlers load EDI files from a given source and clean them up after an
// import run. The interface exists so the importer can read from a local
// gateway drop directory or from an S3 bucket without caring which.
type EDIFileHandler interface {
	// Load EDI files from the given path.
	//
	// Returns metadata for every file whose name parses, and the number of
	// files skipped because the name did not.
	LoadEDIFiles(ctx context.Context, path string) (files []*EDIFileMetadata, skipped int, err error)
	// Read the full content of one EDI file. EDI transactions are decoded
	// from whole-file content, not line by line.
	ReadFile(ctx context.Context, metadata *EDIFileMetadata) (string, error)
	// Clean up files that were successfully imported and deal with the ones
	// that were not.
	CleanupEDIFiles(ctx context.Context, files []*EDIFileMetadata) error
}
