package orchestrator

import "errors"

var (
	// ErrCancelled is returned when the export was cancelled by the caller.
	ErrCancelled = errors.New("export cancelled")

	// ErrNoSegmentsProduced is returned when segmentation yields nothing to export.
	ErrNoSegmentsProduced = errors.New("no segments produced")

	// ErrNoSource is returned when the request names no input or output.
	ErrNoSource = errors.New("source and output paths are required")

	// ErrOutputIsSource is returned when the output path names the source file.
	ErrOutputIsSource = errors.New("output would overwrite the source")
)
