package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePlanJSON saves the export plan (path, segments, filters) as JSON.
	SavePlanJSON(data []byte) error

	// SaveMask saves the rendered mask of a segment.
	SaveMask(index int, img image.Image) error

	// SaveManifest saves the concat manifest.
	SaveManifest(data []byte) error
}
