// Package summarizer provides summary generation for export results.
package summarizer

import "time"

// Summary contains all data collected during an export.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Source SourceInfo
	Export ExportInfo
	Output OutputInfo

	Segments []SegmentInfo
}

// SourceInfo describes the input video.
type SourceInfo struct {
	Path     string
	Duration float64 // seconds
	Width    int
	Height   int
	Codec    string
	Bitrate  int64 // bits per second
}

// ExportInfo describes how the export was performed.
type ExportInfo struct {
	Mode      string
	Strategy  string
	Keyframes int
	Encoder   string
	Hardware  bool
	Filter    string
	Elapsed   time.Duration
}

// OutputInfo describes the produced file.
type OutputInfo struct {
	Path     string
	FileSize int64
	Width    int
	Height   int
}

// SegmentInfo describes one segment of a segmented export.
type SegmentInfo struct {
	Start float64
	End   float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets source information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithExport sets export information.
func (b *Builder) WithExport(export ExportInfo) *Builder {
	b.summary.Export = export
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// AddSegment appends a segment range.
func (b *Builder) AddSegment(start, end float64) *Builder {
	b.summary.Segments = append(b.summary.Segments, SegmentInfo{Start: start, End: end})
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
