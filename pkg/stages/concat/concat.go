// Package concat implements the lossless concatenation stage.
package concat

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/cropaway/pkg/pipeline"
	"github.com/user/cropaway/pkg/ports"
)

// ErrNoSegments is returned when there is nothing to join.
var ErrNoSegments = errors.New("concat: no segments")

// Stage joins segment files with a stream-copy concat.
type Stage struct {
	transcoder ports.Transcoder
	fs         ports.FileSystem
	sink       ports.DebugSink
	logger     ports.Logger
	tempDir    string
}

// NewStage creates a new concat stage. The manifest is written to tempDir.
func NewStage(transcoder ports.Transcoder, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger, tempDir string) *Stage {
	return &Stage{
		transcoder: transcoder,
		fs:         fs,
		sink:       sink,
		logger:     logger.WithComponent("concat"),
		tempDir:    tempDir,
	}
}

// Execute writes the manifest and joins the segments into in.Output.
func (s *Stage) Execute(ctx context.Context, in pipeline.ConcatInput) (pipeline.ConcatResult, error) {
	result := pipeline.ConcatResult{Output: in.Output}
	if len(in.Segments) == 0 {
		return result, ErrNoSegments
	}

	manifest := Manifest(in.Segments)
	result.ManifestPath = s.fs.TempPath(s.tempDir, "concat", ".txt")
	in.Temp.Add(result.ManifestPath)
	if err := s.fs.WriteFile(result.ManifestPath, manifest); err != nil {
		return result, fmt.Errorf("write manifest: %w", err)
	}
	if s.sink.Enabled() {
		if err := s.sink.SaveManifest(manifest); err != nil {
			s.logger.Warn("Failed to save debug manifest: %v", err)
		}
	}

	s.logger.Debug("Joining %d segments into %s", len(in.Segments), in.Output)
	if err := s.transcoder.Concat(ctx, result.ManifestPath, in.Output); err != nil {
		return result, fmt.Errorf("concat: %w", err)
	}
	return result, nil
}

// Manifest renders a concat demuxer list. Relative paths are made absolute
// because the demuxer resolves them against the manifest's directory.
func Manifest(paths []string) []byte {
	var b strings.Builder
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		b.WriteString("file '")
		b.WriteString(Quote(p))
		b.WriteString("'\n")
	}
	return []byte(b.String())
}

// Quote escapes single quotes for use inside a single-quoted manifest entry.
func Quote(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
