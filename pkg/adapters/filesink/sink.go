// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/cropaway/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.MaskRenderer
}

// New creates a new FileSink. renderer encodes masks as PNG.
func New(baseDir string, fs ports.FileSystem, renderer ports.MaskRenderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SavePlanJSON saves the export plan as JSON.
func (s *Sink) SavePlanJSON(data []byte) error {
	return s.write("plan.json", data)
}

// SaveManifest saves the concat manifest.
func (s *Sink) SaveManifest(data []byte) error {
	return s.write("concat.txt", data)
}

// SaveMask saves the rendered mask of a segment.
func (s *Sink) SaveMask(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "masks")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode mask: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("mask-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

func (s *Sink) write(name string, data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
