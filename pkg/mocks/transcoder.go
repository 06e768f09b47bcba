package mocks

import (
	"context"
	"sync"

	"github.com/user/cropaway/pkg/ports"
)

// Transcoder is a mock implementation of ports.Transcoder.
// Without overrides, Transcode reports half and full progress and writes a
// placeholder output file when FS is set.
type Transcoder struct {
	mu sync.Mutex

	FS *FileSystem

	TranscodeFunc func(ctx context.Context, job ports.TranscodeJob, progress ports.ProgressFunc) error
	ConcatFunc    func(ctx context.Context, manifestPath, output string) error
	ProbeFunc     func(ctx context.Context, name string) error

	// Recorded calls for verification
	TranscodeCalls []ports.TranscodeJob
	ConcatCalls    []ConcatCall
	ProbeCalls     []string
}

// ConcatCall records a call to Concat.
type ConcatCall struct {
	ManifestPath string
	Output       string
	Manifest     []byte // manifest contents at call time, when FS is set
}

func (m *Transcoder) Transcode(ctx context.Context, job ports.TranscodeJob, progress ports.ProgressFunc) error {
	m.mu.Lock()
	m.TranscodeCalls = append(m.TranscodeCalls, job)
	m.mu.Unlock()
	if m.TranscodeFunc != nil {
		return m.TranscodeFunc(ctx, job, progress)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if progress != nil {
		progress(0.5)
		progress(1)
	}
	if m.FS != nil {
		return m.FS.WriteFile(job.Output, []byte("video"))
	}
	return nil
}

func (m *Transcoder) Concat(ctx context.Context, manifestPath, output string) error {
	call := ConcatCall{ManifestPath: manifestPath, Output: output}
	if m.FS != nil {
		call.Manifest, _ = m.FS.GetFile(manifestPath)
	}
	m.mu.Lock()
	m.ConcatCalls = append(m.ConcatCalls, call)
	m.mu.Unlock()
	if m.ConcatFunc != nil {
		return m.ConcatFunc(ctx, manifestPath, output)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.FS != nil {
		return m.FS.WriteFile(output, []byte("joined"))
	}
	return nil
}

func (m *Transcoder) ProbeEncoder(ctx context.Context, name string) error {
	m.mu.Lock()
	m.ProbeCalls = append(m.ProbeCalls, name)
	m.mu.Unlock()
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, name)
	}
	return nil
}

var _ ports.Transcoder = (*Transcoder)(nil)
