package mocks

import (
	"image"
	"sync"

	"github.com/user/cropaway/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	PlanJSON []byte
	Manifest []byte
	Masks    map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Masks:   make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SavePlanJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlanJSON = data
	return nil
}

func (m *DebugSink) SaveMask(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Masks[index] = img
	return nil
}

func (m *DebugSink) SaveManifest(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Manifest = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
