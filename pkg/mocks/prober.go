package mocks

import "github.com/user/cropaway/pkg/ports"

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	Info      ports.MediaInfo
	ProbeFunc func(path string) (ports.MediaInfo, error)

	ProbedPaths []string
}

func (m *MediaProber) Probe(path string) (ports.MediaInfo, error) {
	m.ProbedPaths = append(m.ProbedPaths, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return m.Info, nil
}

var _ ports.MediaProber = (*MediaProber)(nil)
