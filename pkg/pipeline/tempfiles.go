package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/user/cropaway/pkg/ports"
)

// TempFiles tracks temporary files owned by one export.
// Paths are registered before they are written so a failure at any point
// leaves nothing behind after Cleanup.
type TempFiles struct {
	mu    sync.Mutex
	paths []string
}

// Add registers a path for cleanup. A nil TempFiles ignores the call.
func (t *TempFiles) Add(path string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paths = append(t.paths, path)
}

// Paths returns the registered paths in registration order.
func (t *TempFiles) Paths() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.paths...)
}

// Cleanup removes every registered file, newest first, and forgets them.
// All removals are attempted even when some fail.
func (t *TempFiles) Cleanup(fs ports.FileSystem) error {
	t.mu.Lock()
	paths := t.paths
	t.paths = nil
	t.mu.Unlock()

	var errs []error
	for i := len(paths) - 1; i >= 0; i-- {
		if err := fs.Remove(paths[i]); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", paths[i], err))
		}
	}
	return errors.Join(errs...)
}
