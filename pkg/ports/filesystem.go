package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Remove deletes a file. Missing files are not an error.
	Remove(path string) error

	// Rename moves a file, replacing newPath if it exists.
	Rename(oldPath, newPath string) error

	// SameFile reports whether both paths name the same existing file.
	SameFile(a, b string) bool

	// Size returns the size of a file in bytes.
	Size(path string) (int64, error)

	// TempPath returns a new, collision-resistant file path inside dir.
	// The file is not created. An empty dir means the system temp directory.
	TempPath(dir, prefix, ext string) string
}
