package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"
	"sync"
)

// FileSystem is the storage a session opens and saves files through.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// Open returns a reader for the file at path.
	Open(path string) (io.ReadCloser, error)
	// Create truncates or creates the file at path for writing.
	Create(path string) (io.WriteCloser, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements FileSystem.
func (OSFS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Create implements FileSystem.
func (OSFS) Create(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// MemFS is an in-memory FileSystem. The zero value is ready to use.
type MemFS struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemFS creates a MemFS holding a copy of files.
func NewMemFS(files map[string][]byte) *MemFS {
	m := &MemFS{files: make(map[string][]byte, len(files))}
	for name, data := range files {
		m.files[name] = bytes.Clone(data)
	}
	return m
}

// Open implements FileSystem.
func (m *MemFS) Open(path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Create implements FileSystem. The file content becomes visible when the
// writer is closed.
func (m *MemFS) Create(path string) (io.WriteCloser, error) {
	if path == "" {
		return nil, &fs.PathError{Op: "create", Path: path, Err: fs.ErrInvalid}
	}
	return &memFile{fs: m, path: path}, nil
}

// ReadFile returns a copy of the file at path.
func (m *MemFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return bytes.Clone(data), nil
}

// Files returns the sorted names of all files.
func (m *MemFS) Files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.files))
}

type memFile struct {
	fs     *MemFS
	path   string
	buf    bytes.Buffer
	closed bool
}

var errClosed = errors.New("file already closed")

func (f *memFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, fmt.Errorf("write %s: %w", f.path, errClosed)
	}
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	if f.closed {
		return fmt.Errorf("close %s: %w", f.path, errClosed)
	}
	f.closed = true

	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	if f.fs.files == nil {
		f.fs.files = make(map[string][]byte)
	}
	f.fs.files[f.path] = f.buf.Bytes()
	return nil
}
