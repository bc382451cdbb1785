// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/mp3"
)

// MockFile is an in-memory audio file that counts saves instead of writing to disk.
type MockFile struct {
	*editor.Record

	mu      sync.Mutex
	saves   int
	saveErr error
}

// NewMockFile creates an ID3v2-shaped MockFile at path.
func NewMockFile(path string) *MockFile {
	return &MockFile{Record: editor.NewRecord(path, editor.FamilyID3v2)}
}

// NewFailingMockFile creates a MockFile whose Save always returns err.
func NewFailingMockFile(path string, err error) *MockFile {
	f := NewMockFile(path)
	f.saveErr = err
	return f
}

// Save records the call and clears the dirty flag.
func (m *MockFile) Save(opts ...mp3.Option) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.MarkClean()
	return nil
}

// Saves returns how many times Save was called.
func (m *MockFile) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
