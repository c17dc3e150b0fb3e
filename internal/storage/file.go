package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrCorruptFile indicates the store file exists but is not a JSON object.
var ErrCorruptFile = errors.New("store file is not valid json")

// FileKV keeps all keys in one JSON object file.
// Writes go to a temporary file in the same directory which is then renamed
// over the original, so a crash never leaves a half-written file behind.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// OpenFile returns a FileKV backed by path. The file is created on first Set.
func OpenFile(path string) (*FileKV, error) {
	if path == "" {
		return nil, fmt.Errorf("file store needs a path")
	}
	return &FileKV{path: path}, nil
}

// Get implements KV.
func (f *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set implements KV. A corrupt file is replaced by one holding only key.
func (f *FileKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.read()
	if errors.Is(err, ErrCorruptFile) {
		log.FromContext(ctx).Warn("overwriting unreadable store file", "path", f.path, "err", err)
		m, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	m[key] = value
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(f.path, append(b, '\n'), 0o600)
}

// Close implements KV.
func (f *FileKV) Close() error { return nil }

func (f *FileKV) read() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	m := map[string]string{}
	if len(b) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptFile, f.path, err)
	}
	return m, nil
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
