package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot stores a slot as <Dir>/<Name>.json.
// No locking; fine for a local single-user tool.
type FileSlot struct {
	Dir  string
	Name string
}

// NewFileSlot returns a file-backed slot.
func NewFileSlot(dir, name string) *FileSlot {
	return &FileSlot{Dir: dir, Name: name}
}

// Path is the file backing the slot.
func (s *FileSlot) Path() string {
	return filepath.Join(s.Dir, s.Name+".json")
}

func (s *FileSlot) Read() ([]byte, error) {
	b, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Write replaces the slot file atomically (temp file + rename).
func (s *FileSlot) Write(b []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, "."+s.Name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// MemorySlot keeps the slot in memory. Used for --ephemeral runs and tests.
type MemorySlot struct {
	data    []byte
	written bool

	// FailWrites makes every Write return this error.
	FailWrites error
	// Writes counts successful writes.
	Writes int
}

// NewMemorySlot returns a slot pre-filled with content, or an unwritten
// slot when content is nil.
func NewMemorySlot(content []byte) *MemorySlot {
	m := &MemorySlot{}
	if content != nil {
		m.data = append([]byte(nil), content...)
		m.written = true
	}
	return m
}

func (m *MemorySlot) Read() ([]byte, error) {
	if !m.written {
		return nil, ErrEmpty
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemorySlot) Write(b []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data = append([]byte(nil), b...)
	m.written = true
	m.Writes++
	return nil
}

// Bytes returns the current slot content, nil if never written.
func (m *MemorySlot) Bytes() []byte {
	if !m.written {
		return nil
	}
	return append([]byte(nil), m.data...)
}
