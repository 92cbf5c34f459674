// Package jsonstore keeps slots as JSON files on disk.
// One file per key, human-readable, portable. No locking; fine for a local single-user tool.
package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/tada/internal/store"
)

// Slot stores each key in <Dir>/<key>.json.
type Slot struct {
	Dir string
}

func New(dir string) *Slot {
	return &Slot{Dir: dir}
}

// Path is where the value for key lives.
func (s *Slot) Path(key string) string {
	return filepath.Join(s.Dir, fileName(key))
}

func (s *Slot) Get(key string) ([]byte, error) {
	b, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Set replaces the file through a temp file and rename so readers never see half a list.
func (s *Slot) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, ".tmp-"+fileName(key)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// fileName maps a key onto a safe file name, e.g. "tada:todos:v1" -> "tada_todos_v1.json".
func fileName(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			c = '_'
		}
		b.WriteByte(c)
	}
	name := strings.Trim(b.String(), ".")
	if name == "" {
		name = "slot"
	}
	return name + ".json"
}
