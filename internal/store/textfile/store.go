// Package textfile persists todo lists as plain text files, one item per line.
package textfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/colonyops/todonext/internal/core/todolist"
)

// Store reads and writes a single todo file.
type Store struct {
	path string
	opts todolist.Options
	log  zerolog.Logger
}

// New creates a Store for the file at path.
func New(path string, opts todolist.Options, log zerolog.Logger) *Store {
	return &Store{path: path, opts: opts, log: log}
}

// Path returns the file path.
func (s *Store) Path() string { return s.path }

// Load reads the file into a list. A missing file yields an empty list.
func (s *Store) Load() (*todolist.List, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug().Str("path", s.path).Msg("todo file does not exist, starting empty")
			return todolist.New(s.opts, s.log), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	l, err := todolist.Parse(bytes.NewReader(data), s.opts, s.log)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	s.log.Debug().Str("path", s.path).Int("items", l.Len()).Msg("todo list loaded")
	return l, nil
}

// Save replaces the file with the list contents atomically and marks the list
// clean.
func (s *Store) Save(l *todolist.List) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := l.WriteTo(&buf); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	l.MarkClean()
	s.log.Info().Str("path", s.path).Int("items", l.Len()).Msg("todo list written")
	return nil
}
