package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.Slot = (*Slot)(nil)

// Slot keeps each key in its own JSON file under a directory. Writes go to a
// temporary file first and are renamed into place so a crash never leaves a
// half-written cart behind.
type Slot struct {
	fs  afero.Fs
	dir string
}

// NewSlot stores slots under dir on the OS filesystem.
func NewSlot(dir string) *Slot {
	return NewSlotFs(afero.NewOsFs(), dir)
}

// NewSlotFs stores slots under dir on the given filesystem.
func NewSlotFs(fsys afero.Fs, dir string) *Slot {
	return &Slot{fs: fsys, dir: dir}
}

// Prepare creates the slot directory so an unusable location is caught at boot.
func (s *Slot) Prepare() error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}
	return nil
}

func (s *Slot) Read(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ports.ErrSlotNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (s *Slot) Write(_ context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace slot: %w", err)
	}
	return nil
}

func (s *Slot) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Slot) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
