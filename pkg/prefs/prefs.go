package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Preferences holds client-side user preferences persisted to a YAML file.
// A missing file yields defaults; every setter persists immediately.
// All methods are safe for concurrent use.
type Preferences struct {
	mu   sync.RWMutex
	path string
	data file
}

// file is the on-disk representation.
type file struct {
	SoundEnabled bool `yaml:"sound_enabled"`
}

func defaults() file {
	return file{SoundEnabled: true}
}

// Open loads preferences from path, falling back to defaults when the file
// does not exist yet. A file that exists but cannot be read or parsed is an
// error: silently discarding user preferences would be worse than failing.
func Open(path string) (*Preferences, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	p := &Preferences{path: path, data: defaults()}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	if err := yaml.Unmarshal(raw, &p.data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return p, nil
}

// SoundEnabled reports whether the audible cue should play when a new
// notification arrives.
func (p *Preferences) SoundEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.data.SoundEnabled
}

// SetSoundEnabled updates the sound preference and persists it.
func (p *Preferences) SetSoundEnabled(enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.data.SoundEnabled
	p.data.SoundEnabled = enabled
	if err := p.save(); err != nil {
		p.data.SoundEnabled = prev
		return err
	}
	return nil
}

// save writes the file atomically (temp file + rename) so a crash mid-write
// never leaves a truncated preferences file behind.
func (p *Preferences) save() error {
	raw, err := yaml.Marshal(p.data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	if err := os.Rename(tmpName, p.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}
