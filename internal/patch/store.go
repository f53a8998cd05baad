package patch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/SirSobhan0/lsdsynth/internal/synth"
)

// Ext is appended to patch names to form file names.
const Ext = ".inst"

var (
	// ErrExists is returned by Save when the name is taken; patches are
	// never overwritten.
	ErrExists = errors.New("patch already exists")
	// ErrName is returned for empty names or names containing a path.
	ErrName = errors.New("invalid patch name")
)

// Store keeps patches as files in a directory.
type Store struct {
	Dir string
}

func (s Store) path(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), Ext)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%q: %w", name, ErrName)
	}
	return filepath.Join(s.Dir, name+Ext), nil
}

// Save writes in under name.
func (s Store) Save(name string, in synth.Instrument) (err error) {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", name, ErrExists)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("save %s: %w", name, cerr)
		}
	}()

	if err := Encode(f, in); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Load reads the patch called name.
func (s Store) Load(name string) (synth.Instrument, error) {
	p, err := s.path(name)
	if err != nil {
		return synth.Instrument{}, err
	}
	f, err := os.Open(p)
	if err != nil {
		return synth.Instrument{}, fmt.Errorf("load %s: %w", name, err)
	}
	defer f.Close()

	in, err := Decode(f)
	if err != nil {
		return synth.Instrument{}, fmt.Errorf("load %s: %w", name, err)
	}
	return in, nil
}

// List returns the names of the stored patches, sorted.
func (s Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}
