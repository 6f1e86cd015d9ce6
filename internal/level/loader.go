package level

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

// ErrNotFound is returned by LoadByName when no level has the name.
var ErrNotFound = errors.New("level not found")

// Loader reads level descriptors from a directory of *.json files.
type Loader struct {
	FS   fs.FS
	Root string // directory inside FS
}

// NewLoader creates a loader over fsys rooted at root.
func NewLoader(fsys fs.FS, root string) *Loader {
	if root == "" {
		root = "."
	}
	return &Loader{FS: fsys, Root: root}
}

// DirLoader creates a loader over a directory on disk.
func DirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), ".")
}

// List returns the level file names in lexical order.
func (l *Loader) List() ([]string, error) {
	entries, err := fs.ReadDir(l.FS, l.Root)
	if err != nil {
		return nil, fmt.Errorf("read level dir %s: %w", l.Root, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}

// LoadFile parses a single level file relative to Root.
func (l *Loader) LoadFile(name string) (*Descriptor, error) {
	data, err := fs.ReadFile(l.FS, path.Join(l.Root, name))
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return d, nil
}

// LoadAll parses every level file, ordered by level number and then file name.
// The first invalid file aborts the load.
func (l *Loader) LoadAll() ([]*Descriptor, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}
	out := make([]*Descriptor, 0, len(names))
	for _, name := range names {
		d, err := l.LoadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	slices.SortStableFunc(out, func(a, b *Descriptor) int {
		return a.LevelNumber - b.LevelNumber
	})
	return out, nil
}

// LoadByName returns the level whose name or file name (with or without
// extension) matches, case-insensitively.
func (l *Loader) LoadByName(name string) (*Descriptor, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, d := range levels {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	file := name
	if path.Ext(file) == "" {
		file += ".json"
	}
	if d, err := l.LoadFile(file); err == nil {
		return d, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
