package layout

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the layouts shipped with the binary in campaign order.
func Builtin() ([]Layout, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("layout: reading builtin layouts: %w", err)
	}

	layouts := make([]Layout, 0, len(entries))
	for _, e := range entries {
		if !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		p := path.Join("builtin", e.Name())
		data, err := builtinFS.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("layout: reading %s: %w", p, err)
		}
		l, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("layout: parsing %s: %w", p, err)
		}
		l.FilePath = p
		layouts = append(layouts, l)
	}
	return layouts, nil
}

// Loader loads layouts from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll walks Root and loads every layout file, ordered by path. Files
// that fail to parse are skipped.
func (l *Loader) LoadAll() ([]Layout, error) {
	var layouts []Layout

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(p)) {
			return nil
		}
		lay, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		layouts = append(layouts, lay)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("layout: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].FilePath < layouts[j].FilePath
	})
	return layouts, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(p string) (Layout, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: reading file %s: %w", p, err)
	}
	lay, err := Parse(data)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: parsing file %s: %w", p, err)
	}
	lay.FilePath = p
	return lay, nil
}

// Find returns the layout with the given id, or the file at id if it names
// one. dir, when set, is searched before the built-in layouts.
func Find(id, dir string) (Layout, error) {
	if isSupportedExtension(filepath.Ext(id)) {
		if _, err := os.Stat(id); err == nil {
			return NewLoader(filepath.Dir(id)).LoadFile(id)
		}
	}

	var candidates []Layout
	if dir != "" {
		fromDir, err := NewLoader(dir).LoadAll()
		if err != nil {
			return Layout{}, err
		}
		candidates = append(candidates, fromDir...)
	}
	builtin, err := Builtin()
	if err != nil {
		return Layout{}, err
	}
	candidates = append(candidates, builtin...)

	for _, l := range candidates {
		if l.ID == id {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("layout: not found: %s", id)
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
