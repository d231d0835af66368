package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

type fileLayout struct {
	Name string     `toml:"name"`
	Rows [][]string `toml:"rows"`
}

// LoadFile reads a layout from a TOML file:
//
//	name = "my-layout"
//	rows = [["1", "2"], ["Q", "W"]]
//
// When name is omitted the file's base name is used.
func LoadFile(path string) (*Layout, error) {
	var fl fileLayout
	if _, err := toml.DecodeFile(path, &fl); err != nil {
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}
	if strings.TrimSpace(fl.Name) == "" {
		fl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	l, err := New(fl.Name, fl.Rows)
	if err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return l, nil
}

// Resolve returns the built-in layout called name, or loads name.toml from dir.
func Resolve(name, dir string) (*Layout, error) {
	if l, ok := Builtin(name); ok {
		return l, nil
	}
	path := filepath.Join(dir, name+".toml")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("unknown layout %q (looked in %s)", name, dir)
		}
		return nil, fmt.Errorf("failed to stat layout: %w", err)
	}
	return LoadFile(path)
}

// ListCustom returns the names of layout files found in dir.
func ListCustom(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read layout directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}
