// Package levels bundles the built-in hex maps and navigation scenarios and
// loads them from disk or from the embedded copies.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/hexnav/hexgrid"
)

//go:embed maps/*.txt
var MapsFS embed.FS

//go:embed scenarios/*.yaml
var ScenariosFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// DiskRoot is checked before the embedded files so edited maps take effect
// without a rebuild.
var DiskRoot = "levels"

// WatchDirs returns the on-disk level directories that exist, plus the
// directories of any extra files given.
func WatchDirs(extra ...string) []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	for _, sub := range []string{"maps", "scenarios", "scripts"} {
		add(filepath.Join(DiskRoot, sub))
	}
	for _, f := range extra {
		if f != "" {
			add(filepath.Dir(f))
		}
	}
	return dirs
}

// MapNames lists the embedded maps without extension.
func MapNames() []string {
	return names(MapsFS, "maps", ".txt")
}

// ScenarioNames lists the embedded scenarios without extension.
func ScenarioNames() []string {
	return names(ScenariosFS, "scenarios", ".yaml")
}

// LoadMap parses a map by name or path. A name containing a path separator
// or ending in .txt is read from disk; anything else is looked up under
// DiskRoot/maps and then in the embedded maps.
func LoadMap(name string) (*hexgrid.Grid, error) {
	data, err := readMap(name)
	if err != nil {
		return nil, err
	}
	g, err := hexgrid.ParseMapString(string(data))
	if err != nil {
		return nil, fmt.Errorf("levels: parse map %s: %w", name, err)
	}
	return g, nil
}

// MapPath returns the on-disk path LoadMap would read for name, if any.
func MapPath(name string) (string, bool) {
	if isPath(name) {
		return name, true
	}
	p := filepath.Join(DiskRoot, "maps", cleanName(name, ".txt"))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return "", false
}

// LoadScript returns a route script by name or path, preferring DiskRoot.
func LoadScript(name string) ([]byte, error) {
	if strings.ContainsAny(name, `/\`) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("levels: read script: %w", err)
		}
		return data, nil
	}
	clean := cleanName(name, ".tengo")
	if data, err := os.ReadFile(filepath.Join(DiskRoot, "scripts", clean)); err == nil {
		return data, nil
	}
	data, err := fs.ReadFile(ScriptsFS, path.Join("scripts", clean))
	if err != nil {
		return nil, fmt.Errorf("levels: read script %s: %w", name, err)
	}
	return data, nil
}

func readMap(name string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("levels: empty map name")
	}
	if p, ok := MapPath(name); ok {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("levels: read map: %w", err)
		}
		return data, nil
	}
	data, err := fs.ReadFile(MapsFS, path.Join("maps", cleanName(name, ".txt")))
	if err != nil {
		return nil, fmt.Errorf("levels: read map %s: %w", name, err)
	}
	return data, nil
}

func isPath(name string) bool {
	return strings.ContainsAny(name, `/\`) || strings.HasSuffix(strings.ToLower(name), ".txt")
}

func cleanName(name, ext string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	s = path.Base(s)
	if !strings.HasSuffix(s, ext) {
		s += ext
	}
	return s
}

func names(fsys fs.FS, dir, ext string) []string {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ext); ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
