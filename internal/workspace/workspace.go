// Package workspace находит манифесты участников Cargo workspace.
//
// Участники берутся из [workspace].members (с поддержкой glob), затем
// отфильтровываются по [workspace].exclude. Файлы среди совпадений пропускаются:
// участник всегда каталог с Cargo.toml.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name of a crate manifest.
const ManifestName = "Cargo.toml"

// ErrNotFound is returned when the root is neither a file nor a directory.
var ErrNotFound = errors.New("not a file or directory")

type manifest struct {
	Workspace *struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
	} `toml:"workspace"`
}

// Members decodes the member and exclude patterns of a root manifest.
// A manifest without a [workspace] table has no members. A leading byte
// order mark is skipped.
func Members(src []byte) (members, exclude []string, err error) {
	var m manifest
	if _, err := toml.Decode(strings.TrimPrefix(string(src), "\uFEFF"), &m); err != nil {
		return nil, nil, err
	}
	if m.Workspace == nil {
		return nil, nil, nil
	}
	return m.Workspace.Members, m.Workspace.Exclude, nil
}

// ManifestPath maps a directory to its Cargo.toml and keeps file paths.
func ManifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("item %q: %w", path, ErrNotFound)
		}
		return "", err
	}
	if info.IsDir() {
		return filepath.Join(path, ManifestName), nil
	}
	return path, nil
}

// Discover returns the member directories of the workspace rooted at root
// (a directory or a manifest file), in pattern order.
func Discover(root string) ([]string, error) {
	path, err := ManifestPath(root)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("no file found at %s: %w", path, err)
	}
	include, exclude, err := Members(src)
	if err != nil {
		return nil, fmt.Errorf("read workspace of %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	members, err := Expand(dir, include)
	if err != nil {
		return nil, err
	}
	excluded, err := Expand(dir, exclude)
	if err != nil {
		return nil, err
	}
	return Filter(dropFiles(members), excluded), nil
}

// Expand resolves patterns relative to dir. Patterns with '*' or '?' are
// globbed; others are joined as is, whether or not they exist.
func Expand(dir string, patterns []string) ([]string, error) {
	var out []string
	for _, p := range patterns {
		full := filepath.Join(dir, p)
		if !strings.ContainsAny(p, "*?") {
			out = append(out, full)
			continue
		}
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, fmt.Errorf("bad workspace pattern %q: %w", p, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}

// Filter drops members equal to any excluded path. Order is kept.
func Filter(members, excluded []string) []string {
	skip := make(map[string]bool, len(excluded))
	for _, e := range excluded {
		skip[filepath.Clean(e)] = true
	}
	out := make([]string, 0, len(members))
	for _, m := range members {
		if !skip[filepath.Clean(m)] {
			out = append(out, m)
		}
	}
	return out
}

func dropFiles(paths []string) []string {
	out := paths[:0]
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			continue
		}
		out = append(out, p)
	}
	return out
}
