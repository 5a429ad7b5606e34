package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/config"
)

// каталоги, в которые обход не заходит
var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
	"dist":         {},
}

// ListFiles expands targets into a sorted, duplicate-free list of files.
// Directories are walked for files cfg includes; a file named explicitly is
// taken as is.
func ListFiles(targets []string, cfg *config.Config) ([]string, error) {
	if len(targets) == 0 {
		targets = []string{cfg.Root}
	}
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", target, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(target))
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != target && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.Includes(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", target, err)
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func skipDir(name string) bool {
	if _, ok := skipDirs[name]; ok {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
