package shell

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Find returns the files under dirs whose names match any of the patterns,
// in sorted order. With recursive false only each directory's own entries
// are considered; the per-component source sets stay explicit and cheap to
// enumerate. Nil patterns match every file. Directories that do not exist
// are skipped.
func Find(dirs []string, patterns []string, recursive bool) ([]string, error) {
	var res []string
	for _, dir := range dirs {
		var err error
		if recursive {
			err = findRecursive(dir, patterns, &res)
		} else {
			err = findShallow(dir, patterns, &res)
		}
		if err != nil {
			return nil, &FSError{Op: "find", Path: dir, Err: err}
		}
	}
	sort.Strings(res)
	return res, nil
}

func findShallow(dir string, patterns []string, res *[]string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchAny(patterns, entry.Name()) {
			*res = append(*res, filepath.Join(dir, entry.Name()))
		}
	}
	return nil
}

func findRecursive(dir string, patterns []string, res *[]string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && matchAny(patterns, d.Name()) {
			*res = append(*res, path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func matchAny(patterns []string, name string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		// Patterns are fixed glob literals from the rules table, so Match
		// cannot fail on them.
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
