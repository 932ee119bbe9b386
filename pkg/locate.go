package addonbump

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bcomnes/addonbump/internal/logging"
)

const (
	// DefaultAddonPattern names the version-declaration file.
	DefaultAddonPattern = "addon.xml.in"
	// DefaultChangelogPattern names the changelog file.
	DefaultChangelogPattern = "changelog.txt"
)

// ErrFileNotFound is returned when no file under the root matches a pattern.
var ErrFileNotFound = errors.New("file not found")

// FindFiles returns every regular file under root whose base name matches
// pattern, sorted lexicographically by path. .git directories are skipped.
func FindFiles(root, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(matches)
	return matches, nil
}

// FindFile returns the first file under root matching pattern in
// lexicographic path order. It returns ErrFileNotFound when nothing matches.
func FindFile(root, pattern string) (string, error) {
	matches, err := FindFiles(root, pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no %s under %s", ErrFileNotFound, pattern, root)
	}
	if len(matches) > 1 {
		logging.Warn("found %d files matching %s, using %s", len(matches), pattern, matches[0])
	}

	logging.Info("Found %s: %s", pattern, matches[0])
	return matches[0], nil
}
