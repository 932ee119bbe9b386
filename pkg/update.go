package addonbump

import (
	"fmt"
	"os"
	"strings"

	"github.com/bcomnes/addonbump/internal/logging"
)

const newsAnchor = "<news>"

// ReplaceVersion replaces every version="old" attribute with version="new".
// The bool reports whether the content changed.
func ReplaceVersion(content, oldVersion, newVersion string) (string, bool) {
	updated := strings.ReplaceAll(content,
		fmt.Sprintf(`version="%s"`, oldVersion),
		fmt.Sprintf(`version="%s"`, newVersion),
	)
	return updated, updated != content
}

// PrependEntry puts e in front of the existing changelog content.
func PrependEntry(content string, e Entry) string {
	return e.String() + content
}

// InjectNews inserts e right after each <news> tag and collapses runs of
// blank lines so no triple newline remains. The bool reports whether a
// <news> tag was present.
func InjectNews(content string, e Entry) (string, bool) {
	if !strings.Contains(content, newsAnchor) {
		return content, false
	}
	updated := strings.ReplaceAll(content, newsAnchor, newsAnchor+"\n"+e.String())
	for strings.Contains(updated, "\n\n\n") {
		updated = strings.ReplaceAll(updated, "\n\n\n", "\n\n")
	}
	return updated, true
}

// ReadAddonXML returns the full content of the version-declaration file.
func ReadAddonXML(path string) (string, error) {
	logging.Info("Reading %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// UpdateXMLVersion writes content with the version attribute bumped from
// oldVersion to newVersion. When the old attribute is not present verbatim
// the file is left alone and false is returned.
func UpdateXMLVersion(path, content, oldVersion, newVersion string) (bool, error) {
	logging.Info("Old Version: %s", oldVersion)
	logging.Info("New Version: %s", newVersion)

	updated, changed := ReplaceVersion(content, oldVersion, newVersion)
	if !changed {
		logging.Warn("XML was unmodified... skipping.")
		return false, nil
	}

	logging.Info("Writing %s", path)
	if err := rewriteFile(path, updated); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateChangelog prepends e to the changelog file at path.
func UpdateChangelog(path string, e Entry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	logging.Info("Writing %s:\n%s", path, e.String())
	return rewriteFile(path, PrependEntry(string(data), e))
}

// UpdateNews injects e into the <news> section of the version-declaration
// file. The file is read again so that an earlier version update is kept.
// When there is no <news> tag the file is not touched and false is returned.
func UpdateNews(path string, e Entry) (bool, error) {
	content, err := ReadAddonXML(path)
	if err != nil {
		return false, err
	}

	updated, found := InjectNews(content, e)
	if !found {
		logging.Warn("no %s section in %s... skipping.", newsAnchor, path)
		return false, nil
	}

	logging.Info("Writing news to %s:\n%s", path, e.String())
	if err := rewriteFile(path, updated); err != nil {
		return false, err
	}
	return true, nil
}

// rewriteFile replaces the content of an existing file, keeping its permissions.
func rewriteFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
