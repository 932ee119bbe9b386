package addonbump

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/bcomnes/addonbump/internal/logging"
)

// Options configures a release run.
type Options struct {
	// Root is the directory searched for the addon and changelog files.
	Root string
	Kind IncrementKind
	// Text is the changelog body, used verbatim. See NormalizeText.
	Text    string
	AddDate bool
	// UpdateNews also injects the entry into the <news> section of addon.xml.in.
	UpdateNews bool
	// Today is the date used for AddDate. Defaults to time.Now().
	Today time.Time

	AddonPattern     string
	ChangelogPattern string
	// RequireChangelog fails the run when no changelog file is found.
	// Otherwise a missing changelog is reported and skipped.
	RequireChangelog bool

	// Commit stages and commits the updated files. Tag additionally creates a v-prefixed tag.
	Commit bool
	Tag    bool
}

// ReleaseMeta holds metadata about a release run.
type ReleaseMeta struct {
	AddonFile     string        `yaml:"addon_file"`
	ChangelogFile string        `yaml:"changelog_file,omitempty"`
	OldVersion    string        `yaml:"old_version"`
	NewVersion    string        `yaml:"new_version"`
	Kind          IncrementKind `yaml:"kind"`
	Entry         string        `yaml:"entry"`
	UpdatedFiles  []string      `yaml:"updated_files"`
	Commit        string        `yaml:"commit,omitempty"`
	Tag           string        `yaml:"tag,omitempty"`
}

// release is the state shared by Run and DryRun once both files are located
// and the new version is known.
type release struct {
	opts          Options
	addonFile     string
	addonContent  string
	changelogFile string
	entry         Entry
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = "."
	}
	if o.AddonPattern == "" {
		o.AddonPattern = DefaultAddonPattern
	}
	if o.ChangelogPattern == "" {
		o.ChangelogPattern = DefaultChangelogPattern
	}
	if o.Today.IsZero() {
		o.Today = time.Now()
	}
	return o
}

// prepare locates both files, reads the current version and computes the
// new version and entry. Nothing is written.
func prepare(opts Options) (release, ReleaseMeta, error) {
	var meta ReleaseMeta
	opts = opts.withDefaults()

	kind, err := ParseIncrementKind(string(opts.Kind))
	if err != nil {
		return release{}, meta, err
	}
	meta.Kind = kind

	addonFile, err := FindFile(opts.Root, opts.AddonPattern)
	if err != nil {
		return release{}, meta, err
	}
	meta.AddonFile = addonFile

	changelogFile, err := FindFile(opts.Root, opts.ChangelogPattern)
	switch {
	case errors.Is(err, ErrFileNotFound) && !opts.RequireChangelog:
		logging.Warn("no %s found under %s; changelog will not be updated", opts.ChangelogPattern, opts.Root)
		changelogFile = ""
	case err != nil:
		return release{}, meta, err
	}
	meta.ChangelogFile = changelogFile

	content, err := ReadAddonXML(addonFile)
	if err != nil {
		return release{}, meta, err
	}

	oldVersion, err := CurrentVersion(content)
	if err != nil {
		return release{}, meta, fmt.Errorf("%s: %w", addonFile, err)
	}
	meta.OldVersion = oldVersion

	newVersion, err := IncrementVersion(oldVersion, kind)
	if err != nil {
		return release{}, meta, fmt.Errorf("%s: %w", addonFile, err)
	}
	meta.NewVersion = newVersion

	entry := NewEntry(newVersion, opts.Text, opts.AddDate, opts.Today)
	meta.Entry = entry.String()

	return release{
		opts:          opts,
		addonFile:     addonFile,
		addonContent:  content,
		changelogFile: changelogFile,
		entry:         entry,
	}, meta, nil
}

// preflight refuses to start a committing run that would sweep up unrelated
// changes or collide with an existing tag.
func (r release) preflight(newVersion string) error {
	allowed := []string{r.addonFile}
	if r.changelogFile != "" {
		allowed = append(allowed, r.changelogFile)
	}
	if err := CheckClean(r.opts.Root, allowed); err != nil {
		return err
	}
	if !r.opts.Tag {
		return nil
	}
	exists, err := TagExists(r.opts.Root, newVersion)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("tag %s already exists", TagName(newVersion))
	}
	return nil
}

// Run bumps the version in the addon file, prepends the entry to the
// changelog and, when requested, to the addon's news section. The updaters
// run independently: a failure in one is collected and the others still run.
// The version-declaration file must exist; without it nothing is written.
func Run(opts Options) (ReleaseMeta, error) {
	r, meta, err := prepare(opts)
	if err != nil {
		return meta, err
	}

	if r.opts.Commit {
		if err := r.preflight(meta.NewVersion); err != nil {
			return meta, err
		}
	}

	var errs []error

	changed, err := UpdateXMLVersion(r.addonFile, r.addonContent, meta.OldVersion, meta.NewVersion)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("updating version: %w", err))
	case changed:
		meta.UpdatedFiles = appendUnique(meta.UpdatedFiles, r.addonFile)
	}

	if r.changelogFile != "" {
		if err := UpdateChangelog(r.changelogFile, r.entry); err != nil {
			errs = append(errs, fmt.Errorf("updating changelog: %w", err))
		} else {
			meta.UpdatedFiles = appendUnique(meta.UpdatedFiles, r.changelogFile)
		}
	}

	if r.opts.UpdateNews {
		changed, err := UpdateNews(r.addonFile, r.entry)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("updating news: %w", err))
		case changed:
			meta.UpdatedFiles = appendUnique(meta.UpdatedFiles, r.addonFile)
		}
	}

	if err := errors.Join(errs...); err != nil {
		logging.Error("%d update(s) failed, files already written are kept: %v", len(errs), meta.UpdatedFiles)
		return meta, err
	}

	if r.opts.Commit && len(meta.UpdatedFiles) > 0 {
		hash, err := CommitAndTag(r.opts.Root, meta.UpdatedFiles, meta.NewVersion, r.opts.Tag)
		if !hash.IsZero() {
			meta.Commit = hash.String()
		}
		if err != nil {
			return meta, err
		}
		if r.opts.Tag {
			meta.Tag = TagName(meta.NewVersion)
		}
	}

	return meta, nil
}

// DryRun computes the same ReleaseMeta as Run, listing the files that would
// change, without writing anything or touching git.
func DryRun(opts Options) (ReleaseMeta, error) {
	r, meta, err := prepare(opts)
	if err != nil {
		return meta, err
	}

	xml, changed := ReplaceVersion(r.addonContent, meta.OldVersion, meta.NewVersion)
	if changed {
		meta.UpdatedFiles = appendUnique(meta.UpdatedFiles, r.addonFile)
	}
	if r.changelogFile != "" {
		meta.UpdatedFiles = appendUnique(meta.UpdatedFiles, r.changelogFile)
	}
	if r.opts.UpdateNews {
		if _, found := InjectNews(xml, r.entry); found {
			meta.UpdatedFiles = appendUnique(meta.UpdatedFiles, r.addonFile)
		}
	}
	if r.opts.Commit && r.opts.Tag {
		meta.Tag = TagName(meta.NewVersion)
	}

	return meta, nil
}

func appendUnique(files []string, path string) []string {
	if slices.Contains(files, path) {
		return files
	}
	return append(files, path)
}
