package addonbump

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/bcomnes/addonbump/internal/logging"
)

// ErrDirtyWorktree is returned when files other than the ones being
// released have uncommitted changes.
var ErrDirtyWorktree = errors.New("working directory is dirty")

// TagName returns the tag used for a released version.
func TagName(version string) string {
	return "v" + version
}

// openRepo opens the repository containing path, walking up to find .git.
func openRepo(path string) (*git.Repository, error) {
	logging.Debug("[git] opening repository at %s", path)
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// repoRelative converts paths to slash-separated paths relative to the worktree root.
func repoRelative(wt *git.Worktree, paths []string) ([]string, error) {
	top, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("resolving worktree root: %w", err)
	}

	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		r, err := filepath.Rel(top, abs)
		if err != nil {
			return nil, fmt.Errorf("%s is outside repository %s: %w", p, top, err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel, nil
}

// CheckClean ensures that only the allowed files are modified in the
// repository containing root. Untracked files count as modifications.
func CheckClean(root string, allowed []string) error {
	repo, err := openRepo(root)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}

	allowedRel, err := repoRelative(wt, allowed)
	if err != nil {
		return err
	}
	allowedSet := make(map[string]struct{}, len(allowedRel))
	for _, p := range allowedRel {
		allowedSet[p] = struct{}{}
	}

	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("reading git status: %w", err)
	}

	var disallowed []string
	for path, s := range status {
		if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
			continue
		}
		if _, ok := allowedSet[path]; !ok {
			disallowed = append(disallowed, path)
		}
	}
	if len(disallowed) > 0 {
		sort.Strings(disallowed)
		return fmt.Errorf("%w; uncommitted files not included in release: %v", ErrDirtyWorktree, disallowed)
	}
	return nil
}

// TagExists reports whether the release tag for version already exists.
func TagExists(root, version string) (bool, error) {
	repo, err := openRepo(root)
	if err != nil {
		return false, err
	}
	_, err = repo.Tag(TagName(version))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, git.ErrTagNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("looking up tag %s: %w", TagName(version), err)
	}
}

// CommitAndTag stages files, commits them with the bare version as the
// message and, when tag is set, creates a lightweight "v"-prefixed tag.
func CommitAndTag(root string, files []string, version string, tag bool) (plumbing.Hash, error) {
	repo, err := openRepo(root)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("opening worktree: %w", err)
	}

	rel, err := repoRelative(wt, files)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	for _, p := range rel {
		if _, err := wt.Add(p); err != nil {
			return plumbing.ZeroHash, fmt.Errorf("git add %s: %w", p, err)
		}
	}

	sig, err := signature(repo)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	hash, err := wt.Commit(version, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("git commit: %w", err)
	}
	logging.Info("Committed %s as %s", version, hash.String()[:7])

	if tag {
		if _, err := repo.CreateTag(TagName(version), hash, nil); err != nil {
			return hash, fmt.Errorf("git tag %s: %w", TagName(version), err)
		}
		logging.Info("Tagged %s", TagName(version))
	}
	return hash, nil
}

// signature resolves the commit identity from GIT_AUTHOR_* variables or the
// merged local, global and system git config.
func signature(repo *git.Repository) (*object.Signature, error) {
	cfg, err := repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return nil, fmt.Errorf("reading git config: %w", err)
	}

	name, email := cfg.User.Name, cfg.User.Email
	if cfg.Author.Name != "" {
		name = cfg.Author.Name
	}
	if cfg.Author.Email != "" {
		email = cfg.Author.Email
	}
	if v := os.Getenv("GIT_AUTHOR_NAME"); v != "" {
		name = v
	}
	if v := os.Getenv("GIT_AUTHOR_EMAIL"); v != "" {
		email = v
	}

	if name == "" || email == "" {
		return nil, errors.New("git identity not configured: set user.name and user.email")
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}, nil
}
