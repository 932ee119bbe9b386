package addonbump

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo initializes a repository in root with a local identity and
// commits everything already present.
func initRepo(t *testing.T, root string) *git.Repository {
	t.Helper()

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&git.AddOptions{All: true}))
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return repo
}

func TestRunCommitAndTag(t *testing.T) {
	root, addonFile, changelogFile := newAddonTree(t, e2eAddonXML, "v1.9.0\nold\n\n")
	repo := initRepo(t, root)

	meta, err := Run(Options{Root: root, Kind: Micro, Text: "New feature", Commit: true, Tag: true})
	require.NoError(t, err)

	assert.Equal(t, "v2.0.1", meta.Tag)
	require.NotEmpty(t, meta.Commit)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, meta.Commit, head.Hash().String())

	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "2.0.1", commit.Message)

	stats, err := commit.Stats()
	require.NoError(t, err)
	var changed []string
	for _, s := range stats {
		changed = append(changed, s.Name)
	}
	assert.ElementsMatch(t, []string{
		"plugin.video.example/addon.xml.in",
		"plugin.video.example/changelog.txt",
	}, changed)

	tagRef, err := repo.Tag("v2.0.1")
	require.NoError(t, err)
	assert.Equal(t, head.Hash(), tagRef.Hash())

	wt, err := repo.Worktree()
	require.NoError(t, err)
	status, err := wt.Status()
	require.NoError(t, err)
	assert.True(t, status.IsClean(), "all updated files are committed: %s", status)

	assert.Contains(t, readString(t, addonFile), `version="2.0.1"`)
	assert.Contains(t, readString(t, changelogFile), "v2.0.1\nNew feature")
}

func TestRunCommitWithoutTag(t *testing.T) {
	root, _, _ := newAddonTree(t, e2eAddonXML, "v1.9.0\nold\n\n")
	repo := initRepo(t, root)

	meta, err := Run(Options{Root: root, Kind: Minor, Text: "x", Commit: true})
	require.NoError(t, err)
	assert.Empty(t, meta.Tag)

	_, err = repo.Tag("v2.1.0")
	assert.ErrorIs(t, err, git.ErrTagNotFound)
}

func TestRunCommitRefusesDirtyWorktree(t *testing.T) {
	root, addonFile, _ := newAddonTree(t, e2eAddonXML, "v1.9.0\nold\n\n")
	initRepo(t, root)
	touch(t, root, "notes.txt", "unrelated")

	_, err := Run(Options{Root: root, Kind: Micro, Text: "x", Commit: true, Tag: true})
	assert.ErrorIs(t, err, ErrDirtyWorktree)
	assert.ErrorContains(t, err, "notes.txt")
	assert.Equal(t, e2eAddonXML, readString(t, addonFile))
}

func TestRunCommitRefusesExistingTag(t *testing.T) {
	root, addonFile, _ := newAddonTree(t, e2eAddonXML, "v1.9.0\nold\n\n")
	repo := initRepo(t, root)

	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag("v2.0.1", head.Hash(), nil)
	require.NoError(t, err)

	_, err = Run(Options{Root: root, Kind: Micro, Text: "x", Commit: true, Tag: true})
	assert.ErrorContains(t, err, "tag v2.0.1 already exists")
	assert.Equal(t, e2eAddonXML, readString(t, addonFile))
}

func TestCheckCleanAllowsReleaseFiles(t *testing.T) {
	root, addonFile, changelogFile := newAddonTree(t, e2eAddonXML, "v1.9.0\nold\n\n")
	initRepo(t, root)

	touch(t, root, "plugin.video.example/changelog.txt", "edited")
	assert.NoError(t, CheckClean(root, []string{addonFile, changelogFile}))
	assert.ErrorIs(t, CheckClean(root, []string{addonFile}), ErrDirtyWorktree)
}

func TestTagExistsOutsideRepository(t *testing.T) {
	_, err := TagExists(t.TempDir(), "1.0.0")
	assert.ErrorIs(t, err, git.ErrRepositoryNotExists)
}
