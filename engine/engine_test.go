package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"projdesk/db"
	"projdesk/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store, nil, nil, zap.NewNop())
}

func TestCreateProjectBackup(t *testing.T) {
	eng := newTestEngine(t)

	docs := "https://docs.example.com"
	project, err := eng.CreateProject(models.CreateProjectInput{
		Name:             "My App",
		Description:      "the main application",
		LocalPath:        "/home/dev/my-app",
		DocumentationURL: &docs,
	})
	require.NoError(t, err)

	data, err := eng.CreateProjectBackup(project.ID)
	require.NoError(t, err)

	assert.Equal(t, "My_App_BACKUP.md", data.Filename)
	assert.Equal(t, filepath.Join("/home/dev/my-app", "My_App_BACKUP.md"), data.Path)
	assert.Contains(t, data.Content, "# My App - Project Information")
	assert.Contains(t, data.Content, "- **Description:** the main application")
	assert.Contains(t, data.Content, "`/home/dev/my-app`")
	assert.Contains(t, data.Content, "[https://docs.example.com](https://docs.example.com)")
	assert.Contains(t, data.Content, "Not configured", "absent links render a placeholder")
}

func TestCreateProjectBackupMissingProject(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.CreateProjectBackup(9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWriteFileToPathCreatesParents(t *testing.T) {
	eng := newTestEngine(t)

	path := filepath.Join(t.TempDir(), "nested", "deeper", "backup.md")
	require.NoError(t, eng.WriteFileToPath(path, "# content"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# content", string(data))
}

func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	commit := func(filename, message string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(message), 0o644))
		_, err = worktree.Add(filename)
		require.NoError(t, err)
		_, err = worktree.Commit(message, &git.CommitOptions{
			Author: &object.Signature{Name: "Dev", Email: "dev@example.com"},
		})
		require.NoError(t, err)
	}
	commit("README.md", "initial commit")
	commit("main.go", "add entrypoint")
	return dir
}

func TestGitBranch(t *testing.T) {
	eng := newTestEngine(t)
	dir := initTestRepo(t)

	branch, err := eng.GetGitBranch(dir)
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestGitBranchNotARepository(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.GetGitBranch(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestGitStatus(t *testing.T) {
	eng := newTestEngine(t)
	dir := initTestRepo(t)

	status, err := eng.GetGitStatus(dir)
	require.NoError(t, err)
	assert.Empty(t, status, "clean tree reports empty status")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x"), 0o644))
	status, err = eng.GetGitStatus(dir)
	require.NoError(t, err)
	assert.Contains(t, status, "untracked.txt")
}

func TestRecentCommits(t *testing.T) {
	eng := newTestEngine(t)
	dir := initTestRepo(t)

	commits, err := eng.GetRecentCommits(dir, 10)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "add entrypoint", commits[0].Message, "newest first")
	assert.Equal(t, "initial commit", commits[1].Message)
	assert.Len(t, commits[0].Hash, 7)
	assert.Equal(t, "Dev", commits[0].Author)

	limited, err := eng.GetRecentCommits(dir, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "add entrypoint", limited[0].Message)
}
