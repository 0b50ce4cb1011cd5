package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GitCommit is one entry of a repository's recent history.
type GitCommit struct {
	Hash    string `json:"hash"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// GetGitBranch returns the current branch name, or the short hash when HEAD
// is detached.
func (e *Engine) GetGitBranch(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", gitErr(path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String()[:7], nil
}

// GetGitStatus returns the worktree status in porcelain format; an empty
// string means a clean tree.
func (e *Engine) GetGitStatus(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", gitErr(path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return "", fmt.Errorf("failed to read worktree status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}
	return status.String(), nil
}

// GetRecentCommits walks history from HEAD and returns up to limit commits,
// newest first.
func (e *Engine) GetRecentCommits(path string, limit int) ([]GitCommit, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, gitErr(path, err)
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read commit log: %w", err)
	}
	defer iter.Close()

	commits := []GitCommit{}
	err = iter.ForEach(func(c *object.Commit) error {
		if len(commits) >= limit {
			return storer.ErrStop
		}
		message := c.Message
		if i := strings.IndexByte(message, '\n'); i >= 0 {
			message = message[:i]
		}
		commits = append(commits, GitCommit{
			Hash:    c.Hash.String()[:7],
			Author:  c.Author.Name,
			Date:    c.Author.When.Format("2006-01-02 15:04"),
			Message: message,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commits: %w", err)
	}
	return commits, nil
}

func gitErr(path string, err error) error {
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return fmt.Errorf("not a git repository: %s", path)
	}
	return fmt.Errorf("failed to open repository %s: %w", path, err)
}
