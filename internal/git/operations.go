// Package git shells out to the git binary for the repository operations a
// run needs. Transport details stay entirely with git itself.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Operations defines the interface for git operations.
// This allows mocking git commands in tests.
type Operations interface {
	// CloneOrUpdate clones repoURL into localPath, or pulls when a clone
	// already exists there.
	CloneOrUpdate(repoURL, localPath string) error

	// HeadCommit returns the short hash of HEAD, or "unknown" if git
	// fails.
	HeadCommit(localPath string) string
}

// gitOps is the real implementation using exec.Command.
type gitOps struct{}

// NewOperations returns the default git operations implementation.
func NewOperations() Operations {
	return &gitOps{}
}

func (g *gitOps) CloneOrUpdate(repoURL, localPath string) error {
	if _, err := os.Stat(filepath.Join(localPath, ".git")); err == nil {
		cmd := exec.Command("git", "pull", "--ff-only")
		cmd.Dir = localPath
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git pull failed: %s: %w", strings.TrimSpace(string(output)), err)
		}
		return nil
	}

	cmd := exec.Command("git", "clone", repoURL, localPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git clone failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

func (g *gitOps) HeadCommit(localPath string) string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	cmd.Dir = localPath
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}
