package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Log record layout shared by the log and show commands.
const (
	LogSeparator = "git-commit-separator"
	LogFormat    = LogSeparator + "%H%n%P%n%an%n%ae%n%at%n%s%n"
)

// DefaultGitTimeout bounds every git CLI invocation.
const DefaultGitTimeout = 600 * time.Second

// LocalGitClient implements the GitClient interface. Log and show go through
// the local 'git' binary, while repository inspection uses go-git.
type LocalGitClient struct {
	Timeout time.Duration
}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{Timeout: DefaultGitTimeout}
}

// Run executes a git command and returns its stdout.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &ExternalToolError{Args: fullArgs, Timeout: true, Err: ctx.Err()}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &ExternalToolError{Args: fullArgs, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil, &ExternalToolError{Args: fullArgs, Err: err}
}

// GetLog implements the GitClient interface.
func (c *LocalGitClient) GetLog(ctx context.Context, repoPath, branch string, begin, end time.Time) ([]byte, error) {
	args := []string{"log"}
	if branch != "" {
		args = append(args, branch)
	}
	if !begin.IsZero() {
		args = append(args, "--since="+begin.Format(DateTimeFormat))
	}
	if !end.IsZero() {
		// --until is inclusive, the window is not
		args = append(args, "--until="+end.Add(-time.Second).Format(DateTimeFormat))
	}
	args = append(args, "--format="+LogFormat, "--numstat")
	return c.Run(ctx, repoPath, args...)
}

// ShowCommit implements the GitClient interface.
func (c *LocalGitClient) ShowCommit(ctx context.Context, repoPath, id string) ([]byte, error) {
	return c.Run(ctx, repoPath, "show", id, "--format="+LogFormat, "--numstat")
}

// GetConfigEmail implements the GitClient interface.
func (c *LocalGitClient) GetConfigEmail(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "config", "--get", "user.email")
	if err != nil {
		var toolErr *ExternalToolError
		if errors.As(err, &toolErr) && !toolErr.Timeout && toolErr.Stderr == "" {
			return "", nil // exit status 1 means the key is unset
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// IsWorkTree implements the GitClient interface.
func (c *LocalGitClient) IsWorkTree(_ context.Context, path string) (bool, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := repo.Worktree(); err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListBranches implements the GitClient interface.
func (c *LocalGitClient) ListBranches(_ context.Context, repoPath string) ([]string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, err
	}
	iter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches in %q: %w", repoPath, err)
	}
	var branches []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		branches = append(branches, ref.Name().Short())
		return nil
	})
	return branches, err
}

// GetRemoteURL implements the GitClient interface.
func (c *LocalGitClient) GetRemoteURL(_ context.Context, repoPath string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}
	remote, err := repo.Remote("origin")
	if errors.Is(err, git.ErrRemoteNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if urls := remote.Config().URLs; len(urls) > 0 {
		return urls[0], nil
	}
	return "", nil
}

// GetRefHash implements the GitClient interface.
func (c *LocalGitClient) GetRefHash(_ context.Context, repoPath, branch string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}
	if branch == "" {
		head, err := repo.Head()
		if err != nil {
			return "", fmt.Errorf("failed to resolve HEAD in %q: %w", repoPath, err)
		}
		return head.Hash().String(), nil
	}
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return "", fmt.Errorf("failed to resolve branch %s in %q: %w", branch, repoPath, err)
	}
	return ref.Hash().String(), nil
}

// Clone implements the GitClient interface.
func (c *LocalGitClient) Clone(ctx context.Context, url, dir string) error {
	if _, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: url}); err != nil {
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return nil
}

// openRepo opens the repository containing path.
func openRepo(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, &InvalidRepositoryError{Path: path, Err: err}
	}
	return repo, nil
}
