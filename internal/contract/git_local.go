package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// ListTrackedFiles implements the GitClient interface.
func (c *LocalGitClient) ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, "ls-files")
	if err != nil {
		return nil, WrapError(KindRepositoryAccess, fmt.Sprintf("not a valid repository root: %s", repoPath), err)
	}
	files := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(files) == 1 && files[0] == "" {
		return []string{}, nil
	}
	return files, nil
}

// CommitLog implements the GitClient interface. The output frames each commit
// as a '--hash|author|email|date|subject' header line followed by a shortstat
// summary line; core parses that framing.
func (c *LocalGitClient) CommitLog(ctx context.Context, repoPath string, opts LogOptions) ([]byte, error) {
	args := []string{
		"log",
		"--pretty=format:--%H|%an|%ae|%ad|%s",
		"--date=iso-strict",
		"--shortstat",
	}
	if opts.MaxCount > 0 {
		args = append(args, fmt.Sprintf("-n%d", opts.MaxCount))
	}
	if !opts.Since.IsZero() {
		args = append(args, "--since="+opts.Since.Format(DateTimeFormat))
	}
	if opts.FilePath != "" {
		args = append(args, "--", opts.FilePath)
	}
	return c.Run(ctx, repoPath, args...)
}

// NumstatLog implements the GitClient interface.
func (c *LocalGitClient) NumstatLog(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	args := []string{
		"log",
		"--pretty=format:--%H|%an|%ae|%ad",
		"--date=iso-strict",
		"--numstat",
	}
	if !since.IsZero() {
		args = append(args, "--since="+since.Format(DateTimeFormat))
	}
	return c.Run(ctx, repoPath, args...)
}

// ShowCommitDiff implements the GitClient interface. Retrieval failures map
// to an empty diff, never an error: history can reference commits the
// shallow clone no longer carries.
func (c *LocalGitClient) ShowCommitDiff(ctx context.Context, repoPath, hash, filePath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "show", hash, "--", filePath)
	if err != nil {
		return "", nil
	}
	return string(out), nil
}

// FileStat implements the GitClient interface. Stat failures yield a
// zero-valued result because files in history may be gone at HEAD.
func (c *LocalGitClient) FileStat(repoPath, filePath string) (FileStat, error) {
	fullPath := filepath.Join(repoPath, filePath)
	info, err := os.Stat(fullPath)
	if err != nil {
		return FileStat{}, nil
	}
	stat := FileStat{SizeBytes: info.Size()}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return stat, nil
	}
	stat.LineCount = bytes.Count(content, []byte("\n")) + 1
	return stat, nil
}

// HasCommits implements the GitClient interface.
func (c *LocalGitClient) HasCommits(ctx context.Context, repoPath string) (bool, error) {
	out, err := c.Run(ctx, repoPath, "log", "-n1", "--pretty=format:%H")
	if err != nil {
		// A fresh repository with zero commits makes 'git log' exit non-zero.
		if strings.Contains(err.Error(), "does not have any commits") {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// Clone implements the GitClient interface. The checkout is bounded-depth,
// single-branch, tagless and blob-filtered; exact history beyond the depth
// horizon is a documented limitation of the analysis, not an error.
func (c *LocalGitClient) Clone(ctx context.Context, url, dest, branch string, depth int) error {
	args := []string{
		"clone",
		"--depth", strconv.Itoa(depth),
		"--single-branch",
		"--no-tags",
		"--filter=blob:none",
	}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, dest)

	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("git clone failed: %s", msg)
	}
	return nil
}
