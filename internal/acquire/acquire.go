// Package acquire materializes transient working copies of remote
// repositories for analysis.
package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/relicdev/relic/internal/contract"
)

// Workspace is a materialized working copy. Callers must invoke Cleanup when
// done with it; Cleanup is safe to call more than once.
type Workspace struct {
	Path    string
	cleaned bool
}

// Cleanup removes the working copy from disk. Removal failures are logged,
// not returned: a leaked temp directory never fails an analysis.
func (w *Workspace) Cleanup() {
	if w == nil || w.cleaned {
		return
	}
	w.cleaned = true
	if err := os.RemoveAll(w.Path); err != nil {
		contract.LogWarn("removing working copy", err)
	}
}

// Acquire clones url into a unique directory under cfg.TempRoot and returns
// the workspace. When the requested branch does not exist on the remote, the
// clone is retried without a branch pin so the remote's default branch is
// used instead. The caller owns the returned workspace's cleanup.
func Acquire(ctx context.Context, client contract.GitClient, cfg *contract.Config, url, branch string) (*Workspace, error) {
	if err := os.MkdirAll(cfg.TempRoot, 0o755); err != nil {
		return nil, contract.WrapError(contract.KindRepositoryAccess, "preparing clone root", err)
	}

	name := fmt.Sprintf("%s-%s", contract.RepoNameFromURL(url), uuid.NewString()[:8])
	dest := filepath.Join(cfg.TempRoot, name)

	ctx, cancel := context.WithTimeout(ctx, cfg.CloneTimeout)
	defer cancel()

	err := client.Clone(ctx, url, dest, branch, cfg.Tuning.CloneDepth)
	if err != nil && branch != "" && isBranchNotFound(err) {
		// The pinned branch is absent on the remote; fall back to whatever
		// the remote calls its default branch.
		_ = os.RemoveAll(dest)
		err = client.Clone(ctx, url, dest, "", cfg.Tuning.CloneDepth)
	}
	if err != nil {
		_ = os.RemoveAll(dest)
		return nil, classifyCloneError(url, err)
	}

	return &Workspace{Path: dest}, nil
}

// isBranchNotFound matches the stderr git emits when --branch names a ref
// the remote does not have.
func isBranchNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "remote branch") && strings.Contains(msg, "not found")
}

// classifyCloneError maps raw clone failures onto the failure taxonomy.
// Transient network interruptions become retriable; everything else reads as
// a repository access problem.
func classifyCloneError(url string, err error) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "could not resolve host"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "connection timed out"),
		strings.Contains(msg, "empty reply from server"),
		strings.Contains(msg, "early eof"),
		strings.Contains(msg, "operation timed out"),
		strings.Contains(msg, "context deadline exceeded"):
		return contract.WrapError(contract.KindNetworkTransient,
			fmt.Sprintf("network interruption while cloning %s", url), err)
	case strings.Contains(msg, "authentication"),
		strings.Contains(msg, "could not read username"),
		strings.Contains(msg, "permission denied"):
		return contract.WrapError(contract.KindRepositoryAccess,
			fmt.Sprintf("repository %s appears to be private; only public repositories are supported", url), err)
	default:
		return contract.WrapError(contract.KindRepositoryAccess,
			fmt.Sprintf("repository %s was not found or is not accessible", url), err)
	}
}
