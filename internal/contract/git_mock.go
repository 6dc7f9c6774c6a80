package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	callArgs := []any{ctx, repoPath}
	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}
	ret := m.Called(callArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// ListTrackedFiles implements the GitClient interface.
func (m *MockGitClient) ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	files, _ := ret.Get(0).([]string)
	return files, ret.Error(1)
}

// CommitLog implements the GitClient interface.
func (m *MockGitClient) CommitLog(ctx context.Context, repoPath string, opts LogOptions) ([]byte, error) {
	ret := m.Called(ctx, repoPath, opts)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// NumstatLog implements the GitClient interface.
func (m *MockGitClient) NumstatLog(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, since)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// ShowCommitDiff implements the GitClient interface.
func (m *MockGitClient) ShowCommitDiff(ctx context.Context, repoPath, hash, filePath string) (string, error) {
	ret := m.Called(ctx, repoPath, hash, filePath)
	return ret.String(0), ret.Error(1)
}

// FileStat implements the GitClient interface.
func (m *MockGitClient) FileStat(repoPath, filePath string) (FileStat, error) {
	ret := m.Called(repoPath, filePath)
	stat, _ := ret.Get(0).(FileStat)
	return stat, ret.Error(1)
}

// HasCommits implements the GitClient interface.
func (m *MockGitClient) HasCommits(ctx context.Context, repoPath string) (bool, error) {
	ret := m.Called(ctx, repoPath)
	return ret.Bool(0), ret.Error(1)
}

// Clone implements the GitClient interface.
func (m *MockGitClient) Clone(ctx context.Context, url, dest, branch string, depth int) error {
	ret := m.Called(ctx, url, dest, branch, depth)
	return ret.Error(0)
}
