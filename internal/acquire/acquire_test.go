package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		TempRoot:     t.TempDir(),
		CloneTimeout: contract.DefaultCloneTimeout,
		Tuning:       schema.DefaultTuning(),
	}
}

func TestAcquireSuccess(t *testing.T) {
	cfg := testConfig(t)
	client := new(contract.MockGitClient)
	client.
		On("Clone", mock.Anything, "https://github.com/acme/widgets", mock.Anything, "main", cfg.Tuning.CloneDepth).
		Return(nil).
		Once()

	ws, err := Acquire(context.Background(), client, cfg, "https://github.com/acme/widgets", "main")
	require.NoError(t, err)

	assert.Contains(t, filepath.Base(ws.Path), "widgets-")
	assert.Equal(t, cfg.TempRoot, filepath.Dir(ws.Path))
	client.AssertExpectations(t)
}

func TestAcquireBranchFallback(t *testing.T) {
	cfg := testConfig(t)
	client := new(contract.MockGitClient)
	client.
		On("Clone", mock.Anything, mock.Anything, mock.Anything, "main", mock.Anything).
		Return(errors.New("fatal: Remote branch main not found in upstream origin")).
		Once()
	client.
		On("Clone", mock.Anything, mock.Anything, mock.Anything, "", mock.Anything).
		Return(nil).
		Once()

	ws, err := Acquire(context.Background(), client, cfg, "https://github.com/acme/widgets", "main")
	require.NoError(t, err)
	assert.NotEmpty(t, ws.Path)
	client.AssertExpectations(t)
}

func TestAcquireClassification(t *testing.T) {
	tests := []struct {
		name     string
		stderr   string
		expected contract.Kind
	}{
		{
			name:     "repository not found",
			stderr:   "fatal: repository 'https://github.com/acme/gone/' not found",
			expected: contract.KindRepositoryAccess,
		},
		{
			name:     "private repository",
			stderr:   "fatal: Authentication failed for 'https://github.com/acme/secret/'",
			expected: contract.KindRepositoryAccess,
		},
		{
			name:     "connection reset",
			stderr:   "fatal: the remote end hung up unexpectedly: Connection reset by peer",
			expected: contract.KindNetworkTransient,
		},
		{
			name:     "empty reply",
			stderr:   "fatal: unable to access remote: Empty reply from server",
			expected: contract.KindNetworkTransient,
		},
		{
			name:     "timeout",
			stderr:   "context deadline exceeded",
			expected: contract.KindNetworkTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			client := new(contract.MockGitClient)
			client.
				On("Clone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(errors.New(tt.stderr))

			_, err := Acquire(context.Background(), client, cfg, "https://github.com/acme/widgets", "")
			require.Error(t, err)
			assert.Equal(t, tt.expected, contract.KindOf(err))
			assert.Equal(t, tt.expected == contract.KindNetworkTransient, contract.IsRetriable(err))
		})
	}
}

func TestWorkspaceCleanup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "work")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	ws := &Workspace{Path: dir}
	ws.Cleanup()
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "workspace directory should be removed")

	// Second call is a no-op.
	ws.Cleanup()

	// Nil receiver is tolerated.
	var nilWS *Workspace
	nilWS.Cleanup()
}

func TestAcquireUniqueDirectories(t *testing.T) {
	cfg := testConfig(t)
	client := new(contract.MockGitClient)
	client.
		On("Clone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	first, err := Acquire(context.Background(), client, cfg, "https://github.com/acme/widgets", "")
	require.NoError(t, err)
	second, err := Acquire(context.Background(), client, cfg, "https://github.com/acme/widgets", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
}
