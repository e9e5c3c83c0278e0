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
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// IsWorkTree implements the GitClient interface.
func (m *MockGitClient) IsWorkTree(ctx context.Context, path string) (bool, error) {
	ret := m.Called(ctx, path)
	return ret.Bool(0), ret.Error(1)
}

// ListBranches implements the GitClient interface.
func (m *MockGitClient) ListBranches(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	branches, _ := ret.Get(0).([]string)
	return branches, ret.Error(1)
}

// GetRemoteURL implements the GitClient interface.
func (m *MockGitClient) GetRemoteURL(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// GetRefHash implements the GitClient interface.
func (m *MockGitClient) GetRefHash(ctx context.Context, repoPath, branch string) (string, error) {
	ret := m.Called(ctx, repoPath, branch)
	return ret.String(0), ret.Error(1)
}

// GetConfigEmail implements the GitClient interface.
func (m *MockGitClient) GetConfigEmail(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// Clone implements the GitClient interface.
func (m *MockGitClient) Clone(ctx context.Context, url, dir string) error {
	ret := m.Called(ctx, url, dir)
	return ret.Error(0)
}

// GetLog implements the GitClient interface.
func (m *MockGitClient) GetLog(ctx context.Context, repoPath, branch string, begin, end time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, branch, begin, end)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ShowCommit implements the GitClient interface.
func (m *MockGitClient) ShowCommit(ctx context.Context, repoPath, id string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, id)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
