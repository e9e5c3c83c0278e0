//go:build basic || database || integration

// Package integration contains end-to-end tests that run the year2018 binary.
// These tests are excluded from normal test runs due to build tags.
// To run them: go test -tags integration ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureEmail = "alice@example.com"

var (
	// sharedBinaryPath holds the path to a year2018 binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}
	os.Exit(code)
}

// getBinary returns the path to the year2018 binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "year2018-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "year2018")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build year2018: %v\n%s", err, out))
		}
		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// runYear2018 runs the binary in dir with a private HOME and returns stdout.
func runYear2018(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "YEAR2018_COLOR=no")
	cmd.Env = append(cmd.Env, env...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		t.Logf("Command failed: %s\nStderr: %s", cmd.String(), stderr.String())
	}
	return string(out), err
}

// fixtureCommit is one commit of a fixture repository.
type fixtureCommit struct {
	email string
	date  string // RFC3339
	file  string
	lines int
}

// newFixtureRepo creates a git repository with the given commits on master.
func newFixtureRepo(t *testing.T, commits []fixtureCommit) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	git := func(env []string, args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), env...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	git(nil, "init", "--initial-branch=master")
	for i, c := range commits {
		path := filepath.Join(dir, c.file)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		content := strings.Repeat(fmt.Sprintf("line %d\n", i), c.lines)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		_, err = f.WriteString(content)
		require.NoError(t, err)
		require.NoError(t, f.Close())

		name := strings.SplitN(c.email, "@", 2)[0]
		env := []string{
			"GIT_AUTHOR_NAME=" + name, "GIT_AUTHOR_EMAIL=" + c.email, "GIT_AUTHOR_DATE=" + c.date,
			"GIT_COMMITTER_NAME=" + name, "GIT_COMMITTER_EMAIL=" + c.email, "GIT_COMMITTER_DATE=" + c.date,
		}
		git(env, "add", "-A")
		git(env, "commit", "-q", "-m", fmt.Sprintf("change %d", i))
	}
	return dir
}

// defaultFixture has three commits by the user in 2018 and one by someone else.
func defaultFixture(t *testing.T) string {
	return newFixtureRepo(t, []fixtureCommit{
		{fixtureEmail, "2018-02-01T10:00:00Z", "main.go", 20},
		{"bob@example.com", "2018-02-02T11:00:00Z", "main.go", 5},
		{fixtureEmail, "2018-05-05T23:30:00Z", "tools/run.py", 8},
		{fixtureEmail, "2018-05-06T09:00:00Z", "main.go", 3},
		{fixtureEmail, "2019-01-03T09:00:00Z", "main.go", 1},
	})
}
