package contract

import (
	"fmt"
	"strings"
)

// FormatError reports a log record that does not match the expected layout.
// It aborts ingestion of the repository it came from.
type FormatError struct {
	Record string
	Reason string
}

func (e *FormatError) Error() string {
	record := e.Record
	if len(record) > 80 {
		record = record[:80] + "..."
	}
	return fmt.Sprintf("malformed git log record (%s): %q", e.Reason, record)
}

// InvalidRepositoryError reports a path that is not a git working tree.
type InvalidRepositoryError struct {
	Path string
	Err  error
}

func (e *InvalidRepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s is not a git repository: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s is not a git repository", e.Path)
}

func (e *InvalidRepositoryError) Unwrap() error { return e.Err }

// ExternalToolError reports a git invocation that failed or timed out.
type ExternalToolError struct {
	Args    []string
	Stderr  string
	Timeout bool
	Err     error
}

func (e *ExternalToolError) Error() string {
	cmd := "git " + strings.Join(e.Args, " ")
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s timed out: %v", cmd, e.Err)
	case e.Stderr != "":
		return fmt.Sprintf("%s failed: %s", cmd, e.Stderr)
	default:
		return fmt.Sprintf("%s failed: %v. Ensure Git is installed and available on your PATH", cmd, e.Err)
	}
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// ConfigurationError reports a run configuration that cannot produce a report.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Msg
}
