package contract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Color variables for console output.
var (
	HeadingColor   = color.New(color.FgCyan, color.Bold) // section titles
	HighlightColor = color.New(color.FgMagenta, color.Bold)
	MutedColor     = color.New(color.FgHiBlack)
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

// Logger returns the process-wide logger. It writes text to stderr and reads
// its level from YEAR2018_LOG_LEVEL.
func Logger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
		level, err := logrus.ParseLevel(os.Getenv("YEAR2018_LOG_LEVEL"))
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
	})
	return logger
}

// SetLogOutput redirects the logger, for MCP mode and tests.
func SetLogOutput(w io.Writer) {
	Logger().SetOutput(w)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().WithError(err).Error(msg)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger().WithError(err).Warn(msg)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".year2018_cache.db"
	}
	return filepath.Join(homeDir, ".year2018_cache.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// IsRemoteURL reports whether a repository input names a remote location
// rather than a local directory.
func IsRemoteURL(s string) bool {
	switch {
	case strings.Contains(s, "://"):
		return true
	case strings.HasPrefix(s, "git@") && strings.Contains(s, ":"):
		return true
	default:
		return false
	}
}

// RepoNameFromURL returns the directory name a clone of url would get.
// "git@github.com:baijiangliang/year2018.git" becomes "year2018".
func RepoNameFromURL(url string) string {
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	return strings.TrimSuffix(url, ".git")
}
