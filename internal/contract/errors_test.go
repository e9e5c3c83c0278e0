package contract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	err := &FormatError{Record: strings.Repeat("x", 200), Reason: "too few lines"}
	msg := err.Error()
	assert.Contains(t, msg, "too few lines")
	assert.Contains(t, msg, "...")
	assert.Less(t, len(msg), 200)
}

func TestInvalidRepositoryError(t *testing.T) {
	inner := errors.New("repository does not exist")
	err := &InvalidRepositoryError{Path: "/tmp/nope", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "/tmp/nope")
	assert.Equal(t, "/tmp/x is not a git repository", (&InvalidRepositoryError{Path: "/tmp/x"}).Error())
}

func TestExternalToolError(t *testing.T) {
	inner := errors.New("exit status 128")
	tests := []struct {
		err  *ExternalToolError
		want string
	}{
		{&ExternalToolError{Args: []string{"log"}, Timeout: true, Err: inner}, "timed out"},
		{&ExternalToolError{Args: []string{"log"}, Stderr: "fatal: bad revision", Err: inner}, "fatal: bad revision"},
		{&ExternalToolError{Args: []string{"log"}, Err: inner}, "Ensure Git is installed"},
	}
	for _, tt := range tests {
		assert.Contains(t, tt.err.Error(), tt.want)
		assert.ErrorIs(t, tt.err, inner)
	}
}

func TestConfigurationError(t *testing.T) {
	var target *ConfigurationError
	var err error = &ConfigurationError{Msg: "no emails"}
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "invalid configuration: no emails", err.Error())
}
