package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// envWithoutDatabaseURL filters DATABASE_URL so commands must rely on flags.
func envWithoutDatabaseURL() []string {
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "DATABASE_URL=") {
			env = append(env, e)
		}
	}
	return env
}

func TestRunsListCommand_RequiresDatabaseURL(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "runs", "list")
	cmd.Env = envWithoutDatabaseURL()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "DATABASE_URL environment variable or --db-url flag is required")
}

func TestRunsShowCommand_InvalidRunID(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "runs", "show", "not-a-uuid")
	cmd.Env = envWithoutDatabaseURL()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid run ID format")
}

func TestRunsDeleteCommand_InvalidRunID(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "runs", "delete", "not-a-uuid")
	cmd.Env = envWithoutDatabaseURL()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid run ID format")
}

func TestRunsDeleteCommand_MissingArgument(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "runs", "delete")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "arg")
}
