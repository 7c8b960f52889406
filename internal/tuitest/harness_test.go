package tuitest

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunPlaysStepsAndRecordsOutput(t *testing.T) {
	requireShell(t)
	rec, err := Run(context.Background(), Config{
		Command: []string{"sh", "-c", `echo "Page 1/2"; read line; echo "got $line"`},
		Steps:   []Step{WaitFor("Page 1/2", []byte("c\r"))},
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.True(t, rec.Contains("got c"), rec.Output())
}

func TestRunFailsOnNonZeroExit(t *testing.T) {
	requireShell(t)
	_, err := Run(context.Background(), Config{
		Command: []string{"sh", "-c", "echo broken; exit 3"},
		Timeout: 5 * time.Second,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "program failed")
	assert.Contains(t, err.Error(), "broken")
}

func TestRunRequiresCommand(t *testing.T) {
	_, err := Run(context.Background(), Config{})
	require.EqualError(t, err, "tuitest: command is required")
}
