package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlmentor v")
}

func TestQuestionsCommand(t *testing.T) {
	out, err := runCommand(t, "questions")
	require.NoError(t, err)
	assert.Contains(t, out, "DIFFICULTY")
	assert.Contains(t, out, "Show the total number of admissions.")
}

func TestQuestionsCommandWithCustomBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
setup: |
  CREATE TABLE t (x INTEGER);
questions:
  - id: 1
    prompt: Custom question prompt.
    difficulty: easy
    reference: SELECT x FROM t
`), 0o644))

	out, err := runCommand(t, "questions", "--bank", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Custom question prompt.")
}

func TestHintCommandUnknownQuestion(t *testing.T) {
	_, err := runCommand(t, "hint", "999", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown question")
}

func TestValidateCommandRejectsBadID(t *testing.T) {
	_, err := runCommand(t, "validate", "abc", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question id")
}

func TestHintCommandRejectsBadTier(t *testing.T) {
	_, err := runCommand(t, "hint", "1", "SELECT 1", "--tier", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
