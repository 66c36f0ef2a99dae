package filesystem

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portsmocks "github.com/olusolaa/halyard-bootstrap/internal/core/ports/mocks"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

func TestWriter_WriteSecretCreatesOwnerReadOnlyFile(t *testing.T) {
	w, err := NewWriter("", portsmocks.NewLogger(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ".gcp", "nested", "gce-account.json")
	require.NoError(t, w.WriteSecret(path, []byte(`{"type":"service_account"}`)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o400), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"service_account"}`, string(data))

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())
}

func TestWriter_ReplacesExistingReadOnlyFile(t *testing.T) {
	w, err := NewWriter("", portsmocks.NewLogger(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, w.WriteSecret(path, []byte("old")))
	require.NoError(t, w.WriteSecret(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriter_WriteFileModes(t *testing.T) {
	w, err := NewWriter("", portsmocks.NewLogger(t))
	require.NoError(t, err)
	dir := t.TempDir()

	script := filepath.Join(dir, "first_time_boot.sh")
	require.NoError(t, w.WriteFile(script, []byte("#!/bin/bash\n"), true))
	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	plain := filepath.Join(dir, "notes")
	require.NoError(t, w.WriteFile(plain, []byte("x"), false))
	info, err = os.Stat(plain)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriter_FailureLeavesNoFile(t *testing.T) {
	w, err := NewWriter("", portsmocks.NewLogger(t))
	require.NoError(t, err)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o600))

	path := filepath.Join(blocker, "secret.json")
	err = w.WriteSecret(path, []byte("x"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeCredentialWrite, errors.GetCode(err))
	_, statErr := os.Stat(path)
	assert.Error(t, statErr)
}

func TestWriter_ChownToCurrentUser(t *testing.T) {
	current, err := user.Current()
	require.NoError(t, err)

	w, err := NewWriter(current.Username, portsmocks.NewLogger(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "a", "b", "key.json")
	require.NoError(t, w.WriteSecret(path, []byte("k")))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o400), info.Mode().Perm())
}

func TestNewWriter_UnknownUser(t *testing.T) {
	_, err := NewWriter("no-such-user-halboot-4711", portsmocks.NewLogger(t))
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
}
