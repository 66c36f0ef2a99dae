package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/filesystem"
	portsmocks "github.com/olusolaa/halyard-bootstrap/internal/core/ports/mocks"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/mocks"
)

func newFSMaterializer(t *testing.T, store *mocks.MetadataStore) *Materializer {
	logger := portsmocks.NewLogger(t)
	w, err := filesystem.NewWriter("", logger)
	require.NoError(t, err)
	return NewMaterializer(store, w, logger)
}

func TestMaterialize_WritesOwnerOnlyFileAndClears(t *testing.T) {
	store := mocks.NewMetadataStore(map[string]string{"gce_creds": `{"type":"service_account"}`})
	path := filepath.Join(t.TempDir(), ".gcp", "gce-account.json")

	ok, err := newFSMaterializer(t, store).Materialize(context.Background(), "gce_creds", path)
	require.NoError(t, err)
	assert.True(t, ok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o400), info.Mode().Perm())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"service_account"}`, string(data))

	has, err := store.Has(context.Background(), "gce_creds")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMaterialize_EmptyCreatesNothing(t *testing.T) {
	tests := []struct {
		name        string
		attrs       map[string]string
		wantCleared []string
	}{
		{name: "absent", attrs: nil},
		{name: "blank", attrs: map[string]string{"gce_creds": "  \n"}, wantCleared: []string{"gce_creds"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMetadataStore(tt.attrs)
			path := filepath.Join(t.TempDir(), "creds.json")

			ok, err := newFSMaterializer(t, store).Materialize(context.Background(), "gce_creds", path)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.NoFileExists(t, path)
			assert.Equal(t, tt.wantCleared, store.Cleared)
		})
	}
}

func TestMaterialize_WriteFailureKeepsAttribute(t *testing.T) {
	store := mocks.NewMetadataStore(map[string]string{"gce_creds": "secret"})
	writer := &mocks.MockSecretWriter{}
	writer.On("WriteSecret", "/creds.json", []byte("secret")).Return(assert.AnError)

	ok, err := NewMaterializer(store, writer, portsmocks.NewLogger(t)).Materialize(context.Background(), "gce_creds", "/creds.json")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, errors.CodeCredentialWrite, errors.GetCode(err))
	assert.Empty(t, store.Cleared)
	assert.Equal(t, "secret", store.Attributes["gce_creds"])
}

func TestMaterialize_ClearFailureIsReported(t *testing.T) {
	store := mocks.NewMetadataStore(map[string]string{"gce_creds": "secret"})
	store.ClearErr = errors.New(errors.CodeMetadataClearError, "denied")
	writer := &mocks.MockSecretWriter{}
	writer.On("WriteSecret", mock.Anything, mock.Anything).Return(nil)

	ok, err := NewMaterializer(store, writer, portsmocks.NewLogger(t)).Materialize(context.Background(), "gce_creds", "/creds.json")
	assert.True(t, ok)
	assert.Equal(t, errors.CodeMetadataClearError, errors.GetCode(err))
}
