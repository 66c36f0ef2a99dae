package google

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	portsmocks "github.com/olusolaa/halyard-bootstrap/internal/core/ports/mocks"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/mocks"
)

const credsPath = "/home/spinnaker/.gcp/gce-account.json"

var (
	env   = domain.Environment{Project: "my-project", Zone: "us-central1-f", Instance: "spinnaker-1"}
	attrs = domain.Attributes{GCEAccount: "acct1"}
)

func TestConfigure(t *testing.T) {
	tests := []struct {
		name       string
		written    bool
		wantParams []domain.Parameter
		wantPath   string
	}{
		{
			name:       "instance credentials",
			wantParams: []domain.Parameter{{Name: "project", Value: "my-project"}},
		},
		{
			name:    "json key supplied",
			written: true,
			wantParams: []domain.Parameter{
				{Name: "project", Value: "my-project"},
				{Name: "json-path", Value: credsPath},
			},
			wantPath: credsPath,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mocks.MockMaterializer{}
			m.On("Materialize", mock.Anything, domain.KeyGCECreds, credsPath).Return(tt.written, nil).Once()
			tool := portsmocks.NewDeploymentTool(t)
			tool.On("EnableProvider", mock.Anything, domain.ProviderGoogle).Return(nil).Once()
			tool.On("AddAccount", mock.Anything, domain.AccountRequest{
				Provider:   domain.ProviderGoogle,
				Account:    "acct1",
				Parameters: tt.wantParams,
			}).Return(nil).Once()

			res, err := NewConfigurator(tool, m, credsPath, portsmocks.NewLogger(t)).Configure(context.Background(), env, attrs)
			require.NoError(t, err)
			assert.Equal(t, domain.StateRegistered, res.State)
			assert.Equal(t, tt.wantPath, res.CredentialPath)
			m.AssertExpectations(t)
		})
	}
}

func TestConfigure_MaterializeFailure(t *testing.T) {
	m := &mocks.MockMaterializer{}
	m.On("Materialize", mock.Anything, domain.KeyGCECreds, credsPath).
		Return(false, errors.New(errors.CodeCredentialWrite, "disk full"))
	tool := portsmocks.NewDeploymentTool(t)

	res, err := NewConfigurator(tool, m, credsPath, portsmocks.NewLogger(t)).Configure(context.Background(), env, attrs)
	require.Error(t, err)
	assert.Equal(t, errors.CodeCredentialWrite, errors.GetCode(err))
	assert.Equal(t, domain.StateFailed, res.State)
	tool.AssertNotCalled(t, "EnableProvider", mock.Anything, mock.Anything)
}
