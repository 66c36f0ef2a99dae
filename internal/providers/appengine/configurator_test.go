package appengine

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

var env = domain.Environment{Project: "my-project", Zone: "us-central1-f", Instance: "spinnaker-1"}

func attrsWithUser(user string) domain.Attributes {
	return domain.Attributes{
		GCEAccount: "acct1",
		AppEngine:  domain.AppEngineAttributes{Enabled: true, Account: "my-appengine-account", GitUsername: user},
	}
}

func TestConfigure_GitCredentialsOnStdin(t *testing.T) {
	store := mocks.NewMetadataStore(map[string]string{domain.KeyAppEngineGitPassword: "s3cret"})
	tool := portsmocks.NewDeploymentTool(t)
	tool.On("EnableProvider", mock.Anything, domain.ProviderAppEngine).Return(nil).Once()
	tool.On("AddAccount", mock.Anything, domain.AccountRequest{
		Provider: domain.ProviderAppEngine,
		Account:  "my-appengine-account",
		Parameters: []domain.Parameter{
			{Name: "project", Value: "my-project"},
			{Name: "git-https-username", Value: "bot"},
			{Name: "git-https-password"},
		},
		Stdin: "s3cret\n",
	}).Return(nil).Once()

	res, err := NewConfigurator(tool, store, portsmocks.NewLogger(t)).Configure(context.Background(), env, attrsWithUser("bot"))
	require.NoError(t, err)
	assert.Equal(t, domain.StateRegistered, res.State)
	assert.NotContains(t, res.Detail, "s3cret")
	assert.Equal(t, []string{domain.KeyAppEngineGitPassword}, store.Cleared)
}

func TestConfigure_HalfCredentialsIgnored(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
	}{
		{name: "username only", user: "bot"},
		{name: "password only", password: "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMetadataStore(nil)
			if tt.password != "" {
				store.Attributes[domain.KeyAppEngineGitPassword] = tt.password
			}
			logger := portsmocks.NewLogger(t)
			tool := portsmocks.NewDeploymentTool(t)
			tool.On("EnableProvider", mock.Anything, domain.ProviderAppEngine).Return(nil).Once()
			tool.On("AddAccount", mock.Anything, domain.AccountRequest{
				Provider:   domain.ProviderAppEngine,
				Account:    "my-appengine-account",
				Parameters: []domain.Parameter{{Name: "project", Value: "my-project"}},
			}).Return(nil).Once()

			_, err := NewConfigurator(tool, store, logger).Configure(context.Background(), env, attrsWithUser(tt.user))
			require.NoError(t, err)
			logger.AssertCalled(t, "Warnf", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, store.Attributes[domain.KeyAppEngineGitPassword])
		})
	}
}

func TestConfigure_ClearFailureAborts(t *testing.T) {
	store := mocks.NewMetadataStore(map[string]string{domain.KeyAppEngineGitPassword: "s3cret"})
	store.ClearErr = errors.New(errors.CodeMetadataClearError, "setMetadata denied")
	tool := portsmocks.NewDeploymentTool(t)

	res, err := NewConfigurator(tool, store, portsmocks.NewLogger(t)).Configure(context.Background(), env, attrsWithUser("bot"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeMetadataClearError, errors.GetCode(err))
	assert.Equal(t, domain.StateFailed, res.State)
	tool.AssertNotCalled(t, "AddAccount", mock.Anything, mock.Anything)
}

func TestConfigure_Disabled(t *testing.T) {
	res, err := NewConfigurator(portsmocks.NewDeploymentTool(t), mocks.NewMetadataStore(nil), portsmocks.NewLogger(t)).
		Configure(context.Background(), env, domain.Attributes{GCEAccount: "acct1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StateSkipped, res.State)
}
