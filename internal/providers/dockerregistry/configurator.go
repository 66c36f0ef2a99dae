package dockerregistry

import (
	"context"
	"fmt"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/providers"
)

// JSONKeyUsername is the fixed username GCR expects with a service account key.
const JSONKeyUsername = "_json_key"

// Configurator registers a GCR-backed docker-registry account authenticated
// with a freshly minted key for the instance service account.
type Configurator struct {
	tool     ports.DeploymentTool
	metadata ports.MetadataService
	keys     ports.ServiceAccountKeyCreator
	writer   ports.SecretWriter
	keyPath  string
	logger   ports.Logger
}

func NewConfigurator(
	tool ports.DeploymentTool,
	metadata ports.MetadataService,
	keys ports.ServiceAccountKeyCreator,
	writer ports.SecretWriter,
	keyPath string,
	logger ports.Logger,
) *Configurator {
	return &Configurator{
		tool:     tool,
		metadata: metadata,
		keys:     keys,
		writer:   writer,
		keyPath:  keyPath,
		logger:   logger,
	}
}

func (c *Configurator) Provider() domain.Provider {
	return domain.ProviderDockerRegistry
}

func (c *Configurator) Configure(ctx context.Context, _ domain.Environment, attrs domain.Attributes) (domain.ProviderResult, error) {
	if !attrs.GCR.Enabled {
		return providers.Skipped(c.Provider()), nil
	}

	res := domain.ProviderResult{
		Provider: c.Provider(),
		Account:  attrs.GCR.Account,
		State:    domain.StateConfiguring,
	}

	email, err := c.metadata.ServiceAccountEmail(ctx)
	if err != nil {
		return providers.Failed(res, err)
	}
	key, err := c.keys.CreateKey(ctx, email)
	if err != nil {
		return providers.Failed(res, err)
	}
	if err := c.writer.WriteSecret(c.keyPath, key); err != nil {
		return providers.Failed(res, errors.Wrap(err, errors.CodeCredentialWrite, "failed to write registry key"))
	}
	res.CredentialPath = c.keyPath

	req := domain.AccountRequest{
		Provider: c.Provider(),
		Account:  attrs.GCR.Account,
		Parameters: []domain.Parameter{
			{Name: "address", Value: attrs.GCR.Address},
			{Name: "username", Value: JSONKeyUsername},
			{Name: "password-file", Value: c.keyPath},
		},
	}
	if err := providers.Register(ctx, c.tool, req, c.logger); err != nil {
		return providers.Failed(res, err)
	}

	res.State = domain.StateRegistered
	res.Detail = fmt.Sprintf("%s as %s", attrs.GCR.Address, email)
	return res, nil
}
