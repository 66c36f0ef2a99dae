package google

import (
	"context"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/providers"
)

// Configurator registers the Compute Engine account. It always runs; the
// JSON key is optional and the instance credentials are used without one.
type Configurator struct {
	tool         ports.DeploymentTool
	materializer ports.CredentialMaterializer
	credsPath    string
	logger       ports.Logger
}

func NewConfigurator(tool ports.DeploymentTool, materializer ports.CredentialMaterializer, credsPath string, logger ports.Logger) *Configurator {
	return &Configurator{tool: tool, materializer: materializer, credsPath: credsPath, logger: logger}
}

func (c *Configurator) Provider() domain.Provider {
	return domain.ProviderGoogle
}

func (c *Configurator) Configure(ctx context.Context, env domain.Environment, attrs domain.Attributes) (domain.ProviderResult, error) {
	res := domain.ProviderResult{
		Provider: c.Provider(),
		Account:  attrs.GCEAccount,
		State:    domain.StateConfiguring,
	}

	params := []domain.Parameter{{Name: "project", Value: env.Project}}
	written, err := c.materializer.Materialize(ctx, domain.KeyGCECreds, c.credsPath)
	if err != nil {
		return providers.Failed(res, err)
	}
	if written {
		res.CredentialPath = c.credsPath
		params = append(params, domain.Parameter{Name: "json-path", Value: c.credsPath})
	}

	req := domain.AccountRequest{Provider: c.Provider(), Account: attrs.GCEAccount, Parameters: params}
	if err := providers.Register(ctx, c.tool, req, c.logger); err != nil {
		return providers.Failed(res, err)
	}

	res.State = domain.StateRegistered
	res.Detail = "project " + env.Project
	if !written {
		res.Detail += " (instance credentials)"
	}
	return res, nil
}
