package appengine

import (
	"context"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/providers"
)

// Configurator registers an App Engine account, optionally with HTTPS git
// credentials for pulling application sources.
type Configurator struct {
	tool     ports.DeploymentTool
	metadata ports.MetadataService
	logger   ports.Logger
}

func NewConfigurator(tool ports.DeploymentTool, metadata ports.MetadataService, logger ports.Logger) *Configurator {
	return &Configurator{tool: tool, metadata: metadata, logger: logger}
}

func (c *Configurator) Provider() domain.Provider {
	return domain.ProviderAppEngine
}

func (c *Configurator) Configure(ctx context.Context, env domain.Environment, attrs domain.Attributes) (domain.ProviderResult, error) {
	if !attrs.AppEngine.Enabled {
		return providers.Skipped(c.Provider()), nil
	}

	res := domain.ProviderResult{
		Provider: c.Provider(),
		Account:  attrs.AppEngine.Account,
		State:    domain.StateConfiguring,
	}

	password, err := c.readPassword(ctx)
	if err != nil {
		return providers.Failed(res, err)
	}

	req := domain.AccountRequest{
		Provider:   c.Provider(),
		Account:    attrs.AppEngine.Account,
		Parameters: []domain.Parameter{{Name: "project", Value: env.Project}},
	}
	username := attrs.AppEngine.GitUsername
	switch {
	case username != "" && password != "":
		// hal prompts for the password on stdin when the flag has no value.
		req.Parameters = append(req.Parameters,
			domain.Parameter{Name: "git-https-username", Value: username},
			domain.Parameter{Name: "git-https-password"},
		)
		req.Stdin = password + "\n"
		res.Detail = "git user " + username
	case username != "" || password != "":
		c.logger.Warnf(ctx, "Ignoring git credentials: both %s and %s must be set",
			domain.KeyAppEngineGitUsername, domain.KeyAppEngineGitPassword)
	}

	if err := providers.Register(ctx, c.tool, req, c.logger); err != nil {
		return providers.Failed(res, err)
	}
	res.State = domain.StateRegistered
	return res, nil
}

// readPassword fetches the git password and erases it from metadata.
func (c *Configurator) readPassword(ctx context.Context) (string, error) {
	password, err := c.metadata.Get(ctx, domain.KeyAppEngineGitPassword)
	if err != nil || password == "" {
		return "", err
	}
	if err := c.metadata.Clear(ctx, domain.KeyAppEngineGitPassword); err != nil {
		return "", err
	}
	return password, nil
}
