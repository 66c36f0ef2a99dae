package halyard

import (
	"context"
	"fmt"
	"strings"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

const DefaultBinary = "hal"

// Client drives the hal CLI through a CommandRunner.
type Client struct {
	runner ports.CommandRunner
	binary string
	logger ports.Logger
}

func NewClient(runner ports.CommandRunner, binary string, logger ports.Logger) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{runner: runner, binary: binary, logger: logger}
}

// Ready reports whether the Halyard daemon answers `hal --ready`.
func (c *Client) Ready(ctx context.Context) bool {
	_, err := c.runner.Run(ctx, c.command("--ready"))
	return err == nil
}

func (c *Client) EnableProvider(ctx context.Context, provider domain.Provider) error {
	return c.run(ctx, c.command("config", "provider", provider.String(), "enable"))
}

// AddAccount registers a new account. An account that already exists yields
// a CodeProviderConflict error so callers can fall back to EditAccount.
func (c *Client) AddAccount(ctx context.Context, req domain.AccountRequest) error {
	cmd := c.accountCommand("add", req)
	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		if strings.Contains(res.Output, "already exists") {
			c.logger.Debugf(ctx, "%s account %s is already registered", req.Provider, req.Account)
			return errors.Wrap(fmt.Errorf("%s account %q already exists", req.Provider, req.Account),
				errors.CodeProviderConflict, "account already registered")
		}
		return errors.Wrap(err, errors.CodeExternalCommand, fmt.Sprintf("failed to add %s account %s", req.Provider, req.Account))
	}
	return nil
}

func (c *Client) EditAccount(ctx context.Context, req domain.AccountRequest) error {
	return c.run(ctx, c.accountCommand("edit", req))
}

func (c *Client) ConfigureGCSStorage(ctx context.Context, project, bucket, credentialPath string) error {
	args := []string{"config", "storage", "gcs", "edit", "--project", project, "--bucket", bucket}
	if credentialPath != "" {
		args = append(args, "--json-path", credentialPath)
	}
	return c.run(ctx, c.command(args...))
}

func (c *Client) SetStorageType(ctx context.Context, storageType string) error {
	return c.run(ctx, c.command("config", "storage", "edit", "--type", storageType))
}

func (c *Client) SetDeploymentType(ctx context.Context, deploymentType string) error {
	return c.run(ctx, c.command("config", "deploy", "edit", "--type", deploymentType))
}

func (c *Client) ApplyDeployment(ctx context.Context) error {
	return c.run(ctx, c.command("deploy", "apply"))
}

func (c *Client) accountCommand(verb string, req domain.AccountRequest) ports.Command {
	args := []string{"config", "provider", req.Provider.String(), "account", verb, req.Account}
	for _, p := range req.Parameters {
		args = append(args, "--"+p.Name)
		if p.Value != "" {
			args = append(args, p.Value)
		}
	}
	cmd := c.command(args...)
	cmd.Stdin = req.Stdin
	return cmd
}

func (c *Client) command(args ...string) ports.Command {
	return ports.Command{Name: c.binary, Args: args}
}

func (c *Client) run(ctx context.Context, cmd ports.Command) error {
	if _, err := c.runner.Run(ctx, cmd); err != nil {
		return errors.Wrap(err, errors.CodeExternalCommand, fmt.Sprintf("%s %s failed", c.binary, strings.Join(cmd.Args, " ")))
	}
	return nil
}
