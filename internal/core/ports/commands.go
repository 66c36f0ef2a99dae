package ports

import (
	"context"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
)

type Command struct {
	Name  string
	Args  []string
	Stdin string
}

type CommandResult struct {
	ExitCode int
	Output   string
}

//go:generate mockery --name CommandRunner --output ./mocks --outpkg mocks --case underscore

// CommandRunner runs one external command to completion. A non-zero exit is
// reported as an error carrying the captured output.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}

// DeploymentTool is the subset of the Halyard CLI the bootstrapper drives.
type DeploymentTool interface {
	Ready(ctx context.Context) bool
	EnableProvider(ctx context.Context, provider domain.Provider) error
	AddAccount(ctx context.Context, req domain.AccountRequest) error
	EditAccount(ctx context.Context, req domain.AccountRequest) error
	ConfigureGCSStorage(ctx context.Context, project, bucket, credentialPath string) error
	SetStorageType(ctx context.Context, storageType string) error
	SetDeploymentType(ctx context.Context, deploymentType string) error
	ApplyDeployment(ctx context.Context) error
}
