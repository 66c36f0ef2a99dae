package ports

import (
	"context"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
)

//go:generate mockery --name Bootstrapper --output ./mocks --outpkg mocks --case underscore
type Bootstrapper interface {
	Run(ctx context.Context) (*domain.BootstrapReport, error)
}
