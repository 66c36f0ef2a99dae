package ports

import (
	"context"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, report *domain.BootstrapReport) error
}
