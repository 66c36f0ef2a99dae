package ports

import (
	"context"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
)

// ProviderConfigurator registers one Halyard provider. A disabled provider
// reports StateSkipped with a nil error.
type ProviderConfigurator interface {
	Provider() domain.Provider
	Configure(ctx context.Context, env domain.Environment, attrs domain.Attributes) (domain.ProviderResult, error)
}
