// Package providers holds the per-provider configurators and the account
// registration flow they share.
package providers

import (
	"context"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

// Register enables req.Provider and adds the account. An account left over
// from an earlier run is edited in place with the same parameters.
func Register(ctx context.Context, tool ports.DeploymentTool, req domain.AccountRequest, logger ports.Logger) error {
	if err := tool.EnableProvider(ctx, req.Provider); err != nil {
		return err
	}

	err := tool.AddAccount(ctx, req)
	if errors.Is(err, errors.CodeProviderConflict) {
		logger.Warnf(ctx, "%s account %s already exists, updating it", req.Provider, req.Account)
		return tool.EditAccount(ctx, req)
	}
	return err
}

// Skipped is the result for a provider whose enable attribute is unset.
func Skipped(p domain.Provider) domain.ProviderResult {
	return domain.ProviderResult{Provider: p, State: domain.StateSkipped, Detail: "not enabled"}
}

// Failed marks res as failed and hands err back for propagation.
func Failed(res domain.ProviderResult, err error) (domain.ProviderResult, error) {
	res.State = domain.StateFailed
	res.Error = err
	return res, err
}
