package service

import (
	"context"
	stderrs "errors"

	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/pkg/poll"
)

// WaitForReady blocks until the deployment tool answers its readiness probe.
func WaitForReady(ctx context.Context, tool ports.DeploymentTool, poller *poll.Poller, logger ports.Logger) error {
	attempts := 0
	err := poller.Until(ctx, func(ctx context.Context) (bool, error) {
		attempts++
		if tool.Ready(ctx) {
			return true, nil
		}
		if attempts == 1 || attempts%30 == 0 {
			logger.Infof(ctx, "Waiting for Halyard daemon to start (attempt %d)", attempts)
		}
		return false, nil
	})
	if err == nil {
		logger.Debugf(ctx, "Halyard ready after %d probe(s)", attempts)
		return nil
	}

	if stderrs.Is(err, poll.ErrTimeout) {
		return errors.WrapUserFacing(err, errors.CodeToolNotReady, "Halyard did not become ready",
			"Check the halyard service status with `systemctl status halyard` or raise --ready-timeout.")
	}
	return errors.Wrap(err, errors.CodeTimeout, "interrupted while waiting for Halyard")
}
