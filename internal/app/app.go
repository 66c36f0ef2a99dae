package app

import (
	"context"

	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
)

// Application runs the bootstrap once and renders whatever report it
// produced, complete or not.
type Application struct {
	Bootstrapper ports.Bootstrapper
	Reporter     ports.Reporter
	Logger       ports.Logger
}

func NewApplication(bootstrapper ports.Bootstrapper, reporter ports.Reporter, logger ports.Logger) *Application {
	return &Application{
		Bootstrapper: bootstrapper,
		Reporter:     reporter,
		Logger:       logger,
	}
}

func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting Halyard bootstrap...")

	report, err := a.Bootstrapper.Run(ctx)
	if report != nil && a.Reporter != nil {
		// The report matters most when the run failed, so render it on a
		// context that is not already cancelled.
		if reportErr := a.Reporter.Report(context.WithoutCancel(ctx), report); reportErr != nil {
			a.Logger.Warnf(ctx, "Failed to render bootstrap report: %v", reportErr)
		}
	}

	if err != nil {
		a.Logger.Errorf(ctx, err, "Halyard bootstrap failed")
		return err
	}

	a.Logger.Infof(ctx, "Halyard bootstrap completed successfully")
	return nil
}
