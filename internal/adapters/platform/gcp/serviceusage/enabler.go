package serviceusage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/serviceusage/v1"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp"
	gcperrors "github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/pkg/poll"
)

// batchLimit is the most service IDs BatchEnable accepts per call.
const batchLimit = 20

type Enabler struct {
	svc    *serviceusage.Service
	poller *poll.Poller
	logger ports.Logger
}

func NewEnabler(ctx context.Context, auth gcp.AuthOptions, pollInterval, timeout time.Duration, logger ports.Logger) (*Enabler, error) {
	svc, err := serviceusage.NewService(ctx, gcp.ClientOptions(auth)...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "failed to create Service Usage client")
	}
	return &Enabler{svc: svc, poller: poll.New(pollInterval, timeout), logger: logger}, nil
}

// EnableAPIs enables every service in apis on project and waits for the
// long-running operation to finish. Already-enabled services are a no-op
// on the server side.
func (e *Enabler) EnableAPIs(ctx context.Context, project string, apis []string) error {
	if len(apis) == 0 {
		return nil
	}
	parent := "projects/" + project
	for start := 0; start < len(apis); start += batchLimit {
		end := min(start+batchLimit, len(apis))
		batch := apis[start:end]
		e.logger.Infof(ctx, "Enabling APIs on %s: %s", project, strings.Join(batch, ", "))

		op, err := e.svc.Services.BatchEnable(parent, &serviceusage.BatchEnableServicesRequest{ServiceIds: batch}).Context(ctx).Do()
		if err != nil {
			return gcperrors.HandleGoogleError(ctx, "project services", project, err)
		}
		if err := e.wait(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

func (e *Enabler) wait(ctx context.Context, op *serviceusage.Operation) error {
	name := op.Name
	err := e.poller.Until(ctx, func(ctx context.Context) (bool, error) {
		if op.Done {
			return true, nil
		}
		next, err := e.svc.Operations.Get(name).Context(ctx).Do()
		if err != nil {
			return false, gcperrors.HandleGoogleError(ctx, "operation", name, err)
		}
		op = next
		return op.Done, nil
	})
	if err != nil {
		if errors.GetCode(err) != errors.CodeUnknown {
			return err
		}
		return errors.Wrap(err, errors.CodeTimeout, fmt.Sprintf("waiting for operation %s", name))
	}
	if op.Error != nil {
		return errors.New(errors.CodePlatformAPIError, fmt.Sprintf("operation %s failed: %s", name, op.Error.Message))
	}
	return nil
}
