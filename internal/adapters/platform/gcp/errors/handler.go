package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

// HandleGoogleError maps a Google API error onto an application error code.
// resourceType and resourceID only feed the message.
func HandleGoogleError(ctx context.Context, resourceType, resourceID string, err error) error {
	if err == nil {
		return nil
	}

	if ctx.Err() != nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodeTimeout,
			fmt.Sprintf("context ended during Google API call for %s %s", resourceType, resourceID))
	}

	var apiErr *googleapi.Error
	if stderrs.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.WrapUserFacing(err, errors.CodePlatformAuthError,
				fmt.Sprintf("permission denied on %s %s", resourceType, resourceID),
				"Check that the instance service account has the cloud-platform scope and the required IAM roles.")
		case http.StatusNotFound:
			return errors.Wrap(err, errors.CodeResourceNotFound,
				fmt.Sprintf("%s '%s' not found", resourceType, resourceID))
		}
	}

	return errors.Wrap(err, errors.CodePlatformAPIError,
		fmt.Sprintf("failed to access %s '%s'", resourceType, resourceID))
}
