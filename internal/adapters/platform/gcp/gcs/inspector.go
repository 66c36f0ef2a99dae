package gcs

import (
	"context"
	stderrs "errors"

	"cloud.google.com/go/storage"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp"
	gcperrors "github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

type Inspector struct {
	client *storage.Client
	logger ports.Logger
}

func NewInspector(ctx context.Context, auth gcp.AuthOptions, logger ports.Logger) (*Inspector, error) {
	client, err := storage.NewClient(ctx, gcp.ClientOptions(auth)...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "failed to create storage client")
	}
	return &Inspector{client: client, logger: logger}, nil
}

// BucketExists reports whether the bucket is visible to the caller. A
// missing bucket is not an error.
func (i *Inspector) BucketExists(ctx context.Context, name string) (bool, error) {
	attrs, err := i.client.Bucket(name).Attrs(ctx)
	if stderrs.Is(err, storage.ErrBucketNotExist) {
		return false, nil
	}
	if err != nil {
		return false, gcperrors.HandleGoogleError(ctx, "bucket", name, err)
	}
	i.logger.Debugf(ctx, "Bucket %s exists in %s", attrs.Name, attrs.Location)
	return true, nil
}

func (i *Inspector) Close() error {
	return i.client.Close()
}
