package iam

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/iam/v1"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp"
	gcperrors "github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

// KeyCreator mints JSON keys for a service account, used as the password
// for the `_json_key` registry login.
type KeyCreator struct {
	svc    *iam.Service
	logger ports.Logger
}

func NewKeyCreator(ctx context.Context, auth gcp.AuthOptions, logger ports.Logger) (*KeyCreator, error) {
	svc, err := iam.NewService(ctx, gcp.ClientOptions(auth)...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "failed to create IAM client")
	}
	return &KeyCreator{svc: svc, logger: logger}, nil
}

func (k *KeyCreator) CreateKey(ctx context.Context, email string) ([]byte, error) {
	name := "projects/-/serviceAccounts/" + email
	key, err := k.svc.Projects.ServiceAccounts.Keys.Create(name, &iam.CreateServiceAccountKeyRequest{
		PrivateKeyType: "TYPE_GOOGLE_CREDENTIALS_FILE",
	}).Context(ctx).Do()
	if err != nil {
		return nil, gcperrors.HandleGoogleError(ctx, "service account", email, err)
	}

	data, err := base64.StdEncoding.DecodeString(key.PrivateKeyData)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, fmt.Sprintf("malformed key data for %s", email))
	}
	k.logger.Infof(ctx, "Created key %s for %s", key.Name, email)
	return data, nil
}
