package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
)

const (
	bucketPrefix      = "spinnaker-"
	StorageTypeGCS    = "gcs"
	redactedSubstring = "redacted"
)

var bucketUnsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// DeriveBucketName maps a project id onto the persistence bucket name.
// Buckets created by earlier installs depend on this mapping staying exact.
func DeriveBucketName(project string) string {
	name := bucketUnsafeChars.ReplaceAllString(project, "-")
	name = strings.ReplaceAll(name, "google", redactedSubstring)
	return bucketPrefix + name
}

// StorageConfigurator points Halyard's persistent storage at the project's
// GCS bucket. The inspector is optional and only informs the log.
type StorageConfigurator struct {
	tool      ports.DeploymentTool
	inspector ports.BucketInspector
	logger    ports.Logger
}

func NewStorageConfigurator(tool ports.DeploymentTool, inspector ports.BucketInspector, logger ports.Logger) *StorageConfigurator {
	return &StorageConfigurator{tool: tool, inspector: inspector, logger: logger}
}

// Configure returns the bucket it configured.
func (s *StorageConfigurator) Configure(ctx context.Context, project, credentialPath string) (string, error) {
	bucket := DeriveBucketName(project)
	s.inspect(ctx, bucket)

	if err := s.tool.ConfigureGCSStorage(ctx, project, bucket, credentialPath); err != nil {
		return bucket, err
	}
	if err := s.tool.SetStorageType(ctx, StorageTypeGCS); err != nil {
		return bucket, err
	}
	return bucket, nil
}

func (s *StorageConfigurator) inspect(ctx context.Context, bucket string) {
	if s.inspector == nil {
		return
	}
	exists, err := s.inspector.BucketExists(ctx, bucket)
	switch {
	case err != nil:
		s.logger.Warnf(ctx, "Could not inspect bucket %s: %v", bucket, err)
	case exists:
		s.logger.Infof(ctx, "Reusing existing bucket %s", bucket)
	default:
		s.logger.Infof(ctx, "Bucket %s does not exist yet; Halyard will create it", bucket)
	}
}

func describeBucket(bucket, credentialPath string) string {
	if credentialPath == "" {
		return fmt.Sprintf("gs://%s (instance credentials)", bucket)
	}
	return fmt.Sprintf("gs://%s (key %s)", bucket, credentialPath)
}
