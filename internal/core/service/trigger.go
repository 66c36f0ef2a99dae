package service

import (
	"context"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

// StartupTrigger disarms the instance startup script so the bootstrap does
// not run again on the next boot. The script is kept on disk for reference.
type StartupTrigger struct {
	metadata   ports.MetadataService
	writer     ports.SecretWriter
	attribute  string
	backupPath string
	logger     ports.Logger
}

func NewStartupTrigger(metadata ports.MetadataService, writer ports.SecretWriter, attribute, backupPath string, logger ports.Logger) *StartupTrigger {
	if attribute == "" {
		attribute = domain.KeyStartupScript
	}
	return &StartupTrigger{
		metadata:   metadata,
		writer:     writer,
		attribute:  attribute,
		backupPath: backupPath,
		logger:     logger,
	}
}

// Disarm reports false when there was no startup script to remove.
func (t *StartupTrigger) Disarm(ctx context.Context) (bool, error) {
	script, err := t.metadata.Get(ctx, t.attribute)
	if err != nil {
		return false, err
	}
	if script == "" {
		t.logger.Warnf(ctx, "No %s attribute found; nothing to disarm", t.attribute)
		return false, nil
	}

	if t.backupPath != "" {
		if err := t.writer.WriteFile(t.backupPath, []byte(script), true); err != nil {
			return false, errors.Wrap(err, errors.CodeCredentialWrite, "failed to back up startup script")
		}
		t.logger.Infof(ctx, "Saved %s to %s", t.attribute, t.backupPath)
	}

	if err := t.metadata.Clear(ctx, t.attribute); err != nil {
		return false, err
	}
	return true, nil
}
