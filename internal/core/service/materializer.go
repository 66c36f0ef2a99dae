package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

// Materializer turns a secret metadata attribute into an owner-only file and
// erases the attribute once the file exists.
type Materializer struct {
	metadata ports.MetadataService
	writer   ports.SecretWriter
	logger   ports.Logger
}

func NewMaterializer(metadata ports.MetadataService, writer ports.SecretWriter, logger ports.Logger) *Materializer {
	return &Materializer{metadata: metadata, writer: writer, logger: logger}
}

// Materialize writes attribute to path. It reports false with a nil error
// when the attribute is absent or blank; a blank attribute is still cleared.
// A failed clear after a successful write returns true with the error, so the
// file stays in place for the operator to inspect.
func (m *Materializer) Materialize(ctx context.Context, attribute, path string) (bool, error) {
	value, err := m.metadata.Get(ctx, attribute)
	if err != nil {
		return false, err
	}

	if strings.TrimSpace(value) == "" {
		if value != "" {
			m.logger.Debugf(ctx, "Attribute %s is blank, clearing it", attribute)
			if err := m.metadata.Clear(ctx, attribute); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	if err := m.writer.WriteSecret(path, []byte(value)); err != nil {
		return false, errors.Wrap(err, errors.CodeCredentialWrite, fmt.Sprintf("failed to materialize %s", attribute))
	}
	m.logger.Infof(ctx, "Wrote %s to %s", attribute, path)

	if err := m.metadata.Clear(ctx, attribute); err != nil {
		return true, err
	}
	return true, nil
}
