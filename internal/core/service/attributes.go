package service

import (
	"context"
	stderrs "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

// AttributeLoader reads the non-secret attributes once and validates them
// before anything on the machine is changed.
type AttributeLoader struct {
	metadata ports.MetadataService
	validate *validator.Validate
	logger   ports.Logger
}

func NewAttributeLoader(metadata ports.MetadataService, logger ports.Logger) *AttributeLoader {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("attr"); name != "" {
			return name
		}
		return f.Name
	})
	return &AttributeLoader{metadata: metadata, validate: v, logger: logger}
}

func (l *AttributeLoader) Load(ctx context.Context, env domain.Environment) (domain.Attributes, error) {
	r := attributeReader{ctx: ctx, metadata: l.metadata}

	attrs := domain.Attributes{
		GCEAccount: r.get(domain.KeyGCEAccount),
		GCR: domain.RegistryAttributes{
			Enabled: r.get(domain.KeyGCREnabled) != "",
		},
		Kube: domain.KubernetesAttributes{
			Enabled: r.get(domain.KeyKubeEnabled) != "",
		},
		AppEngine: domain.AppEngineAttributes{
			Enabled: r.get(domain.KeyAppEngineEnabled) != "",
		},
	}
	if attrs.GCR.Enabled {
		attrs.GCR.Account = r.getOr(domain.KeyGCRAccount, domain.DefaultGCRAccount)
		attrs.GCR.Address = r.getOr(domain.KeyGCRAddress, domain.DefaultGCRAddress)
	}
	if attrs.Kube.Enabled {
		attrs.Kube.Account = r.getOr(domain.KeyKubeAccount, domain.DefaultKubeAccount)
		attrs.Kube.Cluster = r.get(domain.KeyKubeCluster)
		attrs.Kube.Zone = r.getOr(domain.KeyKubeZone, env.Zone)
	}
	if attrs.AppEngine.Enabled {
		attrs.AppEngine.Account = r.getOr(domain.KeyAppEngineAccount, domain.DefaultAppEngineAccount)
		attrs.AppEngine.GitUsername = r.get(domain.KeyAppEngineGitUsername)
	}
	if r.err != nil {
		return domain.Attributes{}, r.err
	}

	if err := l.validate.StructCtx(ctx, attrs); err != nil {
		return domain.Attributes{}, missingAttributeError(err)
	}

	l.logger.Debugf(ctx, "Attributes loaded (gcr=%t kube=%t appengine=%t)",
		attrs.GCR.Enabled, attrs.Kube.Enabled, attrs.AppEngine.Enabled)
	return attrs, nil
}

type attributeReader struct {
	ctx      context.Context
	metadata ports.MetadataService
	err      error
}

func (r *attributeReader) get(key string) string {
	if r.err != nil {
		return ""
	}
	v, err := r.metadata.Get(r.ctx, key)
	if err != nil {
		r.err = err
		return ""
	}
	return strings.TrimSpace(v)
}

func (r *attributeReader) getOr(key, fallback string) string {
	if v := r.get(key); v != "" {
		return v
	}
	return fallback
}

func missingAttributeError(err error) error {
	var validationErrors validator.ValidationErrors
	if !stderrs.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeInternal, "attribute validation failed")
	}

	names := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		names = append(names, fe.Field())
	}
	return errors.NewUserFacing(errors.CodeMissingAttribute,
		fmt.Sprintf("missing required metadata attribute(s): %s", strings.Join(names, ", ")),
		"Set the attribute(s) on the instance and recreate it; the startup trigger has not been disarmed.")
}
