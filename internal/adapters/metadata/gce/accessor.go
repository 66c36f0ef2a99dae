package gce

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/compute/metadata"

	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

// MetadataClient is the slice of *metadata.Client the accessor needs.
type MetadataClient interface {
	GetWithContext(ctx context.Context, suffix string) (string, error)
}

type Accessor struct {
	client  MetadataClient
	remover ports.AttributeRemover
	logger  ports.Logger

	mu       sync.Mutex
	location *instanceLocation
}

type instanceLocation struct {
	project, zone, instance string
}

type Option func(*Accessor)

func WithClient(c MetadataClient) Option {
	return func(a *Accessor) { a.client = c }
}

// NewAccessor talks to the metadata server named by GCE_METADATA_HOST, or the
// link-local default when unset.
func NewAccessor(timeout time.Duration, remover ports.AttributeRemover, logger ports.Logger, opts ...Option) *Accessor {
	a := &Accessor{
		client:  metadata.NewClient(&http.Client{Timeout: timeout}),
		remover: remover,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Accessor) Get(ctx context.Context, name string) (string, error) {
	v, err := a.client.GetWithContext(ctx, "instance/attributes/"+name)
	if err != nil {
		if isNotDefined(err) {
			return "", nil
		}
		return "", errors.Wrap(err, errors.CodeMetadataError, fmt.Sprintf("failed to read metadata attribute %q", name))
	}
	return v, nil
}

func (a *Accessor) Has(ctx context.Context, name string) (bool, error) {
	v, err := a.Get(ctx, name)
	if err != nil {
		return false, err
	}
	return v != "", nil
}

// Clear removes the attribute from this instance. A stale secret left in
// metadata stays exposed, so every failure here is fatal to the caller.
func (a *Accessor) Clear(ctx context.Context, name string) error {
	if a.remover == nil {
		return errors.New(errors.CodeMetadataClearError, "no attribute remover configured")
	}
	loc, err := a.resolveLocation(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CodeMetadataClearError, fmt.Sprintf("cannot clear %q without instance location", name))
	}
	a.logger.Debugf(ctx, "Clearing metadata attribute %s on %s/%s", name, loc.zone, loc.instance)
	if err := a.remover.RemoveAttribute(ctx, loc.project, loc.zone, loc.instance, name); err != nil {
		return errors.WrapUserFacing(err, errors.CodeMetadataClearError,
			fmt.Sprintf("failed to clear metadata attribute %q", name),
			"Remove the attribute manually with `gcloud compute instances remove-metadata`.")
	}
	return nil
}

func (a *Accessor) ProjectID(ctx context.Context) (string, error) {
	return a.getTrimmed(ctx, "project/project-id")
}

// Zone returns the short zone name; the server reports projects/N/zones/NAME.
func (a *Accessor) Zone(ctx context.Context) (string, error) {
	zone, err := a.getTrimmed(ctx, "instance/zone")
	if err != nil {
		return "", err
	}
	return zone[strings.LastIndex(zone, "/")+1:], nil
}

func (a *Accessor) InstanceName(ctx context.Context) (string, error) {
	return a.getTrimmed(ctx, "instance/name")
}

func (a *Accessor) ServiceAccountEmail(ctx context.Context) (string, error) {
	return a.getTrimmed(ctx, "instance/service-accounts/default/email")
}

func (a *Accessor) getTrimmed(ctx context.Context, suffix string) (string, error) {
	v, err := a.client.GetWithContext(ctx, suffix)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeMetadataError, fmt.Sprintf("failed to read metadata %s", suffix))
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errors.New(errors.CodeMetadataError, fmt.Sprintf("metadata %s is empty", suffix))
	}
	return v, nil
}

func (a *Accessor) resolveLocation(ctx context.Context) (instanceLocation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.location != nil {
		return *a.location, nil
	}
	project, err := a.ProjectID(ctx)
	if err != nil {
		return instanceLocation{}, err
	}
	zone, err := a.Zone(ctx)
	if err != nil {
		return instanceLocation{}, err
	}
	instance, err := a.InstanceName(ctx)
	if err != nil {
		return instanceLocation{}, err
	}
	a.location = &instanceLocation{project: project, zone: zone, instance: instance}
	return *a.location, nil
}

func isNotDefined(err error) bool {
	var nde metadata.NotDefinedError
	return stderrs.As(err, &nde)
}
