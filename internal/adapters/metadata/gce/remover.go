package gce

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/compute/v1"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp"
	gcperrors "github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

const operationDone = "DONE"

// ComputeRemover deletes instance metadata keys through the Compute Engine
// API, the same call `gcloud compute instances remove-metadata` makes.
type ComputeRemover struct {
	svc    *compute.Service
	logger ports.Logger
}

func NewComputeRemover(ctx context.Context, auth gcp.AuthOptions, logger ports.Logger) (*ComputeRemover, error) {
	svc, err := compute.NewService(ctx, gcp.ClientOptions(auth)...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "failed to create Compute Engine client")
	}
	return &ComputeRemover{svc: svc, logger: logger}, nil
}

func (r *ComputeRemover) RemoveAttribute(ctx context.Context, project, zone, instance, key string) error {
	inst, err := r.svc.Instances.Get(project, zone, instance).Context(ctx).Do()
	if err != nil {
		return gcperrors.HandleGoogleError(ctx, "instance", instance, err)
	}
	if inst.Metadata == nil {
		return nil
	}

	kept := make([]*compute.MetadataItems, 0, len(inst.Metadata.Items))
	for _, item := range inst.Metadata.Items {
		if item == nil || item.Key == key {
			continue
		}
		kept = append(kept, item)
	}
	if len(kept) == len(inst.Metadata.Items) {
		r.logger.Debugf(ctx, "Metadata key %s not present on %s, nothing to remove", key, instance)
		return nil
	}

	md := &compute.Metadata{
		Fingerprint: inst.Metadata.Fingerprint,
		Items:       kept,
	}
	op, err := r.svc.Instances.SetMetadata(project, zone, instance, md).Context(ctx).Do()
	if err != nil {
		return gcperrors.HandleGoogleError(ctx, "instance metadata", instance, err)
	}
	return r.wait(ctx, project, zone, op)
}

// wait blocks until the zone operation finishes. Operations.Wait returns
// early after a server-side deadline, hence the loop.
func (r *ComputeRemover) wait(ctx context.Context, project, zone string, op *compute.Operation) error {
	name := op.Name
	for op.Status != operationDone {
		next, err := r.svc.ZoneOperations.Wait(project, zone, name).Context(ctx).Do()
		if err != nil {
			return gcperrors.HandleGoogleError(ctx, "operation", name, err)
		}
		op = next
	}
	if op.Error != nil && len(op.Error.Errors) > 0 {
		msgs := make([]string, 0, len(op.Error.Errors))
		for _, e := range op.Error.Errors {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Code, e.Message))
		}
		return errors.New(errors.CodePlatformAPIError, fmt.Sprintf("operation %s failed: %s", op.Name, strings.Join(msgs, "; ")))
	}
	return nil
}
