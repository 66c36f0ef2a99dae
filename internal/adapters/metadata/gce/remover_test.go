package gce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/compute/v1"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp"
	portsmocks "github.com/olusolaa/halyard-bootstrap/internal/core/ports/mocks"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

type fakeCompute struct {
	instance   compute.Instance
	getStatus  int
	setCalls   []compute.Metadata
	waitCalls  int
	opFailures []*compute.OperationErrorErrors
}

func (f *fakeCompute) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		path := r.URL.Path
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(path, "/projects/my-project/zones/us-central1-f/instances/spinnaker-1"):
			if f.getStatus != 0 {
				w.WriteHeader(f.getStatus)
				_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
				return
			}
			_ = json.NewEncoder(w).Encode(f.instance)
		case r.Method == http.MethodPost && strings.HasSuffix(path, "/instances/spinnaker-1/setMetadata"):
			var md compute.Metadata
			require.NoError(t, json.NewDecoder(r.Body).Decode(&md))
			f.setCalls = append(f.setCalls, md)
			_ = json.NewEncoder(w).Encode(compute.Operation{Name: "op-1", Status: "RUNNING"})
		case r.Method == http.MethodPost && strings.HasSuffix(path, "/operations/op-1/wait"):
			f.waitCalls++
			op := compute.Operation{Name: "op-1", Status: "DONE"}
			if len(f.opFailures) > 0 {
				op.Error = &compute.OperationError{Errors: f.opFailures}
			}
			_ = json.NewEncoder(w).Encode(op)
		default:
			t.Errorf("unexpected request %s %s", r.Method, path)
			w.WriteHeader(http.StatusNotImplemented)
		}
	})
}

func newTestRemover(t *testing.T, fake *fakeCompute) *ComputeRemover {
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	r, err := NewComputeRemover(context.Background(), gcp.AuthOptions{
		Endpoint:   srv.URL + "/compute/v1/",
		HTTPClient: srv.Client(),
	}, portsmocks.NewLogger(t))
	require.NoError(t, err)
	return r
}

func strPtr(s string) *string { return &s }

func TestComputeRemover_RemovesOnlyTheKey(t *testing.T) {
	fake := &fakeCompute{instance: compute.Instance{
		Name: "spinnaker-1",
		Metadata: &compute.Metadata{
			Fingerprint: "fp-1",
			Items: []*compute.MetadataItems{
				{Key: "gce_creds", Value: strPtr("{secret}")},
				{Key: "gce_account", Value: strPtr("acct1")},
			},
		},
	}}
	r := newTestRemover(t, fake)

	err := r.RemoveAttribute(context.Background(), "my-project", "us-central1-f", "spinnaker-1", "gce_creds")
	require.NoError(t, err)

	require.Len(t, fake.setCalls, 1)
	assert.Equal(t, "fp-1", fake.setCalls[0].Fingerprint)
	require.Len(t, fake.setCalls[0].Items, 1)
	assert.Equal(t, "gce_account", fake.setCalls[0].Items[0].Key)
	assert.Equal(t, 1, fake.waitCalls)
}

func TestComputeRemover_AbsentKeyIsNoop(t *testing.T) {
	fake := &fakeCompute{instance: compute.Instance{
		Name:     "spinnaker-1",
		Metadata: &compute.Metadata{Fingerprint: "fp-1", Items: []*compute.MetadataItems{{Key: "gce_account", Value: strPtr("acct1")}}},
	}}
	r := newTestRemover(t, fake)

	require.NoError(t, r.RemoveAttribute(context.Background(), "my-project", "us-central1-f", "spinnaker-1", "gce_creds"))
	assert.Empty(t, fake.setCalls)
}

func TestComputeRemover_OperationError(t *testing.T) {
	fake := &fakeCompute{
		instance: compute.Instance{
			Name:     "spinnaker-1",
			Metadata: &compute.Metadata{Fingerprint: "fp-1", Items: []*compute.MetadataItems{{Key: "gce_creds", Value: strPtr("x")}}},
		},
		opFailures: []*compute.OperationErrorErrors{{Code: "CONDITION_NOT_MET", Message: "fingerprint mismatch"}},
	}
	r := newTestRemover(t, fake)

	err := r.RemoveAttribute(context.Background(), "my-project", "us-central1-f", "spinnaker-1", "gce_creds")
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformAPIError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "fingerprint mismatch")
}

func TestComputeRemover_InstanceNotFound(t *testing.T) {
	fake := &fakeCompute{getStatus: http.StatusNotFound}
	r := newTestRemover(t, fake)

	err := r.RemoveAttribute(context.Background(), "my-project", "us-central1-f", "spinnaker-1", "gce_creds")
	require.Error(t, err)
	assert.Equal(t, errors.CodeResourceNotFound, errors.GetCode(err))
}
