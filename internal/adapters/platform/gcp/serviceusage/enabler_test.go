package serviceusage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/serviceusage/v1"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp"
	portsmocks "github.com/olusolaa/halyard-bootstrap/internal/core/ports/mocks"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

type fakeServiceUsage struct {
	batches      [][]string
	pollsPending int
	failMessage  string
	status       int
}

func (f *fakeServiceUsage) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/v1/projects/my-project/services:batchEnable"):
			if f.status != 0 {
				w.WriteHeader(f.status)
				_, _ = w.Write([]byte(fmt.Sprintf(`{"error":{"code":%d,"message":"denied"}}`, f.status)))
				return
			}
			var req serviceusage.BatchEnableServicesRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.batches = append(f.batches, req.ServiceIds)
			_ = json.NewEncoder(w).Encode(serviceusage.Operation{Name: "operations/acf.1"})
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/v1/operations/acf.1"):
			op := serviceusage.Operation{Name: "operations/acf.1"}
			if f.pollsPending > 0 {
				f.pollsPending--
			} else {
				op.Done = true
				if f.failMessage != "" {
					op.Error = &serviceusage.Status{Code: 9, Message: f.failMessage}
				}
			}
			_ = json.NewEncoder(w).Encode(op)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotImplemented)
		}
	})
}

func newTestEnabler(t *testing.T, fake *fakeServiceUsage) *Enabler {
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	e, err := NewEnabler(context.Background(), gcp.AuthOptions{Endpoint: srv.URL + "/", HTTPClient: srv.Client()},
		10*time.Millisecond, 5*time.Second, portsmocks.NewLogger(t))
	require.NoError(t, err)
	return e
}

func TestEnabler_EnablesAndWaits(t *testing.T) {
	fake := &fakeServiceUsage{pollsPending: 2}
	e := newTestEnabler(t, fake)

	err := e.EnableAPIs(context.Background(), "my-project", []string{"storage-api.googleapis.com", "iam.googleapis.com"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"storage-api.googleapis.com", "iam.googleapis.com"}}, fake.batches)
	assert.Equal(t, 0, fake.pollsPending)
}

func TestEnabler_SplitsLargeBatches(t *testing.T) {
	fake := &fakeServiceUsage{}
	e := newTestEnabler(t, fake)

	apis := make([]string, 25)
	for i := range apis {
		apis[i] = fmt.Sprintf("svc%d.googleapis.com", i)
	}
	require.NoError(t, e.EnableAPIs(context.Background(), "my-project", apis))
	require.Len(t, fake.batches, 2)
	assert.Len(t, fake.batches[0], 20)
	assert.Len(t, fake.batches[1], 5)
}

func TestEnabler_OperationFailure(t *testing.T) {
	fake := &fakeServiceUsage{failMessage: "billing account required"}
	e := newTestEnabler(t, fake)

	err := e.EnableAPIs(context.Background(), "my-project", []string{"appengine.googleapis.com"})
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformAPIError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "billing account required")
}

func TestEnabler_PermissionDenied(t *testing.T) {
	fake := &fakeServiceUsage{status: http.StatusForbidden}
	e := newTestEnabler(t, fake)

	err := e.EnableAPIs(context.Background(), "my-project", []string{"iam.googleapis.com"})
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformAuthError, errors.GetCode(err))
}

func TestEnabler_NothingToEnable(t *testing.T) {
	fake := &fakeServiceUsage{}
	e := newTestEnabler(t, fake)
	require.NoError(t, e.EnableAPIs(context.Background(), "my-project", nil))
	assert.Empty(t, fake.batches)
}
