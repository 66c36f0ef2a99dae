package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/halyard"
	portsmocks "github.com/olusolaa/halyard-bootstrap/internal/core/ports/mocks"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/mocks"
	"github.com/olusolaa/halyard-bootstrap/pkg/poll"
)

func TestWaitForReady(t *testing.T) {
	rec := &mocks.CommandRecorder{NotReadyFor: 3}
	tool := halyard.NewClient(rec, "", portsmocks.NewLogger(t))

	err := WaitForReady(context.Background(), tool, poll.New(10*time.Millisecond, 0), portsmocks.NewLogger(t))
	require.NoError(t, err)
	assert.Len(t, rec.Commands, 4)
}

func TestWaitForReady_Timeout(t *testing.T) {
	rec := &mocks.CommandRecorder{NotReadyFor: 1 << 30}
	tool := halyard.NewClient(rec, "", portsmocks.NewLogger(t))

	err := WaitForReady(context.Background(), tool, poll.New(10*time.Millisecond, 50*time.Millisecond), portsmocks.NewLogger(t))
	require.Error(t, err)
	assert.Equal(t, errors.CodeToolNotReady, errors.GetCode(err))
	_, hint, ok := errors.GetUserFacingMessage(err)
	assert.True(t, ok)
	assert.Contains(t, hint, "--ready-timeout")
}

func TestWaitForReady_Cancelled(t *testing.T) {
	rec := &mocks.CommandRecorder{NotReadyFor: 1 << 30}
	tool := halyard.NewClient(rec, "", portsmocks.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitForReady(ctx, tool, poll.New(10*time.Millisecond, 0), portsmocks.NewLogger(t))
	assert.Equal(t, errors.CodeTimeout, errors.GetCode(err))
}
