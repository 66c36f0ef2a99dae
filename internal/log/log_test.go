package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/olusolaa/halyard-bootstrap/internal/errors"
)

func TestNewLogger_JSONIncludesFieldsAndErrorCode(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Level: LevelDebug, Format: FormatJSON}, &buf)
	require.NoError(t, err)

	logger.WithFields(map[string]any{"provider": "kubernetes"}).
		Errorf(context.Background(), apperrors.New(apperrors.CodeMissingAttribute, "kube_cluster"), "configure %s", "k8s1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "configure k8s1", entry["msg"])
	assert.Equal(t, "kubernetes", entry["provider"])
	assert.Equal(t, "MISSING_ATTRIBUTE", entry["error_code"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Level: LevelWarn, Format: FormatText}, &buf)
	require.NoError(t, err)

	logger.Infof(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	logger.Warnf(nil, "shown %d", 1)
	assert.Contains(t, buf.String(), "shown 1")
}

func TestNewLogger_RejectsUnknownValues(t *testing.T) {
	_, err := NewLogger(Config{Level: "loud"}, nil)
	assert.True(t, apperrors.Is(err, apperrors.CodeConfigValidation))

	_, err = NewLogger(Config{Format: "xml"}, nil)
	assert.True(t, apperrors.Is(err, apperrors.CodeConfigValidation))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, LevelDebug, ParseLevel(" debug "))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}
