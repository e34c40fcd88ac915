package performance

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

func captureLogger(t *testing.T) (*logging.ChanneledLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: true,
		JSONFormat:      true,
		DefaultLevel:    slog.LevelDebug,
		Writer:          &buf,
	})
	require.NoError(t, err)
	return logger, &buf
}

func TestTracker_RecordsMetadata(t *testing.T) {
	t.Parallel()
	logger, buf := captureLogger(t)
	tracker := NewTracker(logger, time.Minute)

	marker := tracker.StartOperation("media_scan")
	marker.AddMetadata("references", 12)
	marker.AddMetadata("documents", 3)
	marker.SetSuccess(true)
	marker.Complete()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "performance", record["channel"])
	assert.Equal(t, "media_scan", record["operation"])
	assert.EqualValues(t, 12, record["references"])
	assert.EqualValues(t, 3, record["documents"])

	stats := tracker.Stats()["media_scan"]
	assert.Equal(t, 1, stats.Count)
	assert.Zero(t, stats.Failures)
	assert.Equal(t, map[string]any{"references": 12, "documents": 3}, stats.LastMetadata)
}

func TestTracker_CountsFailuresOnce(t *testing.T) {
	t.Parallel()
	logger, buf := captureLogger(t)
	tracker := NewTracker(logger, time.Minute)

	marker := tracker.StartOperation("content_save")
	marker.SetError(errors.New("disk full"))
	marker.Complete()
	marker.Complete()

	stats := tracker.Stats()["content_save"]
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 1, stats.Failures)
	assert.Nil(t, stats.LastMetadata)
	assert.Contains(t, buf.String(), `"error":"disk full"`)
}
