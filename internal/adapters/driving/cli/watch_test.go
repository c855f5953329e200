package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch <inbox-dir>", watchCmd.Use)
}

func TestWatchCmd_RequiresCampaign(t *testing.T) {
	cleanup := setupServices(&Services{Ingest: &mockIngestService{}})
	defer cleanup()

	resetFlags(watchCmd)
	_, err := executeCommand(t, "watch", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--campaign is required")
}

func TestWatchCmd_NotConfigured(t *testing.T) {
	cleanup := setupServices(&Services{})
	defer cleanup()

	resetFlags(watchCmd)
	_, err := executeCommand(t, "watch", "--campaign", "c1", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}
