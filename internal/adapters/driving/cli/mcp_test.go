package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_Use(t *testing.T) {
	assert.Equal(t, "serve", mcpServeCmd.Use)
	assert.Equal(t, "mcp", mcpCmd.Use)
}

func TestMCPServeCmd_RequiresServices(t *testing.T) {
	cleanup := setupServices(&Services{})
	defer cleanup()

	resetFlags(mcpServeCmd)
	_, err := executeCommand(t, "mcp", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish service is required")
}
