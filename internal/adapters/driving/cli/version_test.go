package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "true", versionCmd.Annotations[skipBootstrap])
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{name: "release build", version: "1.4.0", expected: "crpub version 1.4.0\n"},
		{name: "development build", version: "dev", expected: "crpub version dev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := version
			version = tt.version
			defer func() { version = original }()

			out, err := executeCommand(t, "version")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}
