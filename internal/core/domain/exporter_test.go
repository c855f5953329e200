package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExporter(t *testing.T) {
	tests := []struct {
		in   string
		want Exporter
	}{
		{"gwd", ExporterGWD},
		{"conversio", ExporterConversio},
		{" conversio ", ExporterConversio},
		{"", ExporterUnspecified},
		{"GWD", ExporterUnspecified},
		{"animate", ExporterUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseExporter(tt.in))
		})
	}
}

func TestExporter_Effective(t *testing.T) {
	assert.Equal(t, ExporterGWD, ExporterGWD.Effective())
	assert.Equal(t, ExporterConversio, ExporterConversio.Effective())
	assert.Equal(t, ExporterGWD, ExporterUnspecified.Effective())
	assert.Equal(t, ExporterGWD, Exporter("other").Effective())
	assert.Equal(t, "Google Web Designer", ExporterUnspecified.Description())
}
