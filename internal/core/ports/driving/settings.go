package driving

import "github.com/custodia-labs/creative-publisher/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults for unset keys.
	Get() (*domain.Settings, error)

	// Set stores a single raw key. The value is parsed according to the
	// key's type (bool, int, float or string).
	Set(key, value string) error

	// Keys lists the configuration keys the application understands.
	Keys() []string
}
