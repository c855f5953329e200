package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyS3Bucket          = "s3.bucket"
	keyS3Region          = "s3.region"
	keyS3Endpoint        = "s3.endpoint"
	keyS3AccessKeyID     = "s3.access_key_id"
	keyS3SecretAccessKey = "s3.secret_access_key"
	keyS3SessionToken    = "s3.session_token"
	keyGCSEnabled        = "gcs.enabled"
	keyGCSBucket         = "gcs.bucket"
	keyGCSCredentials    = "gcs.credentials_file"
	keyUploadRPS         = "upload.requests_per_second"
	keyUploadBurst       = "upload.burst"
	keyUploadMaxArchive  = "upload.max_archive_bytes"
	keyWorkDir           = "paths.work_dir"
	keyHistoryEnabled    = "history.enabled"
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindFloat
)

// knownKeys maps every supported key to the type its value is parsed as.
var knownKeys = map[string]keyKind{
	keyS3Bucket:          kindString,
	keyS3Region:          kindString,
	keyS3Endpoint:        kindString,
	keyS3AccessKeyID:     kindString,
	keyS3SecretAccessKey: kindString,
	keyS3SessionToken:    kindString,
	keyGCSEnabled:        kindBool,
	keyGCSBucket:         kindString,
	keyGCSCredentials:    kindString,
	keyUploadRPS:         kindFloat,
	keyUploadBurst:       kindInt,
	keyUploadMaxArchive:  kindInt,
	keyWorkDir:           kindString,
	keyHistoryEnabled:    kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}

	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		S3: domain.S3Settings{
			Bucket:          s.configStore.GetString(keyS3Bucket),
			Region:          s.getString(keyS3Region, defaults.S3.Region),
			Endpoint:        s.configStore.GetString(keyS3Endpoint),
			AccessKeyID:     s.configStore.GetString(keyS3AccessKeyID),
			SecretAccessKey: s.configStore.GetString(keyS3SecretAccessKey),
			SessionToken:    s.configStore.GetString(keyS3SessionToken),
		},
		GCS: domain.GCSSettings{
			Enabled:         s.getBool(keyGCSEnabled, defaults.GCS.Enabled),
			Bucket:          s.configStore.GetString(keyGCSBucket),
			CredentialsFile: s.configStore.GetString(keyGCSCredentials),
		},
		Upload: domain.UploadSettings{
			RequestsPerSecond: s.configStore.GetFloat(keyUploadRPS),
			Burst:             s.getInt(keyUploadBurst, defaults.Upload.Burst),
			MaxArchiveBytes:   int64(s.getInt(keyUploadMaxArchive, int(defaults.Upload.MaxArchiveBytes))),
		},
		WorkDir:        s.getString(keyWorkDir, defaults.WorkDir),
		HistoryEnabled: s.getBool(keyHistoryEnabled, defaults.HistoryEnabled),
	}

	return settings, nil
}

// Set parses value according to the key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseValue(kind, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the supported configuration keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseValue(kind keyKind, value string) (any, error) {
	switch kind {
	case kindBool:
		return strconv.ParseBool(value)
	case kindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("must not be negative")
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		if f < 0 {
			return nil, fmt.Errorf("must not be negative")
		}
		return f, nil
	default:
		return value, nil
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
