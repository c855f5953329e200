package domain

// DefaultMaxArchiveBytes is the largest archive accepted at intake (100 MiB).
const DefaultMaxArchiveBytes int64 = 100 * 1024 * 1024

// S3Settings configures the primary backend.
type S3Settings struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// IsConfigured returns true if a bucket is set.
func (s S3Settings) IsConfigured() bool {
	return s.Bucket != ""
}

// GCSSettings configures the optional secondary backend.
type GCSSettings struct {
	Enabled         bool
	Bucket          string
	CredentialsFile string
}

// IsActive returns true if secondary writes should be attempted.
func (s GCSSettings) IsActive() bool {
	return s.Enabled && s.Bucket != ""
}

// UploadSettings tunes the publish step.
type UploadSettings struct {
	// RequestsPerSecond throttles writes per backend. Zero disables throttling.
	RequestsPerSecond float64
	Burst             int
	MaxArchiveBytes   int64
}

// Settings is the complete application configuration.
type Settings struct {
	S3             S3Settings
	GCS            GCSSettings
	Upload         UploadSettings
	WorkDir        string
	HistoryEnabled bool
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		S3: S3Settings{
			Region: "us-east-1",
		},
		Upload: UploadSettings{
			Burst:           10,
			MaxArchiveBytes: DefaultMaxArchiveBytes,
		},
		HistoryEnabled: true,
	}
}
