package domain

import "time"

// IngestRequest is one upload request: archives sharing a campaign and an upload id.
type IngestRequest struct {
	// CampaignID namespaces every storage key.
	CampaignID string

	// Exporter applies to every archive in the request.
	Exporter Exporter

	// Archives are paths to the uploaded .zip files, in upload order.
	Archives []string

	// WorkDir receives one extracted directory per archive.
	// The caller creates it and removes it afterwards.
	WorkDir string

	// UploadID is generated when empty.
	UploadID string
}

// PackageResult is the outcome of publishing one package.
type PackageResult struct {
	Package  Package
	Manifest *UploadManifest
}

// IngestResult is the outcome of a successful request.
type IngestResult struct {
	UploadID   string
	CampaignID string

	// ZipBaseName is the basename of the first archive in the request.
	ZipBaseName string

	// RootKey is the root markup key of the last published package,
	// RootBaseName the file name of that key without ".html".
	RootKey      string
	RootBaseName string

	Packages []PackageResult
}

// PublishRecord is a persisted summary of one published package.
type PublishRecord struct {
	UploadID    string
	CampaignID  string
	Basename    string
	Exporter    Exporter
	ObjectCount int
	RootKey     string
	CreatedAt   time.Time
}
