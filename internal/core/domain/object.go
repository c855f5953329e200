package domain

// Visibility is the access level requested for a stored object.
type Visibility string

const (
	// VisibilityDefault leaves access to the bucket's defaults.
	VisibilityDefault Visibility = ""

	// VisibilityPublicRead makes the object world readable.
	VisibilityPublicRead Visibility = "public-read"
)

// DefaultContentType is used when a file extension is not recognised.
const DefaultContentType = "application/octet-stream"

// StoredObject is one file addressed for an object-storage backend.
type StoredObject struct {
	// Key is the storage key, "{campaign}/{basename}_{upload}/{relative}".
	Key string

	// Body is the content written under Key.
	Body []byte

	// ContentType is derived from the source file's extension.
	ContentType string

	// Visibility is the requested access level.
	Visibility Visibility
}

// ManifestEntry records one uploaded file.
type ManifestEntry struct {
	Key string `json:"Key"`
}

// UploadManifest is the ordered list of keys produced for one package.
// Entries follow listing order. It is owned by a single publish call.
type UploadManifest struct {
	CampaignID string          `json:"campaign_id"`
	UploadID   string          `json:"upload_id"`
	Basename   string          `json:"basename"`
	Entries    []ManifestEntry `json:"entries"`
}

// Keys returns the manifest keys in order.
func (m *UploadManifest) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}

// RootKey returns the first key that contains ".html".
func (m *UploadManifest) RootKey() (string, bool) {
	return FindRootMarkup(m.Keys())
}
