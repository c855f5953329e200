// Package gcs mirrors creative objects to a Google Cloud Storage bucket
// through the JSON API.
package gcs

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure ObjectStore implements the interface.
var _ driven.ObjectStore = (*ObjectStore)(nil)

// BackendName identifies this backend in errors and logs.
const BackendName = "gcs"

// predefinedACLPublicRead is the JSON API name of the public-read ACL.
const predefinedACLPublicRead = "publicRead"

// ObjectStore is the secondary backend.
type ObjectStore struct {
	service *storage.Service
	bucket  string
}

// NewObjectStore builds a storage client from settings. A service account
// key file is used when configured; otherwise application default
// credentials apply.
func NewObjectStore(ctx context.Context, settings domain.GCSSettings) (*ObjectStore, error) {
	if settings.Bucket == "" {
		return nil, fmt.Errorf("%w: gcs.bucket is not set", domain.ErrInvalidInput)
	}

	ts, err := tokenSource(ctx, settings.CredentialsFile)
	if err != nil {
		return nil, err
	}

	svc, err := storage.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create storage service: %w", err)
	}

	return NewObjectStoreWithService(svc, settings.Bucket), nil
}

// NewObjectStoreWithService wraps an existing storage service.
func NewObjectStoreWithService(svc *storage.Service, bucket string) *ObjectStore {
	return &ObjectStore{
		service: svc,
		bucket:  bucket,
	}
}

func tokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	if credentialsFile == "" {
		ts, err := google.DefaultTokenSource(ctx, storage.DevstorageReadWriteScope)
		if err != nil {
			return nil, fmt.Errorf("find default credentials: %w", err)
		}
		return ts, nil
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(data, storage.DevstorageReadWriteScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	return cfg.TokenSource(ctx), nil
}

// Name returns the backend name.
func (s *ObjectStore) Name() string {
	return BackendName
}

// Put uploads obj in a single multipart request.
func (s *ObjectStore) Put(ctx context.Context, obj domain.StoredObject) error {
	call := s.service.Objects.Insert(s.bucket, &storage.Object{
		Name:        obj.Key,
		ContentType: obj.ContentType,
	}).Media(bytes.NewReader(obj.Body), googleapi.ContentType(obj.ContentType)).Context(ctx)

	if obj.Visibility == domain.VisibilityPublicRead {
		call = call.PredefinedAcl(predefinedACLPublicRead)
	}

	if _, err := call.Do(); err != nil {
		return WrapError(err)
	}
	return nil
}
