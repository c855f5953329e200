// Package s3 writes creative objects to an S3 (or S3-compatible) bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure ObjectStore implements the interface.
var _ driven.ObjectStore = (*ObjectStore)(nil)

// BackendName identifies this backend in errors and logs.
const BackendName = "s3"

// putObjectAPI is the subset of *s3.Client used here.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectStore is the primary backend.
type ObjectStore struct {
	client putObjectAPI
	bucket string
}

// NewObjectStore builds a client from settings. Static credentials are used
// when an access key is configured, otherwise the default AWS chain applies.
// A custom endpoint switches to path-style addressing.
func NewObjectStore(ctx context.Context, settings domain.S3Settings) (*ObjectStore, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: s3.bucket is not set", domain.ErrInvalidInput)
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(settings.Region),
	}
	if settings.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			settings.AccessKeyID, settings.SecretAccessKey, settings.SessionToken,
		)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewObjectStoreWithClient(client, settings.Bucket), nil
}

// NewObjectStoreWithClient wraps an existing client.
func NewObjectStoreWithClient(client putObjectAPI, bucket string) *ObjectStore {
	return &ObjectStore{
		client: client,
		bucket: bucket,
	}
}

// Name returns the backend name.
func (s *ObjectStore) Name() string {
	return BackendName
}

// Put uploads obj. Public-read objects get the public-read canned ACL;
// everything else inherits the bucket default.
func (s *ObjectStore) Put(ctx context.Context, obj domain.StoredObject) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(obj.Body),
		ContentLength: aws.Int64(int64(len(obj.Body))),
		ContentType:   aws.String(obj.ContentType),
	}
	if obj.Visibility == domain.VisibilityPublicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return WrapError(err)
	}
	return nil
}

// WrapError maps S3 error codes to domain backend errors. The original
// error text is kept in the message.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	var sentinel error
	switch apiErr.ErrorCode() {
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken":
		sentinel = domain.ErrBackendUnauthorized
	case "AccessDenied", "AllAccessDisabled", "AccessControlListNotSupported":
		sentinel = domain.ErrBackendForbidden
	case "NoSuchBucket":
		sentinel = domain.ErrBackendNotFound
	case "SlowDown", "Throttling", "ThrottlingException", "RequestLimitExceeded":
		sentinel = domain.ErrBackendRateLimited
	default:
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
