package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

type fakeClient struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestObjectStore_PutPublicRead(t *testing.T) {
	client := &fakeClient{}
	store := NewObjectStoreWithClient(client, "creatives")

	err := store.Put(context.Background(), domain.StoredObject{
		Key:         "c1/banner_u1/index.html",
		Body:        []byte("<html/>"),
		ContentType: "text/html; charset=utf-8",
		Visibility:  domain.VisibilityPublicRead,
	})

	require.NoError(t, err)
	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "creatives", aws.ToString(in.Bucket))
	assert.Equal(t, "c1/banner_u1/index.html", aws.ToString(in.Key))
	assert.Equal(t, "text/html; charset=utf-8", aws.ToString(in.ContentType))
	assert.Equal(t, int64(7), aws.ToInt64(in.ContentLength))
	assert.Equal(t, types.ObjectCannedACLPublicRead, in.ACL)
	assert.Equal(t, []byte("<html/>"), client.bodies[0])
	assert.Equal(t, "s3", store.Name())
}

func TestObjectStore_PutDefaultVisibility(t *testing.T) {
	client := &fakeClient{}
	store := NewObjectStoreWithClient(client, "creatives")

	require.NoError(t, store.Put(context.Background(), domain.StoredObject{Key: "k", ContentType: "image/png"}))

	assert.Empty(t, client.inputs[0].ACL)
}

func TestObjectStore_PutMapsErrors(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"InvalidAccessKeyId", domain.ErrBackendUnauthorized},
		{"AccessDenied", domain.ErrBackendForbidden},
		{"NoSuchBucket", domain.ErrBackendNotFound},
		{"SlowDown", domain.ErrBackendRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			client := &fakeClient{err: &smithy.GenericAPIError{Code: tt.code, Message: "denied"}}
			store := NewObjectStoreWithClient(client, "creatives")

			err := store.Put(context.Background(), domain.StoredObject{Key: "k"})

			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.code)
		})
	}
}

func TestWrapError_PassesThroughUnknown(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Equal(t, plain, WrapError(plain))

	unknown := &smithy.GenericAPIError{Code: "InternalError"}
	assert.Equal(t, error(unknown), WrapError(unknown))

	assert.NoError(t, WrapError(nil))
}

func TestNewObjectStore_RequiresBucket(t *testing.T) {
	_, err := NewObjectStore(context.Background(), domain.S3Settings{Region: "us-east-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewObjectStore_StaticCredentials(t *testing.T) {
	store, err := NewObjectStore(context.Background(), domain.S3Settings{
		Bucket:          "creatives",
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})

	require.NoError(t, err)
	client, ok := store.client.(*s3.Client)
	require.True(t, ok)
	opts := client.Options()
	assert.Equal(t, "eu-west-1", opts.Region)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}
