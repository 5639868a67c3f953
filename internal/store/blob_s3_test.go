package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in memory and records the last PutObject input.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	lastPut *s3.PutObjectInput
	lastGet *s3.GetObjectInput
	getErr  error
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastGet = in
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastPut = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	key := aws.ToString(in.Key)
	if aws.ToString(in.IfNoneMatch) == "*" {
		if _, exists := f.objects[key]; exists {
			return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}
		}
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[key] = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3BlobStore_FetchMissing(t *testing.T) {
	s := newS3BlobStore(newFakeS3(), "bucket", logger.Nop())

	_, err := s.FetchLatest(context.Background(), "leavesync-data.json")

	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestS3BlobStore_FetchMissing_GenericNotFound(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = &smithy.GenericAPIError{Code: "NotFound"}
	s := newS3BlobStore(fake, "bucket", logger.Nop())

	_, err := s.FetchLatest(context.Background(), "k")

	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestS3BlobStore_FetchError(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = errors.New("connection reset")
	s := newS3BlobStore(fake, "bucket", logger.Nop())

	_, err := s.FetchLatest(context.Background(), "k")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBlobNotFound)
}

func TestS3BlobStore_WriteDefaultOptions(t *testing.T) {
	fake := newFakeS3()
	s := newS3BlobStore(fake, "bucket", logger.Nop())
	ctx := context.Background()

	require.NoError(t, s.WriteFull(ctx, "leavesync-data.json", []byte(`{"users":[]}`), DefaultWriteOptions()))

	require.NotNil(t, fake.lastPut)
	assert.Equal(t, "bucket", aws.ToString(fake.lastPut.Bucket))
	assert.Equal(t, "leavesync-data.json", aws.ToString(fake.lastPut.Key))
	assert.Equal(t, "application/json", aws.ToString(fake.lastPut.ContentType))
	assert.Equal(t, types.ObjectCannedACLPublicRead, fake.lastPut.ACL)
	assert.Nil(t, fake.lastPut.IfNoneMatch)

	got, err := s.FetchLatest(ctx, "leavesync-data.json")
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, string(got))
	assert.Equal(t, "no-cache", aws.ToString(fake.lastGet.ResponseCacheControl))
}

func TestS3BlobStore_WritePrivateNoOverwrite(t *testing.T) {
	fake := newFakeS3()
	s := newS3BlobStore(fake, "bucket", logger.Nop())
	ctx := context.Background()
	opts := WriteOptions{ContentType: "application/json"}
	opts.StableKey = true

	require.NoError(t, s.WriteFull(ctx, "k", []byte("1"), opts))
	assert.Empty(t, fake.lastPut.ACL)
	assert.Equal(t, "*", aws.ToString(fake.lastPut.IfNoneMatch))

	err := s.WriteFull(ctx, "k", []byte("2"), opts)
	assert.ErrorIs(t, err, ErrBlobExists)
}

func TestS3BlobStore_WriteError(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("access denied")
	s := newS3BlobStore(fake, "bucket", logger.Nop())

	err := s.WriteFull(context.Background(), "k", []byte("1"), DefaultWriteOptions())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBlobExists)
}

// TestNewS3BlobStore_UsesEndpointAndCredentials swaps the package-level
// factories to observe how the client is configured.
func TestNewS3BlobStore_UsesEndpointAndCredentials(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	var loadOpts awsconfig.LoadOptions
	loadDefaultAWSConfig = func(_ context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			require.NoError(t, fn(&loadOpts))
		}
		return aws.Config{Region: loadOpts.Region}, nil
	}

	var s3Opts s3.Options
	fake := newFakeS3()
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		for _, fn := range optFns {
			fn(&s3Opts)
		}
		return fake
	}

	s, err := NewS3BlobStore(context.Background(), config.S3{
		Bucket:    "leaves",
		Region:    "ap-east-1",
		Endpoint:  "http://minio:9000",
		AccessKey: "ak",
		SecretKey: "sk",
	}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "ap-east-1", loadOpts.Region)
	assert.NotNil(t, loadOpts.Credentials)
	assert.Equal(t, "http://minio:9000", aws.ToString(s3Opts.BaseEndpoint))
	assert.True(t, s3Opts.UsePathStyle)
}

func TestNewS3BlobStore_ConfigError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}

	_, err := NewS3BlobStore(context.Background(), config.S3{Bucket: "b"}, logger.Nop())
	assert.Error(t, err)
}
