package objectstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeObjects) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.err
}

type fakePresigner struct {
	expires time.Duration
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://s3.test/" + aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)}, nil
}

func TestStore_PutAndDelete(t *testing.T) {
	objects := newFakeObjects()
	store := newStore(objects, &fakePresigner{}, Config{Bucket: "resumes"})
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "users/1/a.pdf", []byte("%PDF-1.4"), "application/pdf"))
	assert.Equal(t, []byte("%PDF-1.4"), objects.objects["resumes/users/1/a.pdf"])
	assert.Equal(t, "application/pdf", objects.types["resumes/users/1/a.pdf"])

	require.NoError(t, store.Delete(ctx, "users/1/a.pdf"))
	assert.Empty(t, objects.objects)
}

func TestStore_Errors(t *testing.T) {
	objects := newFakeObjects()
	objects.err = errors.New("access denied")
	store := newStore(objects, &fakePresigner{}, Config{Bucket: "resumes"})
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, "k", []byte("x"), "application/pdf"), objects.err)
	assert.ErrorIs(t, store.Delete(ctx, "k"), objects.err)
	assert.ErrorIs(t, store.PingContext(ctx), objects.err)
}

func TestStore_PresignGet(t *testing.T) {
	presigner := &fakePresigner{}
	store := newStore(newFakeObjects(), presigner, Config{Bucket: "resumes", PresignExpiry: 5 * time.Minute})

	url, err := store.PresignGet(context.Background(), "users/1/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.test/resumes/users/1/a.pdf", url)
	assert.Equal(t, 5*time.Minute, presigner.expires)
}

func TestNew_PresignsPathStyleURL(t *testing.T) {
	store, err := New(context.Background(), Config{
		Bucket:        "resumes",
		Region:        "us-east-1",
		Endpoint:      "http://127.0.0.1:9000",
		AccessKey:     "minioadmin",
		SecretKey:     "minioadmin",
		PathStyle:     true,
		PresignExpiry: 15 * time.Minute,
	})
	require.NoError(t, err)

	url, err := store.PresignGet(context.Background(), "users/1/a.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://127.0.0.1:9000/resumes/users/1/a.pdf?"), url)
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("S3_BUCKET", "")
	t.Setenv("S3_REGION", "")
	t.Setenv("S3_PATH_STYLE", "")
	t.Setenv("S3_PRESIGN_EXPIRY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled())
	assert.Equal(t, defaultRegion, cfg.Region)
	assert.True(t, cfg.PathStyle)
	assert.Equal(t, defaultPresignExpiry, cfg.PresignExpiry)

	t.Setenv("S3_BUCKET", "resumes")
	t.Setenv("S3_REGION", "eu-central-1")
	t.Setenv("S3_PATH_STYLE", "false")
	t.Setenv("S3_PRESIGN_EXPIRY", "1h")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.False(t, cfg.PathStyle)
	assert.Equal(t, time.Hour, cfg.PresignExpiry)

	t.Setenv("S3_PRESIGN_EXPIRY", "-1m")
	_, err = LoadConfig()
	assert.Error(t, err)
}
