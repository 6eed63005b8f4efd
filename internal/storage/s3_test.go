package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Stewz00/doc-analysis-api/internal/config"
	"github.com/Stewz00/doc-analysis-api/internal/interfaces"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string

	putErr    error
	deleteErr error
	headErr   error

	headBucket string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = body
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.headBucket = aws.ToString(in.Bucket)
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestObjectStore_UploadAndDelete(t *testing.T) {
	fake := newFakeS3()
	var store interfaces.DocumentStore = newObjectStore(fake, "docs", "")
	ctx := context.Background()

	url, err := store.Upload(ctx, []byte("%PDF-1.7 test"), "orders/1/contract.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.s3.amazonaws.com/orders/1/contract.pdf", url)
	assert.Equal(t, []byte("%PDF-1.7 test"), fake.objects["docs/orders/1/contract.pdf"])
	assert.Equal(t, "application/pdf", fake.types["docs/orders/1/contract.pdf"])

	require.NoError(t, store.Delete(ctx, "orders/1/contract.pdf"))
	assert.NotContains(t, fake.objects, "docs/orders/1/contract.pdf")

	// deleting again is fine
	require.NoError(t, store.Delete(ctx, "orders/1/contract.pdf"))
}

func TestObjectStore_Validation(t *testing.T) {
	store := newObjectStore(newFakeS3(), "docs", "")
	ctx := context.Background()

	_, err := store.Upload(ctx, []byte("x"), "")
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = store.Upload(ctx, nil, "k")
	assert.ErrorIs(t, err, ErrEmptyBody)

	assert.ErrorIs(t, store.Delete(ctx, ""), ErrEmptyKey)
}

func TestObjectStore_ClientErrors(t *testing.T) {
	fake := newFakeS3()
	boom := errors.New("access denied")
	fake.putErr = boom
	fake.deleteErr = boom
	store := newObjectStore(fake, "docs", "")

	_, err := store.Upload(context.Background(), []byte("x"), "k")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, store.Delete(context.Background(), "k"), boom)
}

func TestObjectStore_URL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{name: "aws", want: "https://docs.s3.amazonaws.com/a/b.txt"},
		{name: "custom endpoint", endpoint: "http://127.0.0.1:9000/", want: "http://127.0.0.1:9000/docs/a/b.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newObjectStore(newFakeS3(), "docs", tt.endpoint)
			assert.Equal(t, tt.want, store.URL("a/b.txt"))
		})
	}
}

func TestObjectStore_Ping(t *testing.T) {
	fake := newFakeS3()
	store := newObjectStore(fake, "docs", "")

	require.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, "docs", fake.headBucket)
	assert.Equal(t, "s3", store.Name())

	fake.headErr = errors.New("no such bucket")
	assert.Error(t, store.Ping(context.Background()))
}

func TestNewObjectStore(t *testing.T) {
	_, err := NewObjectStore(context.Background(), config.StorageConfig{})
	require.Error(t, err)

	store, err := NewObjectStore(context.Background(), config.StorageConfig{
		AccessKeyID:     "admin",
		SecretAccessKey: "secretpassword",
		Region:          "us-east-1",
		Bucket:          "vault",
		Endpoint:        "http://127.0.0.1:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/vault/k", store.URL("k"))
}
