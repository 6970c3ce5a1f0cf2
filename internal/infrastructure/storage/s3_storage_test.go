package storage

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraconfig "github.com/hrs/backend/internal/infrastructure/config"
)

func TestNewS3DocumentStore_Validation(t *testing.T) {
	t.Run("nil configuration", func(t *testing.T) {
		store, err := NewS3DocumentStore(nil)
		require.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := NewS3DocumentStore(&infraconfig.StorageConfig{
			AccessKey: "key",
			SecretKey: "secret",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key", func(t *testing.T) {
		_, err := NewS3DocumentStore(&infraconfig.StorageConfig{
			Bucket:    "documents",
			SecretKey: "secret",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key", func(t *testing.T) {
		_, err := NewS3DocumentStore(&infraconfig.StorageConfig{
			Bucket:    "documents",
			AccessKey: "key",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid configuration", func(t *testing.T) {
		store, err := NewS3DocumentStore(&infraconfig.StorageConfig{
			Endpoint:     "localhost:9000",
			Bucket:       "documents",
			AccessKey:    "key",
			SecretKey:    "secret",
			UsePathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.Equal(t, "documents", store.GetBucket())
	})

	t.Run("endpoint with protocol kept as-is", func(t *testing.T) {
		store, err := NewS3DocumentStore(&infraconfig.StorageConfig{
			Endpoint:  "https://s3.eu-west-3.amazonaws.com",
			Region:    "eu-west-3",
			Bucket:    "documents",
			AccessKey: "key",
			SecretKey: "secret",
		})
		require.NoError(t, err)
		require.NotNil(t, store)
	})
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000042")
	assert.Equal(t, "purchase-orders/a1b2c3d4-0000-0000-0000-000000000042.pdf", objectKey(id))
}

func TestIsNotFound(t *testing.T) {
	t.Run("typed NotFound error", func(t *testing.T) {
		assert.True(t, isNotFound(&types.NotFound{}))
	})

	t.Run("typed NoSuchKey error", func(t *testing.T) {
		assert.True(t, isNotFound(&types.NoSuchKey{}))
	})

	t.Run("wrapped typed error", func(t *testing.T) {
		err := errors.Join(errors.New("operation failed"), &types.NoSuchKey{})
		assert.True(t, isNotFound(err))
	})

	t.Run("string fallback for non-AWS backends", func(t *testing.T) {
		assert.True(t, isNotFound(errors.New("api error NoSuchKey: the key does not exist")))
		assert.True(t, isNotFound(errors.New("https response error StatusCode: 404, NotFound")))
	})

	t.Run("other errors", func(t *testing.T) {
		assert.False(t, isNotFound(errors.New("access denied")))
		assert.False(t, isNotFound(errors.New("connection refused")))
	})
}
