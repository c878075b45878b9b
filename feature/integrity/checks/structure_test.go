package checks

import (
	"context"
	"errors"
	"testing"

	"par-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "par").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "par", DefaultFolders)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "par").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "par", mock.Anything).Return(mocks.Objects())

		missing, err := CheckStructure(context.Background(), mockClient, "par", DefaultFolders)
		assert.NoError(t, err)
		assert.Equal(t, []string{"imports", "exports"}, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "par").Return(true, nil)

		for _, folder := range []string{"imports/", "exports/"} {
			mockClient.On("ListObjects", mock.Anything, "par", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == folder
			})).Return(mocks.Objects(minio.ObjectInfo{Key: folder}))
		}

		missing, err := CheckStructure(context.Background(), mockClient, "par", []string{"/imports/", "exports"})
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("List Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "par").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "par", mock.Anything).
			Return(mocks.Objects(minio.ObjectInfo{Err: errors.New("access denied")}))

		_, err := CheckStructure(context.Background(), mockClient, "par", DefaultFolders)
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()
	mockClient := new(mocks.Client)

	mockClient.On("PutObject", mock.Anything, "par", "exports/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), mockClient, "par", logger, []string{"exports"})
	assert.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestFixStructure_Error(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "par", "imports/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("read only"))

	err := FixStructure(context.Background(), mockClient, "par", zap.NewNop(), []string{"imports", "exports"})
	assert.ErrorContains(t, err, "read only")
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}
