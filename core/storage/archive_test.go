package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"par-manager/core/storage"
	"par-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArchiver_Put(t *testing.T) {
	client := new(mocks.Client)
	archiver := storage.NewArchiver(client, "par", "/imports/")

	client.On("PutObject", mock.Anything, "par", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "imports/") && strings.HasSuffix(key, "_stock.csv")
	}), mock.Anything, int64(7), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
		return opts.ContentType == "text/csv"
	})).Return(minio.UploadInfo{}, nil)

	key, err := archiver.Put(context.Background(), "C:\\uploads\\stock.csv", []byte("sku,nam"), "text/csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "imports/"))
	assert.Equal(t, "imports/", archiver.Prefix())
	client.AssertExpectations(t)
}

func TestArchiver_PutError(t *testing.T) {
	client := new(mocks.Client)
	archiver := storage.NewArchiver(client, "par", "exports")

	client.On("PutObject", mock.Anything, "par", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	_, err := archiver.Put(context.Background(), "list.xlsx", []byte("x"), "")
	assert.ErrorContains(t, err, "access denied")
}

func TestArchiver_ListAndPrune(t *testing.T) {
	client := new(mocks.Client)
	archiver := storage.NewArchiver(client, "par", "exports/")

	listing := func() <-chan minio.ObjectInfo {
		return mocks.Objects(
			minio.ObjectInfo{Key: "exports/"},
			minio.ObjectInfo{Key: "exports/20260101T000000.000Z_a.xlsx", Size: 10, LastModified: time.Now()},
			minio.ObjectInfo{Key: "exports/20260103T000000.000Z_c.xlsx", Size: 30},
			minio.ObjectInfo{Key: "exports/20260102T000000.000Z_b.xlsx", Size: 20},
		)
	}
	client.On("ListObjects", mock.Anything, "par", minio.ListObjectsOptions{Prefix: "exports/", Recursive: true}).
		Return(listing()).Once()
	client.On("ListObjects", mock.Anything, "par", minio.ListObjectsOptions{Prefix: "exports/", Recursive: true}).
		Return(listing()).Once()
	client.On("RemoveObject", mock.Anything, "par", "exports/20260101T000000.000Z_a.xlsx", mock.Anything).Return(nil)

	objects, err := archiver.List(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 3)
	assert.Equal(t, "exports/20260103T000000.000Z_c.xlsx", objects[0].Key)

	removed, err := archiver.Prune(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	client.AssertExpectations(t)
}

func TestArchiver_Open(t *testing.T) {
	client := new(mocks.Client)
	archiver := storage.NewArchiver(client, "par", "exports/")

	client.On("GetObject", mock.Anything, "par", "exports/x.xlsx", mock.Anything).
		Return(io.NopCloser(strings.NewReader("data")), nil)

	rc, err := archiver.Open(context.Background(), "exports/x.xlsx")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "data", string(body))

	_, err = archiver.Open(context.Background(), "imports/x.csv")
	assert.Error(t, err)
	_, err = archiver.Open(context.Background(), "exports/../secret")
	assert.Error(t, err)
}
