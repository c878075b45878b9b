package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// Object describes an archived object.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archiver stores files under a folder prefix of one bucket.
type Archiver struct {
	client Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchiver returns an archiver writing under prefix (e.g. "imports/").
func NewArchiver(client Client, bucket, prefix string) *Archiver {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Archiver{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Prefix returns the folder prefix, with a trailing slash.
func (a *Archiver) Prefix() string {
	return a.prefix
}

// Key builds a timestamped object key for name. Keys sort chronologically.
func (a *Archiver) Key(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return a.prefix + a.now().UTC().Format("20060102T150405.000Z") + "_" + base
}

// Put uploads data and returns the object key.
func (a *Archiver) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := a.Key(name)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return key, nil
}

// List returns archived objects, newest first.
func (a *Archiver) List(ctx context.Context) ([]Object, error) {
	var objects []Object
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: a.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", a.prefix, obj.Err)
		}
		// skip folder markers
		if obj.Key == a.prefix || strings.HasSuffix(obj.Key, "/") {
			continue
		}
		objects = append(objects, Object{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Key > objects[j].Key
	})
	return objects, nil
}

// Open streams an archived object. The key must live under the prefix.
func (a *Archiver) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !strings.HasPrefix(key, a.prefix) || strings.Contains(key, "..") {
		return nil, fmt.Errorf("key %q is outside %s", key, a.prefix)
	}
	return a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
}

// Prune removes all but the newest keep objects and returns how many were removed.
func (a *Archiver) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	objects, err := a.List(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, obj := range objects[min(keep, len(objects)):] {
		if err := a.client.RemoveObject(ctx, a.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", obj.Key, err)
		}
		removed++
	}
	return removed, nil
}
