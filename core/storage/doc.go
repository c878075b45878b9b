// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so feature code
// can be tested against core/storage/mocks. Archiver layers a folder
// convention on top: timestamped keys under a prefix, listing newest first,
// streaming back, and pruning old objects.
//
// The service keeps two folders in its bucket:
//   - imports/: committed import source files
//   - exports/: generated purchase-list workbooks
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchiver(client, cfg.Storage.Bucket, "imports/")
//	key, err := archive.Put(ctx, "stock.csv", data, "text/csv")
package storage
