// Package blobstore abstracts where exported tables live.
//
// A BlobStore is a flat namespace of immutable-ish byte blobs. The textio and
// jsonio packages write table exports through it and read them back, so the
// same code path serves a local directory, an in-memory store in tests, or an
// object store in production.
//
// Implementations:
//
//   - LocalStore: local file system, memory-mapped reads, atomic
//     rename-on-close writes
//   - MemoryStore: in-memory, for tests
//   - CachingStore: block-level read cache in front of any store
//   - ThrottledStore: byte-rate limiting in front of any store
//   - s3.Store: Amazon S3 via the AWS SDK
//   - minio.Store: any S3-compatible endpoint via the MinIO client
package blobstore
