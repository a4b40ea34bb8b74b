// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Store holds exported tables as S3 objects under a configurable key prefix.
// Reads use ranged GETs; writes stream through the SDK's multipart uploader
// with CRC32C checksums.
//
// DDBCommitStore layers DynamoDB on top to give the "CURRENT" export pointer
// the atomic compare-and-swap semantics S3 lacks, so concurrent publishers
// cannot clobber each other's versions.
package s3
