// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("ucd/17.0.0/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	db, err := ucdchart.Open(ctx, ucdchart.WithStore(store))
//
// # Features
//
//   - Uploads through the SDK transfer manager with CRC32C checksums
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - S3-compatible endpoints via WithEndpoint
package s3
