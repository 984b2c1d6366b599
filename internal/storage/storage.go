// Package storage abstracts the object-storage buckets behind a small
// interface. Vehicle, profile and review images are public; identity
// documents are private and only reachable through time-limited presigned
// URLs.
package storage

import (
	"context"
	"io"
	"time"
)

const (
	BucketVehicleImages = "vehicle-images"
	BucketProfileImages = "profile-images"
	BucketReviewImages  = "review-images"
	BucketIDDocuments   = "id-documents"
	BucketVehicleAssets = "vehicle-assets"
)

type Storage interface {
	// Upload stores the object and returns its key.
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)

	// PublicURL builds the permanent URL of an object in a public bucket.
	PublicURL(bucket, key string) string

	// PresignedURL builds a time-limited download URL for a private object.
	PresignedURL(ctx context.Context, bucket, key string, expiresIn time.Duration) (string, error)

	// Delete removes an object.
	Delete(ctx context.Context, bucket, key string) error
}

// PrivateBucket reports whether objects in bucket must only be served
// through presigned URLs.
func PrivateBucket(bucket string) bool {
	return bucket == BucketIDDocuments
}
