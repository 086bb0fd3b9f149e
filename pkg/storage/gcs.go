package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/patrickmn/go-cache"
	"google.golang.org/api/iterator"
)

// Signed URL validity windows. Thumbnails get a longer window because they
// are embedded in feeds and emails that outlive a single session.
const (
	VideoURLExpiry     = 7 * 24 * time.Hour
	ThumbnailURLExpiry = 30 * 24 * time.Hour
)

// Store wraps the GCS client for one bucket. Signed URLs are memoized
// until three quarters of their validity has elapsed so feed pages do not
// re-sign the same object on every request.
type Store struct {
	client *gcs.Client
	bucket string

	signedURLs *cache.Cache
}

func NewStore(ctx context.Context, bucket string) (*Store, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Store{
		client:     client,
		bucket:     bucket,
		signedURLs: cache.New(VideoURLExpiry*3/4, time.Hour),
	}, nil
}

// Bucket returns the bucket name the store writes to.
func (s *Store) Bucket() string {
	return s.bucket
}

// GCSURL returns the gs:// URL for an object in the store's bucket.
func (s *Store) GCSURL(object string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, object)
}

// Upload streams r into the bucket at object, returning the gs:// URL.
func (s *Store) Upload(ctx context.Context, object, contentType string, r io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", object, err)
	}

	return s.GCSURL(object), nil
}

// Download opens a reader for an object anywhere the credentials can
// reach, given its full gs:// URL. Generation output lands in our bucket
// but under a subpath the upstream API chooses, so the bucket is taken
// from the URL rather than assumed.
func (s *Store) Download(ctx context.Context, gcsURL string) (io.ReadCloser, error) {
	bucket, object, err := SplitGCSURL(gcsURL)
	if err != nil {
		return nil, err
	}

	r, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", gcsURL, err)
	}
	return r, nil
}

// Exists reports whether the object behind a gs:// URL is present.
func (s *Store) Exists(ctx context.Context, gcsURL string) (bool, error) {
	bucket, object, err := SplitGCSURL(gcsURL)
	if err != nil {
		return false, err
	}

	_, err = s.client.Bucket(bucket).Object(object).Attrs(ctx)
	if err == gcs.ErrObjectNotExist {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %s: %w", gcsURL, err)
	}
	return true, nil
}

// SignedVideoURL returns a 7-day signed URL for a stored video. A signing
// failure is returned to the caller; there is deliberately no placeholder
// fallback, a broken signer must surface as an error, not as a wrong video.
func (s *Store) SignedVideoURL(gcsURL string) (string, error) {
	return s.signedURL(gcsURL, VideoURLExpiry)
}

// SignedThumbnailURL returns a 30-day signed URL for a thumbnail.
func (s *Store) SignedThumbnailURL(gcsURL string) (string, error) {
	return s.signedURL(gcsURL, ThumbnailURLExpiry)
}

func (s *Store) signedURL(gcsURL string, expiry time.Duration) (string, error) {
	if cached, found := s.signedURLs.Get(gcsURL); found {
		return cached.(string), nil
	}

	bucket, object, err := SplitGCSURL(gcsURL)
	if err != nil {
		return "", err
	}

	signed, err := s.client.Bucket(bucket).SignedURL(object, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", gcsURL, err)
	}

	s.signedURLs.Set(gcsURL, signed, expiry*3/4)
	return signed, nil
}

// List returns object names under a prefix in the store's bucket.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
