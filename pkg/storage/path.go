package storage

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Artifacts are organized by year/month/quality so bucket listings stay
// browsable as volume grows:
//
//	videos/2024/12/free/{id}_{promptHash8}_{timestamp}.mp4
//	thumbnails/2024/12/free/{id}_{promptHash8}_{timestamp}.jpg
//
// Legacy objects written before the scheme existed live flat under
// videos/{id}.mp4 and are still recognized by ParseObjectPath.

const timestampLayout = "20060102_150405"

// ObjectInfo is the result of parsing an organized object path.
type ObjectInfo struct {
	Year    int
	Month   int
	Quality string
	VideoID uuid.UUID
	Legacy  bool
}

// PromptHash returns the first 8 hex characters of the MD5 digest of the
// prompt. It exists only for filename entropy, not security.
func PromptHash(prompt string) string {
	sum := md5.Sum([]byte(prompt))
	return hex.EncodeToString(sum[:])[:8]
}

// VideoObjectPath builds the organized bucket path for a video artifact.
func VideoObjectPath(videoID uuid.UUID, quality, prompt string, now time.Time) string {
	return objectPath("videos", "mp4", videoID, quality, prompt, now)
}

// ThumbnailObjectPath builds the organized bucket path for a thumbnail.
func ThumbnailObjectPath(videoID uuid.UUID, quality, prompt string, now time.Time) string {
	return objectPath("thumbnails", "jpg", videoID, quality, prompt, now)
}

// ThumbnailForVideoObject maps a video object path to its thumbnail
// counterpart, keeping the embedded timestamp so both artifacts pair up.
// Legacy flat paths map to the flat thumbnail scheme. Paths outside the
// videos/ root have no thumbnail counterpart.
func ThumbnailForVideoObject(videoObject string) (string, bool) {
	if !strings.HasPrefix(videoObject, "videos/") || !strings.HasSuffix(videoObject, ".mp4") {
		return "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(videoObject, "videos/"), ".mp4")
	return "thumbnails/" + inner + ".jpg", true
}

func objectPath(root, ext string, videoID uuid.UUID, quality, prompt string, now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("%s/%d/%02d/%s/%s_%s_%s.%s",
		root, now.Year(), int(now.Month()), quality,
		videoID, PromptHash(prompt), now.Format(timestampLayout), ext)
}

// ParseObjectPath recovers the components embedded in an organized path.
// Legacy flat paths (videos/{id}.mp4) parse with Legacy=true and only the
// VideoID populated.
func ParseObjectPath(path string) (ObjectInfo, error) {
	parts := strings.Split(path, "/")

	if len(parts) == 2 && (parts[0] == "videos" || parts[0] == "thumbnails") {
		name := strings.TrimSuffix(strings.TrimSuffix(parts[1], ".mp4"), ".jpg")
		id, err := uuid.Parse(name)
		if err != nil {
			return ObjectInfo{}, fmt.Errorf("unrecognized legacy object name %q", parts[1])
		}
		return ObjectInfo{VideoID: id, Legacy: true}, nil
	}

	if len(parts) != 5 {
		return ObjectInfo{}, fmt.Errorf("unrecognized object path %q", path)
	}

	var info ObjectInfo
	if _, err := fmt.Sscanf(parts[1], "%d", &info.Year); err != nil {
		return ObjectInfo{}, fmt.Errorf("bad year in object path %q", path)
	}
	if _, err := fmt.Sscanf(parts[2], "%d", &info.Month); err != nil || info.Month < 1 || info.Month > 12 {
		return ObjectInfo{}, fmt.Errorf("bad month in object path %q", path)
	}
	info.Quality = parts[3]

	name := parts[4]
	idx := strings.IndexByte(name, '_')
	if idx < 0 {
		return ObjectInfo{}, fmt.Errorf("bad object name in path %q", path)
	}
	id, err := uuid.Parse(name[:idx])
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("bad video id in object path %q: %w", path, err)
	}
	info.VideoID = id

	return info, nil
}

// SplitGCSURL splits gs://bucket/object into bucket and object parts.
func SplitGCSURL(gcsURL string) (bucket, object string, err error) {
	trimmed := strings.TrimPrefix(gcsURL, "gs://")
	if trimmed == gcsURL {
		return "", "", fmt.Errorf("not a gs:// URL: %q", gcsURL)
	}
	bucket, object, found := strings.Cut(trimmed, "/")
	if !found || bucket == "" || object == "" {
		return "", "", fmt.Errorf("malformed gs:// URL: %q", gcsURL)
	}
	return bucket, object, nil
}
