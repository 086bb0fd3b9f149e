package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPromptHash(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "known digest prefix",
			prompt: "test prompt",
			want:   "0bba78c7", // first 8 hex of md5("test prompt")
		},
		{
			name:   "empty prompt",
			prompt: "",
			want:   "d41d8cd9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptHash(tt.prompt)
			if got != tt.want {
				t.Errorf("PromptHash(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
			if len(got) != 8 {
				t.Errorf("PromptHash length = %d, want 8", len(got))
			}
		})
	}
}

func TestVideoObjectPathRoundTrip(t *testing.T) {
	now := time.Date(2024, 12, 15, 14, 30, 22, 0, time.UTC)

	tests := []struct {
		name    string
		quality string
	}{
		{name: "free quality", quality: "free"},
		{name: "premium quality", quality: "premium"},
		{name: "1080p quality", quality: "1080p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			path := VideoObjectPath(id, tt.quality, "a dog surfing a wave", now)

			if !strings.HasPrefix(path, "videos/2024/12/"+tt.quality+"/") {
				t.Errorf("path %q missing organized prefix", path)
			}
			if !strings.HasSuffix(path, ".mp4") {
				t.Errorf("path %q missing mp4 extension", path)
			}
			if !strings.Contains(path, "20241215_143022") {
				t.Errorf("path %q missing timestamp component", path)
			}

			info, err := ParseObjectPath(path)
			if err != nil {
				t.Fatalf("ParseObjectPath(%q) error: %v", path, err)
			}
			if info.Year != 2024 || info.Month != 12 {
				t.Errorf("parsed date = %d/%d, want 2024/12", info.Year, info.Month)
			}
			if info.Quality != tt.quality {
				t.Errorf("parsed quality = %q, want %q", info.Quality, tt.quality)
			}
			if info.VideoID != id {
				t.Errorf("parsed id = %s, want %s", info.VideoID, id)
			}
			if info.Legacy {
				t.Error("organized path parsed as legacy")
			}
		})
	}
}

func TestThumbnailObjectPath(t *testing.T) {
	now := time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC)
	id := uuid.New()

	path := ThumbnailObjectPath(id, "free", "prompt", now)
	if !strings.HasPrefix(path, "thumbnails/2025/01/free/") {
		t.Errorf("path %q missing thumbnail prefix", path)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("path %q missing jpg extension", path)
	}

	info, err := ParseObjectPath(path)
	if err != nil {
		t.Fatalf("ParseObjectPath(%q) error: %v", path, err)
	}
	if info.VideoID != id {
		t.Errorf("parsed id = %s, want %s", info.VideoID, id)
	}
}

func TestThumbnailForVideoObject(t *testing.T) {
	id := uuid.New()
	now := time.Date(2024, 12, 15, 14, 30, 22, 0, time.UTC)
	organized := VideoObjectPath(id, "premium", "a dog surfing a wave", now)

	tests := []struct {
		name   string
		object string
		want   string
		wantOk bool
	}{
		{
			name:   "organized path keeps the embedded timestamp",
			object: organized,
			want:   strings.TrimSuffix(strings.Replace(organized, "videos/", "thumbnails/", 1), ".mp4") + ".jpg",
			wantOk: true,
		},
		{
			name:   "legacy flat path",
			object: "videos/" + id.String() + ".mp4",
			want:   "thumbnails/" + id.String() + ".jpg",
			wantOk: true,
		},
		{
			name:   "staging prefix has no counterpart",
			object: "generated/" + id.String() + "/sample_0.mp4",
			wantOk: false,
		},
		{
			name:   "non-video extension",
			object: "videos/" + id.String() + ".jpg",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ThumbnailForVideoObject(tt.object)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("ThumbnailForVideoObject(%q) = %q, want %q", tt.object, got, tt.want)
			}
		})
	}
}

func TestParseObjectPathLegacy(t *testing.T) {
	id := uuid.New()

	info, err := ParseObjectPath("videos/" + id.String() + ".mp4")
	if err != nil {
		t.Fatalf("legacy path should parse: %v", err)
	}
	if !info.Legacy {
		t.Error("legacy flat path not flagged as legacy")
	}
	if info.VideoID != id {
		t.Errorf("parsed id = %s, want %s", info.VideoID, id)
	}
}

func TestParseObjectPathRejectsGarbage(t *testing.T) {
	tests := []string{
		"",
		"videos",
		"videos/not-a-uuid.mp4",
		"videos/2024/13/free/x.mp4",
		"videos/2024/12/free/noseparator.mp4",
		"archive/2024/12/free/" + uuid.New().String() + "_abcd1234_20241215_143022.mp4/extra",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if _, err := ParseObjectPath(path); err == nil {
				t.Errorf("ParseObjectPath(%q) should error", path)
			}
		})
	}
}

func TestSplitGCSURL(t *testing.T) {
	tests := []struct {
		url        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"gs://my-bucket/videos/a.mp4", "my-bucket", "videos/a.mp4", false},
		{"gs://b/o", "b", "o", false},
		{"https://example.com/x", "", "", true},
		{"gs://bucket-only", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			bucket, object, err := SplitGCSURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitGCSURL(%q) err = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("SplitGCSURL(%q) = (%q, %q), want (%q, %q)", tt.url, bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}
