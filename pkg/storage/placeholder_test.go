package storage

import (
	"bytes"
	"image/jpeg"
	"testing"
)

func TestPlaceholderJPEG(t *testing.T) {
	data, err := PlaceholderJPEG("a dragon over mountains")
	if err != nil {
		t.Fatalf("PlaceholderJPEG error: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable jpeg: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != placeholderWidth || bounds.Dy() != placeholderHeight {
		t.Errorf("bounds = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), placeholderWidth, placeholderHeight)
	}
}

func TestPlaceholderTintTracksPrompt(t *testing.T) {
	a, err := PlaceholderJPEG("a dragon over mountains")
	if err != nil {
		t.Fatal(err)
	}
	b, err := PlaceholderJPEG("neon city at night")
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a, b) {
		t.Error("different prompts produced identical placeholders")
	}

	again, err := PlaceholderJPEG("a dragon over mountains")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, again) {
		t.Error("same prompt should render deterministically")
	}
}
