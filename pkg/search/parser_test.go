package search

import (
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantCreator string
		wantQuality string
		wantQuery   string
	}{
		{
			name:      "plain text",
			raw:       "neon city at night",
			wantQuery: "neon city at night",
		},
		{
			name:        "creator filter",
			raw:         "/by:alice sunset timelapse",
			wantCreator: "alice",
			wantQuery:   "sunset timelapse",
		},
		{
			name:        "quality filter",
			raw:         "dragon /quality:1080p",
			wantQuality: "1080p",
			wantQuery:   "dragon",
		},
		{
			name:        "both filters no text",
			raw:         "/by:bob /quality:720p",
			wantCreator: "bob",
			wantQuality: "720p",
			wantQuery:   "",
		},
		{
			name:        "filters are case insensitive",
			raw:         "/BY:Alice ocean",
			wantCreator: "alice",
			wantQuery:   "ocean",
		},
		{
			name:      "empty query",
			raw:       "",
			wantQuery: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.raw)
			if got.Creator != tt.wantCreator {
				t.Errorf("Creator = %q, want %q", got.Creator, tt.wantCreator)
			}
			if got.Quality != tt.wantQuality {
				t.Errorf("Quality = %q, want %q", got.Quality, tt.wantQuality)
			}
			if got.Query != tt.wantQuery {
				t.Errorf("Query = %q, want %q", got.Query, tt.wantQuery)
			}
		})
	}
}
