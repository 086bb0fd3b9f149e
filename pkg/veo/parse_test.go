package veo

import (
	"errors"
	"testing"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		duration    int
		wantDone    bool
		wantURL     string
		wantBase64  string
		wantErr     bool
	}{
		{
			name:     "still running",
			body:     `{"name":"op-1","done":false}`,
			duration: 8,
			wantDone: false,
		},
		{
			name:     "modern videos shape with gcs uri",
			body:     `{"name":"op-1","done":true,"response":{"videos":[{"gcsUri":"gs://bucket/videos/a.mp4"}]}}`,
			duration: 8,
			wantDone: true,
			wantURL:  "gs://bucket/videos/a.mp4",
		},
		{
			name:     "videos shape with storageUri field",
			body:     `{"done":true,"response":{"videos":[{"storageUri":"gs://bucket/videos/b.mp4"}]}}`,
			duration: 60,
			wantDone: true,
			wantURL:  "gs://bucket/videos/b.mp4",
		},
		{
			name:       "videos shape with inline base64",
			body:       `{"done":true,"response":{"videos":[{"bytesBase64Encoded":"QUJD"}]}}`,
			duration:   8,
			wantDone:   true,
			wantBase64: "QUJD",
		},
		{
			name:     "legacy predictions shape",
			body:     `{"done":true,"response":{"predictions":[{"gcsUri":"gs://bucket/videos/c.mp4"}]}}`,
			duration: 8,
			wantDone: true,
			wantURL:  "gs://bucket/videos/c.mp4",
		},
		{
			name:     "regex fallback scan",
			body:     `{"done":true,"response":{"someField":"output at gs://bucket/videos/d.mp4 done"}}`,
			duration: 8,
			wantDone: true,
			wantURL:  "gs://bucket/videos/d.mp4",
		},
		{
			name:    "upstream error",
			body:    `{"done":true,"error":{"code":13,"message":"internal error"}}`,
			wantErr: true,
		},
		{
			name:    "done with no payload at all",
			body:    `{"done":true,"response":{}}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"done":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseOperation([]byte(tt.body), tt.duration)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Done != tt.wantDone {
				t.Errorf("Done = %v, want %v", result.Done, tt.wantDone)
			}
			if result.VideoURL != tt.wantURL {
				t.Errorf("VideoURL = %q, want %q", result.VideoURL, tt.wantURL)
			}
			if result.VideoBase64 != tt.wantBase64 {
				t.Errorf("VideoBase64 = %q, want %q", result.VideoBase64, tt.wantBase64)
			}
			if tt.wantDone && result.Duration != tt.duration {
				t.Errorf("Duration = %d, want %d", result.Duration, tt.duration)
			}
		})
	}
}

func TestParseOperationContentViolation(t *testing.T) {
	body := `{"done":true,"response":{"raiMediaFilteredCount":1,"raiMediaFilteredReasons":["violence detected in prompt"]}}`

	_, err := parseOperation([]byte(body), 8)
	if err == nil {
		t.Fatal("expected content violation error")
	}
	if !IsContentViolation(err) {
		t.Fatalf("expected ContentViolationError, got %T: %v", err, err)
	}

	var cv *ContentViolationError
	errors.As(err, &cv)
	if cv.FilteredCount != 1 {
		t.Errorf("FilteredCount = %d, want 1", cv.FilteredCount)
	}
	if len(cv.Reasons) != 1 || cv.Reasons[0] != "violence detected in prompt" {
		t.Errorf("Reasons = %v, want the filter reason text", cv.Reasons)
	}

	// The reason text must survive into the error message so it can be
	// persisted as the request's error_message.
	if got := cv.Error(); got != "content policy violation: violence detected in prompt" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseOperationNoOutputSentinel(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty response object", body: `{"done":true,"response":{}}`},
		{name: "no response field", body: `{"done":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOperation([]byte(tt.body), 8)
			if !errors.Is(err, ErrNoOutput) {
				t.Fatalf("expected ErrNoOutput, got %v", err)
			}
		})
	}
}

func TestClampDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		premium bool
		want    int
	}{
		{"standard caps at 8", 30, false, 8},
		{"premium caps at 60", 90, true, 60},
		{"floor of 5", 1, false, 5},
		{"premium floor of 5", 0, true, 5},
		{"in range untouched", 6, false, 6},
		{"premium in range untouched", 45, true, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampDuration(tt.seconds, tt.premium); got != tt.want {
				t.Errorf("clampDuration(%d, %v) = %d, want %d", tt.seconds, tt.premium, got, tt.want)
			}
		})
	}
}

func TestModel(t *testing.T) {
	if Model(false) != ModelStandard {
		t.Errorf("Model(false) = %q, want %q", Model(false), ModelStandard)
	}
	if Model(true) != ModelPremium {
		t.Errorf("Model(true) = %q, want %q", Model(true), ModelPremium)
	}
}
