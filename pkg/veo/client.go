package veo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// ModelStandard serves free and 360p requests: 8 second clips, no audio.
	ModelStandard = "veo-2.0-generate-001"

	// ModelPremium serves premium and 1080p requests: up to 60 seconds with audio.
	ModelPremium = "veo-3.0-generate-001"

	standardMaxDuration = 8
	premiumMaxDuration  = 60
	minDuration         = 5

	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
	metadataTokenURL   = "http://metadata.google.internal/computeMetadata/v1/instance/service-accounts/default/token"
)

// Request describes one generation job handed to the upstream model.
type Request struct {
	Prompt          string
	Premium         bool
	DurationSeconds int
	StorageURI      string // gs:// prefix the upstream writes output under
}

// Config carries the project coordinates and polling budget.
type Config struct {
	ProjectID    string
	Location     string
	MockMode     bool
	PollInterval time.Duration
	PollAttempts int
}

// Client talks to the Vertex AI long-running prediction API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}

	if cfg.MockMode {
		return c, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err == nil {
		c.tokens = creds.TokenSource
	}
	// No ambient credentials found; token() will fall back to the
	// metadata server on first use.

	return c, nil
}

// Model returns the model id serving the request's quality class.
func Model(premium bool) string {
	if premium {
		return ModelPremium
	}
	return ModelStandard
}

func clampDuration(seconds int, premium bool) int {
	max := standardMaxDuration
	if premium {
		max = premiumMaxDuration
	}
	if seconds > max {
		seconds = max
	}
	if seconds < minDuration {
		seconds = minDuration
	}
	return seconds
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.cfg.MockMode {
		return "mock-token", nil
	}

	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err == nil {
			return tok.AccessToken, nil
		}
	}

	// Last resort on GCP: query the instance metadata server directly.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataTokenURL, nil)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.Header.Set("Metadata-Flavor", "Google")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Err: fmt.Errorf("metadata server returned status %d", resp.StatusCode)}
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &AuthError{Err: err}
	}
	if body.AccessToken == "" {
		return "", &AuthError{Err: fmt.Errorf("metadata server returned empty token")}
	}
	return body.AccessToken, nil
}

func (c *Client) modelURL(model, verb string) string {
	return fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:%s",
		c.cfg.Location, c.cfg.ProjectID, c.cfg.Location, model, verb)
}

// Start submits a generation job and returns the opaque operation name.
func (c *Client) Start(ctx context.Context, req Request) (string, error) {
	model := Model(req.Premium)

	if c.cfg.MockMode {
		return fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s/operations/%s",
			c.cfg.ProjectID, c.cfg.Location, model, uuid.New()), nil
	}

	token, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	parameters := map[string]any{
		"durationSeconds":  clampDuration(req.DurationSeconds, req.Premium),
		"aspectRatio":      "16:9",
		"enhancePrompt":    true,
		"sampleCount":      1,
		"personGeneration": "allow_adult",
		"storageUri":       req.StorageURI,
	}
	if req.Premium {
		parameters["generateAudio"] = true
	}

	payload := map[string]any{
		"instances":  []map[string]any{{"prompt": req.Prompt}},
		"parameters": parameters,
	}

	body, err := c.post(ctx, c.modelURL(model, "predictLongRunning"), token, payload)
	if err != nil {
		return "", err
	}

	var result struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &SubmitError{StatusCode: http.StatusOK, Body: "malformed submission response"}
	}
	if result.Name == "" {
		return "", &SubmitError{StatusCode: http.StatusOK, Body: "no operation name in response"}
	}
	return result.Name, nil
}

// Check fetches the current state of a running operation.
func (c *Client) Check(ctx context.Context, operationName string, premium bool) (*Result, error) {
	duration := standardMaxDuration
	if premium {
		duration = premiumMaxDuration
	}

	if c.cfg.MockMode {
		return &Result{Done: true, VideoURL: "gs://mock-bucket/videos/mock.mp4", Duration: duration}, nil
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	model := Model(premium)
	body, err := c.post(ctx, c.modelURL(model, "fetchPredictOperation"), token, map[string]any{
		"operationName": operationName,
	})
	if err != nil {
		return nil, err
	}

	return parseOperation(body, duration)
}

// WaitForCompletion polls the operation until it finishes, the poll budget
// is exhausted, or ctx ends. Content violations and upstream errors are
// returned as-is from Check.
func (c *Client) WaitForCompletion(ctx context.Context, operationName string, premium bool) (*Result, error) {
	for attempt := 0; attempt < c.cfg.PollAttempts; attempt++ {
		result, err := c.Check(ctx, operationName, premium)
		if err != nil {
			return nil, err
		}
		if result.Done {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.cfg.PollInterval):
		}
	}
	return nil, ErrTimeout
}

func (c *Client) post(ctx context.Context, url, token string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &SubmitError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
