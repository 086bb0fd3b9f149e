package veo

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Result is the resolved outcome of a finished generation operation.
// Exactly one of VideoURL or VideoBase64 is set on success.
type Result struct {
	Done        bool
	VideoURL    string
	VideoBase64 string
	Duration    int
}

type operationResponse struct {
	Name     string          `json:"name"`
	Done     bool            `json:"done"`
	Response json.RawMessage `json:"response"`
	Error    *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type predictionPayload struct {
	Videos                  []videoPayload `json:"videos"`
	Predictions             []videoPayload `json:"predictions"`
	RaiMediaFilteredCount   int            `json:"raiMediaFilteredCount"`
	RaiMediaFilteredReasons []string       `json:"raiMediaFilteredReasons"`
}

type videoPayload struct {
	GcsURI             string `json:"gcsUri"`
	StorageURI         string `json:"storageUri"`
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
}

var gcsURLPattern = regexp.MustCompile(`gs://[^\s"']+\.mp4`)

// parseOperation interprets a fetchPredictOperation response body.
// The upstream has shipped several response shapes; the modern one nests
// videos[] under response, an older one used predictions[]. As a final
// resort any gs://...mp4 string anywhere in the body is accepted.
func parseOperation(body []byte, duration int) (*Result, error) {
	var op operationResponse
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("malformed operation response: %w", err)
	}

	if !op.Done {
		return &Result{Done: false}, nil
	}

	if op.Error != nil {
		return nil, fmt.Errorf("operation failed upstream: %s", op.Error.Message)
	}

	if len(op.Response) > 0 {
		var payload predictionPayload
		if err := json.Unmarshal(op.Response, &payload); err != nil {
			return nil, fmt.Errorf("malformed operation response payload: %w", err)
		}

		candidates := payload.Videos
		if len(candidates) == 0 {
			candidates = payload.Predictions
		}

		if len(candidates) > 0 {
			v := candidates[0]
			switch {
			case v.GcsURI != "":
				return &Result{Done: true, VideoURL: v.GcsURI, Duration: duration}, nil
			case v.StorageURI != "":
				return &Result{Done: true, VideoURL: v.StorageURI, Duration: duration}, nil
			case v.BytesBase64Encoded != "":
				return &Result{Done: true, VideoBase64: v.BytesBase64Encoded, Duration: duration}, nil
			}
		}

		// All outputs filtered means the safety system refused the prompt.
		if payload.RaiMediaFilteredCount > 0 {
			return nil, &ContentViolationError{
				Reasons:       payload.RaiMediaFilteredReasons,
				FilteredCount: payload.RaiMediaFilteredCount,
			}
		}
	}

	if match := gcsURLPattern.Find(body); match != nil {
		return &Result{Done: true, VideoURL: string(match), Duration: duration}, nil
	}

	return nil, ErrNoOutput
}
