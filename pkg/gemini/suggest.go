package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type GeminiChatParts struct {
	Text string `json:"text"`
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
	Role  string             `json:"role"`
}

type GeminiChatRequest struct {
	Contents []*GeminiChatContent `json:"contents"`
}

type GeminiChatCandidate struct {
	Content *GeminiChatContent `json:"content"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

const (
	ChatMessageRoleUser = "user"

	generateContentURL = "https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent"
)

const suggestPromptTemplate = `You are an expert video prompt writer for AI video generation.
The user has provided this basic description: %q

Provide 3 improved, detailed video prompts that would work well for AI video generation.
Each prompt should be more descriptive and specific, include visual details, camera
movements, lighting, and atmosphere, and be 1-2 sentences long.

Respond with ONLY a JSON array of 3 strings. No other text.`

const randomPromptTemplate = `You are an expert video prompt writer for AI video generation.
Invent 3 creative, unrelated video prompts covering different subjects (seed %d).
Each prompt should include visual details, camera movements, lighting, and atmosphere,
and be 1-2 sentences long.

Respond with ONLY a JSON array of 3 strings. No other text.`

// SuggestPrompts asks Gemini for improved variants of a user's rough prompt.
func SuggestPrompts(ctx context.Context, apiKey string, userPrompt string) ([]string, error) {
	return generatePromptList(ctx, apiKey, fmt.Sprintf(suggestPromptTemplate, userPrompt))
}

// RandomPrompts asks Gemini for fresh prompt ideas. The seed varies the
// output between calls since the model otherwise repeats itself.
func RandomPrompts(ctx context.Context, apiKey string, seed int64) ([]string, error) {
	return generatePromptList(ctx, apiKey, fmt.Sprintf(randomPromptTemplate, seed))
}

func generatePromptList(ctx context.Context, apiKey string, instruction string) ([]string, error) {
	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{
			{
				Parts: []*GeminiChatParts{{Text: instruction}},
				Role:  ChatMessageRoleUser,
			},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", generateContentURL, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-goog-api-key", apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiChatResponse
	err = json.Unmarshal(resBody, &geminiRes)
	if err != nil {
		return nil, err
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no candidates in gemini response")
	}

	return parsePromptList(geminiRes.Candidates[0].Content.Parts[0].Text)
}

// parsePromptList cleans the markdown wrapper Gemini tends to add and
// decodes the JSON array of suggestions.
func parsePromptList(responseText string) ([]string, error) {
	responseBytes := []byte(responseText)
	responseBytes = bytes.TrimSpace(responseBytes)
	responseBytes = bytes.TrimPrefix(responseBytes, []byte("```json"))
	responseBytes = bytes.TrimPrefix(responseBytes, []byte("```"))
	responseBytes = bytes.TrimSuffix(responseBytes, []byte("```"))
	responseBytes = bytes.TrimSpace(responseBytes)

	var prompts []string
	if err := json.Unmarshal(responseBytes, &prompts); err != nil {
		return nil, fmt.Errorf("parse error: %w | raw: %s", err, string(responseBytes))
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("gemini returned an empty suggestion list")
	}

	return prompts, nil
}
