package gemini

import (
	"testing"
)

func TestParsePromptList(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantCount int
		wantFirst string
		wantErr   bool
	}{
		{
			name:      "plain json array",
			response:  `["a dog surfing","a cat flying","a robot dancing"]`,
			wantCount: 3,
			wantFirst: "a dog surfing",
		},
		{
			name:      "markdown json fence",
			response:  "```json\n[\"golden hour drone shot\"]\n```",
			wantCount: 1,
			wantFirst: "golden hour drone shot",
		},
		{
			name:      "bare fence with whitespace",
			response:  "  ```\n[\"one\",\"two\"]\n```  ",
			wantCount: 2,
			wantFirst: "one",
		},
		{
			name:     "not json",
			response: "Here are some ideas: 1. a dog",
			wantErr:  true,
		},
		{
			name:     "empty array",
			response: `[]`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompts, err := parsePromptList(tt.response)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(prompts) != tt.wantCount {
				t.Errorf("len = %d, want %d", len(prompts), tt.wantCount)
			}
			if prompts[0] != tt.wantFirst {
				t.Errorf("first = %q, want %q", prompts[0], tt.wantFirst)
			}
		})
	}
}
