package search

import (
	"strings"
)

// Filters holds the extracted filters and the remaining clean query
type Filters struct {
	Creator string
	Quality string
	Query   string // The remaining text to search in Prompt/Title
}

// ParseQuery extracts slash commands from the raw query string
// Supported:
// /by:<term> -> Filter by creator display name
// /quality:<term> -> Filter by render quality
// <text> -> Remaining text is the Query
func ParseQuery(raw string) Filters {
	filters := Filters{}
	parts := strings.Fields(raw)
	var cleanParts []string

	for _, part := range parts {
		lowerPart := strings.ToLower(part)

		if strings.HasPrefix(lowerPart, "/by:") {
			filters.Creator = strings.TrimPrefix(lowerPart, "/by:")
		} else if strings.HasPrefix(lowerPart, "/quality:") {
			filters.Quality = strings.TrimPrefix(lowerPart, "/quality:")
		} else {
			cleanParts = append(cleanParts, part)
		}
	}

	filters.Query = strings.Join(cleanParts, " ")
	return filters
}
