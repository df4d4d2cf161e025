package collaborator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// unmarshalJSONObject extracts the first JSON object from an LLM response
// and unmarshals it. The response may contain markdown fences or extra text
// around the JSON.
func unmarshalJSONObject(response string, v any) error {
	s := strings.TrimSpace(response)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < 0 || end <= start {
		return fmt.Errorf("no JSON object found in response")
	}
	return json.Unmarshal([]byte(s[start:end+1]), v)
}
