package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/milelog/backend/internal/domain"
)

// Models asked for JSON sometimes wrap it in a markdown code fence anyway.
var fenceRE = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\n?(.*?)\n?\\s*```$")

// stripFence removes a single wrapping markdown code fence, if present.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if m := fenceRE.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// unmarshalResponse decodes a model response into dest after stripping any
// code fence. A response that is not valid JSON counts as a failed request.
func unmarshalResponse(text string, dest any) error {
	if err := json.Unmarshal([]byte(stripFence(text)), dest); err != nil {
		return fmt.Errorf("ai: malformed model response: %w: %w", domain.ErrRequestFailed, err)
	}
	return nil
}
