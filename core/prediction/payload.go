package prediction

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	braceObjRe   = regexp.MustCompile(`(?s)(\{[^{}]*"predicted_available"[^{}]*\})`)
)

// payload is the JSON object the completion model is asked to return.
type payload struct {
	PredictedAvailable bool    `json:"predicted_available"`
	Confidence         float64 `json:"confidence"`
	Reasoning          string  `json:"reasoning"`
}

// parsePredictionPayload extracts the prediction object from a completion
// response. Models wrap JSON in code fences or surround it with prose, so
// three attempts are made in order: fenced block, first brace-delimited
// object carrying the expected key, then the raw trimmed text.
func parsePredictionPayload(text string) (payload, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return payload{}, fmt.Errorf("empty response")
	}

	candidates := make([]string, 0, 3)
	if m := fencedJSONRe.FindStringSubmatch(trimmed); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := braceObjRe.FindStringSubmatch(trimmed); m != nil {
		candidates = append(candidates, m[1])
	}
	candidates = append(candidates, trimmed)

	var lastErr error
	for _, c := range candidates {
		var p payload
		if err := json.Unmarshal([]byte(c), &p); err != nil {
			lastErr = err
			continue
		}
		return p, nil
	}
	return payload{}, fmt.Errorf("no prediction object in response: %w", lastErr)
}
