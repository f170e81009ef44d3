package inference

import "github.com/dtnitsch/brochure-agent/models"

// ReasoningEffort is the provider hint controlling inference depth vs cost.
type ReasoningEffort string

const (
	EffortLow    ReasoningEffort = "low"
	EffortMedium ReasoningEffort = "medium"
	EffortHigh   ReasoningEffort = "high"
)

// Request is one blocking round-trip to the Responses API.
type Request struct {
	Model        string
	Instructions string
	Input        []models.Message
	Effort       ReasoningEffort
}

// responsesRequest is the wire format of POST /v1/responses.
type responsesRequest struct {
	Model        string           `json:"model"`
	Instructions string           `json:"instructions,omitempty"`
	Input        []models.Message `json:"input"`
	Reasoning    *reasoningConfig `json:"reasoning,omitempty"`
}

type reasoningConfig struct {
	Effort string `json:"effort"`
}

// responsesResponse is the subset of the Responses API reply we consume.
type responsesResponse struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Output []outputItem `json:"output"`
	Error  *apiError    `json:"error"`
}

type outputItem struct {
	Type    string        `json:"type"` // "message", "reasoning", ...
	Role    string        `json:"role,omitempty"`
	Content []contentPart `json:"content,omitempty"`
}

type contentPart struct {
	Type string `json:"type"` // "output_text", "refusal", ...
	Text string `json:"text,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// outputText concatenates every output_text part across message items,
// mirroring the SDK convenience accessor of the same name.
func (r *responsesResponse) outputText() string {
	var text string
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				text += part.Text
			}
		}
	}
	return text
}
