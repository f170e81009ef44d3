package models

import "encoding/json"

// Role tags one side of the model dialogue.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in the conversation sent to the model.
// Insertion order is the conversation order the model sees.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// LinkDescriptor is one link the model classified as brochure-relevant,
// e.g. {"type": "about page", "url": "https://example.com/about"}.
type LinkDescriptor struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// RelevanceResult is the structured reply schema the link classifier
// instructs the model to use.
type RelevanceResult struct {
	Links []LinkDescriptor `json:"links"`
}

// ParseRelevanceResult decodes the classifier's wire schema. Unknown fields
// are tolerated; a malformed document is the caller's error to surface.
func ParseRelevanceResult(data []byte) (*RelevanceResult, error) {
	var result RelevanceResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
