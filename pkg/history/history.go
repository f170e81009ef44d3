// Package history keeps the ordered conversation an agent shows the model.
package history

import "github.com/dtnitsch/brochure-agent/models"

// History is an append-only log of conversation turns with one invariant:
// the first element returned by Messages is always a system message whose
// content equals the current system behavior. The system slot is recomputed
// on every read, so changing the behavior text retroactively rewrites
// element 0 while turns 1..n stay stable.
type History struct {
	systemBehavior string
	messages       []models.Message
}

// New creates a History with the given system behavior text.
func New(systemBehavior string) *History {
	return &History{systemBehavior: systemBehavior}
}

// SystemBehavior returns the current system behavior text.
func (h *History) SystemBehavior() string {
	return h.systemBehavior
}

// SetSystemBehavior replaces the behavior text. The change is visible in
// element 0 on the next Messages call; past turns are untouched.
func (h *History) SetSystemBehavior(text string) {
	h.systemBehavior = text
}

// AddUserMessage appends a user turn.
func (h *History) AddUserMessage(content string) {
	h.messages = append(h.messages, models.Message{Role: models.RoleUser, Content: content})
}

// AddAssistantMessage appends an assistant turn.
func (h *History) AddAssistantMessage(content string) {
	h.messages = append(h.messages, models.Message{Role: models.RoleAssistant, Content: content})
}

// Messages returns the full conversation, refreshing the leading system
// message first: prepend one if the log is empty, insert one if the first
// stored turn is not a system turn, otherwise overwrite its content.
func (h *History) Messages() []models.Message {
	system := models.Message{Role: models.RoleSystem, Content: h.systemBehavior}

	switch {
	case len(h.messages) == 0:
		h.messages = append(h.messages, system)
	case h.messages[0].Role != models.RoleSystem:
		h.messages = append([]models.Message{system}, h.messages...)
	default:
		h.messages[0].Content = h.systemBehavior
	}

	return h.messages
}

// Len reports the number of stored turns, not counting a system message
// that Messages would prepend on the next read.
func (h *History) Len() int {
	return len(h.messages)
}
