// Package agent holds the conversational building blocks of the brochure
// pipeline: a shared ask loop over one conversation history, and the link
// relevance classifier built on it.
package agent

import (
	"context"

	"github.com/dtnitsch/brochure-agent/pkg/history"
	"github.com/dtnitsch/brochure-agent/pkg/inference"
)

// Provider is the narrow inference surface the agents consume. Satisfied by
// *inference.Client; tests substitute scripted fakes.
type Provider interface {
	Respond(ctx context.Context, req inference.Request) (string, error)
}

// Agent owns one conversation history and one provider handle. Every Ask
// appends both sides of the exchange to the history, so later calls see the
// accumulated dialogue.
type Agent struct {
	provider Provider
	model    string
	history  *history.History
}

// New creates an Agent whose conversation starts with the given system
// behavior text.
func New(provider Provider, model, systemBehavior string) *Agent {
	return &Agent{
		provider: provider,
		model:    model,
		history:  history.New(systemBehavior),
	}
}

// History exposes the agent's conversation log.
func (a *Agent) History() *history.History {
	return a.history
}

// Ask appends the prompt as a user turn, performs one inference round-trip
// at medium reasoning effort, appends the reply as an assistant turn, and
// returns the reply text. Provider failures propagate; nothing is retried.
func (a *Agent) Ask(ctx context.Context, prompt string) (string, error) {
	a.history.AddUserMessage(prompt)

	reply, err := a.provider.Respond(ctx, inference.Request{
		Model:        a.model,
		Instructions: a.history.SystemBehavior(),
		Input:        a.history.Messages(),
		Effort:       inference.EffortMedium,
	})
	if err != nil {
		return "", err
	}

	a.history.AddAssistantMessage(reply)
	return reply, nil
}
