package openai

import (
	"context"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model that replies with a canned response and records
// the messages and options it was called with.
type fakeModel struct {
	mu       sync.Mutex
	reply    string
	err      error
	noChoice bool
	calls    []fakeCall
}

type fakeCall struct {
	messages []llms.MessageContent
	options  llms.CallOptions
	deadline bool
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	_, hasDeadline := ctx.Deadline()

	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{messages: messages, options: opts, deadline: hasDeadline})
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.noChoice {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeModel) lastCall() fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

// humanText returns the text of the human turn of a recorded call.
func (c fakeCall) humanText() string {
	for _, m := range c.messages {
		if m.Role == llms.ChatMessageTypeHuman {
			if tp, ok := m.Parts[0].(llms.TextContent); ok {
				return tp.Text
			}
		}
	}
	return ""
}
