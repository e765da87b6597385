package session

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
)

var _ adk.Agent = (*Agent)(nil)

// Extra keys set on the assistant message.
const (
	ExtraOutcome     = "outcome"
	ExtraLifecycle   = "lifecycle"
	ExtraDocument    = "document_path"
	ExtraDisplayName = "document_name"
	ExtraSummary     = "summary"
)

// Agent exposes a Flow as an adk agent. Only the last input message is used; the
// conversation state lives in the flow's store.
type Agent struct {
	name        string
	description string
	flow        *Flow
}

func NewAgent(name, description string, flow *Flow) *Agent {
	return &Agent{
		name:        name,
		description: description,
		flow:        flow,
	}
}

func (a *Agent) Name(ctx context.Context) string {
	return a.name
}

func (a *Agent) Description(ctx context.Context) string {
	return a.description
}

func (a *Agent) Run(ctx context.Context, input *adk.AgentInput, options ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	iter, gen := adk.NewAsyncIteratorPair[*adk.AgentEvent]()
	go func() {
		defer func() {
			e := recover()
			if e != nil {
				gen.Send(&adk.AgentEvent{
					Err: fmt.Errorf("recover from panic: %v", e),
				})
			}
			gen.Close()
		}()
		if input == nil || len(input.Messages) == 0 {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("no messages in input"),
			})
			return
		}
		resp, err := a.flow.Invoke(ctx, &Request{
			UserInput: input.Messages[len(input.Messages)-1].Content,
		})
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("flow invoke failed: %w", err),
			})
			return
		}
		gen.Send(&adk.AgentEvent{
			Output: &adk.AgentOutput{
				MessageOutput: &adk.MessageVariant{
					IsStreaming: false,
					Message:     toMessage(resp),
					Role:        schema.Assistant,
				},
			},
		})
	}()
	return iter
}

func toMessage(resp *Response) *schema.Message {
	extra := map[string]any{
		ExtraOutcome:   string(resp.Outcome),
		ExtraLifecycle: string(resp.Lifecycle),
	}
	if summary, ok := resp.Metadata["summary"]; ok {
		extra[ExtraSummary] = summary
	}
	for _, reply := range resp.Replies {
		if reply.Document != nil {
			extra[ExtraDocument] = reply.Document.Path
			extra[ExtraDisplayName] = reply.Document.DisplayName
		}
	}
	return &schema.Message{
		Role:    schema.Assistant,
		Content: resp.Text(),
		Extra:   extra,
	}
}
