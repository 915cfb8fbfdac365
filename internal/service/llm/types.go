package llm

import "context"

// Message roles used on the completion wire
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn in the conversation sent to the model provider
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall is a structured request from the model to execute a named tool
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its raw JSON argument string
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Completion is the assistant turn returned by the gateway: either plain
// text or one or more tool calls.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// HasToolCalls reports whether the model asked for tool execution
func (c *Completion) HasToolCalls() bool {
	return len(c.ToolCalls) > 0
}

// Gateway sends a conversation plus the fixed tool manifest to the model
// provider and returns the assistant turn
type Gateway interface {
	Complete(ctx context.Context, messages []Message) (*Completion, error)
}
