package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"shop-agent/internal/catalog"
	"shop-agent/internal/logger"
	"shop-agent/internal/repository/db"
	"shop-agent/internal/service/chatlog"
	"shop-agent/internal/service/llm"
	"shop-agent/internal/service/tools"
)

const (
	// maxIterations bounds the number of model round-trips per request
	maxIterations = 5
	// maxHistoryTurns bounds the conversation history passed to the model
	maxHistoryTurns = 24
)

// Turn is one prior conversation turn supplied by the caller
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RunRequest contains all the parameters needed to process one message
type RunRequest struct {
	UserID    string
	Message   string
	History   []Turn
	SessionID string
}

// RunResult is the terminal outcome of one agent loop
type RunResult struct {
	Reply     string
	Products  []catalog.Product
	SessionID string
}

// Service drives the conversation: it builds the model context, dispatches
// tool calls against the catalog, and terminates with a reply plus a
// curated product list.
type Service struct {
	gateway  llm.Gateway
	executor *tools.Executor
	log      *chatlog.Service
}

// NewService creates the agent orchestrator
func NewService(gateway llm.Gateway, executor *tools.Executor, log *chatlog.Service) *Service {
	return &Service{
		gateway:  gateway,
		executor: executor,
		log:      log,
	}
}

// Run processes one user message to a terminal state. Tool-level failures
// are fed back to the model and never abort the turn; model gateway
// failures do, and nothing is logged for the aborted assistant turn.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	session, err := s.log.EnsureSession(req.UserID, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	s.log.LogUserTurn(session, req.Message)

	state := StateBuildingContext
	messages := buildContext(req)
	state = advance(state, nil)

	var toolsUsed []db.ToolUse
	var candidates []catalog.Product // latest search results
	var shown []catalog.Product      // latest show_products results, overrides candidates
	var reply string

	for iteration := 0; iteration < maxIterations && state == StateAwaitingModel; iteration++ {
		completion, err := s.gateway.Complete(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("model completion failed: %w", err)
		}

		state = advance(state, completion)
		if state == StateDone {
			reply = completion.Content
			break
		}

		// StateDispatchingTools: execute every requested call and feed the
		// results back into the context
		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		})

		for _, call := range completion.ToolCalls {
			payload, products, isShow := s.executeTool(ctx, call)

			resultJSON, err := json.Marshal(payload)
			if err != nil {
				resultJSON = []byte(`{"error":"result encoding failed"}`)
			}

			toolsUsed = append(toolsUsed, db.ToolUse{
				Tool:      call.Function.Name,
				Arguments: rawArguments(call.Function.Arguments),
				Result:    resultJSON,
			})

			if isShow {
				shown = products
			} else if products != nil {
				candidates = products
			}

			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    string(resultJSON),
				ToolCallID: call.ID,
				Name:       call.Function.Name,
			})
		}

		state = advance(state, nil)
	}

	if state != StateDone {
		logger.Log.WithFields(logrus.Fields{
			"session_id": session.ID,
			"iterations": maxIterations,
		}).Warn("Agent loop hit iteration cap")
		reply = fallbackReply(req.Message)
	}

	// show_products output is the definitive recommendation set; raw search
	// candidates are only surfaced when the model never committed to a
	// curated list
	display := shown
	if len(display) == 0 {
		display = candidates
	}
	if display == nil {
		display = []catalog.Product{}
	}

	s.log.LogAssistantTurn(session, reply, toolsUsed, shown)
	s.log.TouchSession(session)

	return &RunResult{
		Reply:     reply,
		Products:  display,
		SessionID: session.ID,
	}, nil
}

// executeTool dispatches one tool call. It returns the payload to feed
// back to the model, the product list the call produced (nil for
// get_price_range and unknown tools) and whether the call was
// show_products.
func (s *Service) executeTool(ctx context.Context, call llm.ToolCall) (any, []catalog.Product, bool) {
	logger.Log.WithFields(logrus.Fields{
		"tool":    call.Function.Name,
		"call_id": call.ID,
	}).Debug("Dispatching tool call")

	switch call.Function.Name {
	case llm.ToolSearchProducts:
		result := s.executor.SearchProducts(ctx, tools.ParseSearchArgs(call.Function.Arguments))
		return result, result.Products, false
	case llm.ToolGetPriceRange:
		result := s.executor.GetPriceRange(ctx, tools.ParsePriceRangeArgs(call.Function.Arguments))
		return result, nil, false
	case llm.ToolShowProducts:
		result := s.executor.ShowProducts(ctx, tools.ParseShowArgs(call.Function.Arguments))
		return result, result.Products, true
	default:
		logger.Log.WithField("tool", call.Function.Name).Warn("Model requested unknown tool")
		return map[string]string{"error": "unknown tool: " + call.Function.Name}, nil, false
	}
}

// buildContext assembles the initial model context: system prompt, the
// trimmed history, then the new user turn
func buildContext(req RunRequest) []llm.Message {
	history := trimHistory(req.History)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})
	return messages
}

// trimHistory keeps only user/assistant turns and drops everything but the
// most recent maxHistoryTurns of them
func trimHistory(history []Turn) []Turn {
	kept := make([]Turn, 0, len(history))
	for _, turn := range history {
		if turn.Role == llm.RoleUser || turn.Role == llm.RoleAssistant {
			kept = append(kept, turn)
		}
	}
	if len(kept) > maxHistoryTurns {
		kept = kept[len(kept)-maxHistoryTurns:]
	}
	return kept
}

// rawArguments preserves the model's argument string in the log when it is
// valid JSON, falling back to a quoted string when it is not
func rawArguments(raw string) json.RawMessage {
	if raw == "" {
		return nil
	}
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw)
	}
	quoted, _ := json.Marshal(raw)
	return quoted
}
