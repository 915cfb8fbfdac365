package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"shop-agent/internal/config"
	"shop-agent/internal/logger"
)

const defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"

// repairInstruction is appended to the conversation for the single
// schema-repair retry after a tool-argument validation failure
const repairInstruction = "Your previous tool call did not match the declared argument schema. Resubmit it: omit optional fields you are not setting, never send null for optional parameters, and match the schema exactly."

// OpenRouterGateway implements Gateway against the OpenRouter completion
// API. It holds an ordered credential list and rotates to the next key when
// the provider reports a rate-limit condition.
type OpenRouterGateway struct {
	apiKeys []string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenRouterGateway creates a gateway with the configured credential list
func NewOpenRouterGateway(llmConfig *config.LLMConfig) *OpenRouterGateway {
	timeout := llmConfig.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenRouterGateway{
		apiKeys: llmConfig.APIKeys,
		model:   llmConfig.Model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model      string    `json:"model"`
	Messages   []Message `json:"messages"`
	Tools      []Tool    `json:"tools,omitempty"`
	ToolChoice string    `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// providerError is a non-2xx provider response, kept around so the rotation
// logic can classify it and the final error can carry the last attempt's
// detail.
type providerError struct {
	status int
	body   string
}

func (e *providerError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.status, e.body)
}

// isRateLimited reports whether the error is a rate-limit condition that
// justifies rotating to the next credential
func isRateLimited(err error) bool {
	var provErr *providerError
	if !errors.As(err, &provErr) {
		return false
	}
	if provErr.status == http.StatusTooManyRequests {
		return true
	}
	body := strings.ToLower(provErr.body)
	return strings.Contains(body, "rate limit") || strings.Contains(body, "rate-limited") || strings.Contains(body, "quota exceeded")
}

// isSchemaViolation reports whether the provider rejected the tool-call
// arguments for not matching the declared schema
func isSchemaViolation(err error) bool {
	var provErr *providerError
	if !errors.As(err, &provErr) {
		return false
	}
	if provErr.status != http.StatusBadRequest {
		return false
	}
	body := strings.ToLower(provErr.body)
	return strings.Contains(body, "schema") ||
		strings.Contains(body, "invalid_function_parameters") ||
		strings.Contains(body, "tool call validation")
}

// Complete implements Gateway. Credentials are tried in order; a rate-limit
// response advances to the next one silently. A tool-schema validation
// failure earns exactly one corrective retry on the same credential; if the
// retry fails with anything but a rate-limit, the error propagates.
func (g *OpenRouterGateway) Complete(ctx context.Context, messages []Message) (*Completion, error) {
	if len(g.apiKeys) == 0 {
		return nil, fmt.Errorf("no API keys configured")
	}

	var lastErr error
	for i, apiKey := range g.apiKeys {
		completion, err := g.completeWithKey(ctx, apiKey, messages)
		if err == nil {
			return completion, nil
		}

		if isSchemaViolation(err) {
			logger.Log.WithField("key_index", i).Warn("Tool schema validation failed, retrying with corrective instruction")
			repaired := append(append([]Message{}, messages...), Message{Role: RoleSystem, Content: repairInstruction})
			completion, err = g.completeWithKey(ctx, apiKey, repaired)
			if err == nil {
				return completion, nil
			}
		}

		if isRateLimited(err) {
			logger.Log.WithFields(logrus.Fields{
				"key_index":      i,
				"keys_remaining": len(g.apiKeys) - i - 1,
			}).Warn("Credential rate-limited, rotating to next key")
			lastErr = err
			continue
		}

		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return nil, fmt.Errorf("all %d credentials exhausted: %w", len(g.apiKeys), lastErr)
}

// completeWithKey issues a single completion request with one credential
func (g *OpenRouterGateway) completeWithKey(ctx context.Context, apiKey string, messages []Message) (*Completion, error) {
	reqBody := chatRequest{
		Model:      g.model,
		Messages:   messages,
		Tools:      Manifest(),
		ToolChoice: "auto",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("X-Title", "Shop Agent")

	logger.Log.WithFields(logrus.Fields{
		"model":         g.model,
		"message_count": len(messages),
	}).Debug("Calling completion API")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &providerError{status: resp.StatusCode, body: string(body)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	message := chatResp.Choices[0].Message
	return &Completion{
		Content:   message.Content,
		ToolCalls: message.ToolCalls,
	}, nil
}
