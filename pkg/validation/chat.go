package validation

import (
	"errors"
	"fmt"
	"strings"
)

// maxMessageLength bounds a single chat message
const maxMessageLength = 2000

// maxHistoryTurns bounds the caller-supplied history; anything longer is
// trimmed downstream, this only rejects abusive payloads
const maxHistoryTurns = 200

// ChatRequestValidator validates chat-related requests
type ChatRequestValidator struct{}

// NewChatRequestValidator creates a new ChatRequestValidator
func NewChatRequestValidator() *ChatRequestValidator {
	return &ChatRequestValidator{}
}

// ValidateMessage validates a chat message
func (v *ChatRequestValidator) ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("message cannot be empty")
	}
	if len(message) > maxMessageLength {
		return fmt.Errorf("message exceeds %d characters", maxMessageLength)
	}
	return nil
}

// ValidateHistoryLength validates the supplied history size
func (v *ChatRequestValidator) ValidateHistoryLength(turns int) error {
	if turns > maxHistoryTurns {
		return fmt.Errorf("history exceeds %d turns", maxHistoryTurns)
	}
	return nil
}

// ValidateChatRequest validates a complete chat request
func (v *ChatRequestValidator) ValidateChatRequest(message string, historyTurns int) error {
	if err := v.ValidateMessage(message); err != nil {
		return err
	}
	return v.ValidateHistoryLength(historyTurns)
}
