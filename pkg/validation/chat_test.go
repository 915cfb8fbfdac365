package validation

import (
	"strings"
	"testing"
)

func TestValidateMessage(t *testing.T) {
	v := NewChatRequestValidator()

	if err := v.ValidateMessage("charger under 500"); err != nil {
		t.Errorf("Expected valid message, got: %v", err)
	}
	if err := v.ValidateMessage(""); err == nil {
		t.Error("Expected error for empty message")
	}
	if err := v.ValidateMessage("   \t  "); err == nil {
		t.Error("Expected error for whitespace-only message")
	}
	if err := v.ValidateMessage(strings.Repeat("a", maxMessageLength+1)); err == nil {
		t.Error("Expected error for oversized message")
	}
}

func TestValidateHistoryLength(t *testing.T) {
	v := NewChatRequestValidator()

	if err := v.ValidateHistoryLength(24); err != nil {
		t.Errorf("Expected valid history length, got: %v", err)
	}
	if err := v.ValidateHistoryLength(maxHistoryTurns + 1); err == nil {
		t.Error("Expected error for oversized history")
	}
}

func TestValidateChatRequest(t *testing.T) {
	v := NewChatRequestValidator()

	if err := v.ValidateChatRequest("hello", 2); err != nil {
		t.Errorf("Expected valid request, got: %v", err)
	}
	if err := v.ValidateChatRequest("", 2); err == nil {
		t.Error("Expected error for empty message")
	}
}
