package chatlog

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"shop-agent/internal/catalog"
	"shop-agent/internal/logger"
	"shop-agent/internal/repository/db"
)

// Service persists conversation turns for audit and analytics. Log writes
// are fire-and-forget relative to the user-facing response: failures are
// recorded in the operational log and never fail the caller's request.
type Service struct {
	db db.Database
}

// NewService creates a conversation logger over the given database
func NewService(database db.Database) *Service {
	return &Service{db: database}
}

// EnsureSession resolves the session for a turn. A missing id creates a
// fresh session; an id owned by another user is treated as absent and
// replaced, so a caller can never append to someone else's log.
func (s *Service) EnsureSession(userID, sessionID string) (*db.ChatSession, error) {
	if sessionID != "" {
		session, err := s.db.GetSession(sessionID)
		if err == nil && session.UserID == userID {
			return session, nil
		}
		if err == nil {
			logger.Log.WithFields(logrus.Fields{
				"session_id": sessionID,
				"user_id":    userID,
			}).Warn("Session owned by another user, creating a fresh one")
		}
	}

	session, err := s.db.CreateSession(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// LogUserTurn appends the user's message to the session log
func (s *Service) LogUserTurn(session *db.ChatSession, content string) {
	if _, err := s.db.AddMessage(session.ID, "user", content, nil, nil); err != nil {
		logger.Log.WithError(err).WithField("session_id", session.ID).Error("Failed to log user turn")
	}
}

// LogAssistantTurn appends the assistant's reply together with the tool
// calls it made and the products it recommended
func (s *Service) LogAssistantTurn(session *db.ChatSession, content string, toolsUsed []db.ToolUse, products []catalog.Product) {
	if _, err := s.db.AddMessage(session.ID, "assistant", content, toolsUsed, products); err != nil {
		logger.Log.WithError(err).WithField("session_id", session.ID).Error("Failed to log assistant turn")
	}
}

// TouchSession bumps the session's updated_at after a completed turn
func (s *Service) TouchSession(session *db.ChatSession) {
	if err := s.db.TouchSession(session.ID); err != nil {
		logger.Log.WithError(err).WithField("session_id", session.ID).Warn("Failed to touch session")
	}
}
