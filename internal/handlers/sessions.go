package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shop-agent/internal/auth"
	"shop-agent/internal/logger"
	"shop-agent/internal/repository/db"
)

// SessionSummary is one row in the session list
type SessionSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageView is one logged turn returned to the client
type MessageView struct {
	ID                  string       `json:"id"`
	Role                string       `json:"role"`
	Content             string       `json:"content"`
	ToolsUsed           []db.ToolUse `json:"tools_used,omitempty"`
	ProductsRecommended interface{}  `json:"products_recommended,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
}

// SessionsHandler handles GET /api/sessions
func (ch *ChatHandlers) SessionsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		ch.sendError(w, http.StatusUnauthorized, "Missing identity", nil)
		return
	}

	sessions, err := ch.db.GetSessionsByUser(identity.UserID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", identity.UserID).Error("Failed to list sessions")
		ch.sendError(w, http.StatusInternalServerError, "Failed to list sessions", err)
		return
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, SessionSummary{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"sessions": summaries})
}

// SessionMessagesHandler handles GET /api/sessions/{id}/messages. Sessions
// are owner-scoped, requests for another user's session return 404 rather
// than confirming the session exists.
func (ch *ChatHandlers) SessionMessagesHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		ch.sendError(w, http.StatusUnauthorized, "Missing identity", nil)
		return
	}

	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		ch.sendError(w, http.StatusBadRequest, "Missing session id", nil)
		return
	}

	session, err := ch.db.GetSession(sessionID)
	if err != nil || session.UserID != identity.UserID {
		ch.sendError(w, http.StatusNotFound, "Session not found", nil)
		return
	}

	messages, err := ch.db.GetSessionMessages(sessionID)
	if err != nil {
		logger.Log.WithError(err).WithField("session_id", sessionID).Error("Failed to load session messages")
		ch.sendError(w, http.StatusInternalServerError, "Failed to load messages", err)
		return
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		view := MessageView{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			ToolsUsed: m.ToolsUsed,
			CreatedAt: m.CreatedAt,
		}
		if len(m.ProductsRecommended) > 0 {
			view.ProductsRecommended = toSummaries(m.ProductsRecommended)
		}
		views = append(views, view)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"session_id": sessionID,
		"messages":   views,
	})
}

// HealthHandler handles GET /health
func (ch *ChatHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
