package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shop-agent/internal/catalog"
	"shop-agent/internal/logger"
	"shop-agent/internal/repository/db"
)

// messageSchemaVersion tags conversation log rows so the analytics side can
// evolve the tools_used/products_recommended blob format later
const messageSchemaVersion = 1

// CreateSession creates a new chat session for a user
func (p *PostgresDB) CreateSession(userID string) (*db.ChatSession, error) {
	sessionID := uuid.New().String()
	var createdAt, updatedAt time.Time

	query := `
	INSERT INTO chat_sessions (id, user_id)
	VALUES ($1, $2)
	RETURNING id, created_at, updated_at
	`

	err := p.conn.QueryRow(query, sessionID, userID).Scan(&sessionID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"session_id": sessionID, "user_id": userID}).Info("Created new chat session")

	return &db.ChatSession{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// GetSession retrieves a specific chat session
func (p *PostgresDB) GetSession(id string) (*db.ChatSession, error) {
	var session db.ChatSession
	query := `SELECT id, user_id, created_at, updated_at FROM chat_sessions WHERE id = $1`

	err := p.conn.QueryRow(query, id).Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	return &session, nil
}

// GetSessionsByUser retrieves all chat sessions for a user
func (p *PostgresDB) GetSessionsByUser(userID string) ([]db.ChatSession, error) {
	query := `
	SELECT id, user_id, created_at, updated_at
	FROM chat_sessions
	WHERE user_id = $1
	ORDER BY updated_at DESC
	`

	rows, err := p.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []db.ChatSession
	for rows.Next() {
		var session db.ChatSession
		if err := rows.Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// TouchSession updates the session's updated_at timestamp
func (p *PostgresDB) TouchSession(id string) error {
	query := `UPDATE chat_sessions SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	if _, err := p.conn.Exec(query, id); err != nil {
		return fmt.Errorf("error touching session: %w", err)
	}
	return nil
}

// AddMessage appends a message to the conversation log. Tool usage and
// recommended products are stored as JSON blobs; both stay NULL when absent.
func (p *PostgresDB) AddMessage(sessionID, role, content string, toolsUsed []db.ToolUse, products []catalog.Product) (*db.LoggedMessage, error) {
	msgID := uuid.New().String()
	var createdAt time.Time

	var toolsJSON, productsJSON interface{}
	if len(toolsUsed) > 0 {
		data, err := json.Marshal(toolsUsed)
		if err != nil {
			return nil, fmt.Errorf("error encoding tools used: %w", err)
		}
		toolsJSON = data
	}
	if len(products) > 0 {
		data, err := json.Marshal(products)
		if err != nil {
			return nil, fmt.Errorf("error encoding recommended products: %w", err)
		}
		productsJSON = data
	}

	query := `
	INSERT INTO chat_messages (id, session_id, role, content, tools_used, products_recommended, schema_version)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at
	`

	err := p.conn.QueryRow(query, msgID, sessionID, role, content, toolsJSON, productsJSON, messageSchemaVersion).Scan(&msgID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("error adding message: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"role":       role,
		"tools":      len(toolsUsed),
		"products":   len(products),
	}).Debug("Logged conversation message")

	return &db.LoggedMessage{
		ID:                  msgID,
		SessionID:           sessionID,
		Role:                role,
		Content:             content,
		ToolsUsed:           toolsUsed,
		ProductsRecommended: products,
		SchemaVersion:       messageSchemaVersion,
		CreatedAt:           createdAt,
	}, nil
}

// GetSessionMessages retrieves all logged messages for a session in
// chronological order
func (p *PostgresDB) GetSessionMessages(sessionID string) ([]db.LoggedMessage, error) {
	query := `
	SELECT id, session_id, role, content, tools_used, products_recommended, schema_version, created_at
	FROM chat_messages
	WHERE session_id = $1
	ORDER BY created_at ASC
	`

	rows, err := p.conn.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []db.LoggedMessage
	for rows.Next() {
		var msg db.LoggedMessage
		var toolsJSON, productsJSON []byte
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &toolsJSON, &productsJSON, &msg.SchemaVersion, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		if len(toolsJSON) > 0 {
			if err := json.Unmarshal(toolsJSON, &msg.ToolsUsed); err != nil {
				logger.Log.WithError(err).Warn("Error decoding tools_used blob")
			}
		}
		if len(productsJSON) > 0 {
			if err := json.Unmarshal(productsJSON, &msg.ProductsRecommended); err != nil {
				logger.Log.WithError(err).Warn("Error decoding products_recommended blob")
			}
		}
		messages = append(messages, msg)
	}

	return messages, nil
}
