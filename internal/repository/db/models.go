package db

import (
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shop-agent/internal/catalog"
)

// User represents a user in the database
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    string
}

// VerifyPassword checks if the provided password matches the user's hashed password
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// ChatSession groups the logged turns of one conversation. Sessions are
// owned exclusively by their creating user and are never reassigned.
type ChatSession struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToolUse records one tool invocation made while producing an assistant turn
type ToolUse struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
}

// LoggedMessage is one append-only conversation log row. ToolsUsed and
// ProductsRecommended are nil for user turns and for assistant turns that
// used no tools / showed no products.
type LoggedMessage struct {
	ID                  string
	SessionID           string
	Role                string
	Content             string
	ToolsUsed           []ToolUse
	ProductsRecommended []catalog.Product
	SchemaVersion       int
	CreatedAt           time.Time
}

// Database defines the persistence interface for users, sessions and the
// conversation log
type Database interface {
	// User operations
	CreateUser(username, email, password string) (*User, error)
	GetUserByUsername(username string) (*User, error)

	// Session operations
	CreateSession(userID string) (*ChatSession, error)
	GetSession(id string) (*ChatSession, error)
	GetSessionsByUser(userID string) ([]ChatSession, error)
	TouchSession(id string) error

	// Conversation log operations
	AddMessage(sessionID, role, content string, toolsUsed []ToolUse, products []catalog.Product) (*LoggedMessage, error)
	GetSessionMessages(sessionID string) ([]LoggedMessage, error)

	// Close closes the database connection
	Close() error
}
