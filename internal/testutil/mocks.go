package testutil

import (
	"context"
	"errors"

	"shop-agent/internal/catalog"
	"shop-agent/internal/ratelimit"
	"shop-agent/internal/repository/db"
	"shop-agent/internal/service/llm"
)

// MockCatalog is a mock implementation of catalog.Catalog for testing
type MockCatalog struct {
	SearchFunc     func(ctx context.Context, query catalog.Query) ([]catalog.Product, error)
	PriceStatsFunc func(ctx context.Context, category string) (*catalog.PriceStats, error)
	ByIDsFunc      func(ctx context.Context, ids []string) ([]catalog.Product, error)

	// Call counters for short-circuit assertions
	SearchCalls     int
	PriceStatsCalls int
	ByIDsCalls      int
}

func (m *MockCatalog) Search(ctx context.Context, query catalog.Query) ([]catalog.Product, error) {
	m.SearchCalls++
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, errors.New("not implemented")
}

func (m *MockCatalog) PriceStats(ctx context.Context, category string) (*catalog.PriceStats, error) {
	m.PriceStatsCalls++
	if m.PriceStatsFunc != nil {
		return m.PriceStatsFunc(ctx, category)
	}
	return nil, errors.New("not implemented")
}

func (m *MockCatalog) ByIDs(ctx context.Context, ids []string) ([]catalog.Product, error) {
	m.ByIDsCalls++
	if m.ByIDsFunc != nil {
		return m.ByIDsFunc(ctx, ids)
	}
	return nil, errors.New("not implemented")
}

// MockGateway is a mock implementation of llm.Gateway for testing
type MockGateway struct {
	CompleteFunc func(ctx context.Context, messages []llm.Message) (*llm.Completion, error)

	// Calls records every conversation passed to Complete
	Calls [][]llm.Message
}

func (m *MockGateway) Complete(ctx context.Context, messages []llm.Message) (*llm.Completion, error) {
	m.Calls = append(m.Calls, messages)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages)
	}
	return nil, errors.New("not implemented")
}

// MockDatabase is a mock implementation of db.Database for testing
type MockDatabase struct {
	CreateUserFunc        func(username, email, password string) (*db.User, error)
	GetUserByUsernameFunc func(username string) (*db.User, error)

	CreateSessionFunc     func(userID string) (*db.ChatSession, error)
	GetSessionFunc        func(id string) (*db.ChatSession, error)
	GetSessionsByUserFunc func(userID string) ([]db.ChatSession, error)
	TouchSessionFunc      func(id string) error

	AddMessageFunc         func(sessionID, role, content string, toolsUsed []db.ToolUse, products []catalog.Product) (*db.LoggedMessage, error)
	GetSessionMessagesFunc func(sessionID string) ([]db.LoggedMessage, error)
}

func (m *MockDatabase) CreateUser(username, email, password string) (*db.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(username, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetUserByUsername(username string) (*db.User, error) {
	if m.GetUserByUsernameFunc != nil {
		return m.GetUserByUsernameFunc(username)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) CreateSession(userID string) (*db.ChatSession, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetSession(id string) (*db.ChatSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetSessionsByUser(userID string) ([]db.ChatSession, error) {
	if m.GetSessionsByUserFunc != nil {
		return m.GetSessionsByUserFunc(userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) TouchSession(id string) error {
	if m.TouchSessionFunc != nil {
		return m.TouchSessionFunc(id)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) AddMessage(sessionID, role, content string, toolsUsed []db.ToolUse, products []catalog.Product) (*db.LoggedMessage, error) {
	if m.AddMessageFunc != nil {
		return m.AddMessageFunc(sessionID, role, content, toolsUsed, products)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetSessionMessages(sessionID string) ([]db.LoggedMessage, error) {
	if m.GetSessionMessagesFunc != nil {
		return m.GetSessionMessagesFunc(sessionID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) Close() error {
	return nil
}

// MockLimiter is a mock implementation of ratelimit.Store for testing
type MockLimiter struct {
	CheckFunc func(ctx context.Context, identity string) (*ratelimit.Result, error)
}

func (m *MockLimiter) Check(ctx context.Context, identity string) (*ratelimit.Result, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, identity)
	}
	return nil, errors.New("not implemented")
}

func (m *MockLimiter) Close() error {
	return nil
}
