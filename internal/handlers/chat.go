package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"shop-agent/internal/auth"
	"shop-agent/internal/catalog"
	"shop-agent/internal/logger"
	"shop-agent/internal/ratelimit"
	"shop-agent/internal/repository/db"
	"shop-agent/internal/service/agent"
	"shop-agent/pkg/validation"
)

// Agent runs one conversational turn to a terminal state
type Agent interface {
	Run(ctx context.Context, req agent.RunRequest) (*agent.RunResult, error)
}

// ChatRequest is the inbound payload from the presentation layer
type ChatRequest struct {
	Message   string       `json:"message"`
	History   []agent.Turn `json:"history,omitempty"`
	SessionID string       `json:"session_id,omitempty"`
}

// ProductSummary is the client-facing projection of a catalog product
type ProductSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	ImageURL string  `json:"image_url"`
}

// ChatResponse is the success payload
type ChatResponse struct {
	Reply     string           `json:"reply"`
	Products  []ProductSummary `json:"products"`
	SessionID string           `json:"session_id"`
}

// RateLimitedResponse tells the caller when to retry, in both storefront languages
type RateLimitedResponse struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	MessageAr  string `json:"message_ar"`
	RetryAfter int    `json:"retry_after"`
}

type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ChatHandlers exposes the conversational agent over HTTP
type ChatHandlers struct {
	validator *validation.ChatRequestValidator
	agent     Agent
	limiter   ratelimit.Store
	db        db.Database
}

// NewChatHandlers creates the handler set
func NewChatHandlers(agentService Agent, limiter ratelimit.Store, database db.Database) *ChatHandlers {
	return &ChatHandlers{
		validator: validation.NewChatRequestValidator(),
		agent:     agentService,
		limiter:   limiter,
		db:        database,
	}
}

func (ch *ChatHandlers) sendError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := ErrorResponse{
		Code:    status,
		Message: message,
	}
	if err != nil {
		errResp.Error = err.Error()
	}
	json.NewEncoder(w).Encode(errResp)
}

// ChatHandler handles POST /api/chat
func (ch *ChatHandlers) ChatHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		ch.sendError(w, http.StatusUnauthorized, "Missing identity", nil)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := ch.validator.ValidateChatRequest(req.Message, len(req.History)); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	result, err := ch.limiter.Check(r.Context(), identity.UserID)
	if err != nil {
		logger.Log.WithError(err).Error("Rate limit check failed")
		ch.sendError(w, http.StatusInternalServerError, "Rate limit check failed", err)
		return
	}
	if !result.Allowed {
		retryAfter := int(time.Until(result.ResetAt).Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}
		logger.Log.WithFields(logrus.Fields{
			"user_id":     identity.UserID,
			"retry_after": retryAfter,
		}).Info("Request rate-limited")

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(RateLimitedResponse{
			Code:       http.StatusTooManyRequests,
			Message:    "Too many messages. Please wait before trying again.",
			MessageAr:  "رسائل كثيرة جداً. يرجى الانتظار قبل المحاولة مرة أخرى.",
			RetryAfter: retryAfter,
		})
		return
	}

	runResult, err := ch.agent.Run(r.Context(), agent.RunRequest{
		UserID:    identity.UserID,
		Message:   req.Message,
		History:   req.History,
		SessionID: req.SessionID,
	})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", identity.UserID).Error("Agent run failed")
		ch.sendError(w, http.StatusInternalServerError, "Failed to process message", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChatResponse{
		Reply:     runResult.Reply,
		Products:  toSummaries(runResult.Products),
		SessionID: runResult.SessionID,
	})
}

func toSummaries(products []catalog.Product) []ProductSummary {
	summaries := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, ProductSummary{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Brand:    p.Brand,
			ImageURL: p.ImageURL,
		})
	}
	return summaries
}
