package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
	"github.com/heartmarshall/drugverify-backend/internal/service/chat"
)

// MsgAssistantUnavailable is returned with 503 when no model could answer.
const MsgAssistantUnavailable = "The AI assistant is temporarily unavailable. Please try again in a moment."

type chatService interface {
	Chat(ctx context.Context, input chat.Input) (*chat.Reply, error)
}

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	History []chatMessage `json:"history"`
	Message string        `json:"message"`
}

type chatResponse struct {
	Response    string `json:"response"`
	SourceModel string `json:"sourceModel"`
}

// Chat answers one message in the context of the given history.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := chat.Input{Message: req.Message, History: make([]domain.ChatMessage, 0, len(req.History))}
	for _, m := range req.History {
		input.History = append(input.History, domain.ChatMessage{Role: domain.ChatRole(m.Role), Content: m.Content})
	}

	reply, err := h.svc.Chat(r.Context(), input)
	if err != nil {
		if writeValidation(w, err) {
			return
		}
		if errors.Is(err, domain.ErrModelUnavailable) {
			writeError(w, http.StatusServiceUnavailable, MsgAssistantUnavailable)
			return
		}
		h.log.ErrorContext(r.Context(), "chat failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: reply.Response, SourceModel: reply.SourceModel})
}
