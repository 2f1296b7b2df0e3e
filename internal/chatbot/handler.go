package chatbot

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/nexusdigital/agency-api/internal/api/respond"
	"github.com/nexusdigital/agency-api/internal/observability/metrics"
	"github.com/nexusdigital/agency-api/pkg/logging"
)

// Handler manages chat widget connections and messages. Replies come
// from the keyword rule table, resolved synchronously on the
// connection's own goroutine, so no cross-session state is kept.
type Handler struct {
	transcript   TranscriptStore
	metrics      *metrics.BookingMetrics
	logger       *logging.Logger
	historyLimit int64
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type      string `json:"type"` // "message", "ping"
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type         string        `json:"type"` // "message", "typing", "history", "session", "pong", "error"
	Text         string        `json:"text,omitempty"`
	Role         string        `json:"role,omitempty"`
	SessionID    string        `json:"sessionId,omitempty"`
	Timestamp    string        `json:"timestamp,omitempty"`
	QuickActions []QuickAction `json:"quickActions,omitempty"`
	Messages     []Message     `json:"messages,omitempty"`
}

// NewHandler creates a chat handler. transcript may be nil, in which
// case sessions have no history.
func NewHandler(transcript TranscriptStore, m *metrics.BookingMetrics, historyLimit int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &Handler{
		transcript:   transcript,
		metrics:      m,
		logger:       logger,
		historyLimit: historyLimit,
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and handles real-time chat.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	fresh := sessionID == ""
	if fresh {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})

	// Returning sessions get their history replayed; new ones get the
	// welcome message.
	replayed := false
	if h.transcript != nil && !fresh {
		if msgs, err := h.transcript.List(r.Context(), sessionID, h.historyLimit); err == nil && len(msgs) > 0 {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: msgs})
			replayed = true
		}
	}
	if !replayed {
		h.sendReply(r.Context(), conn, sessionID, Welcome)
	}

	h.logger.Info("chat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("chat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})
		reply := h.processMessage(r.Context(), sessionID, msg.Text)
		h.sendReply(r.Context(), conn, sessionID, reply)
	}
}

// processMessage records the visitor message and resolves the reply.
func (h *Handler) processMessage(ctx context.Context, sessionID, text string) Reply {
	if h.transcript != nil {
		if err := h.transcript.Append(ctx, sessionID, Message{
			Role:      "user",
			Text:      text,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			h.logger.Error("chat: failed to store message", "error", err, "session_id", sessionID)
		}
	}

	reply := Respond(text)
	h.metrics.ObserveChatMessage(reply.Rule)
	return reply
}

func (h *Handler) sendReply(ctx context.Context, conn *websocket.Conn, sessionID string, reply Reply) {
	now := time.Now().UTC()
	if h.transcript != nil {
		if err := h.transcript.Append(ctx, sessionID, Message{
			Role:      "assistant",
			Text:      reply.Text,
			Rule:      reply.Rule,
			Timestamp: now,
		}); err != nil {
			h.logger.Error("chat: failed to store reply", "error", err, "session_id", sessionID)
		}
	}
	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:         "message",
		Role:         "assistant",
		Text:         reply.Text,
		QuickActions: reply.QuickActions,
		Timestamp:    now.Format(time.RFC3339),
	})
}

// HandleMessage is the HTTP fallback for widgets without WebSocket
// support. POST /api/chat/messages
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(w, http.StatusBadRequest, "Message text is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = generateSessionID()
	}

	reply := h.processMessage(r.Context(), req.SessionID, req.Text)
	now := time.Now().UTC()
	if h.transcript != nil {
		if err := h.transcript.Append(r.Context(), req.SessionID, Message{
			Role:      "assistant",
			Text:      reply.Text,
			Rule:      reply.Rule,
			Timestamp: now,
		}); err != nil {
			h.logger.Error("chat: failed to store reply", "error", err, "session_id", req.SessionID)
		}
	}

	respond.OK(w, http.StatusOK, "Reply generated", map[string]any{
		"sessionId": req.SessionID,
		"reply":     reply,
		"timestamp": now.Format(time.RFC3339),
	})
}

// HandleHistory returns chat history for a session. GET /api/chat/history
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		respond.Error(w, http.StatusBadRequest, "session parameter required")
		return
	}

	if h.transcript == nil {
		respond.OK(w, http.StatusOK, "Chat history retrieved successfully", map[string]any{"messages": []Message{}})
		return
	}

	msgs, err := h.transcript.List(r.Context(), sessionID, h.historyLimit)
	if err != nil {
		h.logger.Error("chat: failed to load history", "error", err, "session_id", sessionID)
		respond.Error(w, http.StatusInternalServerError, "Failed to load chat history")
		return
	}
	if msgs == nil {
		msgs = []Message{}
	}

	respond.OK(w, http.StatusOK, "Chat history retrieved successfully", map[string]any{"messages": msgs})
}
