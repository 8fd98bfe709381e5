package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ewhitmore/marquee/internal/model"
	"github.com/ewhitmore/marquee/internal/store"
	ws "github.com/ewhitmore/marquee/internal/websocket"
)

type MessageHandler struct {
	store      *store.MessageStore
	eventStore *store.EventStore
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewMessageHandler(s *store.MessageStore, es *store.EventStore, hub *ws.Hub, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{store: s, eventStore: es, hub: hub, logger: logger}
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	event, err := h.eventStore.GetByID(eventID)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	var req struct {
		Sender    string `json:"sender"`
		Recipient string `json:"recipient"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
		return
	}
	if strings.TrimSpace(req.Sender) == "" || strings.TrimSpace(req.Recipient) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sender and recipient are required"})
		return
	}

	msg, err := h.store.Create(eventID, req.Sender, req.Recipient, req.Content)
	if err != nil {
		h.logger.Error("create message", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create message"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("message", "created", strconv.FormatInt(msg.ID, 10), map[string]any{"event_id": eventID}))
	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	event, err := h.eventStore.GetByID(eventID)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	messages, err := h.store.ListByEvent(eventID)
	if err != nil {
		h.logger.Error("list messages", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list messages"})
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get message", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get message"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "message not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete message", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete message"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("message", "deleted", strconv.FormatInt(id, 10), nil))
	w.WriteHeader(http.StatusNoContent)
}
