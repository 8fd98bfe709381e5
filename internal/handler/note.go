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

type NoteHandler struct {
	store      *store.NoteStore
	eventStore *store.EventStore
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewNoteHandler(s *store.NoteStore, es *store.EventStore, hub *ws.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{store: s, eventStore: es, hub: hub, logger: logger}
}

// requireEvent loads the parent event from the {id} path segment, writing
// the error response when it is missing.
func (h *NoteHandler) requireEvent(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.PathValue("id")
	event, err := h.eventStore.GetByID(eventID)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return "", false
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return "", false
	}
	return eventID, true
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.requireEvent(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
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

	note, err := h.store.Create(eventID, req.Content)
	if err != nil {
		h.logger.Error("create note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create note"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("note", "created", strconv.FormatInt(note.ID, 10), map[string]any{"event_id": eventID}))
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.requireEvent(w, r)
	if !ok {
		return
	}

	notes, err := h.store.ListByEvent(eventID)
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list notes"})
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get note"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "note not found"})
		return
	}

	var req struct {
		Content string `json:"content"`
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

	note, err := h.store.Update(id, req.Content)
	if err != nil {
		h.logger.Error("update note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update note"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("note", "updated", strconv.FormatInt(id, 10), nil))
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get note"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "note not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete note"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("note", "deleted", strconv.FormatInt(id, 10), nil))
	w.WriteHeader(http.StatusNoContent)
}
