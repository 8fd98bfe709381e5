package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ewhitmore/marquee/internal/email"
	"github.com/ewhitmore/marquee/internal/model"
	"github.com/ewhitmore/marquee/internal/store"
	ws "github.com/ewhitmore/marquee/internal/websocket"
)

type EmailHandler struct {
	store  *store.EmailStore
	sender *email.Client
	hub    *ws.Hub
	logger *slog.Logger
}

func NewEmailHandler(s *store.EmailStore, sender *email.Client, hub *ws.Hub, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{store: s, sender: sender, hub: hub, logger: logger}
}

func (h *EmailHandler) List(w http.ResponseWriter, r *http.Request) {
	emails, err := h.store.List()
	if err != nil {
		h.logger.Error("list emails", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list emails"})
		return
	}
	if emails == nil {
		emails = []model.Email{}
	}
	writeJSON(w, http.StatusOK, emails)
}

func (h *EmailHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	e, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get email"})
		return
	}
	if e == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "email not found"})
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *EmailHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sender    string `json:"sender"`
		Recipient string `json:"recipient"`
		Subject   string `json:"subject"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Recipient = strings.TrimSpace(req.Recipient)
	req.Subject = strings.TrimSpace(req.Subject)
	if !emailRegexp.MatchString(req.Recipient) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a valid recipient is required"})
		return
	}
	if req.Subject == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "subject is required"})
		return
	}

	e, err := h.store.Create(req.Sender, req.Recipient, req.Subject, req.Content)
	if err != nil {
		h.logger.Error("create email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create email"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("email", "created", strconv.FormatInt(e.ID, 10), nil))
	writeJSON(w, http.StatusCreated, e)
}

// MarkRead flags the email as read and returns the updated record.
func (h *EmailHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get email"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "email not found"})
		return
	}

	e, err := h.store.MarkRead(id)
	if err != nil {
		h.logger.Error("mark email read", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to mark email read"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("email", "read", strconv.FormatInt(id, 10), nil))
	writeJSON(w, http.StatusOK, e)
}

// Send delivers a draft through the configured mail provider and records the
// outcome. Already-sent emails are not re-sent.
func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get email"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "email not found"})
		return
	}
	if existing.Status == model.EmailSent {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "email has already been sent"})
		return
	}
	if !h.sender.Configured() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "email delivery is not configured"})
		return
	}

	if sendErr := h.sender.Send(existing.Sender, existing.Recipient, existing.Subject, existing.Content); sendErr != nil {
		h.logger.Error("send email", "id", id, "error", sendErr)
		if _, err := h.store.SetStatus(id, model.EmailFailed, time.Time{}); err != nil {
			h.logger.Error("record email failure", "id", id, "error", err)
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to deliver email"})
		return
	}

	e, err := h.store.SetStatus(id, model.EmailSent, time.Now())
	if err != nil {
		h.logger.Error("record email sent", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to record delivery"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("email", "sent", strconv.FormatInt(id, 10), nil))
	writeJSON(w, http.StatusOK, e)
}

func (h *EmailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get email"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "email not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete email"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("email", "deleted", strconv.FormatInt(id, 10), nil))
	w.WriteHeader(http.StatusNoContent)
}
