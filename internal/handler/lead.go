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

type LeadHandler struct {
	store  *store.LeadStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewLeadHandler(s *store.LeadStore, hub *ws.Hub, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{store: s, hub: hub, logger: logger}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.store.List()
	if err != nil {
		h.logger.Error("list leads", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list leads"})
		return
	}
	if leads == nil {
		leads = []model.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	lead, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get lead", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get lead"})
		return
	}
	if lead == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead not found"})
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Create accepts a public inquiry. New leads start in the "new" status with
// the inquiry date stamped server side.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
		Notes       string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "first_name and last_name are required"})
		return
	}
	if !emailRegexp.MatchString(req.Email) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a valid email is required"})
		return
	}

	exists, err := h.store.EmailExists(req.Email, 0)
	if err != nil {
		h.logger.Error("check lead email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check email"})
		return
	}
	if exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "an inquiry with that email already exists"})
		return
	}

	lead, err := h.store.Create(req.FirstName, req.LastName, req.Email, req.PhoneNumber, req.Notes)
	if err != nil {
		h.logger.Error("create lead", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create lead"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("lead", "created", strconv.FormatInt(lead.ID, 10), nil))
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get lead", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get lead"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead not found"})
		return
	}

	var req struct {
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
		Status      string `json:"status"`
		Notes       string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "first_name and last_name are required"})
		return
	}
	if !emailRegexp.MatchString(req.Email) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a valid email is required"})
		return
	}
	if req.Status == "" {
		req.Status = string(existing.Status)
	}
	if !model.LeadStatus(req.Status).Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be new, contacted, converted, or closed"})
		return
	}

	exists, err := h.store.EmailExists(req.Email, id)
	if err != nil {
		h.logger.Error("check lead email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check email"})
		return
	}
	if exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "an inquiry with that email already exists"})
		return
	}

	lead, err := h.store.Update(id, req.FirstName, req.LastName, req.Email, req.PhoneNumber, model.LeadStatus(req.Status), req.Notes)
	if err != nil {
		h.logger.Error("update lead", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update lead"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("lead", "updated", strconv.FormatInt(id, 10), nil))
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get lead", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get lead"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete lead", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete lead"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("lead", "deleted", strconv.FormatInt(id, 10), nil))
	w.WriteHeader(http.StatusNoContent)
}
