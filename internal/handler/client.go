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

type ClientHandler struct {
	store      *store.ClientStore
	eventStore *store.EventStore
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewClientHandler(s *store.ClientStore, es *store.EventStore, hub *ws.Hub, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{store: s, eventStore: es, hub: hub, logger: logger}
}

type clientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func (req *clientRequest) validate(w http.ResponseWriter) bool {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	if req.FirstName == "" || req.LastName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "first_name and last_name are required"})
		return false
	}
	if !emailRegexp.MatchString(req.Email) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a valid email is required"})
		return false
	}
	return true
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.store.List()
	if err != nil {
		h.logger.Error("list clients", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list clients"})
		return
	}
	if clients == nil {
		clients = []model.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	client, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get client", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get client"})
		return
	}
	if client == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "client not found"})
		return
	}

	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !req.validate(w) {
		return
	}

	exists, err := h.store.EmailExists(req.Email, 0)
	if err != nil {
		h.logger.Error("check client email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check email"})
		return
	}
	if exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a client with that email already exists"})
		return
	}

	client, err := h.store.Create(req.FirstName, req.LastName, req.Email, req.PhoneNumber)
	if err != nil {
		h.logger.Error("create client", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create client"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("client", "created", strconv.FormatInt(client.ID, 10), nil))
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get client", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get client"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "client not found"})
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !req.validate(w) {
		return
	}

	exists, err := h.store.EmailExists(req.Email, id)
	if err != nil {
		h.logger.Error("check client email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check email"})
		return
	}
	if exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a client with that email already exists"})
		return
	}

	client, err := h.store.Update(id, req.FirstName, req.LastName, req.Email, req.PhoneNumber)
	if err != nil {
		h.logger.Error("update client", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update client"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("client", "updated", strconv.FormatInt(id, 10), nil))
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get client", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get client"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "client not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete client", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete client"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("client", "deleted", strconv.FormatInt(id, 10), nil))
	w.WriteHeader(http.StatusNoContent)
}

// ListEvents returns the client's events, soonest first.
func (h *ClientHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	client, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get client", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get client"})
		return
	}
	if client == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "client not found"})
		return
	}

	events, err := h.eventStore.ListByClient(id)
	if err != nil {
		h.logger.Error("list client events", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list events"})
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
