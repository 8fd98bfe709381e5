package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ewhitmore/marquee/internal/booking"
	"github.com/ewhitmore/marquee/internal/model"
	"github.com/ewhitmore/marquee/internal/store"
	ws "github.com/ewhitmore/marquee/internal/websocket"
)

type EventHandler struct {
	store       *store.EventStore
	clientStore *store.ClientStore
	vendorStore *store.VendorStore
	hub         *ws.Hub
	logger      *slog.Logger
}

func NewEventHandler(es *store.EventStore, cs *store.ClientStore, vs *store.VendorStore, hub *ws.Hub, logger *slog.Logger) *EventHandler {
	return &EventHandler{store: es, clientStore: cs, vendorStore: vs, hub: hub, logger: logger}
}

type eventRequest struct {
	Name        string `json:"name"`
	ClientID    int64  `json:"client_id"`
	EventDate   string `json:"event_date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// parseAndValidate decodes and checks the request body shared by Create and
// Update. It writes the error response itself when validation fails.
func (h *EventHandler) parseAndValidate(w http.ResponseWriter, r *http.Request) (*eventRequest, time.Time, time.Time, time.Time, bool) {
	var zero time.Time
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return nil, zero, zero, zero, false
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Venue = strings.TrimSpace(req.Venue)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return nil, zero, zero, zero, false
	}
	if req.Venue == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "venue is required"})
		return nil, zero, zero, zero, false
	}

	eventDate, err := parseDay(req.EventDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "event_date must be YYYY-MM-DD format"})
		return nil, zero, zero, zero, false
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start must be RFC3339 format"})
		return nil, zero, zero, zero, false
	}

	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end must be RFC3339 format"})
		return nil, zero, zero, zero, false
	}

	if req.Status == "" {
		req.Status = string(model.EventPlanned)
	}
	if !model.EventStatus(req.Status).Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be planned, booked, completed, or canceled"})
		return nil, zero, zero, zero, false
	}

	client, err := h.clientStore.GetByID(req.ClientID)
	if err != nil {
		h.logger.Error("check client", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check client"})
		return nil, zero, zero, zero, false
	}
	if client == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client not found"})
		return nil, zero, zero, zero, false
	}

	return &req, eventDate, start, end, true
}

// writeBookingError maps validation failures from the venue overlap check
// onto HTTP statuses: malformed ranges are 400, double bookings are 409.
func (h *EventHandler) writeBookingError(w http.ResponseWriter, err error) bool {
	if errors.Is(err, booking.ErrEndNotAfterStart) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end must be after start"})
		return true
	}
	var conflict *booking.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":         "the venue is already booked for that time",
			"conflict_with": conflict.With.ID,
		})
		return true
	}
	return false
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, eventDate, start, end, ok := h.parseAndValidate(w, r)
	if !ok {
		return
	}

	event, err := h.store.Create(req.Name, req.ClientID, eventDate, start, end, req.Venue, req.Description, model.EventStatus(req.Status))
	if err != nil {
		if h.writeBookingError(w, err) {
			return
		}
		h.logger.Error("create event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create event"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "created", event.ID, map[string]any{"venue": event.Venue}))
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.ListAll()
	if err != nil {
		h.logger.Error("list events", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list events"})
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.store.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	req, eventDate, start, end, ok := h.parseAndValidate(w, r)
	if !ok {
		return
	}

	event, err := h.store.Update(id, req.Name, req.ClientID, eventDate, start, end, req.Venue, req.Description, model.EventStatus(req.Status))
	if err != nil {
		if h.writeBookingError(w, err) {
			return
		}
		h.logger.Error("update event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update event"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "updated", id, map[string]any{"venue": event.Venue}))
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete event"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	event, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	vendors, err := h.store.ListVendors(id)
	if err != nil {
		h.logger.Error("list event vendors", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list vendors"})
		return
	}
	if vendors == nil {
		vendors = []model.Vendor{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

func (h *EventHandler) AddVendor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	vendorID, err := strconv.ParseInt(r.PathValue("vendor_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vendor id"})
		return
	}

	event, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	vendor, err := h.vendorStore.GetByID(vendorID)
	if err != nil {
		h.logger.Error("get vendor", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get vendor"})
		return
	}
	if vendor == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vendor not found"})
		return
	}

	if err := h.store.AddVendor(id, vendorID); err != nil {
		h.logger.Error("add vendor to event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add vendor"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) RemoveVendor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	vendorID, err := strconv.ParseInt(r.PathValue("vendor_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vendor id"})
		return
	}

	event, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	if err := h.store.RemoveVendor(id, vendorID); err != nil {
		h.logger.Error("remove vendor from event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to remove vendor"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
