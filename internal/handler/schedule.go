package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ewhitmore/marquee/internal/booking"
	"github.com/ewhitmore/marquee/internal/model"
	"github.com/ewhitmore/marquee/internal/store"
	ws "github.com/ewhitmore/marquee/internal/websocket"
)

type ScheduleHandler struct {
	store  *store.ScheduleStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewScheduleHandler(s *store.ScheduleStore, hub *ws.Hub, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{store: s, hub: hub, logger: logger}
}

type scheduleRequest struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

func (req *scheduleRequest) validate(w http.ResponseWriter) (time.Time, bool) {
	day, err := parseDay(req.Day)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "day must be YYYY-MM-DD format"})
		return time.Time{}, false
	}
	if !clockRegexp.MatchString(req.StartTime) || !clockRegexp.MatchString(req.EndTime) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start_time and end_time must be HH:MM format"})
		return time.Time{}, false
	}
	return day, true
}

// writeSlotError maps overlap validation failures onto HTTP statuses.
func (h *ScheduleHandler) writeSlotError(w http.ResponseWriter, err error) bool {
	if errors.Is(err, booking.ErrEndNotAfterStart) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end_time must be after start_time"})
		return true
	}
	var conflict *booking.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":         "that time slot overlaps an existing entry",
			"conflict_with": conflict.With.ID,
		})
		return true
	}
	return false
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		schedules []model.Schedule
		err       error
	)
	if dayStr := r.URL.Query().Get("day"); dayStr != "" {
		day, perr := parseDay(dayStr)
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "day must be YYYY-MM-DD format"})
			return
		}
		schedules, err = h.store.ListByDay(day)
	} else {
		schedules, err = h.store.List()
	}
	if err != nil {
		h.logger.Error("list schedules", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list schedules"})
		return
	}
	if schedules == nil {
		schedules = []model.Schedule{}
	}
	writeJSON(w, http.StatusOK, schedules)
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	schedule, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get schedule"})
		return
	}
	if schedule == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "schedule not found"})
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	day, ok := req.validate(w)
	if !ok {
		return
	}

	schedule, err := h.store.Create(day, req.StartTime, req.EndTime, req.Notes)
	if err != nil {
		if h.writeSlotError(w, err) {
			return
		}
		h.logger.Error("create schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create schedule"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("schedule", "created", strconv.FormatInt(schedule.ID, 10), nil))
	writeJSON(w, http.StatusCreated, schedule)
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get schedule"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "schedule not found"})
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	day, ok := req.validate(w)
	if !ok {
		return
	}

	schedule, err := h.store.Update(id, day, req.StartTime, req.EndTime, req.Notes)
	if err != nil {
		if h.writeSlotError(w, err) {
			return
		}
		h.logger.Error("update schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update schedule"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("schedule", "updated", strconv.FormatInt(id, 10), nil))
	writeJSON(w, http.StatusOK, schedule)
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get schedule"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "schedule not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete schedule"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("schedule", "deleted", strconv.FormatInt(id, 10), nil))
	w.WriteHeader(http.StatusNoContent)
}
