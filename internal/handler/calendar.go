package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ewhitmore/marquee/internal/calendar"
	"github.com/ewhitmore/marquee/internal/model"
	"github.com/ewhitmore/marquee/internal/store"
)

type CalendarHandler struct {
	eventStore *store.EventStore
	logger     *slog.Logger
	now        func() time.Time
}

func NewCalendarHandler(es *store.EventStore, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{eventStore: es, logger: logger, now: time.Now}
}

// monthParams resolves the year and month query parameters. Each parameter
// defaults to the current date's value independently when absent.
func (h *CalendarHandler) monthParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	now := h.now().UTC()

	year := now.Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "year must be an integer"})
			return 0, 0, false
		}
		year = y
	}

	month := int(now.Month())
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "month must be an integer"})
			return 0, 0, false
		}
		month = m
	}
	return year, month, true
}

type monthResponse struct {
	Year        int                      `json:"year"`
	Month       int                      `json:"month"`
	Label       string                   `json:"label"`
	Prev        calendar.YearMonth       `json:"prev"`
	Next        calendar.YearMonth       `json:"next"`
	Days        []string                 `json:"days"`
	EventsByDay map[string][]model.Event `json:"events_by_day"`
}

// Month returns the whole-week grid for a month together with that month's
// events grouped by day.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	grid, err := calendar.BuildMonth(year, month)
	if err != nil {
		var inputErr *calendar.InputError
		if errors.As(err, &inputErr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": inputErr.Error()})
			return
		}
		h.logger.Error("build month grid", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build calendar"})
		return
	}

	events, err := h.eventStore.ListByMonth(year, time.Month(month))
	if err != nil {
		h.logger.Error("list events by month", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list events"})
		return
	}

	days := make([]string, len(grid.Days))
	for i, d := range grid.Days {
		days[i] = calendar.DayKey(d)
	}

	grouped := calendar.GroupByDay(events)
	if grouped == nil {
		grouped = map[string][]model.Event{}
	}

	writeJSON(w, http.StatusOK, monthResponse{
		Year:        grid.Year,
		Month:       int(grid.Month),
		Label:       grid.Label,
		Prev:        grid.Prev,
		Next:        grid.Next,
		Days:        days,
		EventsByDay: grouped,
	})
}

type feedEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Feed returns a flat projection of every event for calendar widgets: id,
// title, and the RFC3339 start and end times. Widgets do their own windowing,
// so the feed is never month-filtered.
func (h *CalendarHandler) Feed(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventStore.ListAll()
	if err != nil {
		h.logger.Error("list events", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list events"})
		return
	}

	feed := make([]feedEntry, 0, len(events))
	for _, e := range events {
		feed = append(feed, feedEntry{
			ID:    e.ID,
			Title: e.Name,
			Start: e.Start.UTC().Format(time.RFC3339),
			End:   e.End.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, feed)
}
