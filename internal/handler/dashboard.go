package handler

import (
	"log/slog"
	"net/http"

	"github.com/ewhitmore/marquee/internal/store"
)

type DashboardHandler struct {
	stats  *store.StatsStore
	logger *slog.Logger
}

func NewDashboardHandler(s *store.StatsStore, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{stats: s, logger: logger}
}

// Counts returns the record totals shown in the dashboard header: leads,
// events, and unread emails.
func (h *DashboardHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.stats.Counts()
	if err != nil {
		h.logger.Error("dashboard counts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load counts"})
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
