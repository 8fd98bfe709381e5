package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ewhitmore/marquee/internal/config"
	"github.com/ewhitmore/marquee/internal/email"
	"github.com/ewhitmore/marquee/internal/handler"
	"github.com/ewhitmore/marquee/internal/middleware"
	"github.com/ewhitmore/marquee/internal/store"
	ws "github.com/ewhitmore/marquee/internal/websocket"
)

// leadRateLimit bounds public inquiry submissions per client IP.
const (
	leadRateLimit  = 10
	leadRateWindow = time.Minute
)

type Server struct {
	db          *sql.DB
	cfg         config.Runtime
	hub         *ws.Hub
	clientH     *handler.ClientHandler
	vendorH     *handler.VendorHandler
	eventH      *handler.EventHandler
	taskH       *handler.TaskHandler
	messageH    *handler.MessageHandler
	noteH       *handler.NoteHandler
	leadH       *handler.LeadHandler
	emailH      *handler.EmailHandler
	scheduleH   *handler.ScheduleHandler
	calendarH   *handler.CalendarHandler
	dashboardH  *handler.DashboardHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg config.Runtime, mailer *email.Client, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	clientStore := store.NewClientStore(db)
	vendorStore := store.NewVendorStore(db)
	eventStore := store.NewEventStore(db)
	taskStore := store.NewTaskStore(db)
	messageStore := store.NewMessageStore(db)
	noteStore := store.NewNoteStore(db)
	leadStore := store.NewLeadStore(db)
	emailStore := store.NewEmailStore(db)
	scheduleStore := store.NewScheduleStore(db)
	statsStore := store.NewStatsStore(db)

	return &Server{
		db:          db,
		cfg:         cfg,
		hub:         hub,
		clientH:     handler.NewClientHandler(clientStore, eventStore, hub, logger.With("component", "client")),
		vendorH:     handler.NewVendorHandler(vendorStore, hub, logger.With("component", "vendor")),
		eventH:      handler.NewEventHandler(eventStore, clientStore, vendorStore, hub, logger.With("component", "event")),
		taskH:       handler.NewTaskHandler(taskStore, eventStore, hub, logger.With("component", "task")),
		messageH:    handler.NewMessageHandler(messageStore, eventStore, hub, logger.With("component", "message")),
		noteH:       handler.NewNoteHandler(noteStore, eventStore, hub, logger.With("component", "note")),
		leadH:       handler.NewLeadHandler(leadStore, hub, logger.With("component", "lead")),
		emailH:      handler.NewEmailHandler(emailStore, mailer, hub, logger.With("component", "email")),
		scheduleH:   handler.NewScheduleHandler(scheduleStore, hub, logger.With("component", "schedule")),
		calendarH:   handler.NewCalendarHandler(eventStore, logger.With("component", "calendar")),
		dashboardH:  handler.NewDashboardHandler(statsStore, logger.With("component", "dashboard")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter exposes the limiter for the periodic cleanup loop.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public surface: health probe and the inquiry form endpoint.
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("POST /api/leads", s.rateLimitedHandler(s.leadH.Create))

	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	auth := middleware.BasicAuth(s.cfg.AdminUser, s.cfg.AdminPasswordHash)
	outerMux.Handle("/", auth(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, leadRateLimit, leadRateWindow)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Client API routes
	mux.HandleFunc("GET /api/clients", s.clientH.List)
	mux.HandleFunc("POST /api/clients", s.clientH.Create)
	mux.HandleFunc("GET /api/clients/{id}", s.clientH.Get)
	mux.HandleFunc("PUT /api/clients/{id}", s.clientH.Update)
	mux.HandleFunc("DELETE /api/clients/{id}", s.clientH.Delete)
	mux.HandleFunc("GET /api/clients/{id}/events", s.clientH.ListEvents)

	// Vendor API routes
	mux.HandleFunc("GET /api/vendors", s.vendorH.List)
	mux.HandleFunc("POST /api/vendors", s.vendorH.Create)
	mux.HandleFunc("GET /api/vendors/{id}", s.vendorH.Get)
	mux.HandleFunc("PUT /api/vendors/{id}", s.vendorH.Update)
	mux.HandleFunc("DELETE /api/vendors/{id}", s.vendorH.Delete)

	// Event API routes
	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("GET /api/events/{id}", s.eventH.Get)
	mux.HandleFunc("PUT /api/events/{id}", s.eventH.Update)
	mux.HandleFunc("DELETE /api/events/{id}", s.eventH.Delete)
	mux.HandleFunc("GET /api/events/{id}/vendors", s.eventH.ListVendors)
	mux.HandleFunc("POST /api/events/{id}/vendors/{vendor_id}", s.eventH.AddVendor)
	mux.HandleFunc("DELETE /api/events/{id}/vendors/{vendor_id}", s.eventH.RemoveVendor)

	// Event sub-resources
	mux.HandleFunc("GET /api/events/{id}/tasks", s.taskH.ListByEvent)
	mux.HandleFunc("POST /api/events/{id}/tasks", s.taskH.Create)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	mux.HandleFunc("GET /api/events/{id}/messages", s.messageH.ListByEvent)
	mux.HandleFunc("POST /api/events/{id}/messages", s.messageH.Create)
	mux.HandleFunc("DELETE /api/messages/{id}", s.messageH.Delete)

	mux.HandleFunc("GET /api/events/{id}/notes", s.noteH.ListByEvent)
	mux.HandleFunc("POST /api/events/{id}/notes", s.noteH.Create)
	mux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)

	// Lead management (creation is public, everything else is admin)
	mux.HandleFunc("GET /api/leads", s.leadH.List)
	mux.HandleFunc("GET /api/leads/{id}", s.leadH.Get)
	mux.HandleFunc("PUT /api/leads/{id}", s.leadH.Update)
	mux.HandleFunc("DELETE /api/leads/{id}", s.leadH.Delete)

	// Email API routes
	mux.HandleFunc("GET /api/emails", s.emailH.List)
	mux.HandleFunc("POST /api/emails", s.emailH.Create)
	mux.HandleFunc("GET /api/emails/{id}", s.emailH.Get)
	mux.HandleFunc("POST /api/emails/{id}/read", s.emailH.MarkRead)
	mux.HandleFunc("POST /api/emails/{id}/send", s.emailH.Send)
	mux.HandleFunc("DELETE /api/emails/{id}", s.emailH.Delete)

	// Schedule API routes
	mux.HandleFunc("GET /api/schedules", s.scheduleH.List)
	mux.HandleFunc("POST /api/schedules", s.scheduleH.Create)
	mux.HandleFunc("GET /api/schedules/{id}", s.scheduleH.Get)
	mux.HandleFunc("PUT /api/schedules/{id}", s.scheduleH.Update)
	mux.HandleFunc("DELETE /api/schedules/{id}", s.scheduleH.Delete)

	// Calendar and dashboard
	mux.HandleFunc("GET /api/calendar", s.calendarH.Month)
	mux.HandleFunc("GET /api/calendar/feed", s.calendarH.Feed)
	mux.HandleFunc("GET /api/dashboard/counts", s.dashboardH.Counts)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
