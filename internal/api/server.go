// Package api exposes the resolution flows, the content catalog and
// reminder delivery over JSON HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mafatih/internal/catalog"
	"mafatih/internal/common/logger"
	"mafatih/internal/models"
	"mafatih/internal/reminder"
)

const maxBodyBytes = 64 << 10

type Resolver interface {
	ResolveQuestion(ctx context.Context, query models.Query) models.AnswerRecord
	InterpretDream(ctx context.Context, query models.Query) models.DreamRecord
	RecommendVerse(ctx context.Context, query models.Query) models.VerseRecord
}

type Catalog interface {
	ListCategories(ctx context.Context, lang string) catalog.Result[[]models.Category]
	ListContent(ctx context.Context, filters catalog.Filters) catalog.Result[[]models.ContentItem]
	GetPage(ctx context.Context, bookID, page int, langs []string) (*catalog.PageContent, error)
	GetTableOfContents(ctx context.Context, bookID int, lang string) (*catalog.TableOfContents, error)
	GetBookInfo(ctx context.Context, bookID int) (*catalog.BookInfo, error)
	TestConnection(ctx context.Context) catalog.Diagnostic
}

type ReminderSender interface {
	Send(ctx context.Context, req reminder.Request) (*models.Reminder, error)
}

// Checker reports whether a backing dependency is usable. Checks run on
// /ready.
type Checker func(ctx context.Context) error

type Deps struct {
	Resolver  Resolver
	Catalog   Catalog
	Reminders ReminderSender
	Checks    map[string]Checker
	Version   string
	Logger    logger.Logger
}

type Server struct {
	deps   Deps
	logger logger.Logger
	router *mux.Router
}

func New(deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &Server{
		deps:   deps,
		logger: log.With(map[string]interface{}{"component": "api"}),
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ask", s.handleAsk).Methods(http.MethodPost)
	api.HandleFunc("/dream", s.handleDream).Methods(http.MethodPost)
	api.HandleFunc("/verse", s.handleVerse).Methods(http.MethodPost)
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)

	api.HandleFunc("/catalog", s.handleCatalog).Methods(http.MethodGet)
	api.HandleFunc("/catalog/categories", s.handleCategories).Methods(http.MethodGet)
	api.HandleFunc("/catalog/diagnostics", s.handleDiagnostics).Methods(http.MethodGet)
	api.HandleFunc("/catalog/books/{id:[0-9]+}", s.handleBookInfo).Methods(http.MethodGet)
	api.HandleFunc("/catalog/books/{id:[0-9]+}/pages/{page:[0-9]+}", s.handlePage).Methods(http.MethodGet)
	api.HandleFunc("/catalog/books/{id:[0-9]+}/toc", s.handleTOC).Methods(http.MethodGet)

	api.HandleFunc("/reminders", s.handleSendReminder).Methods(http.MethodPost)
	api.HandleFunc("/reminders/templates", s.handleReminderTemplates).Methods(http.MethodGet)
	api.HandleFunc("/reminders/prayer-times", s.handlePrayerTimes).Methods(http.MethodGet)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if r.URL.Path == "/metrics" || r.URL.Path == "/health" {
			return
		}
		s.logger.Info("request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.deps.Version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

// handleReady runs every configured check. A failed check makes the
// service not ready; absent dependencies are simply not checked.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	results := make(map[string]string, len(s.deps.Checks))
	status := http.StatusOK
	for name, check := range s.deps.Checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": results,
		"time":   time.Now().Format(time.RFC3339),
	})
}
