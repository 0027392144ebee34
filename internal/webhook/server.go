package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-telegram/bot/models"
)

// SecretHeader carries the secret token registered with setWebhook
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler processes one Telegram update
type UpdateHandler func(ctx context.Context, update *models.Update)

// Server receives Telegram updates over HTTP
type Server struct {
	handler UpdateHandler
	secret  string
	log     *slog.Logger

	server *http.Server
}

// NewServer creates a new webhook server. An empty secret disables the
// secret token check.
func NewServer(handler UpdateHandler, secret string, log *slog.Logger) *Server {
	return &Server{
		handler: handler,
		secret:  secret,
		log:     log,
	}
}

// Routes builds the HTTP router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/", s.handleWebhook)
	r.Post("/webhook", s.handleWebhook)
	r.Get("/health", s.handleHealth)

	r.NotFound(s.handleUnknown)
	r.MethodNotAllowed(s.handleStatus)
	r.Get("/", s.handleStatus)
	r.Get("/webhook", s.handleStatus)

	return r
}

// Start starts the webhook server and blocks until ctx is done
func (s *Server) Start(ctx context.Context, port int) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.log.Info("starting webhook server", "port", port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleUnknown acknowledges stray POSTs the same way as updates
func (s *Server) handleUnknown(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.log.Debug("post to unknown path", "path", r.URL.Path)
		writeOK(w)
		return
	}
	s.handleStatus(w, r)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Bot is running"))
}

// handleWebhook always acknowledges with {"ok":true}, otherwise Telegram
// keeps redelivering the same update.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer writeOK(w)

	if s.secret != "" {
		got := r.Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) != 1 {
			s.log.Warn("webhook secret mismatch", "remote", r.RemoteAddr)
			return
		}
	}

	var update models.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.log.Warn("invalid webhook payload", "error", err)
		return
	}

	s.process(r.Context(), &update)
}

func (s *Server) process(ctx context.Context, update *models.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("panic while handling update", "update_id", update.ID, "panic", rec)
		}
	}()

	s.log.Debug("webhook received", "update_id", update.ID)
	s.handler(ctx, update)
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"ok":true}`))
}
