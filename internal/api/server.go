// Package api exposes the HTTP interface for the enrichment service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/config"
	"github.com/fieldops/prospector/internal/metrics"
	"github.com/fieldops/prospector/internal/runner"
)

// Enricher triggers enrichment runs. Satisfied by *runner.Runner.
type Enricher interface {
	Run(ctx context.Context, names []string) runner.Status
	RunScoped(ctx context.Context, names []string, recordID string) runner.Status
}

// Server wires HTTP handlers to the enrichment runner.
type Server struct {
	router   chi.Router
	enricher Enricher
	cfg      config.Config
	log      *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(enricher Enricher, cfg config.Config, log *zap.Logger) *Server {
	s := &Server{
		enricher: enricher,
		cfg:      cfg,
		log:      log.Named("api"),
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.log))
	r.Use(recoverMiddleware(s.log))
	r.Use(timeoutMiddleware(60 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/hook", s.hook)

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// hook handles inbound board webhooks. The secret is checked first, then a
// challenge handshake echoed, and anything else starts an enrichment run in
// the background so the response never blocks on scraping.
func (s *Server) hook(w http.ResponseWriter, r *http.Request) {
	if secret := s.cfg.Webhook.Secret; secret != "" {
		if r.URL.Query().Get("secret") != secret {
			metrics.ObserveWebhookEvent("rejected")
			writeJSON(w, http.StatusForbidden, map[string]string{
				"status": "forbidden",
				"reason": "bad secret",
			})
			return
		}
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		payload = nil
	}

	if raw, ok := payload["challenge"]; ok {
		metrics.ObserveWebhookEvent("challenge")
		writeJSON(w, http.StatusOK, map[string]json.RawMessage{"challenge": raw})
		return
	}

	recordID := extractRecordID(payload)
	metrics.ObserveWebhookEvent("trigger")
	s.log.Info("webhook event received", zap.String("record_id", recordID))

	tasks := s.cfg.Run.Tasks
	go func() {
		ctx := context.Background()
		var status runner.Status
		if recordID != "" {
			status = s.enricher.RunScoped(ctx, tasks, recordID)
		} else {
			status = s.enricher.Run(ctx, tasks)
		}
		s.log.Info("webhook-triggered run finished",
			zap.String("record_id", recordID),
			zap.String("status", status.String()),
		)
	}()

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "enrichment started",
	})
}

// recordIDFields lists the payload keys that may carry the target record id,
// checked in order. Board webhooks nest the id under "event" but some older
// integrations send it at the top level.
var recordIDFields = []string{"pulseId", "itemId"}

func extractRecordID(payload map[string]json.RawMessage) string {
	if raw, ok := payload["event"]; ok {
		var event map[string]json.RawMessage
		if err := json.Unmarshal(raw, &event); err == nil {
			if id := scanIDFields(event); id != "" {
				return id
			}
		}
	}
	return scanIDFields(payload)
}

func scanIDFields(m map[string]json.RawMessage) string {
	for _, field := range recordIDFields {
		raw, ok := m[field]
		if !ok {
			continue
		}
		var asString string
		if err := json.Unmarshal(raw, &asString); err == nil && asString != "" {
			return asString
		}
		var asNumber json.Number
		if err := json.Unmarshal(raw, &asNumber); err == nil && asNumber.String() != "" {
			return asNumber.String()
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
