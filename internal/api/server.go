// Package api is the HTTP and WebSocket surface of the generation service.
// It decodes requests, calls the service and maps error kinds to status
// codes; nothing below it formats HTTP responses.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/forge-ai/textforge/internal/dispatch"
	"github.com/forge-ai/textforge/internal/textgen"
)

// Version is reported by GET /api/status.
const Version = "0.3.0"

const maxBodyBytes = 1 << 20

// Generator is the service the API fronts.
type Generator interface {
	Generate(ctx context.Context, req textgen.Request) (dispatch.Result, error)
	Providers() []dispatch.Info
	DefaultProvider() string
}

// Server holds the routes and the WebSocket hub.
type Server struct {
	gen Generator
	hub *Hub

	pongWait   time.Duration
	pingPeriod time.Duration
}

func New(gen Generator) *Server {
	return &Server{gen: gen, hub: NewHub(), pongWait: pongWait, pingPeriod: pingPeriod}
}

// Handler returns the full middleware-wrapped route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /{$}", s.handleGenerate)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/{$}", s.handleHealth)
	mux.HandleFunc("GET /api/providers", s.handleProviders)
	mux.HandleFunc("GET /api/status", s.handleStatus)

	// WebSocket
	mux.HandleFunc("GET /ws", s.serveWS)

	return requestLogger(cors(mux))
}

// Serve listens on addr until ctx is canceled, then shuts down with a
// five second grace period. writeTimeout should exceed the provider timeout.
func (s *Server) Serve(ctx context.Context, addr string, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.CloseAll()
		_ = srv.Shutdown(shutCtx)
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		jsonErr(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	req, err := DecodeRequest(body)
	if err != nil {
		jsonErr(w, MessageFor(err), StatusFor(err))
		return
	}

	res, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		jsonErr(w, MessageFor(err), StatusFor(err))
		return
	}
	jsonOK(w, map[string]string{"result": res.Text}, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonOK(w, map[string]string{"response": "OK"}, http.StatusOK)
}

func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	jsonOK(w, map[string]any{
		"default":   s.gen.DefaultProvider(),
		"providers": s.gen.Providers(),
	}, http.StatusOK)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	jsonOK(w, map[string]any{
		"status":  "online",
		"clients": s.hub.ClientCount(),
		"version": Version,
		"default": s.gen.DefaultProvider(),
	}, http.StatusOK)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	jsonOK(w, map[string]string{"error": msg}, code)
}
