package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/n-tennyson/physics-simulator/internal/engine"
	"github.com/n-tennyson/physics-simulator/internal/ir"
)

const (
	// SolvePath is the solve endpoint.
	SolvePath = "/solve/kinematics/1d"

	// RequestIDHeader carries the per-request correlation ID.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20 // 1 MiB
)

// Health is the body returned by GET /.
type Health struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Description string `json:"description"`
}

// SolveRequest is the body of POST /solve/kinematics/1d.
type SolveRequest struct {
	Knowns ir.Knowns `json:"knowns"`
	Target string    `json:"target"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Server handles HTTP requests for one engine.
type Server struct {
	engine *engine.Engine
	ids    RequestIDGenerator
	logger *slog.Logger
	mux    *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRequestIDGenerator overrides the request ID source (for testing).
// Defaults to UUIDv7Generator.
func WithRequestIDGenerator(g RequestIDGenerator) Option {
	return func(s *Server) { s.ids = g }
}

// New creates a server over eng.
func New(eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		engine: eng,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /{$}", s.handleHealth)
	s.mux.HandleFunc("POST "+SolvePath, s.handleSolve)
	return s
}

// Handler returns the root handler with request-ID and panic recovery
// applied.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RequestIDHeader, s.ids.Generate())

		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler",
					"request_id", w.Header().Get(RequestIDHeader),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
			}
		}()

		s.mux.ServeHTTP(w, r)
	})
}

// Run serves on ln until ctx is cancelled, then shuts down gracefully,
// waiting at most shutdownTimeout for in-flight requests.
func (s *Server) Run(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Health{
		Status:      "ok",
		Service:     "Physics Simulator API",
		Description: "1D kinematics solver backend",
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := w.Header().Get(RequestIDHeader)

	req, err := decodeSolveRequest(w, r)
	if err != nil {
		s.logger.Info("solve rejected", "request_id", requestID, "status", http.StatusBadRequest, "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	res, err := s.engine.Solve(req.Knowns, req.Target)
	if err != nil {
		status := http.StatusBadRequest
		detail := err.Error()
		if !engine.IsClientError(err) {
			status = http.StatusInternalServerError
			detail = "internal server error"
		}
		s.logger.Info("solve failed",
			"request_id", requestID,
			"target", req.Target,
			"code", string(engine.Code(err)),
			"status", status,
			"error", err,
		)
		writeJSON(w, status, ErrorResponse{Detail: detail})
		return
	}

	s.logger.Info("solve",
		"request_id", requestID,
		"target", req.Target,
		"rule", res.Rule,
		"status", http.StatusOK,
		"duration", time.Since(start),
	)
	writeJSON(w, http.StatusOK, res)
}

// decodeSolveRequest reads a strict JSON body and validates it.
func decodeSolveRequest(w http.ResponseWriter, r *http.Request) (*SolveRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req SolveRequest
	if err := dec.Decode(&req); err != nil {
		return nil, errors.New("invalid JSON body: " + err.Error())
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON body: trailing data")
	}

	if req.Knowns == nil {
		return nil, errors.New("knowns is required")
	}
	if err := ir.ValidateProblem(req.Knowns, req.Target); err != nil {
		return nil, err
	}
	return &req, nil
}

// writeJSON marshals before writing the status so an encoding failure
// (a non-finite result) still produces a well-formed 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(ErrorResponse{Detail: "internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
