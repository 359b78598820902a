// Package http serves a render preview API over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/imageio"
	"github.com/go-chi/chi/v5"
)

// MaxScriptBytes bounds the size of a posted script.
const MaxScriptBytes = 1 << 20

// DefaultMaxFrames bounds the frame count of a posted script. The knob table
// holds one row per frame, so the count must be checked before planning.
const DefaultMaxFrames = 1000

// Engine defines the subset of reel.Engine the server needs.
type Engine interface {
	Parse(data []byte, name string) (*domain.Script, error)
	Plan(script *domain.Script) (*reel.Plan, error)
	RenderFrame(ctx context.Context, script *domain.Script, i int) (image.Image, error)
}

// Server handles preview requests. Rendering has no side effects: scripts
// posted to the server never write files or open viewers.
type Server struct {
	Engine    Engine
	maxFrames int
	metrics   http.Handler
	logger    *slog.Logger
}

type Option func(*Server)

// WithMetricsHandler exposes h under GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithMaxFrames sets the largest frame count a posted script may declare.
// Values below 1 are ignored.
func WithMaxFrames(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxFrames = n
		}
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine, maxFrames: DefaultMaxFrames, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": strings.TrimSpace(reel.Version)})
	})
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}
	r.Post("/render", server.Render)
	r.Post("/timeline", server.Timeline)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Render handles POST /render?frame=N&type=png. The body is the script.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	script, ok := s.readScript(w, r)
	if !ok {
		return
	}

	frame := 0
	if v := r.URL.Query().Get("frame"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid frame %q", v), http.StatusBadRequest)
			return
		}
		frame = n
	}

	format := imageio.PNG
	if v := r.URL.Query().Get("type"); v != "" {
		f, err := imageio.FormatOf("frame." + v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	img, err := s.Engine.RenderFrame(r.Context(), script, frame)
	if err != nil {
		s.fail(w, "Render failed", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if err := imageio.Encode(w, img, format); err != nil {
		s.logger.Error("Render response encode failed", "error", err)
	}
}

// Timeline handles POST /timeline. The body is the script.
func (s *Server) Timeline(w http.ResponseWriter, r *http.Request) {
	script, ok := s.readScript(w, r)
	if !ok {
		return
	}
	plan, err := s.Engine.Plan(script)
	if err != nil {
		s.fail(w, "Timeline failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(plan); err != nil {
		s.logger.Error("Timeline response encode failed", "error", err)
	}
}

func (s *Server) readScript(w http.ResponseWriter, r *http.Request) (*domain.Script, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxScriptBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Invalid request body", "error", err)
		return nil, false
	}
	script, err := s.Engine.Parse(data, scriptName(r))
	if err != nil {
		s.fail(w, "Parse failed", err)
		return nil, false
	}
	if err := s.checkFrames(script); err != nil {
		s.fail(w, "Script rejected", err)
		return nil, false
	}
	return script, true
}

// checkFrames rejects frames directives above the configured limit.
func (s *Server) checkFrames(script *domain.Script) error {
	for _, cmd := range script.Commands {
		if cmd.Op != domain.OpFrames {
			continue
		}
		for _, n := range cmd.Numbers() {
			if n > float64(s.maxFrames) {
				return &domain.ConfigError{
					Op:     domain.OpFrames,
					Line:   cmd.Line,
					Reason: fmt.Sprintf("%g frames exceeds the limit of %d", n, s.maxFrames),
				}
			}
		}
	}
	return nil
}

// scriptName picks a name whose extension selects the parser: the format
// query parameter wins over the Content-Type header.
func scriptName(r *http.Request) string {
	format := r.URL.Query().Get("format")
	if format == "" {
		ct := r.Header.Get("Content-Type")
		switch {
		case strings.Contains(ct, "json"):
			format = "json"
		case strings.Contains(ct, "yaml"):
			format = "yaml"
		default:
			format = "mdl"
		}
	}
	return "request." + format
}

// fail maps script errors to 422 and everything else to 500.
func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrParse),
		errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrPrimitiveArgument),
		errors.Is(err, domain.ErrStackUnderflow):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(msg, "error", err)
	} else {
		s.logger.Warn(msg, "error", err)
	}
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}
