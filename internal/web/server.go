package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"pinatatracks/internal/logger"
	"pinatatracks/internal/pinata"
	"pinatatracks/pkg/models"
)

const TracksPath = "/api/pinata/tracks"

type Server struct {
	config *models.Config
	pinata *pinata.Client
	cors   *CORSPolicy
	server *http.Server
}

// NewServer builds a server around an already merged and validated config.
func NewServer(config *models.Config) *Server {
	return &Server{
		config: config,
		pinata: pinata.NewClient(config.APIURL, config.PinataJWT, config.UpstreamTimeout),
		cors:   NewCORSPolicy(config.AllowedOrigins),
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc(TracksPath, s.corsMiddleware(s.handleTracks))
	mux.HandleFunc("/api/health", s.handleHealth)

	return otelhttp.NewHandler(s.loggingMiddleware(s.recoverMiddleware(mux)), "pinatatracks")
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	logger.Info("Starting web server on port %d", s.config.Port)
	logger.Info("Tracks endpoint: http://0.0.0.0:%d%s", s.config.Port, TracksPath)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// corsMiddleware answers preflights itself and decorates everything else
// with the allow-list headers.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			s.handlePreflight(w, r)
			return
		}

		s.cors.Apply(w.Header(), r.Header.Get("Origin"))
		next(w, r)
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		logger.LogHTTPRequest(r.Method, r.URL.Path, m.Code, m.Duration)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrote := false
		tracked := httpsnoop.Wrap(w, httpsnoop.Hooks{
			WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
				return func(code int) {
					wrote = true
					next(code)
				}
			},
			Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
				return func(b []byte) (int, error) {
					wrote = true
					return next(b)
				}
			},
			ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
				return func(src io.Reader) (int64, error) {
					wrote = true
					return next(src)
				}
			},
		})

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error("Panic serving %s %s: %v", r.Method, r.URL.Path, rec)
			// Headers are already sent.
			if wrote {
				return
			}
			s.writeJSON(w, http.StatusInternalServerError, NewErrorResponse(CodeInternal, "Internal server error"))
		}()
		next.ServeHTTP(tracked, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, NewErrorResponse(code, message))
}
