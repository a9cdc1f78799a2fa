package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// ReadinessCheck reports why the process cannot serve yet, or nil when it can.
type ReadinessCheck func() error

type Server struct {
	port   int
	ready  ReadinessCheck
	logger *zerolog.Logger
}

func NewServer(port int, ready ReadinessCheck, logger *zerolog.Logger) *Server {
	return &Server{
		port:   port,
		ready:  ready,
		logger: logger,
	}
}

// Handler returns the health and metrics routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if s.ready != nil {
			if err := s.ready(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = fmt.Fprintf(w, "Not ready: %v", err)

				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	})

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func (s *Server) Start(ctx context.Context) error {
	return Serve(ctx, "Health check server", s.port, s.Handler(), s.logger)
}

// Serve runs handler on port until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, name string, port int, handler http.Handler, logger *zerolog.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)

		defer cancel()

		//nolint:errcheck,contextcheck // shutdown in signal handler is best-effort, non-inherited context intentional
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Int("port", port).Msg(name + " starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s error: %w", name, err)
	}

	return nil
}
