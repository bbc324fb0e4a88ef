/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/diagridio/catai-scheduler/errors"
)

// ServerOptions are the options for creating a metrics server.
type ServerOptions struct {
	Log     logr.Logger
	Metrics *Metrics

	// Addr is the listen address, for example ":9090".
	Addr string
}

// Server serves the metrics registry on /metrics.
type Server struct {
	log     logr.Logger
	addr    string
	handler http.Handler
}

// NewServer creates a new metrics server.
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Metrics == nil {
		return nil, errors.New("metrics are required")
	}
	if opts.Addr == "" {
		return nil, errors.New("listen address is required")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(opts.Metrics.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	return &Server{
		log:     opts.Log.WithName("metrics"),
		addr:    opts.Addr,
		handler: mux,
	}, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.addr)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Serving metrics", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "metrics server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down metrics server")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "metrics server failed")
	}
	s.log.Info("Metrics server stopped")
	return nil
}
