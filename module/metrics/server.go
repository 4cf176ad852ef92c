package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server is the http server that will be serving the /metrics request for prometheus
type Server struct {
	server   *http.Server
	log      zerolog.Logger
	listener net.Listener
}

// NewServer creates a new server listening on the given address. It only
// responds to the `/metrics` endpoint with the metrics of the gatherer.
func NewServer(log zerolog.Logger, address string, gatherer prometheus.Gatherer) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{Addr: address, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		log:    log.With().Str("component", "metrics_server").Logger(),
	}
}

// Start listens on the server address and serves requests in the
// background. It returns the error if the address cannot be listened on.
func (m *Server) Start() error {
	listener, err := net.Listen("tcp", m.server.Addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", m.server.Addr, err)
	}
	m.listener = listener
	m.log.Info().Str("address", listener.Addr().String()).Str("endpoint", "/metrics").Msg("metrics server started")

	go func() {
		if err := m.server.Serve(listener); err != nil {
			// http.ErrServerClosed is returned when Close or Shutdown is called
			// we don't consider this an error, so print this with debug level instead
			if errors.Is(err, http.ErrServerClosed) {
				m.log.Debug().Err(err).Msg("metrics server shutdown")
			} else {
				m.log.Err(err).Msg("error shutting down metrics server")
			}
		}
	}()

	return nil
}

// Addr returns the address the server listens on, or an empty string if it
// is not listening.
func (m *Server) Addr() string {
	if m.listener == nil {
		return ""
	}
	return m.listener.Addr().String()
}

// Done returns a channel that will close when shutdown is complete.
func (m *Server) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = m.server.Shutdown(ctx)
		cancel()
		close(done)
	}()
	return done
}
