package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/logging"
)

// MetricsServer serves /metrics until its context is cancelled.
type MetricsServer struct {
	address string
	metrics *Metrics
	logger  logging.Logger
}

func NewMetricsServer(address string, m *Metrics, l logging.Logger) *MetricsServer {
	return &MetricsServer{address: address, metrics: m, logger: l.With("module", "metrics_server")}
}

// Run listens on the configured address and serves until ctx is done.
func (s *MetricsServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is done.
func (s *MetricsServer) Serve(ctx context.Context, listen net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping metrics server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting metrics server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
